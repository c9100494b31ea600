package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphtools/graphmark/pkg/config"
	"github.com/graphtools/graphmark/pkg/errors"
	"github.com/graphtools/graphmark/pkg/pipeline"
)

// newScanCmd creates the scan command, the core annotation pipeline.
// Annotation errors are logged and counted but never change the exit
// status; only an unusable config aborts the command.
func newScanCmd() *cobra.Command {
	var (
		output     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "scan [patterns...]",
		Short: "Extract graph annotations and write DOT artifacts",
		Long: `Scan reads the given glob patterns (or standard input when none are
given), extracts @@graph annotations from comments, and writes one
GraphViz DOT artifact per defined graph under the output path prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Output = output
			}
			if err := errors.ValidateOutputPrefix(cfg.Output); err != nil {
				return err
			}

			prog := newProgress(logger)
			runner := pipeline.New(cfg, logger)

			if len(args) == 0 {
				runner.ProcessReader(ctx, os.Stdin, "<stdin>")
			} else {
				runner.ProcessPatterns(ctx, args)
			}

			report := runner.Finish()
			prog.done(fmt.Sprintf("Scanned %d file%s", report.Counters.Files, plural(report.Counters.Files)))
			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "artifact path prefix (default ./output)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")

	return cmd
}
