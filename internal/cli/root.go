package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// Called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the graphmark CLI and returns an error if any command
// fails. The logger is attached to the context and accessible to all
// commands via loggerFromContext; --verbose selects debug level.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "graphmark",
		Short:        "graphmark extracts graph annotations from source comments",
		Long: `graphmark scans source files for @@graph annotations embedded in
comments, assembles them into graph definitions, and writes one GraphViz
DOT artifact per graph. Companion commands render artifacts to SVG,
serve them for preview, and provide the dequote and minify text filters.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("graphmark %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newScanCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newDequoteCmd())
	root.AddCommand(newMinifyCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
