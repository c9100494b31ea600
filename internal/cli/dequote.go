package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/graphtools/graphmark/pkg/dequote"
)

// newDequoteCmd creates the dequote command, which strips quotation
// marks from files or stdin. It exists for Windows batch tooling that
// cannot pass quoted arguments through a command line intact.
func newDequoteCmd() *cobra.Command {
	var (
		singleOnly bool
		doubleOnly bool
		whitespace bool
	)

	cmd := &cobra.Command{
		Use:   "dequote [patterns...]",
		Short: "Remove quotation marks from files or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := dequote.DefaultOptions()
			if singleOnly {
				opts = dequote.Options{Single: true}
			}
			if doubleOnly {
				opts = dequote.Options{Double: true}
			}
			opts.Whitespace = whitespace

			if len(args) == 0 {
				return dequote.Copy(os.Stdout, os.Stdin, opts)
			}
			return forEachMatch(cmd.Context(), args, func(path string) error {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				return dequote.Copy(os.Stdout, f, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&singleOnly, "singlequotesonly", "1", false, "remove only single quotation marks")
	cmd.Flags().BoolVarP(&doubleOnly, "doublequotesonly", "2", false, "remove only double quotation marks")
	cmd.Flags().BoolVarP(&whitespace, "stripwhitespace", "w", false, "strip leading and trailing whitespace from each line")

	return cmd
}
