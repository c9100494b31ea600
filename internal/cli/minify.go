package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/graphtools/graphmark/pkg/minify"
)

// newMinifyCmd creates the minify command, which strips comments, blank
// lines, and surrounding whitespace from source files. Several inputs
// share one minifier, so an unterminated block comment carries across
// file boundaries the same way the scan pipeline treats them.
func newMinifyCmd() *cobra.Command {
	var (
		clike      bool
		hlike      bool
		ilike      bool
		plike      bool
		undev      bool
		pythonMode bool
	)

	cmd := &cobra.Command{
		Use:   "minify [patterns...]",
		Short: "Strip comments and blank lines from source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			var families minify.Family
			if clike {
				families |= minify.CLike
			}
			if hlike {
				families |= minify.HLike
			}
			if ilike {
				families |= minify.ILike
			}
			if plike {
				families |= minify.PLike
			}
			if undev {
				families |= minify.Undev
			}

			m := minify.New(os.Stdout, families, plike && pythonMode)

			if len(args) == 0 {
				return m.Process(os.Stdin)
			}
			err := forEachMatch(cmd.Context(), args, func(path string) error {
				f, openErr := os.Open(path)
				if openErr != nil {
					return openErr
				}
				defer f.Close()
				return m.Process(f)
			})
			if flushErr := m.Flush(); err == nil {
				err = flushErr
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&clike, "clike", "C", false, "strip C/C++/CSS/JavaScript-like comments (default)")
	cmd.Flags().BoolVarP(&plike, "plike", "P", false, "strip Python/Bash-like comments")
	cmd.Flags().BoolVarP(&hlike, "hlike", "H", false, "strip HTML-like comments")
	cmd.Flags().BoolVarP(&ilike, "ilike", "I", false, "strip .ini configuration file comments")
	cmd.Flags().BoolVarP(&undev, "undev", "U", false, "remove DEV comment lines and activate REL comment content")
	cmd.Flags().BoolVarP(&pythonMode, "pythonmode", "Y", false, "preserve blank lines and indentation (with --plike)")

	return cmd
}
