package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphtools/graphmark/pkg/cache"
	"github.com/graphtools/graphmark/pkg/render/dot"
)

// newRenderCmd creates the render command, which turns a DOT artifact
// into an SVG using the in-process GraphViz engine. Results are cached by
// content hash so re-rendering an unchanged artifact is a file read.
func newRenderCmd() *cobra.Command {
	var (
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render <dotfile>",
		Short: "Render a DOT artifact to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			store := openCache(refresh, logger)
			defer store.Close()

			key := cache.RenderKey(source)
			svg, hit, err := store.Get(ctx, key)
			if err != nil {
				logger.Warn("cache read failed, rendering fresh", "err", err)
				hit = false
			}
			if !hit {
				svg, err = dot.RenderSVG(ctx, source)
				if err != nil {
					return err
				}
				if err := store.Set(ctx, key, svg, 0); err != nil {
					logger.Warn("cache write failed", "err", err)
				}
			}

			out := output
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".svg"
			}
			if err := os.WriteFile(out, svg, 0o644); err != nil {
				return err
			}

			hint := styleComputed.Render(iconFresh)
			if hit {
				hint = styleCached.Render(iconCached)
			}
			printSuccess("Rendered %s (%s)", args[0], hint)
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output SVG path (default: input with .svg extension)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the render cache")

	return cmd
}

// openCache returns the render cache, or a null cache when bypassed or
// unavailable.
func openCache(refresh bool, logger *log.Logger) cache.Cache {
	if refresh {
		return cache.NewNullCache()
	}
	store, err := cache.NewFileCache(cache.DefaultDir())
	if err != nil {
		logger.Warn("render cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	return store
}
