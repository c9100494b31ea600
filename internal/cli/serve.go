package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/graphtools/graphmark/pkg/cache"
	"github.com/graphtools/graphmark/pkg/render/dot"
)

// newServeCmd creates the serve command: a small preview server that
// lists the DOT artifacts in a directory and renders them to SVG on
// demand, through the same render cache the render command uses.
func newServeCmd() *cobra.Command {
	var (
		addr    string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Preview DOT artifacts in a browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return fmt.Errorf("not a directory: %s", dir)
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			store := openCache(refresh, logger)
			defer store.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newPreviewHandler(dir, store),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			printInfo("Serving %s on http://%s", dir, addr)
			logger.Info("preview server listening", "addr", addr, "dir", dir)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8321", "listen address")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the render cache")

	return cmd
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>graphmark artifacts</title></head>
<body>
<h1>Graph artifacts</h1>
<ul>
{{range .}}<li><a href="/svg/{{.}}">{{.}}</a></li>
{{else}}<li>No artifacts found.</li>
{{end}}</ul>
</body>
</html>
`))

// newPreviewHandler builds the preview routes: an index of artifacts and
// an on-demand SVG renderer.
func newPreviewHandler(dir string, store cache.Cache) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		names, err := listArtifacts(dir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTmpl.Execute(w, names)
	})

	r.Get("/svg/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		if name != filepath.Base(name) || !strings.HasSuffix(name, dot.ArtifactSuffix) {
			http.Error(w, "unknown artifact", http.StatusNotFound)
			return
		}

		source, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			http.Error(w, "unknown artifact", http.StatusNotFound)
			return
		}

		ctx := req.Context()
		key := cache.RenderKey(source)
		svg, hit, err := store.Get(ctx, key)
		if err != nil || !hit {
			svg, err = dot.RenderSVG(ctx, source)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			_ = store.Set(ctx, key, svg, 0)
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	})

	return r
}

// listArtifacts returns the DOT artifact filenames in dir, sorted.
func listArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), dot.ArtifactSuffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
