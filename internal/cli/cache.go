package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphtools/graphmark/pkg/cache"
)

// newCacheCmd creates the cache management command for the render cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.NewFileCache(cache.DefaultDir())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared render cache")
			printDetail("Directory: %s", store.Dir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the render cache directory",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(cache.DefaultDir())
		},
	})

	return cmd
}
