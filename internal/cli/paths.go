package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// forEachMatch glob-expands each pattern and calls fn for every match in
// sorted order. A pattern matching nothing is an error, matching the scan
// pipeline's treatment of empty patterns.
func forEachMatch(ctx context.Context, patterns []string, fn func(path string) error) error {
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("pattern %q matched no files", pattern)
		}
		sort.Strings(matches)
		for _, path := range matches {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(path); err != nil {
				return err
			}
		}
	}
	return nil
}
