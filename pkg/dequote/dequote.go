// Package dequote strips quotation marks from text streams. It exists for
// Windows batch tooling that cannot pass quoted arguments through a
// command line intact.
package dequote

import (
	"bufio"
	"io"
	"strings"

	"github.com/graphtools/graphmark/pkg/errors"
)

// Options selects which characters are removed.
type Options struct {
	Double     bool // strip double quotation marks
	Single     bool // strip single quotation marks
	Whitespace bool // strip leading and trailing whitespace per line
}

// DefaultOptions strips both quote kinds and leaves whitespace alone.
func DefaultOptions() Options {
	return Options{Double: true, Single: true}
}

// Line processes a single line.
func Line(line string, opts Options) string {
	if opts.Whitespace {
		line = strings.TrimSpace(line)
	}
	if opts.Double {
		line = strings.ReplaceAll(line, `"`, "")
	}
	if opts.Single {
		line = strings.ReplaceAll(line, "'", "")
	}
	return line
}

// Copy streams input to output line by line, applying opts to each line.
// Output lines are newline-terminated regardless of how the input ended.
func Copy(w io.Writer, r io.Reader, opts Options) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	bw := bufio.NewWriter(w)
	for sc.Scan() {
		if _, err := bw.WriteString(Line(sc.Text(), opts)); err != nil {
			return errors.Wrap(errors.ErrCodeOutputIO, err, "write output")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrap(errors.ErrCodeOutputIO, err, "write output")
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeSourceIO, err, "read input")
	}
	return bw.Flush()
}
