// Package scanner recognizes annotation payload fragments inside comments.
//
// The scanner is a per-line state machine. It knows three comment dialects,
// expressed as an ordered table of (start, end) delimiter pairs: a block
// form with a two-character opener and closer, and single-line forms whose
// end delimiter is empty. Lines outside any comment are discarded; lines
// inside a comment yield Fragments that the Assembler stitches into a
// complete annotation payload.
//
// The "multi-line comment open" state deliberately persists across input
// sources: an annotation left open at end-of-input is simply never
// completed and is silently dropped.
package scanner

import (
	"regexp"
	"strings"

	"github.com/graphtools/graphmark/pkg/errors"
)

// DefaultMarker is the annotation marker looked for inside comments.
const DefaultMarker = "@@graph"

// Delimiter is one comment dialect: the opening delimiter and, for block
// comments, the closing one. An empty End marks a single-line form.
type Delimiter struct {
	Start string
	End   string
}

// DefaultDelimiters returns the built-in comment dialect table, in match
// priority order. The block pair must come before the single-line forms so
// that "/*" wins over a hypothetical "/" opener.
func DefaultDelimiters() []Delimiter {
	return []Delimiter{
		{Start: "/*", End: "*/"}, // C, CSS, JavaScript
		{Start: "//", End: ""},   // C, C++, JavaScript
		{Start: "#", End: ""},    // Python, Bash
	}
}

// Fragment is the payload text recovered from a single line.
type Fragment struct {
	Text     string // comment content with delimiters and marker stripped
	TagStart bool   // the line carried the annotation marker
	Source   string // source name, for diagnostics
	Line     int    // 1-based line number, for diagnostics
}

// Scanner detects comment boundaries and annotation markers line by line.
// It is not safe for concurrent use; one Scanner drives one input stream.
type Scanner struct {
	marker   string
	delims   []Delimiter
	openTerm string // terminator of the currently open block comment, or ""
	contRe   *regexp.Regexp
}

// New builds a scanner for the given marker and delimiter table.
// Table entries violating their own invariants (an empty start delimiter,
// or a duplicate of an earlier start) are skipped; each skipped entry is
// reported as a CONFIG_INCONSISTENCY error so the caller can log and count
// it without aborting.
func New(marker string, delims []Delimiter) (*Scanner, []error) {
	if marker == "" {
		marker = DefaultMarker
	}

	var cfgErrs []error
	kept := make([]Delimiter, 0, len(delims))
	seen := make(map[string]bool)
	for i, d := range delims {
		if d.Start == "" {
			cfgErrs = append(cfgErrs, errors.New(errors.ErrCodeConfigInconsistency,
				"comment delimiter entry #%d has an empty start delimiter, skipping it", i+1))
			continue
		}
		if seen[d.Start] {
			cfgErrs = append(cfgErrs, errors.New(errors.ErrCodeConfigInconsistency,
				"comment delimiter entry #%d duplicates start delimiter %q, skipping it", i+1, d.Start))
			continue
		}
		seen[d.Start] = true
		kept = append(kept, d)
	}

	s := &Scanner{
		marker: marker,
		delims: kept,
		// A continuation line may prefix the marker with a single "*",
		// the conventional glyph of aligned block comments.
		contRe: regexp.MustCompile(`^[*]?\s*` + regexp.QuoteMeta(marker)),
	}
	return s, cfgErrs
}

// InComment reports whether a multi-line comment is currently open.
func (s *Scanner) InComment() bool { return s.openTerm != "" }

// ScanLine feeds one raw input line through the state machine.
// assembling tells the scanner whether an annotation payload is currently
// being accumulated; plain comment content is only worth yielding while
// that is the case. The boolean result reports whether a fragment was
// produced.
func (s *Scanner) ScanLine(line, source string, num int, assembling bool) (Fragment, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Fragment{}, false
	}

	if s.openTerm != "" {
		return s.scanContinuation(trimmed, source, num, assembling)
	}
	return s.scanOpening(trimmed, source, num, assembling)
}

// scanOpening handles a line while no multi-line comment is open.
func (s *Scanner) scanOpening(trimmed, source string, num int, assembling bool) (Fragment, bool) {
	var delim *Delimiter
	for i := range s.delims {
		if strings.HasPrefix(trimmed, s.delims[i].Start) {
			delim = &s.delims[i]
			break
		}
	}
	if delim == nil {
		// Not inside a comment and not opening one: discard.
		return Fragment{}, false
	}

	rest := strings.TrimSpace(trimmed[len(delim.Start):])
	tagStart := false
	if strings.HasPrefix(rest, s.marker) {
		tagStart = true
		rest = strings.TrimSpace(rest[len(s.marker):])
	}

	if delim.End == "" {
		// Single-line form: the whole remainder is the candidate fragment.
		if !tagStart && !assembling {
			return Fragment{}, false
		}
		return Fragment{Text: rest, TagStart: tagStart, Source: source, Line: num}, true
	}

	if strings.Contains(rest, delim.End) {
		// The block comment closes on this same line.
		rest = strings.TrimSpace(strings.ReplaceAll(rest, delim.End, ""))
		if !tagStart && !assembling {
			return Fragment{}, false
		}
		return Fragment{Text: rest, TagStart: tagStart, Source: source, Line: num}, true
	}

	// The block comment stays open for subsequent lines.
	s.openTerm = delim.End
	if !tagStart && !assembling {
		return Fragment{}, false
	}
	return Fragment{Text: rest, TagStart: tagStart, Source: source, Line: num}, true
}

// scanContinuation handles a line while a multi-line comment is open.
func (s *Scanner) scanContinuation(trimmed, source string, num int, assembling bool) (Fragment, bool) {
	if strings.Contains(trimmed, s.openTerm) {
		// Comment closes here; the text before the terminator is the final
		// fragment of any annotation in flight.
		rest := strings.TrimSpace(strings.ReplaceAll(trimmed, s.openTerm, ""))
		s.openTerm = ""
		if !assembling {
			return Fragment{}, false
		}
		return Fragment{Text: rest, Source: source, Line: num}, true
	}

	if assembling {
		return Fragment{Text: trimmed, Source: source, Line: num}, true
	}

	// No annotation in flight: a continuation line can still start one,
	// optionally behind a leading "*" glyph.
	if loc := s.contRe.FindStringIndex(trimmed); loc != nil {
		rest := strings.TrimSpace(trimmed[loc[1]:])
		return Fragment{Text: rest, TagStart: true, Source: source, Line: num}, true
	}

	return Fragment{}, false
}
