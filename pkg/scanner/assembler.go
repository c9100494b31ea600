package scanner

import "strings"

// Assembler accumulates annotation payload text across fragments until the
// payload's brace structure is balanced. Fragments are appended verbatim;
// anything after the closing brace is discarded.
//
// Completion is decided by a quote-state-tracking lexer counting unescaped
// brace depth, so a brace inside a quoted string never terminates the
// payload and stray trailing comment text never keeps it open.
type Assembler struct {
	text    string
	reading bool
	source  string
	line    int
}

// Reading reports whether a payload is currently being accumulated.
func (a *Assembler) Reading() bool { return a.reading }

// Source returns the source name of the line that started the current or
// most recent payload.
func (a *Assembler) Source() string { return a.source }

// Line returns the 1-based line number that started the current or most
// recent payload.
func (a *Assembler) Line() int { return a.line }

// Add consumes one fragment. When the accumulated text contains a balanced
// payload object, Add returns it with done=true and resets the accumulator;
// otherwise it returns done=false and assembly continues on the next line.
func (a *Assembler) Add(f Fragment) (payload string, done bool) {
	if f.TagStart {
		// A new annotation supersedes anything half-read.
		a.text = f.Text
		a.reading = true
		a.source = f.Source
		a.line = f.Line
	} else if a.reading {
		a.text += f.Text
	} else {
		return "", false
	}

	if a.text == "" {
		// The line held only the marker; the object starts on a later line.
		return "", false
	}

	end := payloadEnd(a.text)
	if end < 0 {
		return "", false
	}

	payload = strings.TrimSpace(a.text[:end+1])
	a.text = ""
	a.reading = false
	return payload, true
}

// payloadEnd returns the byte index of the closing brace that balances the
// first opening brace in s, or -1 if the object is not yet complete.
// Braces inside quoted spans are ignored; inside a span a backslash escapes
// the next character.
func payloadEnd(s string) int {
	var (
		quote   byte // active quote character, 0 when outside a string
		escaped bool
		depth   int
		started bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '{':
			depth++
			started = true
		case '}':
			depth--
			if started && depth == 0 {
				return i
			}
		}
	}

	return -1
}
