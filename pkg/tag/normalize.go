// Package tag turns raw annotation payload text into validated records.
//
// Payloads use a relaxed convention where keys and string values may be
// wrapped in either single or double quotes. Normalize rewrites that into
// strict double-quoted form, and Decode validates the result against the
// schema of the (command, datatype) variant it names.
package tag

import "strings"

// Normalize rewrites the relaxed quoting convention into strict form: every
// single quote acting as a string delimiter becomes a double quote, while
// single quotes inside an already-double-quoted span are literal content
// and left untouched.
//
// The toggle does not consider backslash escapes; see the decoder for how
// a payload that defeats the toggle surfaces as a decode error.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	inDouble := false
	for _, r := range raw {
		switch {
		case r == '"':
			inDouble = !inDouble
			b.WriteRune(r)
		case r == '\'' && !inDouble:
			b.WriteRune('"')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
