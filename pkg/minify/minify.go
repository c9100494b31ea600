// Package minify strips comments, blank lines, and surrounding whitespace
// from source text. Comment syntax is selected per family: C-like block
// and line comments, HTML/XML comments, .ini semicolon comments, and
// Python/Bash hash comments with triple-quote docstrings.
//
// Two special C-like and HTML-like forms support build-time switching:
// a line beginning with a DEV comment is removed entirely, and the body
// of a REL comment is activated into the output. Both are applied only
// when the Undev flag is set.
//
// Comment detection is textual. A delimiter inside a string literal is
// still treated as a comment start; the workaround is splitting the
// delimiter in the source ("/" + "*").
package minify

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Family is a bit set selecting which comment syntaxes are stripped.
type Family uint8

// Comment families.
const (
	CLike Family = 0x01 // C, C++, C#, CSS, JavaScript, PHP
	HLike Family = 0x02 // HTML, XML
	ILike Family = 0x04 // .ini configuration files
	PLike Family = 0x08 // Python, Bash

	// Undev additionally removes /*DEV*/ lines and activates the content
	// of /*REL ... */ comments (and their HTML-like equivalents).
	Undev Family = 0x80
)

// FamilyDefault is used when no family is selected.
const FamilyDefault = CLike

// form is one comment syntax: how to recognize it and how to cut it out.
type form struct {
	family    Family
	multiline bool
	sameDelim bool // start and end delimiters are identical (docstrings)

	matchStart *regexp.Regexp
	matchEnd   *regexp.Regexp // nil for single-line forms

	replace     *regexp.Regexp // removes the comment when it closes on one line
	replaceWith string

	replaceStart *regexp.Regexp // removes an opening delimiter and its tail
	replaceEnd   *regexp.Regexp // removes up to a closing delimiter
}

// The DEV/REL forms come first: they can remove or rewrite whole lines
// before the plain comment forms see them.
var forms = []form{
	{
		family:     CLike | Undev,
		matchStart: regexp.MustCompile(`/\*DEV\*/`),
		replace:    regexp.MustCompile(`\s*/\*DEV\*/.*$`),
	},
	{
		family:     HLike | Undev,
		matchStart: regexp.MustCompile(`<!--DEV-->`),
		replace:    regexp.MustCompile(`\s*<!--DEV-->.*$`),
	},
	{
		family:      CLike | Undev,
		matchStart:  regexp.MustCompile(`/\*REL\s+(.*?)\s*\*/`),
		replace:     regexp.MustCompile(`\s*/\*REL\s+(.*?)\s*\*/`),
		replaceWith: "$1",
	},
	{
		family:      HLike | Undev,
		matchStart:  regexp.MustCompile(`<!--REL\s+(.*?)\s*-->`),
		replace:     regexp.MustCompile(`\s*<!--REL\s+(.*?)\s*-->`),
		replaceWith: "$1",
	},
	{
		family:       CLike,
		multiline:    true,
		matchStart:   regexp.MustCompile(`/\*`),
		matchEnd:     regexp.MustCompile(`\*/`),
		replace:      regexp.MustCompile(`\s*/\*.*?\*/\s*`),
		replaceStart: regexp.MustCompile(`\s*/\*.*$`),
		replaceEnd:   regexp.MustCompile(`^.*?\*/\s*`),
	},
	{
		family:     CLike,
		matchStart: regexp.MustCompile(`//`),
		replace:    regexp.MustCompile(`\s*//.*$`),
	},
	{
		family:     PLike,
		matchStart: regexp.MustCompile(`#`),
		replace:    regexp.MustCompile(`\s*#.*$`),
	},
	{
		family:       PLike,
		multiline:    true,
		sameDelim:    true,
		matchStart:   regexp.MustCompile(`^\s*"{3}`),
		matchEnd:     regexp.MustCompile(`^\s*"{3}`),
		replace:      regexp.MustCompile(`^\s*"{3}.*$`),
		replaceStart: regexp.MustCompile(`^\s*"{3}.*$`),
		replaceEnd:   regexp.MustCompile(`^\s*"{3}.*$`),
	},
	{
		family:       HLike,
		multiline:    true,
		matchStart:   regexp.MustCompile(`<!--`),
		matchEnd:     regexp.MustCompile(`-->`),
		replace:      regexp.MustCompile(`<!--.*?-->`),
		replaceStart: regexp.MustCompile(`\s*<!--.*$`),
		replaceEnd:   regexp.MustCompile(`^.*?-->`),
	},
	{
		family:     ILike,
		matchStart: regexp.MustCompile(`;`),
		replace:    regexp.MustCompile(`\s*;.*$`),
	},
}

var indentRe = regexp.MustCompile(`^\s*`)

// Minifier strips comments from a stream of lines. Multi-line comment
// state survives across lines (and across inputs, if the caller feeds
// several). Not safe for concurrent use.
type Minifier struct {
	families   Family
	pythonMode bool
	active     int // index of the open multi-line form, -1 when none
	out        *bufio.Writer
	err        error
}

// New creates a minifier writing its output to w. When pythonMode is set,
// blank lines and leading indentation are preserved, as Python requires.
func New(w io.Writer, families Family, pythonMode bool) *Minifier {
	if families&^Undev == 0 {
		families |= FamilyDefault
	}
	return &Minifier{
		families:   families,
		pythonMode: pythonMode,
		active:     -1,
		out:        bufio.NewWriter(w),
	}
}

// ProcessLine feeds one input line through the minifier. Stripping an
// inline comment can leave content that itself holds further comments, so
// remainders go onto an explicit work queue and run through the same form
// table again.
func (m *Minifier) ProcessLine(line string) {
	queue := []string{line}
	first := true

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		var indent string
		if m.pythonMode {
			indent = indentRe.FindString(item)
		}

		bare := strings.TrimSpace(item)
		if bare == "" {
			if first && m.pythonMode {
				m.print("")
			}
			first = false
			continue
		}

		// The open-comment check applies to the raw input line only;
		// requeued remainders are known to sit outside the comment.
		if first && m.active >= 0 {
			f := forms[m.active]
			if !f.matchEnd.MatchString(bare) {
				first = false
				continue
			}
			m.active = -1
			bare = strings.TrimSpace(f.replaceEnd.ReplaceAllString(bare, f.replaceWith))
			if bare == "" {
				first = false
				continue
			}
		}
		first = false

		if rest, emit := m.applyForms(bare); !emit {
			if rest != "" {
				queue = append(queue, indent+rest)
			}
			continue
		}

		m.print(indent + bare)
	}
}

// applyForms runs bare through the form table. It returns emit=true when
// no active form matched and the line should be printed as-is; otherwise
// rest holds whatever remained after cutting the comment (possibly empty).
func (m *Minifier) applyForms(bare string) (rest string, emit bool) {
	for n, f := range forms {
		if f.family&m.families == 0 {
			continue
		}
		if f.family&Undev != 0 && m.families&Undev == 0 {
			continue
		}
		if !f.matchStart.MatchString(bare) {
			continue
		}

		if f.matchEnd == nil {
			return strings.TrimSpace(f.replace.ReplaceAllString(bare, f.replaceWith)), false
		}

		if f.sameDelim {
			// Identical start and end delimiters: this line opens the
			// comment, the next match of the delimiter closes it.
			m.active = n
			return "", false
		}

		if !f.matchEnd.MatchString(bare) {
			// The comment opens here and stays open; what precedes the
			// delimiter is still content.
			m.active = n
			return strings.TrimSpace(f.replaceStart.ReplaceAllString(bare, f.replaceWith)), false
		}

		return strings.TrimSpace(f.replace.ReplaceAllString(bare, f.replaceWith)), false
	}
	return "", true
}

// Process feeds a whole input stream through the minifier.
func (m *Minifier) Process(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m.ProcessLine(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return m.Flush()
}

// Flush writes out any buffered output and reports the first write error
// encountered.
func (m *Minifier) Flush() error {
	if err := m.out.Flush(); err != nil && m.err == nil {
		m.err = err
	}
	return m.err
}

func (m *Minifier) print(line string) {
	if m.err != nil {
		return
	}
	if _, err := m.out.WriteString(line); err != nil {
		m.err = err
		return
	}
	if err := m.out.WriteByte('\n'); err != nil {
		m.err = err
	}
}
