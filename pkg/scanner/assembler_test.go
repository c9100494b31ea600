package scanner

import "testing"

func frag(text string, tagStart bool, line int) Fragment {
	return Fragment{Text: text, TagStart: tagStart, Source: "test.src", Line: line}
}

func TestAssemblerSingleLine(t *testing.T) {
	var a Assembler
	payload, done := a.Add(frag(`{ 'graphid':"g1" }`, true, 1))
	if !done {
		t.Fatal("single-line payload not complete")
	}
	if payload != `{ 'graphid':"g1" }` {
		t.Errorf("payload = %q", payload)
	}
	if a.Reading() {
		t.Error("Reading() = true after completion")
	}
}

func TestAssemblerMultiLine(t *testing.T) {
	var a Assembler

	if _, done := a.Add(frag("{", true, 1)); done {
		t.Fatal("payload complete after opening brace")
	}
	if !a.Reading() {
		t.Fatal("Reading() = false mid-payload")
	}
	if _, done := a.Add(frag(`'graphid': "g1",`, false, 2)); done {
		t.Fatal("payload complete before closing brace")
	}
	payload, done := a.Add(frag(`'datatype': "node" }`, false, 3))
	if !done {
		t.Fatal("payload not complete after closing brace")
	}
	want := `{'graphid': "g1",'datatype': "node" }`
	if payload != want {
		t.Errorf("payload = %q, want %q", payload, want)
	}
	if a.Source() != "test.src" || a.Line() != 1 {
		t.Errorf("position = %s:%d, want test.src:1", a.Source(), a.Line())
	}
}

func TestAssemblerBareMarkerLine(t *testing.T) {
	var a Assembler
	if _, done := a.Add(frag("", true, 1)); done {
		t.Fatal("empty tag line reported complete")
	}
	if !a.Reading() {
		t.Error("Reading() = false after bare marker line")
	}
	payload, done := a.Add(frag(`{ 'a':"b" }`, false, 2))
	if !done || payload != `{ 'a':"b" }` {
		t.Errorf("payload = %q, done = %v", payload, done)
	}
}

func TestAssemblerBraceInsideQuotes(t *testing.T) {
	var a Assembler
	if _, done := a.Add(frag(`{ 'label': "closing } brace",`, true, 1)); done {
		t.Fatal("quoted brace terminated the payload")
	}
	payload, done := a.Add(frag(`'x':'y' }`, false, 2))
	if !done {
		t.Fatal("payload not complete")
	}
	if payload != `{ 'label': "closing } brace",'x':'y' }` {
		t.Errorf("payload = %q", payload)
	}
}

func TestAssemblerDiscardsTrailingText(t *testing.T) {
	var a Assembler
	payload, done := a.Add(frag(`{ 'a':"b" } trailing junk`, true, 1))
	if !done {
		t.Fatal("payload not complete")
	}
	if payload != `{ 'a':"b" }` {
		t.Errorf("payload = %q", payload)
	}
}

func TestAssemblerNestedBraces(t *testing.T) {
	var a Assembler
	payload, done := a.Add(frag(`{ 'a': { 'b': "c" } }`, true, 1))
	if !done {
		t.Fatal("nested payload not complete")
	}
	if payload != `{ 'a': { 'b': "c" } }` {
		t.Errorf("payload = %q", payload)
	}
}

func TestAssemblerIgnoresFragmentsWhenIdle(t *testing.T) {
	var a Assembler
	if _, done := a.Add(frag("stray text }", false, 1)); done {
		t.Error("idle assembler completed a payload")
	}
	if a.Reading() {
		t.Error("idle assembler started reading")
	}
}

func TestAssemblerNewTagSupersedesUnfinished(t *testing.T) {
	var a Assembler
	a.Add(frag(`{ 'a': "unfinished`, true, 1))
	payload, done := a.Add(frag(`{ 'b':"c" }`, true, 5))
	if !done {
		t.Fatal("superseding payload not complete")
	}
	if payload != `{ 'b':"c" }` {
		t.Errorf("payload = %q", payload)
	}
	if a.Line() != 5 {
		t.Errorf("Line() = %d, want 5", a.Line())
	}
}

func TestPayloadEnd(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"Simple", "{}", 1},
		{"None", "{ 'a':", -1},
		{"NoBrace", "plain text", -1},
		{"CloseOnly", "} trailing", -1},
		{"QuotedBrace", `{"a":"}"}`, 8},
		{"SingleQuotedBrace", `{'a':'}'}`, 8},
		{"EscapedQuote", `{"a":"\"}"}`, 10},
		{"Nested", `{"a":{"b":1}}`, 12},
		{"TrailingIgnored", `{"a":1} }`, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := payloadEnd(tt.in); got != tt.want {
				t.Errorf("payloadEnd(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
