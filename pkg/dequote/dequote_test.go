package dequote

import (
	"bytes"
	"strings"
	"testing"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"Default", `say "hi" and 'bye'`, DefaultOptions(), "say hi and bye"},
		{"DoubleOnly", `"a" 'b'`, Options{Double: true}, `a 'b'`},
		{"SingleOnly", `"a" 'b'`, Options{Single: true}, `"a" b`},
		{"Whitespace", "  'x'  ", Options{Single: true, Whitespace: true}, "x"},
		{"NothingSelected", `"a"`, Options{}, `"a"`},
		{"Empty", "", DefaultOptions(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Line(tt.in, tt.opts); got != tt.want {
				t.Errorf("Line(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCopy(t *testing.T) {
	in := strings.NewReader("\"one\"\n'two'\nthree")
	var out bytes.Buffer
	if err := Copy(&out, in, DefaultOptions()); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if got, want := out.String(), "one\ntwo\nthree\n"; got != want {
		t.Errorf("Copy output = %q, want %q", got, want)
	}
}
