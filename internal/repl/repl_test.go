package repl

import (
	"testing"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{name: "null", value: nil, expected: "null"},
		{name: "true", value: true, expected: "true"},
		{name: "false", value: false, expected: "false"},
		{name: "integer", value: int64(42), expected: "42"},
		{name: "string is quoted", value: "x", expected: `"x"`},
		{name: "opaque blob", value: "v0 + v1", expected: `"v0 + v1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value); got != tt.expected {
				t.Errorf("FormatValue(%#v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestPaintWithoutTerminal(t *testing.T) {
	s := &Session{color: false}
	if got := s.paint("move v0 here"); got != "move v0 here" {
		t.Errorf("paint without color changed text: %q", got)
	}

	s.color = true
	got := s.paint("v0 and v1")
	want := "\x1b[36mv0\x1b[0m and \x1b[36mv1\x1b[0m"
	if got != want {
		t.Errorf("painted = %q, want %q", got, want)
	}
}
