// Package highlight locates register mentions inside free text (notes and
// scripts) so the display layer can attach the register's value at that
// line. Highlighting is presentation only; it has no effect on simulation.
package highlight

import "regexp"

// Span marks one register mention by byte offsets into the scanned text.
type Span struct {
	Start    int
	End      int
	Register string
}

var mention = regexp.MustCompile(`[vp][0-9]+`)

// Registers returns the register mentions in text, in order. A mention is
// a v/p digit run not embedded in a larger identifier, so "v0" in "move v0"
// matches while "env0" and "v0x" do not.
func Registers(text string) []Span {
	var spans []Span
	for _, loc := range mention.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isWordByte(text[start-1]) {
			continue
		}
		if end < len(text) && isWordByte(text[end]) {
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Register: text[start:end]})
	}
	return spans
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
