// Package simulate implements the register-state simulation engine: it
// parses per-line scripts, evaluates assignment statements, and replays
// them in line order to produce a full register snapshot per line.
package simulate

import (
	"regexp"
	"strconv"
	"strings"

	"regpad/internal/notebook"
)

var registerName = regexp.MustCompile(`^[vp][0-9]+$`)

// IsRegister reports whether a text fragment names a register: after
// trimming, the letter v or p followed by one or more decimal digits and
// nothing else.
func IsRegister(s string) bool {
	return registerName.MatchString(strings.TrimSpace(s))
}

// ParseToken converts a right-hand-side fragment into a value. Rules are
// checked in order, first match wins; the function is total — every input
// produces a value and nothing is ever rejected.
func ParseToken(s string) notebook.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if s == "null" {
		return nil
	}
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if isDigits(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		// digit run too long for int64, keep it verbatim
		return s
	}
	if len(s) >= 2 {
		if q := s[0]; (q == '\'' || q == '"') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	// bare identifiers and expressions too complex to evaluate are stored
	// as opaque strings rather than rejected
	return s
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
