package simulate

import (
	"regexp"
	"strings"

	"regpad/internal/notebook"
)

var statementSplit = regexp.MustCompile(`[;\n]`)

// Eval applies one assignment statement to a register-state map. The
// grammar is `<register> = <rhs>`: the left side must name a register, the
// right side is everything after the first `=`, consumed greedily as one
// blob. Statements that do not match are discarded without touching state
// or raising an error, so script fields double as free-form scratch text.
func Eval(stmt string, state notebook.State) {
	eq := strings.Index(stmt, "=")
	if eq < 0 {
		return
	}
	target := strings.TrimSpace(stmt[:eq])
	if !IsRegister(target) {
		return
	}
	// unknown registers are created implicitly; the inspection layer just
	// won't list them unless they are part of the declared set
	state[target] = ParseToken(stmt[eq+1:])
}

// EvalScript splits a line's script on semicolons and newlines and applies
// every non-empty fragment in order against the same state.
func EvalScript(script string, state notebook.State) {
	for _, frag := range statementSplit.Split(script, -1) {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		Eval(frag, state)
	}
}
