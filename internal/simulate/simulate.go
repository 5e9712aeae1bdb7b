package simulate

import (
	"fmt"
	"sort"

	"regpad/internal/notebook"
)

// Default register set and line count for a freshly created method.
const (
	DefaultParams = 1
	DefaultLocals = 4
	DefaultLines  = 8
)

// Run replays lines in index order against a copy of the initial state and
// returns the per-line snapshot table and the final live state. It is a
// pure function of its inputs and cannot fail: malformed scripts are no-ops
// and duplicate or non-contiguous indices only affect ordering.
func Run(lines []notebook.Line, initial notebook.State, params, locals int) (map[int]notebook.State, notebook.State) {
	state := bootstrap(initial, params, locals)

	// sort by index, stable so duplicate indices keep their given order
	order := make([]notebook.Line, len(lines))
	copy(order, lines)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Index < order[j].Index
	})

	snapshots := make(map[int]notebook.State, len(order))
	for _, ln := range order {
		EvalScript(ln.Script, state)
		// a later line sharing an index owns the snapshot key
		snapshots[ln.Index] = notebook.CopyState(state)
	}
	return snapshots, state
}

// Recompute replays a method's lines and replaces its snapshot table and
// live state wholesale. Both are rebuilt from scratch on every call;
// previously stored snapshots are never consulted. All other fields pass
// through untouched.
func Recompute(m *notebook.Method) {
	m.Snapshots, m.LiveState = Run(m.Lines, m.LiveState, m.ParamCount, m.LocalCount)
}

// bootstrap copies the initial state and fills in every declared register
// with null, never overwriting an existing value. Snapshots are thereby
// total over the declared set even for registers declared after earlier
// lines were authored.
func bootstrap(initial notebook.State, params, locals int) notebook.State {
	state := notebook.CopyState(initial)
	for i := 0; i < params; i++ {
		name := fmt.Sprintf("p%d", i)
		if _, ok := state[name]; !ok {
			state[name] = nil
		}
	}
	for i := 0; i < locals; i++ {
		name := fmt.Sprintf("v%d", i)
		if _, ok := state[name]; !ok {
			state[name] = nil
		}
	}
	return state
}

// AddParam declares the next parameter register (p<count>) and recomputes
// so existing snapshots backfill it as null. Registers are append-only:
// removal and renumbering are not supported.
func AddParam(m *notebook.Method) string {
	name := fmt.Sprintf("p%d", m.ParamCount)
	m.ParamCount++
	addRegister(m, name)
	return name
}

// AddLocal declares the next local register (v<count>) and recomputes.
func AddLocal(m *notebook.Method) string {
	name := fmt.Sprintf("v%d", m.LocalCount)
	m.LocalCount++
	addRegister(m, name)
	return name
}

func addRegister(m *notebook.Method, name string) {
	if m.LiveState == nil {
		m.LiveState = notebook.State{}
	}
	if _, ok := m.LiveState[name]; !ok {
		m.LiveState[name] = nil
	}
	Recompute(m)
	m.Touch()
}

// NewMethod creates a method with the default register set and a page of
// empty lines, simulated once so the snapshot table starts out all-null.
func NewMethod(name string) *notebook.Method {
	m := &notebook.Method{
		Name:       name,
		ParamCount: DefaultParams,
		LocalCount: DefaultLocals,
		LiveState:  notebook.State{},
	}
	for i := 0; i < DefaultLines; i++ {
		m.Lines = append(m.Lines, notebook.NewLine(i+1, "", ""))
	}
	Recompute(m)
	m.Touch()
	return m
}
