// Package notebook defines the data model for register-trace notebooks:
// classes, methods, annotated lines, and register state.
package notebook

import (
	"time"

	"github.com/google/uuid"
)

// Value is a register value: nil, bool, int64 or string.
type Value interface{}

// State maps register names (p0, v1, ...) to their current values.
type State map[string]Value

// Line represents one notebook row: free-text notes plus an optional
// script of assignment statements.
type Line struct {
	ID     string `yaml:"id" json:"id"`
	Index  int    `yaml:"index" json:"index"`
	Notes  string `yaml:"notes" json:"notes"`
	Script string `yaml:"script" json:"script"`
}

// Method represents a named unit of analysis. LiveState and Snapshots are
// derived values: every recompute rebuilds them from Lines and the declared
// register set, so stored copies are never trusted as ground truth.
type Method struct {
	Name       string        `yaml:"name" json:"name"`
	ParamCount int           `yaml:"params" json:"params"`
	LocalCount int           `yaml:"locals" json:"locals"`
	Lines      []Line        `yaml:"lines" json:"lines"`
	LiveState  State         `yaml:"liveState,omitempty" json:"liveState,omitempty"`
	Snapshots  map[int]State `yaml:"snapshots,omitempty" json:"snapshots,omitempty"`
	UpdatedAt  time.Time     `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Class groups methods under the real/obfuscated/friendly name triple of
// the class they were lifted from.
type Class struct {
	Name       string    `yaml:"name" json:"name"`
	Obfuscated string    `yaml:"obfuscated,omitempty" json:"obfuscated,omitempty"`
	Friendly   string    `yaml:"friendly,omitempty" json:"friendly,omitempty"`
	Methods    []*Method `yaml:"methods" json:"methods"`
}

// Collection is the root container persisted as a single blob.
type Collection struct {
	Classes []*Class `yaml:"classes" json:"classes"`
}

// NewLine creates a line with a fresh opaque id. The id is stable across
// edits and used for focus targeting, never for ordering.
func NewLine(index int, notes, script string) Line {
	return Line{
		ID:     uuid.NewString(),
		Index:  index,
		Notes:  notes,
		Script: script,
	}
}

// NextIndex returns the index an appended line should receive:
// max existing index + 1, starting at 1 for an empty method.
func (m *Method) NextIndex() int {
	max := 0
	for _, ln := range m.Lines {
		if ln.Index > max {
			max = ln.Index
		}
	}
	return max + 1
}

// AppendLine adds a line at the next index and returns it. Lines are only
// ever appended; indices of existing lines are never renumbered.
func (m *Method) AppendLine(notes, script string) Line {
	ln := NewLine(m.NextIndex(), notes, script)
	m.Lines = append(m.Lines, ln)
	m.Touch()
	return ln
}

// LineByIndex returns the last line carrying the given index, matching the
// snapshot table where a later duplicate owns the key.
func (m *Method) LineByIndex(index int) (Line, bool) {
	for i := len(m.Lines) - 1; i >= 0; i-- {
		if m.Lines[i].Index == index {
			return m.Lines[i], true
		}
	}
	return Line{}, false
}

// Touch records an edit timestamp for display purposes.
func (m *Method) Touch() {
	m.UpdatedAt = time.Now().UTC()
}

// Method returns the method with the given name, or nil.
func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Class returns the class with the given name, or nil. Obfuscated and
// friendly names are accepted as aliases.
func (c *Collection) Class(name string) *Class {
	for _, cl := range c.Classes {
		if cl.Name == name || cl.Obfuscated == name || cl.Friendly == name {
			return cl
		}
	}
	return nil
}

// AddClass appends a class and returns it.
func (c *Collection) AddClass(name, obfuscated, friendly string) *Class {
	cl := &Class{Name: name, Obfuscated: obfuscated, Friendly: friendly}
	c.Classes = append(c.Classes, cl)
	return cl
}

// CopyState returns a deep copy of a register-state map. Values are scalars,
// so a key-by-key copy is a full copy.
func CopyState(s State) State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// NormalizeValue canonicalizes a value decoded from a document. Register
// values are nil, bool, int64 or string; decoders hand back platform ints
// (and hand-edited documents can carry anything numeric), so integral
// values are widened to int64.
func NormalizeValue(v Value) Value {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		return v
	}
}

// NormalizeState canonicalizes every value in a decoded state map in place.
func NormalizeState(s State) {
	for k, v := range s {
		s[k] = NormalizeValue(v)
	}
}
