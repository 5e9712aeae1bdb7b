package notebook

import (
	"reflect"
	"testing"
)

func TestAppendLineIndexing(t *testing.T) {
	m := &Method{Name: "m"}

	first := m.AppendLine("", "")
	if first.Index != 1 {
		t.Errorf("first index = %d, want 1", first.Index)
	}
	second := m.AppendLine("note", "v0 = 1")
	if second.Index != 2 {
		t.Errorf("second index = %d, want 2", second.Index)
	}

	// appending after a gap continues from the max, never renumbers
	m.Lines = append(m.Lines, NewLine(10, "", ""))
	third := m.AppendLine("", "")
	if third.Index != 11 {
		t.Errorf("post-gap index = %d, want 11", third.Index)
	}

	if first.ID == second.ID || second.ID == third.ID {
		t.Error("line ids must be unique")
	}
	if m.UpdatedAt.IsZero() {
		t.Error("append must touch the method")
	}
}

func TestLineByIndex(t *testing.T) {
	m := &Method{Name: "m"}
	m.Lines = append(m.Lines, NewLine(1, "a", ""), NewLine(2, "b", ""), NewLine(2, "c", ""))

	ln, ok := m.LineByIndex(2)
	if !ok || ln.Notes != "c" {
		t.Errorf("LineByIndex(2) = %q ok=%v, want later duplicate c", ln.Notes, ok)
	}
	if _, ok := m.LineByIndex(7); ok {
		t.Error("LineByIndex(7) found a line that does not exist")
	}
}

func TestCollectionLookup(t *testing.T) {
	c := &Collection{}
	cl := c.AddClass("Lcom/app/a;", "a", "Crypto")

	for _, alias := range []string{"Lcom/app/a;", "a", "Crypto"} {
		if got := c.Class(alias); got != cl {
			t.Errorf("Class(%q) = %v, want the added class", alias, got)
		}
	}
	if got := c.Class("nope"); got != nil {
		t.Errorf("Class(nope) = %v, want nil", got)
	}
}

func TestCopyStateIsDeep(t *testing.T) {
	orig := State{"v0": int64(1), "p0": nil}
	cp := CopyState(orig)
	cp["v0"] = int64(2)

	if orig["v0"] != int64(1) {
		t.Error("mutating the copy leaked into the original")
	}
	if !reflect.DeepEqual(CopyState(nil), State{}) {
		t.Error("copying nil must yield an empty, usable map")
	}
}

func TestNormalizeState(t *testing.T) {
	s := State{
		"v0": 5,
		"v1": int64(6),
		"v2": "text",
		"v3": nil,
		"v4": true,
	}
	NormalizeState(s)

	want := State{
		"v0": int64(5),
		"v1": int64(6),
		"v2": "text",
		"v3": nil,
		"v4": true,
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("normalized = %#v, want %#v", s, want)
	}
}
