package docfile

import (
	"path/filepath"
	"reflect"
	"testing"

	regerrors "regpad/internal/errors"
	"regpad/internal/notebook"
	"regpad/internal/simulate"
)

func TestMethodRoundTrip(t *testing.T) {
	m := simulate.NewMethod("decrypt")
	m.Lines[0].Script = "v0 = 5"
	m.Lines[1].Script = `p0 = "x"`
	m.Lines[2].Notes = "v0 feeds the loop below"
	simulate.Recompute(m)

	data, err := EncodeMethod(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeMethod(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Name != m.Name || got.ParamCount != m.ParamCount || got.LocalCount != m.LocalCount {
		t.Errorf("header fields changed: %q %d/%d, want %q %d/%d",
			got.Name, got.ParamCount, got.LocalCount, m.Name, m.ParamCount, m.LocalCount)
	}
	if !reflect.DeepEqual(got.Lines, m.Lines) {
		t.Errorf("lines changed across round trip:\n got %#v\nwant %#v", got.Lines, m.Lines)
	}

	// decode recomputes from the document's lines and live state; the
	// original, recomputed once more from its own live state, must agree
	simulate.Recompute(m)
	if !reflect.DeepEqual(got.Snapshots, m.Snapshots) {
		t.Errorf("snapshots diverge after round trip:\n got %#v\nwant %#v", got.Snapshots, m.Snapshots)
	}
	if !reflect.DeepEqual(got.LiveState, m.LiveState) {
		t.Errorf("live state diverges after round trip:\n got %#v\nwant %#v", got.LiveState, m.LiveState)
	}
}

func TestDecodeMethodValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing name", doc: "lines: []\nparams: 1\nlocals: 1\n"},
		{name: "empty name", doc: "name: \"\"\nlines: []\n"},
		{name: "missing lines", doc: "name: decrypt\nparams: 1\n"},
		{name: "lines not a sequence", doc: "name: decrypt\nlines: 12\n"},
		{name: "not yaml at all", doc: "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMethod([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an invalid-file error, got nil")
			}
			if !regerrors.IsType(err, regerrors.ImportError) {
				t.Errorf("error type = %v, want ImportError", err)
			}
		})
	}
}

func TestDecodeMethodAcceptsEmptyLines(t *testing.T) {
	m, err := DecodeMethod([]byte("name: stub\nlines: []\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Name != "stub" || len(m.Lines) != 0 {
		t.Errorf("got %q with %d lines, want stub with 0", m.Name, len(m.Lines))
	}
}

func TestDecodeMethodRecomputes(t *testing.T) {
	doc := `
name: trace
params: 1
locals: 1
lines:
  - {id: a, index: 1, notes: "", script: "v0 = 9"}
snapshots:
  1: {v0: stale, p0: stale}
`
	m, err := DecodeMethod([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := m.Snapshots[1]["v0"]; got != int64(9) {
		t.Errorf("snapshot[1].v0 = %#v, want 9 (document snapshots must be rebuilt)", got)
	}
	if got := m.Snapshots[1]["p0"]; got != nil {
		t.Errorf("snapshot[1].p0 = %#v, want nil", got)
	}
}

func TestCollectionRoundTripFiles(t *testing.T) {
	c := &notebook.Collection{}
	cl := c.AddClass("Lcom/app/Auth;", "a", "Auth")
	cl.Methods = append(cl.Methods, simulate.NewMethod("login"))
	cl.Methods[0].Lines[0].Script = "v1 = true"
	simulate.Recompute(cl.Methods[0])
	simulate.Recompute(cl.Methods[0]) // settle derived state before comparing

	path := filepath.Join(t.TempDir(), "collection.yaml")
	if err := WriteCollectionFile(path, c); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadCollectionFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if len(got.Classes) != 1 {
		t.Fatalf("class count = %d, want 1", len(got.Classes))
	}
	gc := got.Classes[0]
	if gc.Name != cl.Name || gc.Obfuscated != cl.Obfuscated || gc.Friendly != cl.Friendly {
		t.Errorf("class names changed: %#v", gc)
	}
	if !reflect.DeepEqual(gc.Methods[0].Lines, cl.Methods[0].Lines) {
		t.Error("method lines changed across file round trip")
	}
	if !reflect.DeepEqual(gc.Methods[0].Snapshots, cl.Methods[0].Snapshots) {
		t.Error("method snapshots diverge across file round trip")
	}
}

func TestReadCollectionFileMissing(t *testing.T) {
	_, err := ReadCollectionFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !regerrors.IsType(err, regerrors.ImportError) {
		t.Errorf("error type = %v, want ImportError", err)
	}
}
