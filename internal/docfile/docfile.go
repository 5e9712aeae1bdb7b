// Package docfile reads and writes the exchanged document form of methods
// and collections: a YAML key-value document that round-trips losslessly.
// Snapshots and live state in a document are advisory only; every accepted
// method is re-simulated so derived state is rebuilt from its lines.
package docfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	regerrors "regpad/internal/errors"
	"regpad/internal/notebook"
	"regpad/internal/simulate"
)

// EncodeMethod serializes one method.
func EncodeMethod(m *notebook.Method) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode method %q: %w", m.Name, err)
	}
	return data, nil
}

// DecodeMethod parses and validates a method document. The document must
// carry a non-empty name and a lines sequence; anything else is rejected
// with an invalid-file error. The accepted method is recomputed before it
// is returned.
func DecodeMethod(data []byte) (*notebook.Method, error) {
	var m notebook.Method
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, regerrors.NewImport("invalid file: not a method document", "", err)
	}
	if err := validateMethod(&m); err != nil {
		return nil, err
	}
	notebook.NormalizeState(m.LiveState)
	simulate.Recompute(&m)
	return &m, nil
}

// EncodeCollection serializes the whole class/method collection.
func EncodeCollection(c *notebook.Collection) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}

// DecodeCollection parses and validates a collection document, recomputing
// every method it carries.
func DecodeCollection(data []byte) (*notebook.Collection, error) {
	var c notebook.Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, regerrors.NewImport("invalid file: not a collection document", "", err)
	}
	for _, cl := range c.Classes {
		if cl.Name == "" {
			return nil, regerrors.NewImport("invalid file: class missing name", "", nil)
		}
		for _, m := range cl.Methods {
			if err := validateMethod(m); err != nil {
				return nil, err
			}
			notebook.NormalizeState(m.LiveState)
			simulate.Recompute(m)
		}
	}
	return &c, nil
}

func validateMethod(m *notebook.Method) error {
	if m.Name == "" {
		return regerrors.NewImport("invalid file: method missing name", "", nil)
	}
	if m.Lines == nil {
		return regerrors.NewImport(fmt.Sprintf("invalid file: method %q has no lines", m.Name), "", nil)
	}
	return nil
}

// ReadMethodFile loads a method document from disk.
func ReadMethodFile(path string) (*notebook.Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, regerrors.NewImport("invalid file: unreadable", path, err)
	}
	m, err := DecodeMethod(data)
	if err != nil {
		if re, ok := err.(*regerrors.Error); ok {
			re.Path = path
		}
		return nil, err
	}
	return m, nil
}

// WriteMethodFile exports a method document to disk.
func WriteMethodFile(path string, m *notebook.Method) error {
	data, err := EncodeMethod(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadCollectionFile loads a collection document from disk.
func ReadCollectionFile(path string) (*notebook.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, regerrors.NewImport("invalid file: unreadable", path, err)
	}
	c, err := DecodeCollection(data)
	if err != nil {
		if re, ok := err.(*regerrors.Error); ok {
			re.Path = path
		}
		return nil, err
	}
	return c, nil
}

// WriteCollectionFile exports the whole collection to disk.
func WriteCollectionFile(path string, c *notebook.Collection) error {
	data, err := EncodeCollection(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
