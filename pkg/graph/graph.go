package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/modgraph/pkg/errors"
)

// =============================================================================
// View Serialization API
// =============================================================================

// MarshalView converts a View to indented JSON bytes.
func MarshalView(v View) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeViewTo(v, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes a View to a JSON file.
// The file is created with 0644 permissions.
func ExportJSON(v View, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeViewTo(v, f)
}

// WriteJSON writes a View as JSON to an io.Writer.
// Use MarshalView for in-memory serialization or ExportJSON for files.
func WriteJSON(v View, w io.Writer) error {
	return writeViewTo(v, w)
}

// ImportJSON reads a View from a JSON file.
func ImportJSON(path string) (View, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return View{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return View{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadJSON decodes a View and checks that every edge connects known nodes.
func ReadJSON(r io.Reader) (View, error) {
	var v View
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return View{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode view")
	}
	if err := validate(v); err != nil {
		return View{}, err
	}
	return v, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeViewTo(v View, w io.Writer) error {
	if v.Nodes == nil {
		v.Nodes = []Node{}
	}
	if v.Edges == nil {
		v.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep "->" in edge IDs readable
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func validate(v View) error {
	ids := make(map[string]bool, len(v.Nodes))
	for i, n := range v.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "node %d has no id", i)
		}
		if ids[n.ID] {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node %q", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range v.Edges {
		if !ids[e.From] || !ids[e.To] {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %s references unknown node", EdgeID(e.From, e.To))
		}
		if e.From == e.To {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %s is a self-loop", EdgeID(e.From, e.To))
		}
	}
	return nil
}
