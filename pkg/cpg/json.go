package cpg

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/modgraph/pkg/errors"
)

type document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// ReadJSON decodes a JSON property graph from r into a Memory graph.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "f1", "type": "FILE", "domain": "code",
//	             "metadata": {"filePath": "/src/a.ts", "startLine": 1, "endLine": 40}}],
//	  "edges": [{"id": "e1", "type": "IMPORTS", "from": "f1", "to": "./b"}]
//	}
//
// Errors carry the INVALID_GRAPH code and name the node or edge at fault.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Memory, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode property graph")
	}

	g := NewMemory()
	for i, n := range doc.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %d (%q)", i, n.ID)
		}
	}
	for i, e := range doc.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d (%q)", i, e.ID)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// A missing file is reported with the FILE_NOT_FOUND code.
func ImportJSON(path string) (*Memory, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes g as indented JSON in the format accepted by ReadJSON.
func WriteJSON(g Graph, w io.Writer) error {
	doc := document{Nodes: g.Nodes(), Edges: g.Edges()}
	if doc.Nodes == nil {
		doc.Nodes = []Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
