package graph

import (
	"encoding/json"

	"github.com/matzehuels/modgraph/pkg/module"
)

// EdgeSeparator joins the endpoints of an edge ID.
const EdgeSeparator = "->"

// =============================================================================
// View - Flattened Module Graph
// =============================================================================

// View is the flattened module graph handed to layout and export tools.
//
// Nodes follow module order. Edges are listed per module in dependency
// discovery order, one per (module, dependency) pair.
type View struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// =============================================================================
// Node
// =============================================================================

// Node is one module in a View.
type Node struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Metadata NodeMetadata `json:"metadata"`
}

// NodeMetadata mirrors the module metrics shown next to a node.
type NodeMetadata struct {
	FileCount       int `json:"fileCount"`
	DependencyCount int `json:"dependencyCount"`
	DependentCount  int `json:"dependentCount"`
	TotalLines      int `json:"totalLines"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed module dependency: From imports from To.
type Edge struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// EdgeID returns the canonical ID of the edge from -> to.
func EdgeID(from, to string) string { return from + EdgeSeparator + to }

// =============================================================================
// Module -> View Conversion
// =============================================================================

// FromModules flattens finalized modules into a View. Dependencies that name
// a module outside mods are still emitted as edges.
func FromModules(mods []*module.Module) View {
	out := View{
		Nodes: make([]Node, 0, len(mods)),
		Edges: []Edge{},
	}
	for _, m := range mods {
		out.Nodes = append(out.Nodes, Node{
			ID:    m.ID,
			Label: m.Name,
			Metadata: NodeMetadata{
				FileCount:       m.Metrics.FileCount,
				DependencyCount: m.Metrics.DependencyCount,
				DependentCount:  m.Metrics.DependentCount,
				TotalLines:      m.Metrics.TotalLines,
			},
		})
		for _, dep := range m.Dependencies() {
			out.Edges = append(out.Edges, Edge{ID: EdgeID(m.ID, dep), From: m.ID, To: dep})
		}
	}
	return out
}

// Node returns the node with the given ID.
func (v View) Node(id string) (Node, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// UnmarshalView deserializes JSON bytes to a View.
func UnmarshalView(data []byte) (View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, err
	}
	return v, nil
}
