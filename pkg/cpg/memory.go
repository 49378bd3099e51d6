package cpg

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Memory.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Memory.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidEdgeSource is returned by [Memory.AddEdge] when the edge has
	// no source node ID.
	ErrInvalidEdgeSource = errors.New("edge source must not be empty")
)

// Memory is an in-memory property graph.
// Nodes and edges are returned in insertion order.
//
// The zero value is not usable - use NewMemory.
// Memory is not safe for concurrent use without external synchronization.
type Memory struct {
	nodes []Node
	index map[string]int
	edges []Edge
}

// NewMemory creates an empty graph.
func NewMemory() *Memory {
	return &Memory{index: make(map[string]int)}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (m *Memory) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := m.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	n.Labels = slices.Clone(n.Labels)
	m.index[n.ID] = len(m.nodes)
	m.nodes = append(m.nodes, n)
	return nil
}

// AddEdge adds a directed edge.
// The target is deliberately not checked: IMPORTS edges may point at raw
// import specifiers rather than node IDs. Returns ErrInvalidEdgeSource if
// FromID is empty.
func (m *Memory) AddEdge(e Edge) error {
	if e.FromID == "" {
		return ErrInvalidEdgeSource
	}
	m.edges = append(m.edges, e)
	return nil
}

// Node returns the node with the given ID and true, or the zero Node and
// false if not found.
func (m *Memory) Node(id string) (Node, bool) {
	i, ok := m.index[id]
	if !ok {
		return Node{}, false
	}
	return m.nodes[i], true
}

// Nodes returns a copy of all nodes in insertion order.
func (m *Memory) Nodes() []Node { return slices.Clone(m.nodes) }

// Edges returns a copy of all edges in insertion order.
func (m *Memory) Edges() []Edge { return slices.Clone(m.edges) }

// NodeCount returns the number of nodes in the graph.
func (m *Memory) NodeCount() int { return len(m.nodes) }

// EdgeCount returns the number of edges in the graph.
func (m *Memory) EdgeCount() int { return len(m.edges) }

var _ Graph = (*Memory)(nil)
