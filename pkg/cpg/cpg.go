package cpg

import (
	"slices"
	"strings"
)

// Well-known values for [Node.Domain] and [Node.Labels].
const (
	// DomainCode marks nodes extracted from source code, either as the
	// node's Domain or as one of its labels. Only code files take part in
	// module aggregation.
	DomainCode = "code"

	// LabelTest marks test artifacts (spec files, fixtures, test helpers).
	LabelTest = "test"
)

// NodeType classifies a property-graph node.
type NodeType int

const (
	NodeTypeUnknown NodeType = iota
	NodeTypeFile
	NodeTypeDirectory
	NodeTypeModule
	NodeTypeClass
	NodeTypeFunction
	NodeTypeMethod
	NodeTypeVariable
)

var nodeTypeNames = map[NodeType]string{
	NodeTypeUnknown:   "UNKNOWN",
	NodeTypeFile:      "FILE",
	NodeTypeDirectory: "DIRECTORY",
	NodeTypeModule:    "MODULE",
	NodeTypeClass:     "CLASS",
	NodeTypeFunction:  "FUNCTION",
	NodeTypeMethod:    "METHOD",
	NodeTypeVariable:  "VARIABLE",
}

// String returns the upper-case name of the node type.
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseNodeType maps a name (case-insensitive) to a NodeType.
// Unrecognized names map to NodeTypeUnknown.
func ParseNodeType(s string) NodeType {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range nodeTypeNames {
		if name == s {
			return t
		}
	}
	return NodeTypeUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (t NodeType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *NodeType) UnmarshalText(b []byte) error {
	*t = ParseNodeType(string(b))
	return nil
}

// EdgeType classifies a property-graph edge.
type EdgeType int

const (
	EdgeTypeUnknown EdgeType = iota
	EdgeTypeImports
	EdgeTypeCalls
	EdgeTypeContains
	EdgeTypeDefines
	EdgeTypeReferences
	EdgeTypeExtends
	EdgeTypeImplements
)

var edgeTypeNames = map[EdgeType]string{
	EdgeTypeUnknown:    "UNKNOWN",
	EdgeTypeImports:    "IMPORTS",
	EdgeTypeCalls:      "CALLS",
	EdgeTypeContains:   "CONTAINS",
	EdgeTypeDefines:    "DEFINES",
	EdgeTypeReferences: "REFERENCES",
	EdgeTypeExtends:    "EXTENDS",
	EdgeTypeImplements: "IMPLEMENTS",
}

// String returns the upper-case name of the edge type.
func (t EdgeType) String() string {
	if name, ok := edgeTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseEdgeType maps a name (case-insensitive) to an EdgeType.
// Unrecognized names map to EdgeTypeUnknown.
func ParseEdgeType(s string) EdgeType {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range edgeTypeNames {
		if name == s {
			return t
		}
	}
	return EdgeTypeUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (t EdgeType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EdgeType) UnmarshalText(b []byte) error {
	*t = ParseEdgeType(string(b))
	return nil
}

// Metadata carries the source location of a node.
// Line numbers are optional; nil means "not recorded".
type Metadata struct {
	FilePath  string `json:"filePath,omitempty"`
	StartLine *int   `json:"startLine,omitempty"`
	EndLine   *int   `json:"endLine,omitempty"`
}

// Lines returns max(0, EndLine-StartLine), or 0 when either bound is missing.
func (m Metadata) Lines() int {
	if m.StartLine == nil || m.EndLine == nil {
		return 0
	}
	return max(0, *m.EndLine-*m.StartLine)
}

// Node is a code element in the property graph.
//
// The zero value is not usable - ID must be set before adding to a graph.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Domain   string   `json:"domain,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Metadata Metadata `json:"metadata"`
}

// HasLabel reports whether the node carries label l.
func (n Node) HasLabel(l string) bool { return slices.Contains(n.Labels, l) }

// IsFile reports whether the node is a FILE node.
func (n Node) IsFile() bool { return n.Type == NodeTypeFile }

// IsCode reports whether the node comes from source code: its Domain is
// DomainCode or it carries the DomainCode label.
func (n Node) IsCode() bool { return n.Domain == DomainCode || n.HasLabel(DomainCode) }

// IsTest reports whether the node is labeled as a test artifact.
func (n Node) IsTest() bool { return n.HasLabel(LabelTest) }

// Edge is a directed relationship between two nodes.
//
// ToID is not guaranteed to name a node: for IMPORTS edges produced from
// unresolved import statements it holds the raw import specifier
// (e.g. "./util" or "lodash").
type Edge struct {
	ID     string   `json:"id,omitempty"`
	Type   EdgeType `json:"type"`
	FromID string   `json:"from"`
	ToID   string   `json:"to"`
}

// IsImport reports whether the edge is an IMPORTS edge.
func (e Edge) IsImport() bool { return e.Type == EdgeTypeImports }

// Graph is the read-only view of a property graph consumed by modgraph.
// Implementations must return nodes and edges in a stable order.
type Graph interface {
	Nodes() []Node
	Edges() []Edge
}

// Line returns a pointer to n, for populating optional line metadata.
func Line(n int) *int { return &n }
