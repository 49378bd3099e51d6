// Package cpg defines the code property graph consumed by modgraph.
//
// # Overview
//
// A code property graph is produced by an external parser: nodes are code
// elements (files, classes, functions) with source-location metadata, and
// edges are typed relationships between them. modgraph only reads the graph;
// it never builds one from source.
//
// The types here mirror that contract:
//
//   - [Node]: id, [NodeType], source domain, labels, and [Metadata] carrying
//     the file path and optional start/end lines
//   - [Edge]: id, [EdgeType], FromID and ToID
//   - [Graph]: the read-only interface (Nodes, Edges) every consumer accepts
//
// # Unresolved Targets
//
// For IMPORTS edges the ToID field is frequently not a node ID at all but
// the raw import specifier written in the source ("./util", "../a/b.js",
// "lodash"). Consumers must not assume edges reference existing nodes, and
// [Memory.AddEdge] deliberately does not check the target.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "f1", "type": "FILE", "domain": "code", "labels": ["test"],
//	     "metadata": {"filePath": "/repo/src/a.ts", "startLine": 1, "endLine": 80}}
//	  ],
//	  "edges": [
//	    {"id": "e1", "type": "IMPORTS", "from": "f1", "to": "./b"}
//	  ]
//	}
//
// Use [ReadJSON] or [ImportJSON] to load it and [WriteJSON] to produce it.
// Type names are case-insensitive on input; unknown names decode to
// NodeTypeUnknown / EdgeTypeUnknown rather than failing.
package cpg
