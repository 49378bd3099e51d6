// Package graph provides the flattened module graph ("view") and its JSON
// serialization.
//
// This package is the boundary between modgraph's module model and layout
// or export tools, which only need nodes with display metrics and directed
// edges between them.
//
// # Core Types
//
//   - [View]: nodes and edges
//   - [Node]: a module with [NodeMetadata] (file, line and dependency counts)
//   - [Edge]: a dependency, with ID "from->to" (see [EdgeID])
//
// Use [FromModules] to build a View from finalized modules; the projection
// package does this in Projection.View.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "module:-ssrc-sapp", "label": "app",
//	     "metadata": {"fileCount": 3, "dependencyCount": 1, "dependentCount": 0, "totalLines": 120}}
//	  ],
//	  "edges": [
//	    {"id": "module:-ssrc-sapp->module:-ssrc-score", "from": "module:-ssrc-sapp", "to": "module:-ssrc-score"}
//	  ]
//	}
//
// Common operations:
//
//	graph.ExportJSON(view, "modules.json")   // View -> File
//	data, _ := graph.MarshalView(view)       // View -> []byte
//	v, _ := graph.ImportJSON("modules.json") // File -> View (validated)
//
// [ReadJSON] rejects views whose edges reference unknown nodes or loop on a
// single node, with the INVALID_GRAPH error code.
package graph
