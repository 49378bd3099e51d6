// Package module groups the files of a code property graph into modules and
// derives module-to-module dependencies.
//
// # Overview
//
// Building a module graph takes two passes over a [cpg.Graph]:
//
//  1. [Aggregator.Aggregate] selects eligible FILE nodes and groups them by
//     module path under a [Level]. Each module gets its files, a file count
//     and a line count.
//  2. [Calculator.Calculate] walks the IMPORTS edges, resolves raw import
//     specifiers to files, and links the owning modules. It then sets the
//     dependency and dependent counts.
//
// After Calculate returns the modules are read-only. The projection package
// builds queries (cycles, roots, leaves, metrics) on top of them.
//
// # Levels
//
// [Level] is a closed set of grouping policies:
//
//   - [Directory]: one module per containing directory
//   - [TopLevel]: one module per first two segments below the root path
//   - [Package]: one module per directory holding a marker such as
//     package.json, found by walking upward from the file
//   - [Custom]: a caller-supplied grouping function
//
// [ParseLevel] maps configuration strings to levels. An unknown or nil level
// fails with INVALID_LEVEL before any module exists.
//
// # Identity
//
// A module ID is "module:" followed by the module path with separators
// escaped (see [IDFor]). The same path always yields the same ID and
// different paths never collide.
//
// # Relationships
//
// Dependencies and dependents live in insertion-ordered [IDSet]s. They are
// written only as a matched pair, never contain the module itself, and
// collapse repeated imports between the same two modules into one edge.
//
// # Transitive Queries
//
// [TransitiveDependencies] and [TransitiveDependents] return the
// breadth-first closure of a module, excluding the module itself. A visited
// set makes them terminate on cyclic graphs; unknown IDs yield an empty
// result.
package module
