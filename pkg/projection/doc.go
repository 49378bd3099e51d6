// Package projection answers structural questions about a finalized module
// graph.
//
// A [Projection] wraps the modules produced by module.Aggregator and
// module.Calculator and never changes them:
//
//   - lookups: [Projection.Module], [Projection.Modules], [Projection.ModulesByPath]
//   - shape: [Projection.RootModules] (nothing imports them) and
//     [Projection.LeafModules] (they import nothing)
//   - reachability: [Projection.TransitiveDependencies] and
//     [Projection.TransitiveDependents]
//   - cycles: [Projection.Cycles] and [Projection.StronglyConnected]
//   - numbers: [Projection.Metrics] and [Projection.Coupling]
//   - export: [Projection.View]
//
// # Cycle Reports
//
// Cycles follows a plain depth-first search with a visited set, an
// on-stack set and the current path. Each back edge reports the path from
// its target to the current module. A cycle reachable along several paths
// is reported several times, and Metrics.CyclicDependencies counts the
// reports, not distinct cycles. StronglyConnected groups the same modules
// once each using Tarjan's algorithm.
package projection
