// Package pkg provides the core libraries for modgraph.
//
// # Overview
//
// modgraph turns a code property graph (files, classes and functions with
// typed edges) into a module dependency graph: files are grouped into
// modules, import edges between files become dependency edges between
// modules, and the result is queried for cycles, roots, leaves and
// coupling metrics.
//
// # Architecture
//
// The typical data flow:
//
//	code property graph JSON
//	         ↓
//	    [cpg] package (load nodes and edges)
//	         ↓
//	    [module] package (aggregate files, calculate dependencies)
//	         ↓
//	    [projection] package (cycles, roots, leaves, metrics)
//	         ↓
//	    [graph] package (JSON view for visualization)
//
// [pipeline] runs these stages with logging and [observability] hooks;
// [config] resolves aggregation settings from files and the environment.
//
// # Quick Start
//
//	g, err := cpg.ImportJSON("graph.json")
//	if err != nil {
//	    return err
//	}
//	mods, err := module.Aggregate(g, "/repo", module.Config{Level: module.TopLevel{}})
//	if err != nil {
//	    return err
//	}
//	module.NewCalculator().Calculate(mods, g)
//
//	p := projection.New(mods)
//	for _, cycle := range p.Cycles() {
//	    fmt.Println(cycle)
//	}
package pkg
