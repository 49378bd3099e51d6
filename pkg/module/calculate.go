package module

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/modgraph/pkg/cpg"
	"github.com/matzehuels/modgraph/pkg/module/resolve"
)

// Stats counts how import edges were handled by a calculation. The numbers
// are for reporting only; they never influence the result.
type Stats struct {
	TotalEdges  int `json:"totalEdges"`  // all edges in the graph
	ImportEdges int `json:"importEdges"` // IMPORTS edges
	Resolved    int `json:"resolved"`    // import targets mapped to a file
	Unresolved  int `json:"unresolved"`  // external or unmatched specifiers
	SameModule  int `json:"sameModule"`  // both ends in one module
	CrossModule int `json:"crossModule"` // edges that produced a dependency
	Ungrouped   int `json:"ungrouped"`   // source or target file in no module
}

// Calculator derives module-to-module dependencies from IMPORTS edges.
//
// Calculate is the only code that writes module relationship sets and
// dependency counts. A Calculator keeps the stats of its last run and is not
// safe for concurrent use; create one per projection build.
type Calculator struct {
	logger *log.Logger
	stats  Stats
}

// NewCalculator creates a calculator.
func NewCalculator(opts ...Option) *Calculator {
	o := buildOptions(opts)
	return &Calculator{logger: o.logger}
}

// Calculate links modules along the IMPORTS edges of g and sets the
// dependency counts of every module.
//
// An edge target is taken as a file node ID when it names a FILE node, and
// as an import specifier otherwise. Specifiers go through a [resolve.Resolver]
// built for this call. Unresolved targets, ungrouped files and edges inside
// one module are counted and skipped.
func (c *Calculator) Calculate(modules []*Module, g cpg.Graph) Stats {
	pathToFileID := make(map[string]string)
	fileIDToPath := make(map[string]string)
	for _, n := range g.Nodes() {
		if !n.IsFile() || n.Metadata.FilePath == "" {
			continue
		}
		p := resolve.Normalize(n.Metadata.FilePath)
		if _, dup := pathToFileID[p]; !dup {
			pathToFileID[p] = n.ID
		}
		fileIDToPath[n.ID] = p
	}

	fileIDToModule := make(map[string]*Module)
	for _, m := range modules {
		for _, f := range m.Files {
			fileIDToModule[f] = m
		}
	}

	r := resolve.New(pathToFileID)
	edges := g.Edges()
	stats := Stats{TotalEdges: len(edges)}

	for _, e := range edges {
		if !e.IsImport() {
			continue
		}
		stats.ImportEdges++

		src, ok := fileIDToModule[e.FromID]
		if !ok {
			stats.Ungrouped++
			continue
		}

		targetID := e.ToID
		if _, isFile := fileIDToPath[targetID]; !isFile {
			targetID, ok = r.Resolve(fileIDToPath[e.FromID], e.ToID)
			if !ok {
				stats.Unresolved++
				continue
			}
		}
		stats.Resolved++

		dst, ok := fileIDToModule[targetID]
		if !ok {
			stats.Ungrouped++
			continue
		}
		if src.ID == dst.ID {
			stats.SameModule++
			continue
		}
		src.link(dst)
		stats.CrossModule++
	}

	for _, m := range modules {
		m.syncCounts()
	}

	c.stats = stats
	c.logger.Debug("calculated dependencies",
		"modules", len(modules),
		"imports", stats.ImportEdges,
		"resolved", stats.Resolved,
		"unresolved", stats.Unresolved,
		"same_module", stats.SameModule,
		"cross_module", stats.CrossModule,
		"ungrouped", stats.Ungrouped)
	return stats
}

// Stats returns the counters of the last Calculate call.
func (c *Calculator) Stats() Stats { return c.stats }

// TransitiveDependencies returns every module reachable from id along
// dependency edges, in breadth-first discovery order, excluding id.
func (c *Calculator) TransitiveDependencies(id string, modules []*Module) []string {
	return TransitiveDependencies(id, modules)
}

// TransitiveDependents returns every module that reaches id along
// dependency edges, in breadth-first discovery order, excluding id.
func (c *Calculator) TransitiveDependents(id string, modules []*Module) []string {
	return TransitiveDependents(id, modules)
}

// TransitiveDependencies is the breadth-first closure of the dependency
// relation from id. Unknown IDs yield an empty result. Cycles terminate.
func TransitiveDependencies(id string, modules []*Module) []string {
	return closure(id, Index(modules), func(m *Module) *IDSet { return &m.dependencies })
}

// TransitiveDependents is the breadth-first closure of the dependent
// relation from id.
func TransitiveDependents(id string, modules []*Module) []string {
	return closure(id, Index(modules), func(m *Module) *IDSet { return &m.dependents })
}

// Index maps module IDs to modules. Later duplicates are ignored.
func Index(modules []*Module) map[string]*Module {
	byID := make(map[string]*Module, len(modules))
	for _, m := range modules {
		if _, ok := byID[m.ID]; !ok {
			byID[m.ID] = m
		}
	}
	return byID
}

// Closure walks dependencies, or dependents when reverse is set,
// breadth-first from id over an index built by [Index].
func Closure(id string, byID map[string]*Module, reverse bool) []string {
	if reverse {
		return closure(id, byID, func(m *Module) *IDSet { return &m.dependents })
	}
	return closure(id, byID, func(m *Module) *IDSet { return &m.dependencies })
}

func closure(id string, byID map[string]*Module, rel func(*Module) *IDSet) []string {
	if _, ok := byID[id]; !ok {
		return []string{}
	}
	out := []string{}
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := byID[queue[0]]
		queue = queue[1:]
		if cur == nil {
			continue
		}
		for next := range rel(cur).All() {
			if visited[next] {
				continue
			}
			visited[next] = true
			out = append(out, next)
			queue = append(queue, next)
		}
	}
	return out
}
