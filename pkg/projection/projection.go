package projection

import (
	"strings"

	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/module"
)

// Projection is a read-only view over finalized modules.
//
// All queries are pure. A Projection never modifies its modules, so several
// projections may share nothing and be used from different goroutines.
type Projection struct {
	modules []*module.Module
	byID    map[string]*module.Module
	pos     map[string]int
}

// New builds a projection over modules that have been through
// [module.Calculator.Calculate]. The slice is copied; the modules are not.
func New(modules []*module.Module) *Projection {
	p := &Projection{
		modules: make([]*module.Module, 0, len(modules)),
		byID:    make(map[string]*module.Module, len(modules)),
		pos:     make(map[string]int, len(modules)),
	}
	for _, m := range modules {
		if _, dup := p.byID[m.ID]; dup {
			continue
		}
		p.byID[m.ID] = m
		p.pos[m.ID] = len(p.modules)
		p.modules = append(p.modules, m)
	}
	return p
}

// Module returns the module with the given ID.
func (p *Projection) Module(id string) (*module.Module, bool) {
	m, ok := p.byID[id]
	return m, ok
}

// Modules returns all modules in aggregation order.
func (p *Projection) Modules() []*module.Module {
	out := make([]*module.Module, len(p.modules))
	copy(out, p.modules)
	return out
}

// Len returns the number of modules.
func (p *Projection) Len() int { return len(p.modules) }

// ModulesByPath returns the modules whose path starts with prefix.
func (p *Projection) ModulesByPath(prefix string) []*module.Module {
	return p.filter(func(m *module.Module) bool { return strings.HasPrefix(m.Path, prefix) })
}

// RootModules returns modules that no other module imports from.
func (p *Projection) RootModules() []*module.Module {
	return p.filter(func(m *module.Module) bool { return m.Metrics.DependentCount == 0 })
}

// LeafModules returns modules that import from no other module.
func (p *Projection) LeafModules() []*module.Module {
	return p.filter(func(m *module.Module) bool { return m.Metrics.DependencyCount == 0 })
}

// TransitiveDependencies returns every module reachable from id, in
// breadth-first order. Unknown IDs yield an empty result.
func (p *Projection) TransitiveDependencies(id string) []string {
	return module.Closure(id, p.byID, false)
}

// TransitiveDependents returns every module that can reach id.
func (p *Projection) TransitiveDependents(id string) []string {
	return module.Closure(id, p.byID, true)
}

// View flattens the projection for layout and export.
func (p *Projection) View() graph.View {
	return graph.FromModules(p.modules)
}

func (p *Projection) filter(keep func(*module.Module) bool) []*module.Module {
	out := []*module.Module{}
	for _, m := range p.modules {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// lookup maps IDs back to modules, skipping unknown IDs.
func (p *Projection) lookup(ids []string) []*module.Module {
	out := make([]*module.Module, 0, len(ids))
	for _, id := range ids {
		if m, ok := p.byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// adjacency returns dependency edges as module positions. Dependencies on
// modules outside the projection are dropped.
func (p *Projection) adjacency() [][]int {
	adj := make([][]int, len(p.modules))
	for i, m := range p.modules {
		for _, dep := range m.Dependencies() {
			if j, ok := p.pos[dep]; ok {
				adj[i] = append(adj[i], j)
			}
		}
	}
	return adj
}
