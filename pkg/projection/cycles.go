package projection

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/modgraph/pkg/module"
)

// frame is one entry of the explicit DFS stack: a module position and the
// index of the next dependency to explore.
type frame struct {
	mod  int
	next int
}

// Cycles reports circular dependencies found by a depth-first search over
// the dependency relation.
//
// Modules are used as entry points in projection order. Whenever a
// dependency is already on the search stack, the stack segment starting at
// that dependency is reported as a cycle. The same cycle can therefore be
// reported more than once, and reported cycles depend on traversal order;
// callers counting cycles rely on this. Use [Projection.StronglyConnected]
// for a deduplicated view.
//
// The search is iterative, so deep dependency chains cannot overflow the
// goroutine stack.
func (p *Projection) Cycles() [][]*module.Module {
	adj := p.adjacency()
	n := len(p.modules)

	visited := make([]bool, n)
	depth := make([]int, n) // 1-based stack position, 0 when not on the stack
	stack := make([]frame, 0, 16)
	cycles := [][]*module.Module{}

	for start := range n {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack = append(stack[:0], frame{mod: start})
		depth[start] = 1

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(adj[top.mod]) {
				depth[top.mod] = 0
				stack = stack[:len(stack)-1]
				continue
			}
			dep := adj[top.mod][top.next]
			top.next++

			switch {
			case !visited[dep]:
				visited[dep] = true
				stack = append(stack, frame{mod: dep})
				depth[dep] = len(stack)
			case depth[dep] > 0:
				cycles = append(cycles, p.framesToModules(stack[depth[dep]-1:]))
			}
		}
	}
	return cycles
}

func (p *Projection) framesToModules(frames []frame) []*module.Module {
	out := make([]*module.Module, len(frames))
	for i, f := range frames {
		out[i] = p.modules[f.mod]
	}
	return out
}

// StronglyConnected returns the groups of modules that all reach each
// other, each group in projection order and groups ordered by their first
// member. Modules outside any cycle are not reported.
func (p *Projection) StronglyConnected() [][]*module.Module {
	g := simple.NewDirectedGraph()
	for i := range p.modules {
		g.AddNode(simple.Node(int64(i)))
	}
	for i, deps := range p.adjacency() {
		for _, j := range deps {
			if i != j {
				g.SetEdge(simple.Edge{F: simple.Node(int64(i)), T: simple.Node(int64(j))})
			}
		}
	}

	var groups [][]int
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		idx := make([]int, len(scc))
		for i, node := range scc {
			idx[i] = int(node.ID())
		}
		slices.Sort(idx)
		groups = append(groups, idx)
	}
	slices.SortFunc(groups, func(a, b []int) int { return a[0] - b[0] })

	out := make([][]*module.Module, len(groups))
	for i, grp := range groups {
		out[i] = make([]*module.Module, len(grp))
		for j, pos := range grp {
			out[i][j] = p.modules[pos]
		}
	}
	return out
}

// HasCycles reports whether any module reaches itself.
func (p *Projection) HasCycles() bool {
	return len(p.StronglyConnected()) > 0
}
