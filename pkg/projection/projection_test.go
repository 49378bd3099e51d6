package projection

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/modgraph/pkg/cpg"
	"github.com/matzehuels/modgraph/pkg/module"
)

// build creates one module per name (file /src/<name>/index.ts, node ID
// <name>) and one import per "from>to" edge, then calculates dependencies.
func build(t *testing.T, names []string, edges ...string) *Projection {
	t.Helper()
	g := cpg.NewMemory()
	for _, n := range names {
		err := g.AddNode(cpg.Node{
			ID:       n,
			Type:     cpg.NodeTypeFile,
			Domain:   cpg.DomainCode,
			Metadata: cpg.Metadata{FilePath: "/src/" + n + "/index.ts", StartLine: cpg.Line(0), EndLine: cpg.Line(5)},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		from, to, ok := strings.Cut(e, ">")
		if !ok {
			t.Fatalf("bad edge %q", e)
		}
		if err := g.AddEdge(cpg.Edge{Type: cpg.EdgeTypeImports, FromID: from, ToID: "../" + to}); err != nil {
			t.Fatal(err)
		}
	}
	mods, err := module.Aggregate(g, "/src", module.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	module.NewCalculator().Calculate(mods, g)
	return New(mods)
}

func id(name string) string { return module.IDFor("/src/" + name) }

func names(mods []*module.Module) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.Name
	}
	return out
}

func idsToNames(ids []string) []string {
	out := make([]string, len(ids))
	for i, s := range ids {
		out[i] = strings.TrimPrefix(s, id(""))
	}
	return out
}

func TestChain(t *testing.T) {
	p := build(t, []string{"a", "b", "c"}, "a>b", "b>c")

	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	a, _ := p.Module(id("a"))
	if got := a.Dependencies(); !slices.Equal(got, []string{id("b")}) {
		t.Errorf("a.Dependencies() = %v", got)
	}
	if got := p.Cycles(); len(got) != 0 {
		t.Errorf("Cycles() = %v, want none", got)
	}
	if got := names(p.RootModules()); !slices.Equal(got, []string{"a"}) {
		t.Errorf("RootModules() = %v, want [a]", got)
	}
	if got := names(p.LeafModules()); !slices.Equal(got, []string{"c"}) {
		t.Errorf("LeafModules() = %v, want [c]", got)
	}
	if got := idsToNames(p.TransitiveDependencies(id("a"))); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("TransitiveDependencies(a) = %v, want [b c]", got)
	}
	if got := idsToNames(p.TransitiveDependents(id("c"))); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("TransitiveDependents(c) = %v, want [b a]", got)
	}
}

func TestCycleWithBranch(t *testing.T) {
	p := build(t, []string{"a", "b", "c"}, "a>b", "a>c", "b>a")

	cycles := p.Cycles()
	if len(cycles) != 1 {
		t.Fatalf("len(Cycles()) = %d, want 1", len(cycles))
	}
	if got := names(cycles[0]); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Cycles()[0] = %v, want [a b]", got)
	}

	c, _ := p.Module(id("c"))
	if c.Metrics.DependencyCount != 0 || c.Metrics.DependentCount != 1 || !c.DependedOnBy(id("a")) {
		t.Errorf("c = %+v dependents %v, want 0 deps and dependent a", c.Metrics, c.Dependents())
	}
}

func TestMutualTerminates(t *testing.T) {
	p := build(t, []string{"a", "b"}, "a>b", "b>a")

	if got := idsToNames(p.TransitiveDependencies(id("a"))); !slices.Equal(got, []string{"b"}) {
		t.Errorf("TransitiveDependencies(a) = %v, want [b]", got)
	}
	if got := idsToNames(p.TransitiveDependents(id("a"))); !slices.Equal(got, []string{"b"}) {
		t.Errorf("TransitiveDependents(a) = %v, want [b]", got)
	}
	if got := len(p.Cycles()); got != 1 {
		t.Errorf("len(Cycles()) = %d, want 1", got)
	}
	if got := p.RootModules(); len(got) != 0 {
		t.Errorf("RootModules() = %v, want none", names(got))
	}
}

// Every back edge is reported, so overlapping cycles yield several reports.
func TestCyclesReportEveryBackEdge(t *testing.T) {
	p := build(t, []string{"a", "b", "c"}, "a>b", "b>c", "c>a", "c>b")

	var got []string
	for _, c := range p.Cycles() {
		got = append(got, strings.Join(names(c), ","))
	}
	want := []string{"a,b,c", "b,c"}
	if !slices.Equal(got, want) {
		t.Errorf("Cycles() = %v, want %v", got, want)
	}
	if m := p.Metrics(); m.CyclicDependencies != 2 {
		t.Errorf("CyclicDependencies = %d, want 2", m.CyclicDependencies)
	}

	scc := p.StronglyConnected()
	if len(scc) != 1 || !slices.Equal(names(scc[0]), []string{"a", "b", "c"}) {
		t.Errorf("StronglyConnected() = %v, want one group [a b c]", scc)
	}
}

// Reports depend on which module the search enters first.
func TestCyclesFollowModuleOrder(t *testing.T) {
	p := build(t, []string{"b", "a"}, "a>b", "b>a")
	cycles := p.Cycles()
	if len(cycles) != 1 || !slices.Equal(names(cycles[0]), []string{"b", "a"}) {
		t.Errorf("Cycles() = %v, want [[b a]]", cycles)
	}
}

func TestCyclesDeepChain(t *testing.T) {
	const n = 5000
	mods := make([]string, n)
	edges := make([]string, n)
	for i := range n {
		mods[i] = fmt.Sprintf("m%04d", i)
	}
	for i := range n {
		edges[i] = mods[i] + ">" + mods[(i+1)%n]
	}
	p := build(t, mods, edges...)

	cycles := p.Cycles()
	if len(cycles) != 1 || len(cycles[0]) != n {
		t.Fatalf("Cycles() = %d reports, want 1 of length %d", len(cycles), n)
	}
	if got := len(p.TransitiveDependencies(id(mods[0]))); got != n-1 {
		t.Errorf("len(TransitiveDependencies) = %d, want %d", got, n-1)
	}
}

func TestStronglyConnectedGroups(t *testing.T) {
	p := build(t, []string{"a", "b", "c", "d", "e"},
		"a>b", "b>a", "b>c", "c>d", "d>e", "e>d")

	scc := p.StronglyConnected()
	if len(scc) != 2 {
		t.Fatalf("len(StronglyConnected()) = %d, want 2", len(scc))
	}
	if !slices.Equal(names(scc[0]), []string{"a", "b"}) || !slices.Equal(names(scc[1]), []string{"d", "e"}) {
		t.Errorf("StronglyConnected() = [%v %v], want [[a b] [d e]]", names(scc[0]), names(scc[1]))
	}
	if !p.HasCycles() {
		t.Error("HasCycles() = false, want true")
	}
	if build(t, []string{"x", "y"}, "x>y").HasCycles() {
		t.Error("HasCycles() on acyclic graph = true")
	}
}

func TestLookups(t *testing.T) {
	p := build(t, []string{"app", "apple", "core"}, "app>core")

	if _, ok := p.Module("module:missing"); ok {
		t.Error("Module(missing) found")
	}
	if got := names(p.ModulesByPath("/src/app")); !slices.Equal(got, []string{"app", "apple"}) {
		t.Errorf("ModulesByPath(/src/app) = %v, want [app apple]", got)
	}
	if got := p.ModulesByPath("/nowhere"); len(got) != 0 {
		t.Errorf("ModulesByPath(/nowhere) = %v, want empty", names(got))
	}
	if got := p.TransitiveDependencies("module:missing"); len(got) != 0 {
		t.Errorf("TransitiveDependencies(missing) = %v, want empty", got)
	}

	mods := p.Modules()
	mods[0] = nil
	if p.Modules()[0] == nil {
		t.Error("mutating Modules() result changed the projection")
	}
}

func TestMetrics(t *testing.T) {
	p := build(t, []string{"a", "b", "c", "d"}, "a>b", "a>c", "a>d", "b>c")

	want := Metrics{
		TotalModules:                 4,
		TotalFiles:                   4,
		TotalDependencies:            4,
		AverageDependenciesPerModule: 1,
		MaxDependencies:              3,
		CyclicDependencies:           0,
	}
	if got := p.Metrics(); got != want {
		t.Errorf("Metrics() = %+v, want %+v", got, want)
	}
}

func TestMetricsEmpty(t *testing.T) {
	p := New(nil)
	if got := p.Metrics(); got != (Metrics{}) {
		t.Errorf("Metrics() = %+v, want zero", got)
	}
	if got := p.Cycles(); got == nil || len(got) != 0 {
		t.Errorf("Cycles() = %v, want empty", got)
	}
	if v := p.View(); len(v.Nodes) != 0 || len(v.Edges) != 0 {
		t.Errorf("View() = %+v, want empty", v)
	}
}

func TestCoupling(t *testing.T) {
	p := build(t, []string{"a", "b", "c", "d"}, "a>b", "c>b", "b>d")

	tests := []struct {
		name string
		want Coupling
	}{
		{"a", Coupling{Afferent: 0, Efferent: 1, Instability: 1}},
		{"b", Coupling{Afferent: 2, Efferent: 1, Instability: 1.0 / 3}},
		{"d", Coupling{Afferent: 1, Efferent: 0, Instability: 0}},
	}
	for _, tt := range tests {
		got, ok := p.Coupling(id(tt.name))
		if !ok || got != tt.want {
			t.Errorf("Coupling(%s) = %+v, %v; want %+v", tt.name, got, ok, tt.want)
		}
	}
	if _, ok := p.Coupling("module:missing"); ok {
		t.Error("Coupling(missing) ok = true")
	}

	iso := build(t, []string{"x"})
	if got, _ := iso.Coupling(id("x")); got != (Coupling{}) {
		t.Errorf("Coupling(isolated) = %+v, want zero", got)
	}
}

func TestView(t *testing.T) {
	p := build(t, []string{"a", "b", "c"}, "a>b", "a>c", "b>c")
	v := p.View()

	if len(v.Nodes) != 3 || len(v.Edges) != 3 {
		t.Fatalf("View() = %d nodes / %d edges, want 3 / 3", len(v.Nodes), len(v.Edges))
	}
	if v.Edges[0].ID != id("a")+"->"+id("b") {
		t.Errorf("Edges[0].ID = %q", v.Edges[0].ID)
	}
	if v.Nodes[2].Metadata.DependentCount != 2 {
		t.Errorf("c DependentCount = %d, want 2", v.Nodes[2].Metadata.DependentCount)
	}
}

func TestInvariants(t *testing.T) {
	p := build(t, []string{"a", "b", "c"}, "a>b", "a>b", "b>a", "a>c", "c>c")
	for _, m := range p.Modules() {
		if m.DependsOn(m.ID) || m.DependedOnBy(m.ID) {
			t.Errorf("%s relates to itself", m.Name)
		}
		if m.Metrics.DependencyCount != len(m.Dependencies()) || m.Metrics.DependentCount != len(m.Dependents()) {
			t.Errorf("%s counts %+v do not match sets", m.Name, m.Metrics)
		}
	}
}
