package module

import (
	"testing"

	"github.com/matzehuels/modgraph/pkg/cpg"
)

// graphBuilder assembles small property graphs for tests.
type graphBuilder struct {
	t *testing.T
	g *cpg.Memory
}

func newGraph(t *testing.T) *graphBuilder {
	t.Helper()
	return &graphBuilder{t: t, g: cpg.NewMemory()}
}

func (b *graphBuilder) file(id, path string, labels ...string) *graphBuilder {
	b.t.Helper()
	b.node(cpg.Node{
		ID:       id,
		Type:     cpg.NodeTypeFile,
		Domain:   cpg.DomainCode,
		Labels:   labels,
		Metadata: cpg.Metadata{FilePath: path},
	})
	return b
}

func (b *graphBuilder) node(n cpg.Node) *graphBuilder {
	b.t.Helper()
	if err := b.g.AddNode(n); err != nil {
		b.t.Fatalf("AddNode(%q): %v", n.ID, err)
	}
	return b
}

func (b *graphBuilder) imports(from, to string) *graphBuilder {
	b.t.Helper()
	if err := b.g.AddEdge(cpg.Edge{Type: cpg.EdgeTypeImports, FromID: from, ToID: to}); err != nil {
		b.t.Fatalf("AddEdge(%q -> %q): %v", from, to, err)
	}
	return b
}

// build aggregates by directory under /src and calculates dependencies.
func (b *graphBuilder) build() ([]*Module, Stats) {
	b.t.Helper()
	mods, err := Aggregate(b.g, "/src", DefaultConfig())
	if err != nil {
		b.t.Fatalf("Aggregate() error: %v", err)
	}
	return mods, NewCalculator().Calculate(mods, b.g)
}

func byPath(t *testing.T, mods []*Module, p string) *Module {
	t.Helper()
	for _, m := range mods {
		if m.Path == p {
			return m
		}
	}
	t.Fatalf("no module with path %q", p)
	return nil
}

// checkInvariants verifies counts match sets and no module relates to itself.
func checkInvariants(t *testing.T, mods []*Module) {
	t.Helper()
	for _, m := range mods {
		if m.Metrics.DependencyCount != len(m.Dependencies()) {
			t.Errorf("%s: DependencyCount = %d, len(Dependencies) = %d", m.ID, m.Metrics.DependencyCount, len(m.Dependencies()))
		}
		if m.Metrics.DependentCount != len(m.Dependents()) {
			t.Errorf("%s: DependentCount = %d, len(Dependents) = %d", m.ID, m.Metrics.DependentCount, len(m.Dependents()))
		}
		if m.DependsOn(m.ID) || m.DependedOnBy(m.ID) {
			t.Errorf("%s relates to itself", m.ID)
		}
	}
}
