package module

import (
	"path"
	"strings"
)

// IDPrefix starts every module ID.
const IDPrefix = "module:"

// Metrics are the per-module counters.
//
// FileCount and TotalLines are set by aggregation. DependencyCount and
// DependentCount are set by [Calculator.Calculate] and always equal the
// sizes of the module's relationship sets afterwards.
type Metrics struct {
	FileCount       int `json:"fileCount"`
	TotalLines      int `json:"totalLines"`
	DependencyCount int `json:"dependencyCount"`
	DependentCount  int `json:"dependentCount"`
}

// Module is a named group of source files sharing a module path.
//
// Modules are created by [Aggregator.Aggregate] and completed by
// [Calculator.Calculate]. After that they are read-only: the relationship
// sets are unexported and only reachable through copying accessors.
type Module struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Files   []string `json:"files"` // file node IDs in first-seen order
	Metrics Metrics  `json:"metrics"`

	dependencies IDSet
	dependents   IDSet
}

// Dependencies returns the IDs of modules this module imports from, in the
// order they were first discovered.
func (m *Module) Dependencies() []string { return m.dependencies.Items() }

// Dependents returns the IDs of modules importing from this module.
func (m *Module) Dependents() []string { return m.dependents.Items() }

// DependsOn reports whether id is a direct dependency of m.
func (m *Module) DependsOn(id string) bool { return m.dependencies.Has(id) }

// DependedOnBy reports whether id is a direct dependent of m.
func (m *Module) DependedOnBy(id string) bool { return m.dependents.Has(id) }

// link records that m depends on target. Both sides are always written
// together; self-links are refused.
func (m *Module) link(target *Module) bool {
	if m.ID == target.ID {
		return false
	}
	added := m.dependencies.Add(target.ID)
	target.dependents.Add(m.ID)
	return added
}

func (m *Module) syncCounts() {
	m.Metrics.DependencyCount = m.dependencies.Len()
	m.Metrics.DependentCount = m.dependents.Len()
}

var idEscaper = strings.NewReplacer(
	"-", "--",
	"/", "-s",
	`\`, "-b",
	":", "-c",
	" ", "-w",
)

// IDFor returns the module ID for a normalized module path.
// Distinct paths always yield distinct IDs: every escape sequence starts
// with '-' and literal dashes are doubled.
func IDFor(modulePath string) string {
	return IDPrefix + idEscaper.Replace(modulePath)
}

func newModule(modulePath string) *Module {
	return &Module{
		ID:   IDFor(modulePath),
		Name: path.Base(modulePath),
		Path: modulePath,
	}
}
