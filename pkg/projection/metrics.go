package projection

// Metrics summarizes a projection.
type Metrics struct {
	TotalModules                 int     `json:"totalModules"`
	TotalFiles                   int     `json:"totalFiles"`
	TotalDependencies            int     `json:"totalDependencies"`
	AverageDependenciesPerModule float64 `json:"averageDependenciesPerModule"`
	MaxDependencies              int     `json:"maxDependencies"`
	CyclicDependencies           int     `json:"cyclicDependencies"` // len(Cycles())
}

// Metrics computes aggregate counts. CyclicDependencies counts every cycle
// report of [Projection.Cycles], repeats included.
func (p *Projection) Metrics() Metrics {
	m := Metrics{TotalModules: len(p.modules)}
	for _, mod := range p.modules {
		m.TotalFiles += mod.Metrics.FileCount
		m.TotalDependencies += mod.Metrics.DependencyCount
		m.MaxDependencies = max(m.MaxDependencies, mod.Metrics.DependencyCount)
	}
	if m.TotalModules > 0 {
		m.AverageDependenciesPerModule = float64(m.TotalDependencies) / float64(m.TotalModules)
	}
	m.CyclicDependencies = len(p.Cycles())
	return m
}

// Coupling holds Robert Martin's package coupling metrics for one module.
type Coupling struct {
	Afferent    int     `json:"afferent"`    // Ca: modules depending on this one
	Efferent    int     `json:"efferent"`    // Ce: modules this one depends on
	Instability float64 `json:"instability"` // Ce / (Ca + Ce), 0 when isolated
}

// Coupling returns the coupling metrics of module id.
func (p *Projection) Coupling(id string) (Coupling, bool) {
	m, ok := p.byID[id]
	if !ok {
		return Coupling{}, false
	}
	c := Coupling{
		Afferent: m.Metrics.DependentCount,
		Efferent: m.Metrics.DependencyCount,
	}
	if total := c.Afferent + c.Efferent; total > 0 {
		c.Instability = float64(c.Efferent) / float64(total)
	}
	return c, true
}
