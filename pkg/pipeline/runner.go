package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/modgraph/pkg/cpg"
	"github.com/matzehuels/modgraph/pkg/module"
	"github.com/matzehuels/modgraph/pkg/observability"
	"github.com/matzehuels/modgraph/pkg/projection"
)

// Runner executes the pipeline with logging and observability hooks.
//
// The Runner is stateless except for its logger and hooks - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, provided the hooks are safe for
// concurrent use.
type Runner struct {
	Logger *log.Logger
	Hooks  observability.PipelineHooks
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.Logger = l }
}

// WithHooks sets the hooks that receive stage events.
func WithHooks(h observability.PipelineHooks) RunnerOption {
	return func(r *Runner) { r.Hooks = h }
}

// NewRunner creates a runner. Without options it logs nowhere and reports
// to no-op hooks.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	r.Hooks = observability.OrNoop(r.Hooks)
	return r
}

// Run loads the property graph at path and executes the pipeline on it.
func (r *Runner) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	r.Hooks.OnStageStart(ctx, observability.StageLoad)
	start := time.Now()
	g, err := cpg.ImportJSON(path)
	loadTime := time.Since(start)
	r.Hooks.OnStageComplete(ctx, observability.StageLoad, loadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	logger.Info("loaded property graph",
		"path", path,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", loadTime)

	result, err := r.Execute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Execute runs aggregate → calculate → project on g.
//
// The context is checked between stages; the stages themselves are
// synchronous and bounded by the size of g.
func (r *Runner) Execute(ctx context.Context, g cpg.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	runID := uuid.NewString()
	logger := r.logger(opts).With("run", runID[:8])

	nodes, edges := g.Nodes(), g.Edges()
	result := &Result{
		RunID: runID,
		Stats: Stats{NodeCount: len(nodes), EdgeCount: len(edges)},
	}

	// Stage 1: Aggregate
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Hooks.OnStageStart(ctx, observability.StageAggregate)
	start := time.Now()
	mods, err := module.NewAggregator(module.WithLogger(logger)).
		Aggregate(g, opts.Root, opts.Aggregation)
	result.Stats.AggregateTime = time.Since(start)
	r.Hooks.OnStageComplete(ctx, observability.StageAggregate, result.Stats.AggregateTime, err)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	result.Modules = mods

	logger.Info("aggregated modules",
		"level", opts.Aggregation.Level,
		"modules", len(mods),
		"duration", result.Stats.AggregateTime)

	// Stage 2: Calculate
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Hooks.OnStageStart(ctx, observability.StageCalculate)
	start = time.Now()
	calc := module.NewCalculator(module.WithLogger(logger))
	stats := calc.Calculate(mods, g)
	result.Calculation = stats
	result.Stats.CalculateTime = time.Since(start)
	r.Hooks.OnStageComplete(ctx, observability.StageCalculate, result.Stats.CalculateTime, nil)
	r.Hooks.OnEdgesProcessed(ctx, observability.EdgeCounts{
		Imports:     stats.ImportEdges,
		Resolved:    stats.Resolved,
		Unresolved:  stats.Unresolved,
		SameModule:  stats.SameModule,
		CrossModule: stats.CrossModule,
		Ungrouped:   stats.Ungrouped,
	})

	logger.Info("calculated dependencies",
		"imports", stats.ImportEdges,
		"resolved", stats.Resolved,
		"unresolved", stats.Unresolved,
		"duration", result.Stats.CalculateTime)

	// Stage 3: Project
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Hooks.OnStageStart(ctx, observability.StageProject)
	start = time.Now()
	p := projection.New(mods)
	metrics := p.Metrics()
	result.Projection = p
	result.Metrics = metrics
	result.Stats.ProjectTime = time.Since(start)
	r.Hooks.OnStageComplete(ctx, observability.StageProject, result.Stats.ProjectTime, nil)
	r.Hooks.OnGraphBuilt(ctx, observability.GraphSummary{
		Modules:      metrics.TotalModules,
		Files:        metrics.TotalFiles,
		Dependencies: metrics.TotalDependencies,
		Cycles:       metrics.CyclicDependencies,
	})

	logger.Info("built projection",
		"dependencies", metrics.TotalDependencies,
		"cycles", metrics.CyclicDependencies,
		"duration", result.Stats.ProjectTime)

	return result, nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
