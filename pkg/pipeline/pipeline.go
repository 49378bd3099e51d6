// Package pipeline runs the module graph build for modgraph.
//
// This package implements the complete aggregate → calculate → project
// pipeline used by the CLI. By centralizing this logic, every entry point
// logs, times and instruments the build the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Aggregate: group eligible files of a property graph into modules
//  2. Calculate: link modules along resolved import edges
//  3. Project: wrap the finalized modules for queries and metrics
//
// A fourth, optional stage loads the property graph from a JSON file.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(pipeline.WithLogger(logger))
//	opts := pipeline.Options{
//	    Root:        "/repo",
//	    Aggregation: module.Config{Level: module.TopLevel{}},
//	}
//	result, err := runner.Run(ctx, "graph.json", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cycles := result.Projection.Cycles()
//
// Use [Runner.Execute] when the property graph is already in memory.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/module"
	"github.com/matzehuels/modgraph/pkg/projection"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Root is the path modules are grouped relative to (TopLevel, Package).
	Root string `json:"root"`

	// Aggregation selects the level, test inclusion and exclude patterns.
	Aggregation module.Config `json:"-"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the root path and aggregation level.
// A missing level is an INVALID_LEVEL error, never silently defaulted.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateRootPath(o.Root); err != nil {
		return err
	}
	if o.Aggregation.Level == nil {
		return errors.New(errors.ErrCodeInvalidLevel, "aggregation level is not set")
	}
	if pkg, ok := o.Aggregation.Level.(module.Package); ok {
		for _, m := range pkg.Markers {
			if err := errors.ValidateMarkerFilename(m); err != nil {
				return err
			}
		}
	}
	for _, p := range o.Aggregation.ExcludePatterns {
		if err := errors.ValidateExcludePattern(p); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID correlates the log lines of one run.
	RunID string

	// Modules are the finalized modules in aggregation order.
	Modules []*module.Module

	// Projection answers queries over Modules.
	Projection *projection.Projection

	// Calculation counts how import edges were handled.
	Calculation module.Stats

	// Metrics summarizes the projection.
	Metrics projection.Metrics

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	LoadTime      time.Duration
	AggregateTime time.Duration
	CalculateTime time.Duration
	ProjectTime   time.Duration
}

// Total returns the summed duration of all stages.
func (s Stats) Total() time.Duration {
	return s.LoadTime + s.AggregateTime + s.CalculateTime + s.ProjectTime
}
