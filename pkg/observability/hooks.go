// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends to the core packages.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface per event category
//   - Provide a no-op default implementation
//   - Pass implementations to the component that emits events
//
// Hooks are never registered globally. A pipeline.Runner receives its hooks
// as an option, so two runners in one process can report to different
// backends, or to none.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewPrometheusHooks(reg)
//	runner := pipeline.NewRunner(pipeline.WithHooks(hooks))
//
// Components call hooks around each stage:
//
//	hooks.OnStageStart(ctx, observability.StageAggregate)
//	// ... group files ...
//	hooks.OnStageComplete(ctx, observability.StageAggregate, duration, err)
package observability

import (
	"context"
	"time"
)

// Stage names reported to hooks.
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageCalculate = "calculate"
	StageProject   = "project"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// EdgeCounts describes how import edges were handled by one calculation.
type EdgeCounts struct {
	Imports     int
	Resolved    int
	Unresolved  int
	SameModule  int
	CrossModule int
	Ungrouped   int
}

// GraphSummary describes a finished module graph.
type GraphSummary struct {
	Modules      int
	Files        int
	Dependencies int
	Cycles       int
}

// PipelineHooks receives events from the module graph pipeline.
type PipelineHooks interface {
	// Stage events
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)

	// Result events
	OnEdgesProcessed(ctx context.Context, counts EdgeCounts)
	OnGraphBuilt(ctx context.Context, summary GraphSummary)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnEdgesProcessed(context.Context, EdgeCounts)                  {}
func (NoopPipelineHooks) OnGraphBuilt(context.Context, GraphSummary)                    {}

// OrNoop returns h, or NoopPipelineHooks when h is nil.
func OrNoop(h PipelineHooks) PipelineHooks {
	if h == nil {
		return NoopPipelineHooks{}
	}
	return h
}

// =============================================================================
// Fan-out
// =============================================================================

// Multi forwards every event to each of its hooks in order.
type Multi []PipelineHooks

func (m Multi) OnStageStart(ctx context.Context, stage string) {
	for _, h := range m {
		h.OnStageStart(ctx, stage)
	}
}

func (m Multi) OnStageComplete(ctx context.Context, stage string, d time.Duration, err error) {
	for _, h := range m {
		h.OnStageComplete(ctx, stage, d, err)
	}
}

func (m Multi) OnEdgesProcessed(ctx context.Context, counts EdgeCounts) {
	for _, h := range m {
		h.OnEdgesProcessed(ctx, counts)
	}
}

func (m Multi) OnGraphBuilt(ctx context.Context, summary GraphSummary) {
	for _, h := range m {
		h.OnGraphBuilt(ctx, summary)
	}
}
