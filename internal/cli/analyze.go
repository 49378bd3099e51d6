package cli

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/graph"
	"github.com/matzehuels/modgraph/pkg/observability"
	"github.com/matzehuels/modgraph/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	output      string // graph view JSON path
	metricsFile string // Prometheus textfile path
}

// analyzeCommand builds the module graph and prints summary metrics.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <graph.json>",
		Short: "Build the module graph and print summary metrics",
		Long: `Build the module dependency graph from a code property graph and print
module, file and dependency counts together with the number of reported cycles.

Use -o to write the graph view as JSON and --metrics-file to write the run's
Prometheus metrics in textfile-collector format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the graph view as JSON to this file")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	return cmd
}

func (c *CLI) runAnalyze(cmd *cobra.Command, path string, opts analyzeOpts) error {
	spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), stageMessage(""))
	hooks := observability.Multi{stageHooks{spinner: spinner}}

	var reg *prometheus.Registry
	if opts.metricsFile != "" {
		reg = prometheus.NewRegistry()
		hooks = append(hooks, observability.NewPrometheusHooks(reg))
	}

	spinner.Start()
	result, err := c.build(cmd, path, hooks)
	spinner.Stop()

	out := newPrinter(cmd.OutOrStdout())
	if err != nil {
		if spinner.Cancelled() {
			out.warning("Interrupted")
		} else {
			out.error("Analysis failed")
		}
		return err
	}

	printSummary(out, result)

	if opts.output != "" {
		if err := graph.ExportJSON(result.Projection.View(), opts.output); err != nil {
			return fmt.Errorf("write view: %w", err)
		}
		out.file(opts.output)
	}
	if reg != nil {
		if err := observability.WriteTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		out.file(opts.metricsFile)
	}

	if result.Projection.HasCycles() {
		out.newline()
		out.nextStep("Inspect cycles", fmt.Sprintf("%s cycles %s", appName, path))
	}
	return nil
}

func printSummary(out printer, r *pipeline.Result) {
	m := r.Metrics
	out.success("Built %s modules", StyleNumber.Render(fmt.Sprint(m.TotalModules)))
	out.stats(r.Stats.NodeCount, r.Stats.EdgeCount, r.Stats.Total().Round(time.Millisecond).String())
	out.newline()

	out.keyValue("Modules", fmt.Sprint(m.TotalModules))
	out.keyValue("Files", fmt.Sprint(m.TotalFiles))
	out.keyValue("Dependencies", fmt.Sprint(m.TotalDependencies))
	out.keyValue("Avg deps", fmt.Sprintf("%.2f", m.AverageDependenciesPerModule))
	out.keyValue("Max deps", fmt.Sprint(m.MaxDependencies))
	out.keyValue("Roots", fmt.Sprint(len(r.Projection.RootModules())))
	out.keyValue("Leaves", fmt.Sprint(len(r.Projection.LeafModules())))
	out.keyValue("Imports", fmt.Sprintf("%d resolved, %d unresolved", r.Calculation.Resolved, r.Calculation.Unresolved))

	if m.CyclicDependencies > 0 {
		out.warning("%d cycles reported", m.CyclicDependencies)
	} else {
		out.keyValue("Cycles", "0")
	}
}
