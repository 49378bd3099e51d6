// Package cli implements the modgraph command-line interface.
//
// The commands load a code property graph from JSON, build the module
// dependency graph through [pipeline.Runner] and print the result:
//   - analyze: summary metrics, optional JSON view and Prometheus textfile
//   - modules: list modules with file and dependency counts
//   - cycles: print every reported cycle, or strongly connected groups
//   - deps: transitive dependencies or dependents of one module
//
// # Configuration
//
// Aggregation settings come from four layers, later ones winning:
// built-in defaults, a TOML or YAML file (--config), MODGRAPH_* environment
// variables (and .env), and command-line flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is passed through context.Context; results go to the command's output
// writer and logs go to stderr.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/buildinfo"
	"github.com/matzehuels/modgraph/pkg/config"
	"github.com/matzehuels/modgraph/pkg/observability"
	"github.com/matzehuels/modgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "modgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags globalFlags
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose      bool
	configPath   string
	root         string
	level        string
	includeTests bool
	exclude      []string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "modgraph builds module dependency graphs from code property graphs",
		Long:         `modgraph groups the files of a code property graph into modules, resolves import edges between them and reports cycles, roots, leaves and coupling metrics.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := LogInfo
			if c.flags.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&c.flags.configPath, "config", "c", "", "config file (.toml, .yaml)")
	pf.StringVar(&c.flags.root, "root", "", "root path modules are grouped relative to")
	pf.StringVar(&c.flags.level, "level", "", "aggregation level: directory, top-level, package")
	pf.BoolVar(&c.flags.includeTests, "include-tests", false, "include files labeled as tests")
	pf.StringSliceVar(&c.flags.exclude, "exclude", nil, "exclude files whose path contains or matches a pattern (repeatable)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.modulesCommand())
	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cmd *cobra.Command, hooks observability.PipelineHooks) *pipeline.Runner {
	return pipeline.NewRunner(
		pipeline.WithLogger(loggerFromContext(cmd.Context())),
		pipeline.WithHooks(hooks),
	)
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions layers defaults, the config file, the environment and
// the flags explicitly set on cmd, in that order.
func (c *CLI) pipelineOptions(cmd *cobra.Command) (pipeline.Options, error) {
	f := config.Default()
	if c.flags.configPath != "" {
		loaded, err := config.Load(c.flags.configPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		f = loaded
	}
	if err := f.LoadEnv(); err != nil {
		return pipeline.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		f.Root = c.flags.root
	}
	if flags.Changed("level") {
		f.Level = c.flags.level
	}
	if flags.Changed("include-tests") {
		f.IncludeTests = c.flags.includeTests
	}
	if flags.Changed("exclude") {
		f.Exclude = c.flags.exclude
	}

	agg, err := f.Aggregation()
	if err != nil {
		return pipeline.Options{}, err
	}
	loggerFromContext(cmd.Context()).Debug("resolved configuration",
		"root", f.Root,
		"level", agg.Level,
		"include_tests", agg.IncludeTests,
		"exclude", agg.ExcludePatterns)

	return pipeline.Options{Root: f.Root, Aggregation: agg}, nil
}

// build runs the pipeline on the graph file at path with the resolved
// options.
func (c *CLI) build(cmd *cobra.Command, path string, hooks observability.PipelineHooks) (*pipeline.Result, error) {
	opts, err := c.pipelineOptions(cmd)
	if err != nil {
		return nil, err
	}
	return c.newRunner(cmd, hooks).Run(cmd.Context(), path, opts)
}
