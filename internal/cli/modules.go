package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/module"
	"github.com/matzehuels/modgraph/pkg/module/resolve"
)

type modulesOpts struct {
	prefix string
	roots  bool
	leaves bool
}

// modulesCommand lists the modules of a graph.
func (c *CLI) modulesCommand() *cobra.Command {
	var opts modulesOpts

	cmd := &cobra.Command{
		Use:   "modules <graph.json>",
		Short: "List modules with file and dependency counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.roots && opts.leaves {
				return fmt.Errorf("--roots and --leaves are mutually exclusive")
			}
			return c.runModules(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "only modules whose path starts with this prefix")
	cmd.Flags().BoolVar(&opts.roots, "roots", false, "only modules nothing depends on")
	cmd.Flags().BoolVar(&opts.leaves, "leaves", false, "only modules with no dependencies")

	return cmd
}

func (c *CLI) runModules(cmd *cobra.Command, path string, opts modulesOpts) error {
	prog := newProgress(loggerFromContext(cmd.Context()))
	result, err := c.build(cmd, path, nil)
	if err != nil {
		return err
	}
	p := result.Projection

	var mods []*module.Module
	switch {
	case opts.roots:
		mods = p.RootModules()
	case opts.leaves:
		mods = p.LeafModules()
	default:
		mods = p.Modules()
	}
	if opts.prefix != "" {
		matched := make(map[string]bool)
		for _, m := range p.ModulesByPath(resolve.Normalize(opts.prefix)) {
			matched[m.ID] = true
		}
		mods = filterModules(mods, func(m *module.Module) bool { return matched[m.ID] })
	}
	prog.done(fmt.Sprintf("Listed %d of %d modules", len(mods), p.Len()))

	out := newPrinter(cmd.OutOrStdout())
	if len(mods) == 0 {
		out.info("No modules")
		return nil
	}
	for _, m := range mods {
		out.row(m.Name,
			m.Path,
			fmt.Sprintf("%d files", m.Metrics.FileCount),
			fmt.Sprintf("%d lines", m.Metrics.TotalLines),
			fmt.Sprintf("%d deps", m.Metrics.DependencyCount),
			fmt.Sprintf("%d dependents", m.Metrics.DependentCount))
	}
	return nil
}

func filterModules(mods []*module.Module, keep func(*module.Module) bool) []*module.Module {
	var out []*module.Module
	for _, m := range mods {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
