package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/module"
	"github.com/matzehuels/modgraph/pkg/module/resolve"
	"github.com/matzehuels/modgraph/pkg/projection"
)

// depsCommand prints the transitive dependencies of one module.
func (c *CLI) depsCommand() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "deps <graph.json> <module>",
		Short: "Print transitive dependencies of a module",
		Long: `Print every module reachable from <module> along dependency edges, in
breadth-first order. <module> is a module id ("module:...") or a module path.

With --reverse, print the modules that transitively depend on <module>.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.build(cmd, args[0], nil)
			if err != nil {
				return err
			}
			p := result.Projection

			m, ok := findModule(p, args[1])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "module %q not found", args[1])
			}

			ids, relation := p.TransitiveDependencies(m.ID), "dependencies"
			if reverse {
				ids, relation = p.TransitiveDependents(m.ID), "dependents"
			}

			out := newPrinter(cmd.OutOrStdout())
			out.info("%s: %d transitive %s", StyleHighlight.Render(m.Name), len(ids), relation)
			if cp, ok := p.Coupling(m.ID); ok {
				out.detail("Ca=%d Ce=%d instability=%.2f", cp.Afferent, cp.Efferent, cp.Instability)
			}
			for _, id := range ids {
				if dep, ok := p.Module(id); ok {
					out.row(dep.Name, dep.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "print dependents instead of dependencies")

	return cmd
}

// findModule looks ref up as a module id, then as a module path.
func findModule(p *projection.Projection, ref string) (*module.Module, bool) {
	if m, ok := p.Module(ref); ok {
		return m, true
	}
	return p.Module(module.IDFor(resolve.Normalize(ref)))
}
