package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/module"
)

// cyclesCommand prints circular dependencies.
func (c *CLI) cyclesCommand() *cobra.Command {
	var scc bool

	cmd := &cobra.Command{
		Use:   "cycles <graph.json>",
		Short: "Print circular dependencies between modules",
		Long: `Print every cycle reported by the depth-first search. One strongly
connected group can be reported more than once, once per back edge.

With --scc, print each strongly connected group of two or more modules
exactly once instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.build(cmd, args[0], nil)
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			p := result.Projection

			if !p.HasCycles() {
				out.success("No cycles")
				return nil
			}

			if scc {
				groups := p.StronglyConnected()
				out.warning("%d strongly connected groups", len(groups))
				for _, g := range groups {
					out.chain(moduleNames(g))
				}
				return nil
			}

			cycles := p.Cycles()
			out.warning("%d cycles reported", len(cycles))
			for _, cyc := range cycles {
				// Close the loop for display.
				names := append(moduleNames(cyc), cyc[0].Name)
				out.chain(names)
			}
			out.detail("use --scc to group modules by strongly connected component")
			return nil
		},
	}

	cmd.Flags().BoolVar(&scc, "scc", false, "print strongly connected groups instead of cycle reports")

	return cmd
}

func moduleNames(mods []*module.Module) []string {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	return names
}
