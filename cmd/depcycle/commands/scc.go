package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhpq/depcycle/pkg/candl"
	"github.com/minhpq/depcycle/pkg/depgraph"
	"github.com/minhpq/depcycle/pkg/report"
	"github.com/minhpq/depcycle/pkg/scc"
)

var sccCmd = &cobra.Command{
	Use:   "scc <candl-output>",
	Short: "List the cyclic dependence components of each variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args[0])
		if err != nil {
			return err
		}

		edges, err := candl.ParseEdges(bytes.NewReader(input))
		if err != nil {
			return err
		}
		graphs := depgraph.Build(edges)

		type varComps struct {
			Var    string         `json:"var"`
			Cycles [][]candl.Node `json:"cycles"`
		}
		var all []varComps
		for _, v := range graphs.Vars() {
			g := graphs.Graph(v)
			comps := scc.Decompose(g.Nodes(), g.Succs)
			all = append(all, varComps{Var: v, Cycles: scc.Cyclic(comps, g.Succs)})
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(all, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		renderer := report.NewRenderer(cmd.OutOrStdout(), 0)
		for _, vc := range all {
			if err := renderer.Components(vc.Var, vc.Cycles); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	sccCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(sccCmd)
}
