package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhpq/depcycle/pkg/candl"
)

var edgesCmd = &cobra.Command{
	Use:   "edges <candl-output>",
	Short: "List the dependence edges parsed from a candl output",
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

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(edges, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d edges\n", len(edges))
		for _, e := range edges {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s -> %s\n", e.Source.Key(), e.Target.Key())
		}
		return nil
	},
}

func init() {
	edgesCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(edgesCmd)
}
