package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhpq/depcycle/pkg/candl"
)

var stmtsCmd = &cobra.Command{
	Use:   "stmts <candl-output>",
	Short: "Show the statement metadata table of a candl output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args[0])
		if err != nil {
			return err
		}

		table, err := candl.ParseStatements(bytes.NewReader(input))
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(table.Statements(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		printStatements(cmd, table)
		return nil
	},
}

func printStatements(cmd *cobra.Command, table *candl.StatementTable) {
	if table.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no statement information")
		return
	}
	for _, info := range table.Statements() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  depth=%d  iterators=%s\n",
			info.ID, info.Depth, strings.Join(info.Iterators, ","))
	}
}

func init() {
	stmtsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(stmtsCmd)
}
