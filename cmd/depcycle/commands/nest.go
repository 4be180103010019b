package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhpq/depcycle/pkg/loopnest"
)

var nestCmd = &cobra.Command{
	Use:   "nest <file.c>",
	Short: "Recover statement nesting from a C source file",
	Long: `Parses a C file and numbers the statements inside its "#pragma scop"
region S1..Sn in textual order, reporting each statement's loop depth
and enclosing iterator names. This is the same table candl emits in its
"# Statement information" section.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loopnest.ScanFile(args[0])
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

		for _, info := range table.Statements() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s [depth = %d, iterators = %q]\n",
				info.ID, info.Depth, strings.Join(info.Iterators, ","))
		}
		return nil
	},
}

func init() {
	nestCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(nestCmd)
}
