// Package commands provides the CLI commands for the depcycle tool.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "depcycle",
	Short: "depcycle - Dependence cycle analysis for loop transformations",
	Long: `depcycle reads the dependence output of the candl polyhedral analyzer
and reports which dependences form cycles, annotated with the loop
iterators shared by the statements in each cycle.

Commands:
  analyze     Full analysis: cycle matrix per variable
  edges       List parsed dependence edges
  stmts       Show the statement metadata table
  scc         List cyclic dependence components per variable
  nest        Recover statement nesting from a C source file
  init        Create a config file interactively
  doctor      Check configuration and environment

Use "depcycle [command] --help" for more information about a command.`,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// readInput reads the whole dependence stream: a file path, or stdin
// when path is "-". The stream is consumed fully before any analysis.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}
	return data, nil
}
