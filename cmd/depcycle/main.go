// Package main implements the depcycle CLI.
// It analyzes candl dependence output and reports which dependences
// form cycles that constrain loop parallelization and tiling.
package main

import (
	"os"

	"github.com/minhpq/depcycle/cmd/depcycle/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`depcycle version {{.Version}}
`)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
