package main

import (
	"os"

	"github.com/grovetools/repl/cli"
	"github.com/grovetools/repl/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"grove-repl",
		"Filetype-keyed repl sessions for Neovim",
	)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewDefinitionsCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
