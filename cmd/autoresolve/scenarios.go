package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autoresolve-sim/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List built-in scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		builtins := scenario.BuiltIn()
		for _, name := range scenario.Names() {
			sc := builtins[name]
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\t%d units\t%s\n", scenario.BuiltinPrefix, name, sc.Units(), sc.Description)
		}
		return nil
	},
}
