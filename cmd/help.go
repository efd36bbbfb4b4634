/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// helpCmd shows the overview, or the help of one command.
var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show this help message",
	Long: `Show the command overview, or the help of a single command.

USAGE:
    forecast-desk help [command]`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		if len(args) == 0 {
			return root.Help()
		}
		target, _, err := root.Find(args)
		if err != nil || target == root {
			return fmt.Errorf("help: unknown command %q", args[0])
		}
		return target.Help()
	},
}

func init() {
	RootCmd.SetHelpCommand(helpCmd)
}
