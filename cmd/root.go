/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/logging"
	"github.com/cristianoliveira/forecast-desk/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "forecast-desk",
	Short:         "Browse and edit weather forecasts from the terminal.",
	Long:          `Browse and edit weather forecasts from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		if err := logging.InitGlobal(cmd.Name()); err != nil {
			colors.Warning(fmt.Sprintf("logging disabled: %v", err))
		}
		logging.Info("command started", "command", cmd.Name(), "args", len(args))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		logging.Info("command completed", "command", cmd.Name())
		return logging.ShutdownGlobal()
	},
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		logging.Error("command failed", "error", err)
		if msg := err.Error(); msg != "" {
			colors.Error(msg)
		}
		_ = logging.ShutdownGlobal()
	}
	return err
}

// commandOrder is the order commands are listed in the help text.
var commandOrder = []string{
	"tui",
	"list",
	"show",
	"add",
	"edit",
	"delete",
	"prune",
	"import",
	"export",
	"help",
	"version",
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			if cmd.Long != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", cmd.Long)
			}
			return
		}
		printHelpText(cmd.OutOrStdout(), cmd)
	})
}

func printHelpText(w io.Writer, cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	fmt.Fprintf(w, `forecast-desk %s

Browse and edit weather forecasts from the terminal.

USAGE:
    forecast-desk [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message

CONFIGURATION:
    %s or %s/config.toml
    Every key can be overridden with %s<KEY>.
`, version.String(), strings.Join(cmdLines, "\n"), config.EnvConfigPath, "$XDG_CONFIG_HOME/forecast-desk", config.EnvPrefix)
}
