/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/tui/app"
	"github.com/spf13/cobra"
)

// tuiClientFactory builds the TUI client. memory selects the sample store.
type tuiClientFactory func(memory bool) app.Client

func defaultTUIClient(memory bool) app.Client {
	if memory {
		return app.NewDefaultClient(app.MemoryStoreOpener{}, nil)
	}
	return app.NewDefaultClient(nil, nil)
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(newClient tuiClientFactory) *cobra.Command {
	if newClient == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	var memory bool
	var start string

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI for forecasts",
		Long: `Interactive terminal UI for forecasts.

USAGE:
    forecast-desk tui [--memory] [--start <url>]

GLOBAL KEYS:
    F1          Home
    F2          Forecast list
    F3          Counter
    ctrl+c      Quit

LIST:
    j/k         Move, enter to view, e to edit, n for new, d to delete
    /           Filter by summary
    h/l         Previous/next page

EDITOR:
    tab         Next field
    ctrl+s      Save
    esc         Leave; with unsaved changes, y leaves and n keeps editing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" {
				start = config.Get("default_route", "/")
			}
			client := newClient(memory)
			model, err := client.CreateModel(cmd.Context(), app.Options{
				PageSize:   config.GetInt("page_size", data.DefaultPageSize),
				DateLayout: config.Get("date_format", "2006-01-02"),
				StartURL:   start,
			})
			if err != nil {
				return err
			}
			return client.RunProgram(model)
		},
	}

	tuiCmd.Flags().BoolVar(&memory, "memory", false, "Use an in-memory store with sample forecasts")
	tuiCmd.Flags().StringVar(&start, "start", "", "First page to open (default: default_route config value)")

	return tuiCmd
}

// tuiCmd represents the tui command
var tuiCmd = NewTUICmd(defaultTUIClient)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
