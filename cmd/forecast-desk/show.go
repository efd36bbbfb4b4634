/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/spf13/cobra"
)

type showClient interface {
	GetForecast(ctx context.Context, id int64) (domain.Forecast, error)
}

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client showClient) *cobra.Command {
	if client == nil {
		panic("NewShowCmd: client dependency cannot be nil")
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single forecast",
		Long: `Show every field of a single forecast.

USAGE:
    forecast-desk show <id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			f, err := client.GetForecast(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}
			printForecast(cmd.OutOrStdout(), f, config.Get("date_format", "2006-01-02"))
			return nil
		},
	}

	return showCmd
}

// parseID parses a positive record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid forecast id: %q", arg)
	}
	return id, nil
}

func printForecast(w io.Writer, f domain.Forecast, dateLayout string) {
	fmt.Fprintf(w, "ID:          %d\n", f.ID)
	fmt.Fprintf(w, "Date:        %s\n", f.Date.Format(dateLayout))
	fmt.Fprintf(w, "Temperature: %d °C / %d °F\n", f.TemperatureC, f.TemperatureF())
	fmt.Fprintf(w, "Summary:     %s\n", f.Summary)
	if !f.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created:     %s\n", f.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !f.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Updated:     %s\n", f.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

// showCmd represents the show command
var showCmd = NewShowCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(showCmd)
}
