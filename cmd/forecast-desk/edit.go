/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/errors"
	"github.com/spf13/cobra"
)

type editClient interface {
	GetForecast(ctx context.Context, id int64) (domain.Forecast, error)
	UpdateForecast(ctx context.Context, f domain.Forecast) data.Result
}

// NewEditCmd creates the edit command with explicit dependencies.
func NewEditCmd(client editClient) *cobra.Command {
	if client == nil {
		panic("NewEditCmd: client dependency cannot be nil")
	}

	var dateFlag string
	var tempFlag int
	var summaryFlag string

	editCmd := &cobra.Command{
		Use:   "edit <id> [OPTIONS]",
		Short: "Change fields of a forecast",
		Long: `forecast-desk edit - Change fields of a forecast

USAGE:
    forecast-desk edit <id> [--date <date>] [--temp <celsius>] [--summary <text>]

Only the given fields change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("date") && !flags.Changed("temp") && !flags.Changed("summary") {
				return fmt.Errorf("edit: nothing to change (use --date, --temp or --summary)")
			}

			f, err := client.GetForecast(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			if flags.Changed("date") {
				date, err := parseDateFlag("date", dateFlag, config.Get("date_format", "2006-01-02"))
				if err != nil {
					return fmt.Errorf("edit: %w", err)
				}
				f.Date = date
			}
			if flags.Changed("temp") {
				f.TemperatureC = tempFlag
			}
			if flags.Changed("summary") {
				f.Summary = strings.TrimSpace(summaryFlag)
			}
			if err := validateForecast(f); err != nil {
				return fmt.Errorf("edit: %w", err)
			}

			result := client.UpdateForecast(cmd.Context(), f)
			if !result.Success {
				return fmt.Errorf("edit: %s", result.Message)
			}
			errors.Report(errors.NewDefaultCLIHandler(), result)
			return nil
		},
	}

	editCmd.Flags().StringVar(&dateFlag, "date", "", "New forecast date")
	editCmd.Flags().IntVar(&tempFlag, "temp", 0, "New temperature in degrees Celsius")
	editCmd.Flags().StringVar(&summaryFlag, "summary", "", "New summary")

	return editCmd
}

// editCmd represents the edit command.
var editCmd = NewEditCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(editCmd)
}
