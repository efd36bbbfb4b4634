/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/errors"
	"github.com/spf13/cobra"
)

type addClient interface {
	AddForecast(ctx context.Context, f domain.Forecast) data.Result
}

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(client addClient) *cobra.Command {
	if client == nil {
		panic("NewAddCmd: client dependency cannot be nil")
	}

	var dateFlag string
	var tempFlag int
	var summaryFlag string

	addCmd := &cobra.Command{
		Use:   "add [OPTIONS]",
		Short: "Add a new forecast",
		Long: `forecast-desk add - Add a new forecast

USAGE:
    forecast-desk add --temp <celsius> [OPTIONS]

OPTIONS:
    --date <date>       Forecast date (default: today)
    --temp <celsius>    Temperature in degrees Celsius (required)
    --summary <text>    Short description (default: derived from the temperature)
    -h, --help          Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("temp") {
				return fmt.Errorf("add: --temp is required")
			}
			layout := config.Get("date_format", "2006-01-02")
			date, err := parseDateFlag("date", dateFlag, layout)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			if date.IsZero() {
				date = domain.Day(time.Now())
			}

			summary := strings.TrimSpace(summaryFlag)
			if summary == "" {
				summary = domain.SummaryFor(tempFlag)
			}

			f := domain.Forecast{Date: date, TemperatureC: tempFlag, Summary: summary}
			if err := validateForecast(f); err != nil {
				return fmt.Errorf("add: %w", err)
			}

			result := client.AddForecast(cmd.Context(), f)
			if !result.Success {
				return fmt.Errorf("add: %s", result.Message)
			}
			errors.Report(errors.NewDefaultCLIHandler(), result)
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", result.NewID)
			return nil
		},
	}

	addCmd.Flags().StringVar(&dateFlag, "date", "", "Forecast date (default: today)")
	addCmd.Flags().IntVar(&tempFlag, "temp", 0, "Temperature in degrees Celsius")
	addCmd.Flags().StringVar(&summaryFlag, "summary", "", "Short description (default: derived from the temperature)")

	return addCmd
}

// validateForecast runs the forecast rules and joins every failure.
func validateForecast(f domain.Forecast) error {
	msgs := domain.Validator{}.Validate(f)
	if len(msgs) == 0 {
		return nil
	}
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.String()
	}
	return fmt.Errorf("invalid forecast: %s", strings.Join(lines, "; "))
}

// addCmd represents the add command.
var addCmd = NewAddCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(addCmd)
}
