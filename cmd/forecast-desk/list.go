/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/format"
	"github.com/spf13/cobra"
)

type listClient interface {
	ListForecasts(ctx context.Context, filter data.Filter) ([]domain.Forecast, int, error)
}

const listCommandLong = `List stored forecasts ordered by date.

USAGE:
    forecast-desk list [OPTIONS]

OPTIONS:
    --summary <text>     Only forecasts whose summary contains text
    --from <date>        Only forecasts on or after date
    --to <date>          Only forecasts on or before date
    --page <n>           Page to show, starting at 1 (default 1)
    --limit <n>          Forecasts per page (default: page_size config value)
    --all                Show every matching forecast
    --format=<format>    Output format: default, minimal, tsv, json
                         (default: table_format config value)
    -h, --help           Show this help`

// listOptions holds the parsed list flags.
type listOptions struct {
	Summary string
	From    string
	To      string
	Page    int
	Limit   int
	All     bool
	Format  string
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var opts listOptions

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List forecasts with filters and formats",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format == "" {
				opts.Format = config.Get("table_format", "default")
			}
			layout := config.Get("date_format", "2006-01-02")
			filter, err := buildListFilter(opts, layout, config.GetInt("page_size", data.DefaultPageSize))
			if err != nil {
				return err
			}
			forecasts, total, err := client.ListForecasts(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			return printList(cmd.OutOrStdout(), opts.Format, layout, forecasts, total, filter)
		},
	}

	listCmd.Flags().StringVar(&opts.Summary, "summary", "", "Only forecasts whose summary contains text")
	listCmd.Flags().StringVar(&opts.From, "from", "", "Only forecasts on or after date")
	listCmd.Flags().StringVar(&opts.To, "to", "", "Only forecasts on or before date")
	listCmd.Flags().IntVar(&opts.Page, "page", 1, "Page to show, starting at 1")
	listCmd.Flags().IntVar(&opts.Limit, "limit", 0, "Forecasts per page (default: page_size config value)")
	listCmd.Flags().BoolVar(&opts.All, "all", false, "Show every matching forecast")
	listCmd.Flags().StringVar(&opts.Format, "format", "", "Output format: default, minimal, tsv, json (default: table_format config value)")

	return listCmd
}

// buildListFilter validates opts and turns them into a storage filter.
func buildListFilter(opts listOptions, dateLayout string, pageSize int) (data.Filter, error) {
	if _, err := format.ParseType(opts.Format); err != nil {
		return data.Filter{}, fmt.Errorf("list: %w", err)
	}
	if opts.Page < 1 {
		return data.Filter{}, fmt.Errorf("list: page must be a positive integer")
	}
	if opts.Limit < 0 {
		return data.Filter{}, fmt.Errorf("list: limit must not be negative")
	}

	filter := data.Filter{Summary: strings.TrimSpace(opts.Summary)}
	var err error
	if filter.From, err = parseDateFlag("from", opts.From, dateLayout); err != nil {
		return data.Filter{}, err
	}
	if filter.To, err = parseDateFlag("to", opts.To, dateLayout); err != nil {
		return data.Filter{}, err
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return data.Filter{}, fmt.Errorf("list: --to is before --from")
	}
	if opts.All {
		return filter, nil
	}
	limit := opts.Limit
	if limit == 0 {
		limit = pageSize
	}
	return filter.Page(opts.Page-1, limit), nil
}

func parseDateFlag(name, value, layout string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (want %s)", name, value, layout)
	}
	return t, nil
}

// printList writes forecasts in the requested format. The table also gets a
// page footer when the listing is paged.
func printList(w io.Writer, name, dateLayout string, forecasts []domain.Forecast, total int, filter data.Filter) error {
	ft, err := format.ParseType(name)
	if err != nil {
		return err
	}
	if err := format.NewFormatter(ft, dateLayout).FormatForecasts(forecasts, w); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if ft == format.FormatterTypeDefault && filter.Limit > 0 && len(forecasts) > 0 {
		fmt.Fprintf(w, "\nPage %d of %d (%d forecasts)\n", filter.PageIndex()+1, filter.PageCount(total), total)
	}
	return nil
}

// listCmd represents the list command
var listCmd = NewListCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
