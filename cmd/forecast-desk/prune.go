/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/spf13/cobra"
)

type pruneClient interface {
	PruneOlderThan(ctx context.Context, days int, dryRun bool) (int, error)
}

// NewPruneCmd creates the prune command with explicit dependencies.
func NewPruneCmd(client pruneClient) *cobra.Command {
	if client == nil {
		panic("NewPruneCmd: client dependency cannot be nil")
	}

	var days int
	var dryRun bool

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete forecasts older than N days",
		Long: `Delete forecasts dated more than N days before today.

The default comes from the retention_days config value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 {
				days = config.GetInt("retention_days", 30)
			}
			if days <= 0 {
				return fmt.Errorf("prune: days must be a positive integer")
			}

			n, err := client.PruneOlderThan(cmd.Context(), days, dryRun)
			if err != nil {
				return fmt.Errorf("prune: %w", err)
			}
			if dryRun {
				colors.Info(fmt.Sprintf("Would delete %d forecasts older than %d days", n, days))
				return nil
			}
			colors.Success(fmt.Sprintf("Deleted %d forecasts older than %d days", n, days))
			return nil
		},
	}

	pruneCmd.Flags().IntVar(&days, "days", 0, "Delete forecasts older than N days (default: retention_days config value)")
	pruneCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be deleted without deleting")

	return pruneCmd
}

// pruneCmd represents the prune command.
var pruneCmd = NewPruneCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(pruneCmd)
}
