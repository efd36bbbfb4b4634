/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/spf13/cobra"
)

type importClient interface {
	ImportTSV(ctx context.Context, r io.Reader, dryRun bool) (domain.ImportStats, error)
}

// NewImportCmd creates the import command with explicit dependencies.
func NewImportCmd(client importClient) *cobra.Command {
	if client == nil {
		panic("NewImportCmd: client dependency cannot be nil")
	}

	var dryRun bool

	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import forecasts from a TSV file",
		Long: `Import forecasts from tab separated lines:

    date<TAB>temperature_c<TAB>summary

Lines starting with # are ignored. When a date appears more than once the
last line wins. Use - to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("import: %w", err)
				}
				defer f.Close()
				r = f
			}

			stats, err := client.ImportTSV(cmd.Context(), r, dryRun)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			for _, w := range stats.Warnings {
				colors.Warning(w)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows read:      %d\n", stats.TotalRows)
			fmt.Fprintf(out, "Imported:       %d\n", stats.ImportedRows)
			fmt.Fprintf(out, "Skipped:        %d\n", stats.SkippedRows)
			fmt.Fprintf(out, "Duplicate date: %d\n", stats.DuplicateRows)
			if dryRun {
				colors.Info("Dry run: nothing was written")
			}
			return nil
		},
	}

	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without writing")

	return importCmd
}

// importCmd represents the import command.
var importCmd = NewImportCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(importCmd)
}
