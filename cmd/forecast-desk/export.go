/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command with explicit dependencies.
func NewExportCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewExportCmd: client dependency cannot be nil")
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export every forecast as TSV",
		Long:  `Write every forecast in the format import reads, to file or standard output.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forecasts, _, err := client.ListForecasts(cmd.Context(), data.Filter{})
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := sqlite.ExportTSV(w, forecasts); err != nil {
				return err
			}
			if len(args) == 1 && args[0] != "-" {
				colors.Success(fmt.Sprintf("Exported %d forecasts to %s", len(forecasts), args[0]))
			}
			return nil
		},
	}

	return exportCmd
}

// exportCmd represents the export command.
var exportCmd = NewExportCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(exportCmd)
}
