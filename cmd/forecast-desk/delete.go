/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/errors"
	"github.com/spf13/cobra"
)

type deleteClient interface {
	DeleteForecast(ctx context.Context, id int64) data.Result
}

// NewDeleteCmd creates the delete command with explicit dependencies.
func NewDeleteCmd(client deleteClient) *cobra.Command {
	if client == nil {
		panic("NewDeleteCmd: client dependency cannot be nil")
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete forecasts by id",
		Long: `Delete one or more forecasts by id.

Every id is attempted; the command fails if any delete failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, len(args))
			for i, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}

			handler := errors.NewDefaultCLIHandler()
			failed := 0
			for _, id := range ids {
				result := client.DeleteForecast(cmd.Context(), id)
				if !result.Success {
					failed++
				}
				errors.Report(handler, result)
			}
			if failed > 0 {
				return fmt.Errorf("delete: %d of %d forecasts not deleted", failed, len(ids))
			}
			return nil
		},
	}

	return deleteCmd
}

// deleteCmd represents the delete command.
var deleteCmd = NewDeleteCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(deleteCmd)
}
