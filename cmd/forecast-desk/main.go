/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"os"

	"github.com/cristianoliveira/forecast-desk/cmd"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
)

func main() {
	err := cmd.Execute()
	if closeErr := coreClient.Close(); closeErr != nil {
		colors.Warning(fmt.Sprintf("Failed to close store: %v", closeErr))
	}
	if err != nil {
		os.Exit(1)
	}
}
