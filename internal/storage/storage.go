// Package storage opens the forecast backend selected by configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/storage/sqlite"
)

// ForecastStore is the forecast data service plus the maintenance operations
// the CLI exposes.
type ForecastStore interface {
	data.Service[domain.Forecast]
	PruneOlderThan(ctx context.Context, days int, dryRun bool) (int, error)
	ImportTSV(ctx context.Context, r io.Reader, dryRun bool) (domain.ImportStats, error)
	Close() error
}

var _ ForecastStore = (*sqlite.ForecastStore)(nil)

// NewFromConfig opens the store at the configured db_path. config.Load must
// have run.
func NewFromConfig() (ForecastStore, error) {
	return Open(config.Get("db_path", ""))
}

// Open opens the store at path.
func Open(path string) (ForecastStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: db_path is not configured")
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return store, nil
}

// Today returns the current UTC calendar day.
func Today() time.Time {
	return domain.Day(time.Now().UTC())
}
