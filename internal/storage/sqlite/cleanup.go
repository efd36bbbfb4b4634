package sqlite

import (
	"context"
	"fmt"
	"time"
)

// PruneBefore removes forecasts dated before cutoff and returns how many rows
// matched. With dryRun nothing is deleted.
func (s *ForecastStore) PruneBefore(ctx context.Context, cutoff time.Time, dryRun bool) (int, error) {
	if cutoff.IsZero() {
		return 0, fmt.Errorf("sqlite storage: prune: cutoff cannot be empty")
	}
	day := formatDate(cutoff)

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM forecasts WHERE date < ?", day).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite storage: count forecasts for prune: %w", err)
	}
	if count == 0 || dryRun {
		return count, nil
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM forecasts WHERE date < ?", day); err != nil {
		return 0, fmt.Errorf("sqlite storage: prune forecasts: %w", err)
	}
	s.logger.Info("forecasts pruned", "cutoff", day, "deleted", count)
	return count, nil
}

// PruneOlderThan removes forecasts dated more than days before today.
func (s *ForecastStore) PruneOlderThan(ctx context.Context, days int, dryRun bool) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("sqlite storage: days threshold must be >= 0")
	}
	return s.PruneBefore(ctx, s.now().AddDate(0, 0, -days), dryRun)
}
