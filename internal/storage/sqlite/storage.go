// Package sqlite provides the SQLite-backed forecast data service.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/logging"
	_ "modernc.org/sqlite"
)

// ForecastStore implements data.Service for forecasts.
type ForecastStore struct {
	db     *sql.DB
	now    func() time.Time
	logger logging.Logger
}

var _ data.Service[domain.Forecast] = (*ForecastStore)(nil)

// Open creates or opens the forecast database at dbPath.
func Open(dbPath string) (*ForecastStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	s := &ForecastStore{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.With("component", "sqlite"),
	}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying SQLite connection.
func (s *ForecastStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *ForecastStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// GetRecord returns the forecast with the given id.
func (s *ForecastStore) GetRecord(ctx context.Context, id int64) (domain.Forecast, error) {
	if id <= 0 {
		return domain.Forecast{}, fmt.Errorf("sqlite storage: get forecast: %w: %d", ErrInvalidRecordID, id)
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM forecasts WHERE id = ?", id)
	f, err := scanForecast(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Forecast{}, fmt.Errorf("sqlite storage: get forecast: %w: id %d", ErrRecordNotFound, id)
		}
		return domain.Forecast{}, fmt.Errorf("sqlite storage: get forecast: %w", err)
	}
	return f, nil
}

// GetRecordList returns forecasts matching filter, ordered by date then id.
func (s *ForecastStore) GetRecordList(ctx context.Context, filter data.Filter) ([]domain.Forecast, error) {
	where, args := whereClause(filter)
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query := "SELECT " + selectColumns + " FROM forecasts" + where + " ORDER BY date, id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list forecasts: %w", err)
	}
	defer rows.Close()

	var out []domain.Forecast
	for rows.Next() {
		f, err := scanForecast(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: scan forecast: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list forecasts: %w", err)
	}
	return out, nil
}

// GetRecordCount counts forecasts matching filter, ignoring paging.
func (s *ForecastStore) GetRecordCount(ctx context.Context, filter data.Filter) (int, error) {
	where, args := whereClause(filter)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM forecasts"+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite storage: count forecasts: %w", err)
	}
	return count, nil
}

// CreateRecord inserts a forecast that has no id yet.
func (s *ForecastStore) CreateRecord(ctx context.Context, f domain.Forecast) data.Result {
	if f.ID != 0 {
		return data.Failed("", fmt.Errorf("sqlite storage: create forecast: %w: %d", ErrInvalidRecordID, f.ID))
	}

	now := s.now().Format(timestampLayout)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO forecasts (date, temperature_c, summary, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		formatDate(f.Date), f.TemperatureC, strings.TrimSpace(f.Summary), now, now,
	)
	if err != nil {
		return data.Failed("", fmt.Errorf("sqlite storage: create forecast: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return data.Failed("", fmt.Errorf("sqlite storage: create forecast: %w", err))
	}
	s.logger.Info("forecast created", "id", id)
	return data.Succeeded(domain.MessageSaved, id)
}

// UpdateRecord replaces the fields of a stored forecast.
func (s *ForecastStore) UpdateRecord(ctx context.Context, f domain.Forecast) data.Result {
	if f.ID <= 0 {
		return data.Failed("", fmt.Errorf("sqlite storage: update forecast: %w: %d", ErrInvalidRecordID, f.ID))
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE forecasts SET date = ?, temperature_c = ?, summary = ?, updated_at = ? WHERE id = ?",
		formatDate(f.Date), f.TemperatureC, strings.TrimSpace(f.Summary), s.now().Format(timestampLayout), f.ID,
	)
	if err != nil {
		return data.Failed("", fmt.Errorf("sqlite storage: update forecast: %w", err))
	}
	if err := requireAffected(res, f.ID); err != nil {
		return data.Failed("", fmt.Errorf("sqlite storage: update forecast: %w", err))
	}
	s.logger.Info("forecast updated", "id", f.ID)
	return data.Succeeded(domain.MessageSaved, 0)
}

// DeleteRecord removes a stored forecast.
func (s *ForecastStore) DeleteRecord(ctx context.Context, f domain.Forecast) data.Result {
	if f.ID <= 0 {
		return data.Failed("", fmt.Errorf("sqlite storage: delete forecast: %w: %d", ErrInvalidRecordID, f.ID))
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM forecasts WHERE id = ?", f.ID)
	if err != nil {
		return data.Failed("", fmt.Errorf("sqlite storage: delete forecast: %w", err))
	}
	if err := requireAffected(res, f.ID); err != nil {
		return data.Failed("", fmt.Errorf("sqlite storage: delete forecast: %w", err))
	}
	s.logger.Info("forecast deleted", "id", f.ID)
	return data.Succeeded(domain.MessageDeleted, 0)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanForecast(row scanner) (domain.Forecast, error) {
	var f domain.Forecast
	var date, createdAt, updatedAt string
	if err := row.Scan(&f.ID, &date, &f.TemperatureC, &f.Summary, &createdAt, &updatedAt); err != nil {
		return domain.Forecast{}, err
	}
	// Malformed timestamps leave the zero time; the row is still usable.
	f.Date, _ = time.Parse(dateLayout, date)
	f.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	f.UpdatedAt, _ = time.Parse(timestampLayout, updatedAt)
	return f, nil
}

func whereClause(filter data.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if summary := strings.TrimSpace(filter.Summary); summary != "" {
		conds = append(conds, "summary LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(summary)+"%")
	}
	if !filter.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, formatDate(filter.From))
	}
	if !filter.To.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, formatDate(filter.To))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

func formatDate(t time.Time) string {
	return domain.Day(t).Format(dateLayout)
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
	}
	return nil
}
