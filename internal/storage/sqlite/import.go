package sqlite

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/domain"
)

const (
	importFieldDate = iota
	importFieldTemperatureC
	importFieldSummary
	importNumFields
)

// ImportTSV reads "date<TAB>temperature_c<TAB>summary" lines and inserts one
// forecast per date, the last line for a date winning. Malformed lines are
// skipped with a warning. All inserts run in a single transaction.
func (s *ForecastStore) ImportTSV(ctx context.Context, r io.Reader, dryRun bool) (domain.ImportStats, error) {
	latest, stats, err := parseImportRows(r)
	if err != nil {
		return stats, err
	}
	if dryRun {
		stats.ImportedRows = len(latest)
		return stats, nil
	}

	days := make([]string, 0, len(latest))
	for day := range latest {
		days = append(days, day)
	}
	sort.Strings(days)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("import: begin transaction: %w", err)
	}
	now := s.now().Format(timestampLayout)
	for _, day := range days {
		f := latest[day]
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO forecasts (date, temperature_c, summary, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			day, f.TemperatureC, f.Summary, now, now,
		); err != nil {
			_ = tx.Rollback()
			return stats, fmt.Errorf("import: insert %s: %w", day, err)
		}
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return stats, fmt.Errorf("import: commit transaction: %w", err)
	}

	stats.ImportedRows = len(latest)
	s.logger.Info("forecasts imported", "rows", stats.ImportedRows, "skipped", stats.SkippedRows)
	return stats, nil
}

func parseImportRows(r io.Reader) (map[string]domain.Forecast, domain.ImportStats, error) {
	stats := domain.ImportStats{}
	latest := make(map[string]domain.Forecast)
	validator := domain.Validator{}

	sc := bufio.NewScanner(r)
	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		stats.TotalRows++
		f, warning := parseImportLine(line)
		if warning == "" {
			if msgs := validator.Validate(f); len(msgs) > 0 {
				warning = msgs[0].String()
			}
		}
		if warning != "" {
			stats.SkippedRows++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("line %d: %s", lineNumber, warning))
			continue
		}

		day := formatDate(f.Date)
		if _, exists := latest[day]; exists {
			stats.DuplicateRows++
		}
		latest[day] = f
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("import: read tsv: %w", err)
	}
	return latest, stats, nil
}

func parseImportLine(line string) (domain.Forecast, string) {
	fields := strings.Split(line, "\t")
	if len(fields) != importNumFields {
		return domain.Forecast{}, fmt.Sprintf("invalid field count: got %d, need %d", len(fields), importNumFields)
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(fields[importFieldDate]))
	if err != nil {
		return domain.Forecast{}, "invalid date format"
	}
	temperature, err := strconv.Atoi(strings.TrimSpace(fields[importFieldTemperatureC]))
	if err != nil {
		return domain.Forecast{}, "invalid temperature"
	}

	return domain.Forecast{
		Date:         date,
		TemperatureC: temperature,
		Summary:      strings.TrimSpace(fields[importFieldSummary]),
	}, ""
}

// ExportTSV writes forecasts in the format ImportTSV reads.
func ExportTSV(w io.Writer, forecasts []domain.Forecast) error {
	for _, f := range forecasts {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", formatDate(f.Date), f.TemperatureC, f.Summary); err != nil {
			return fmt.Errorf("export: write tsv: %w", err)
		}
	}
	return nil
}
