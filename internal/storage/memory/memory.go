// Package memory provides an in-process forecast data service. Nothing is
// persisted; it backs demos and tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
)

// Store implements data.Service for forecasts in memory.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]domain.Forecast
}

var _ data.Service[domain.Forecast] = (*Store)(nil)

// New creates a store holding seed. Seed records with an id keep it.
func New(seed ...domain.Forecast) *Store {
	s := &Store{records: make(map[int64]domain.Forecast)}
	for _, f := range seed {
		if f.ID == 0 {
			s.nextID++
			f.ID = s.nextID
		} else if f.ID > s.nextID {
			s.nextID = f.ID
		}
		f.Date = domain.Day(f.Date)
		s.records[f.ID] = f
	}
	return s
}

// GetRecord returns the forecast with the given id.
func (s *Store) GetRecord(_ context.Context, id int64) (domain.Forecast, error) {
	if id <= 0 {
		return domain.Forecast{}, fmt.Errorf("memory storage: get forecast: %w: %d", data.ErrInvalidRecordID, id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.records[id]
	if !ok {
		return domain.Forecast{}, fmt.Errorf("memory storage: get forecast: %w: id %d", data.ErrRecordNotFound, id)
	}
	return f, nil
}

// GetRecordList returns the forecasts matching filter, ordered by date then id.
func (s *Store) GetRecordList(_ context.Context, filter data.Filter) ([]domain.Forecast, error) {
	matched := s.matching(filter)
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// GetRecordCount counts the forecasts matching filter, ignoring paging.
func (s *Store) GetRecordCount(_ context.Context, filter data.Filter) (int, error) {
	return len(s.matching(filter)), nil
}

// CreateRecord stores a forecast that has no id yet.
func (s *Store) CreateRecord(_ context.Context, f domain.Forecast) data.Result {
	if f.ID != 0 {
		return data.Failed("", fmt.Errorf("memory storage: create forecast: %w: %d", data.ErrInvalidRecordID, f.ID))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	f.Date = domain.Day(f.Date)
	f.Summary = strings.TrimSpace(f.Summary)
	s.records[f.ID] = f
	return data.Succeeded(domain.MessageSaved, f.ID)
}

// UpdateRecord replaces a stored forecast.
func (s *Store) UpdateRecord(_ context.Context, f domain.Forecast) data.Result {
	if f.ID <= 0 {
		return data.Failed("", fmt.Errorf("memory storage: update forecast: %w: %d", data.ErrInvalidRecordID, f.ID))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[f.ID]; !ok {
		return data.Failed("", fmt.Errorf("memory storage: update forecast: %w: id %d", data.ErrRecordNotFound, f.ID))
	}
	f.Date = domain.Day(f.Date)
	f.Summary = strings.TrimSpace(f.Summary)
	s.records[f.ID] = f
	return data.Succeeded(domain.MessageSaved, 0)
}

// DeleteRecord removes a stored forecast.
func (s *Store) DeleteRecord(_ context.Context, f domain.Forecast) data.Result {
	if f.ID <= 0 {
		return data.Failed("", fmt.Errorf("memory storage: delete forecast: %w: %d", data.ErrInvalidRecordID, f.ID))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[f.ID]; !ok {
		return data.Failed("", fmt.Errorf("memory storage: delete forecast: %w: id %d", data.ErrRecordNotFound, f.ID))
	}
	delete(s.records, f.ID)
	return data.Succeeded(domain.MessageDeleted, 0)
}

// PruneOlderThan is not supported by the in-memory store.
func (s *Store) PruneOlderThan(context.Context, int, bool) (int, error) {
	return 0, fmt.Errorf("memory storage: prune is not supported")
}

// ImportTSV is not supported by the in-memory store.
func (s *Store) ImportTSV(context.Context, io.Reader, bool) (domain.ImportStats, error) {
	return domain.ImportStats{}, fmt.Errorf("memory storage: import is not supported")
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) matching(filter data.Filter) []domain.Forecast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter.Summary))
	from, to := domain.Day(filter.From), domain.Day(filter.To)
	out := make([]domain.Forecast, 0, len(s.records))
	for _, f := range s.records {
		if needle != "" && !strings.Contains(strings.ToLower(f.Summary), needle) {
			continue
		}
		if !from.IsZero() && f.Date.Before(from) {
			continue
		}
		if !to.IsZero() && f.Date.After(to) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
