// Package app provides TUI application adapters for command wiring.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/storage"
	"github.com/cristianoliveira/forecast-desk/internal/storage/memory"
)

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model tea.Model) error
}

// DefaultProgramRunner wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program on the alternate screen.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// StoreOpener opens the forecast store the TUI works on.
type StoreOpener interface {
	Open() (storage.ForecastStore, error)
}

// ConfigStoreOpener opens the SQLite store at the configured db_path.
type ConfigStoreOpener struct{}

// Open implements StoreOpener.
func (ConfigStoreOpener) Open() (storage.ForecastStore, error) {
	return storage.NewFromConfig()
}

// MemoryStoreOpener opens an in-memory store seeded with a week of sample
// forecasts starting today.
type MemoryStoreOpener struct {
	Days int
}

// Open implements StoreOpener.
func (o MemoryStoreOpener) Open() (storage.ForecastStore, error) {
	days := o.Days
	if days <= 0 {
		days = 7
	}
	today := storage.Today()
	seed := make([]domain.Forecast, days)
	for i := range seed {
		temp := (i*7)%35 - 5
		seed[i] = domain.Forecast{
			Date:         today.AddDate(0, 0, i),
			TemperatureC: temp,
			Summary:      domain.SummaryFor(temp),
		}
	}
	return memory.New(seed...), nil
}
