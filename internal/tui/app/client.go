package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/storage"
	"github.com/cristianoliveira/forecast-desk/internal/tui/state"
)

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	Close()
}

// Options are the page settings passed to the TUI model.
type Options struct {
	PageSize   int
	DateLayout string
	StartURL   string
}

// Client defines dependencies needed by the tui command.
type Client interface {
	CreateModel(ctx context.Context, opts Options) (Model, error)
	RunProgram(model Model) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	storeOpener   StoreOpener
	programRunner ProgramRunner
	store         storage.ForecastStore
}

// NewDefaultClient creates a default TUI client adapter.
// If storeOpener is nil, a ConfigStoreOpener will be used.
// If programRunner is nil, a DefaultProgramRunner will be used.
func NewDefaultClient(storeOpener StoreOpener, programRunner ProgramRunner) *DefaultClient {
	if storeOpener == nil {
		storeOpener = ConfigStoreOpener{}
	}
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{storeOpener: storeOpener, programRunner: programRunner}
}

// CreateModel opens the store and builds the TUI model on it.
func (d *DefaultClient) CreateModel(ctx context.Context, opts Options) (Model, error) {
	store, err := d.storeOpener.Open()
	if err != nil {
		return nil, fmt.Errorf("tui: open store: %w", err)
	}
	model, err := state.NewModel(ctx, state.Options{
		Service:    store,
		PageSize:   opts.PageSize,
		DateLayout: opts.DateLayout,
		StartURL:   opts.StartURL,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	d.store = store
	return model, nil
}

// RunProgram starts the bubbletea program using the configured ProgramRunner,
// then releases the model and the store.
func (d *DefaultClient) RunProgram(model Model) error {
	err := d.programRunner.Run(model)
	model.Close()
	if d.store != nil {
		if closeErr := d.store.Close(); closeErr != nil {
			colors.Warning(fmt.Sprintf("Failed to close store: %v", closeErr))
		}
		d.store = nil
	}
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
