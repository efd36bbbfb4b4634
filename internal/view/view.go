package view

import (
	"context"

	"github.com/google/uuid"
)

// View is implemented by every navigable page.
type View interface {
	// ID is unique per instance; two live views sharing an ID point at a double render.
	ID() string
	// Manager is the manager the view was constructed with.
	Manager() *Manager
}

// Base provides the View methods. Embed it and build it with NewBase.
type Base struct {
	id      string
	manager *Manager
}

// NewBase assigns a fresh identity bound to m.
func NewBase(m *Manager) Base {
	return Base{id: uuid.NewString(), manager: m}
}

// ID returns the instance identity.
func (b Base) ID() string {
	return b.id
}

// Manager returns the owning manager.
func (b Base) Manager() *Manager {
	return b.manager
}

// Load asks the manager that owns v to load a new view.
func Load(ctx context.Context, v View, t Type, params map[string]any) error {
	return v.Manager().LoadView(ctx, New(t, params))
}

// Reload asks the manager that owns v to reload the current view.
func Reload(ctx context.Context, v View) error {
	return v.Manager().Reload(ctx)
}
