package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/forecast-desk/internal/logging"
)

var (
	// ErrUnknownView indicates a view type that is not registered with the manager.
	ErrUnknownView = errors.New("unknown view type")
	// ErrModalOpen indicates a modal is already showing.
	ErrModalOpen = errors.New("modal already open")
	// ErrNoModal indicates CloseModal was called without an open modal.
	ErrNoModal = errors.New("no modal open")
	// ErrNoCurrentView indicates Reload was called before any view was loaded.
	ErrNoCurrentView = errors.New("no current view")
)

type subscriber struct {
	fn      func(Data)
	removed bool
}

type modalSubscriber struct {
	fn      func(Data, bool)
	removed bool
}

type modalSlot struct {
	data   Data
	result chan ModalResult
}

// Manager is the single source of truth for the rendered view and the modal
// overlay. It only carries descriptors; rendering belongs to its subscribers.
//
// A Manager is not safe for concurrent use. All calls must come from the
// goroutine that drives rendering.
type Manager struct {
	current    Data
	hasCurrent bool
	known      map[Type]bool
	logger     logging.Logger

	subscribers      []*subscriber
	modalSubscribers []*modalSubscriber

	dispatching bool
	queue       []Data

	modal *modalSlot
}

// Option configures a Manager.
type Option func(*Manager)

// WithKnownTypes restricts LoadView and OpenModal to the given types.
// Without it the check is left to the rendering layer.
func WithKnownTypes(types ...Type) Option {
	return func(m *Manager) {
		if m.known == nil {
			m.known = make(map[Type]bool, len(types))
		}
		for _, t := range types {
			m.known[t] = true
		}
	}
}

// WithLogger sets the logger used for view transitions.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager with no current view.
func NewManager(opts ...Option) *Manager {
	m := &Manager{logger: logging.With("component", "view")}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the view currently loaded.
func (m *Manager) Current() (Data, bool) {
	return m.current, m.hasCurrent
}

// Subscribe registers fn to be called after every LoadView, in registration order.
func (m *Manager) Subscribe(fn func(Data)) (unsubscribe func()) {
	s := &subscriber{fn: fn}
	m.subscribers = append(m.subscribers, s)
	return func() {
		s.removed = true
		m.subscribers = removeSubscriber(m.subscribers, s)
	}
}

// SubscribeModal registers fn to be called when a modal opens (true) or closes (false).
func (m *Manager) SubscribeModal(fn func(d Data, open bool)) (unsubscribe func()) {
	s := &modalSubscriber{fn: fn}
	m.modalSubscribers = append(m.modalSubscribers, s)
	return func() {
		s.removed = true
		out := m.modalSubscribers[:0]
		for _, existing := range m.modalSubscribers {
			if existing != s {
				out = append(out, existing)
			}
		}
		m.modalSubscribers = out
	}
}

// LoadView replaces the current view and notifies every subscriber.
// Loading the descriptor that is already current is a reload, not a no-op.
// Calls made by a subscriber while a load is being dispatched are queued and
// dispatched afterwards, in the order they were issued.
func (m *Manager) LoadView(ctx context.Context, d Data) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("view manager: load view: %w", err)
	}
	if err := m.check(d.Type()); err != nil {
		return fmt.Errorf("view manager: load view: %w", err)
	}
	if m.dispatching {
		m.queue = append(m.queue, d)
		return nil
	}
	m.dispatch(d)
	return nil
}

// Reload loads the current view again.
func (m *Manager) Reload(ctx context.Context) error {
	if !m.hasCurrent {
		return fmt.Errorf("view manager: reload: %w", ErrNoCurrentView)
	}
	return m.LoadView(ctx, m.current)
}

// Restore makes d the current view again without notifying subscribers.
// A renderer calls it when it could not show the view that was just loaded
// and kept the previous one on screen.
func (m *Manager) Restore(d Data) {
	m.current = d
	m.hasCurrent = !d.IsZero()
	m.logger.Debug("view restored", "view", d.Describe())
}

func (m *Manager) dispatch(d Data) {
	m.dispatching = true
	defer func() {
		m.dispatching = false
		m.queue = nil
	}()

	next := d
	for {
		m.current = next
		m.hasCurrent = true
		m.logger.Debug("view loaded", "view", next.Describe())

		subs := make([]*subscriber, len(m.subscribers))
		copy(subs, m.subscribers)
		for _, s := range subs {
			if s.removed {
				continue
			}
			s.fn(next)
		}

		if len(m.queue) == 0 {
			return
		}
		next = m.queue[0]
		m.queue = m.queue[1:]
	}
}

// OpenModal shows a view in the modal slot instead of replacing the main view.
// The returned channel yields exactly one result when the modal is closed and
// is closed afterwards.
func (m *Manager) OpenModal(ctx context.Context, t Type, params map[string]any) (<-chan ModalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("view manager: open modal: %w", err)
	}
	if err := m.check(t); err != nil {
		return nil, fmt.Errorf("view manager: open modal: %w", err)
	}
	if m.modal != nil {
		return nil, fmt.Errorf("view manager: open modal %q: %w", t, ErrModalOpen)
	}

	slot := &modalSlot{data: New(t, params), result: make(chan ModalResult, 1)}
	m.modal = slot
	m.logger.Debug("modal opened", "view", slot.data.Describe())
	m.notifyModal(slot.data, true)
	return slot.result, nil
}

// CloseModal closes the open modal and hands result to whoever opened it.
func (m *Manager) CloseModal(result ModalResult) error {
	slot := m.modal
	if slot == nil {
		return fmt.Errorf("view manager: close modal: %w", ErrNoModal)
	}
	m.modal = nil
	slot.result <- result
	close(slot.result)
	m.logger.Debug("modal closed", "view", slot.data.Describe(), "result", result.Kind.String())
	m.notifyModal(slot.data, false)
	return nil
}

// Modal returns the descriptor of the open modal.
func (m *Manager) Modal() (Data, bool) {
	if m.modal == nil {
		return Data{}, false
	}
	return m.modal.data, true
}

func (m *Manager) notifyModal(d Data, open bool) {
	subs := make([]*modalSubscriber, len(m.modalSubscribers))
	copy(subs, m.modalSubscribers)
	for _, s := range subs {
		if s.removed {
			continue
		}
		s.fn(d, open)
	}
}

func (m *Manager) check(t Type) error {
	if t == "" {
		return ErrUnknownView
	}
	if m.known != nil && !m.known[t] {
		return fmt.Errorf("%w: %q", ErrUnknownView, t)
	}
	return nil
}

func removeSubscriber(subs []*subscriber, target *subscriber) []*subscriber {
	out := subs[:0]
	for _, s := range subs {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
