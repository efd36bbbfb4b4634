// Package session tracks the editable component of a user session and vetoes
// navigation away from it while it holds unsaved changes.
package session

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/forecast-desk/internal/logging"
)

// DefaultURL is where a resumed navigation goes when no destination was stored.
const DefaultURL = "/"

// Component is an editable view that can block navigation.
type Component interface {
	IsClean() bool
}

// Navigator performs a navigation once it has been allowed.
type Navigator interface {
	NavigateTo(ctx context.Context, url string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, url string) error

// NavigateTo calls f(ctx, url).
func (f NavigatorFunc) NavigateTo(ctx context.Context, url string) error {
	return f(ctx, url)
}

// NavigationCancelled describes a vetoed navigation.
type NavigationCancelled struct {
	// URL is the blocked destination. Empty for a veto raised by a direct command.
	URL string
	// Component is the active component that blocked it.
	Component Component
}

type listener struct {
	fn      func(NavigationCancelled)
	removed bool
}

// Service is the per-session navigation state shared by every view.
// Create one per session and pass it to each editor explicitly.
// It is not safe for concurrent use.
type Service struct {
	navigator    Navigator
	active       Component
	cancelledURL string
	listeners    []*listener
	logger       logging.Logger
}

// New creates a Service that performs allowed navigations through nav.
func New(nav Navigator) *Service {
	return &Service{
		navigator: nav,
		logger:    logging.With("component", "session"),
	}
}

// SetNavigator replaces the navigator. The host uses it when the router is
// built after the session.
func (s *Service) SetNavigator(nav Navigator) {
	s.navigator = nav
}

// SetActiveComponent records c as the active editable component.
// Registration is last-write-wins: a previous component is silently replaced.
func (s *Service) SetActiveComponent(c Component) {
	s.active = c
}

// ActiveComponent returns the active editable component, or nil.
func (s *Service) ActiveComponent() Component {
	return s.active
}

// Release clears the active component if it is still c.
func (s *Service) Release(c Component) {
	if s.active == c {
		s.active = nil
	}
}

// OnNavigationCancelled registers fn for vetoed navigations. Listeners are
// called synchronously in registration order.
func (s *Service) OnNavigationCancelled(fn func(NavigationCancelled)) (unsubscribe func()) {
	l := &listener{fn: fn}
	s.listeners = append(s.listeners, l)
	return func() {
		l.removed = true
		out := s.listeners[:0]
		for _, existing := range s.listeners {
			if existing != l {
				out = append(out, existing)
			}
		}
		s.listeners = out
	}
}

// NavigationCancelledURL returns the destination of the last vetoed navigation.
func (s *Service) NavigationCancelledURL() string {
	return s.cancelledURL
}

// RequestNavigation navigates to url unless the active component is dirty.
// A vetoed navigation stores url, notifies listeners and returns false with a
// nil error: the veto is not a failure.
func (s *Service) RequestNavigation(ctx context.Context, url string) (bool, error) {
	if s.active != nil && !s.active.IsClean() {
		s.Cancel(url)
		return false, nil
	}
	if err := s.navigate(ctx, url); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel vetoes a navigation to url. It is also used for direct commands that
// are not link navigations, in which case url is empty.
func (s *Service) Cancel(url string) {
	s.cancelledURL = url
	s.logger.Info("navigation vetoed", "url", url)
	if s.active == nil {
		return
	}
	evt := NavigationCancelled{URL: url, Component: s.active}
	listeners := make([]*listener, len(s.listeners))
	copy(listeners, s.listeners)
	for _, l := range listeners {
		if l.removed {
			continue
		}
		l.fn(evt)
	}
}

// ResumeNavigation performs the vetoed navigation after the user confirmed
// leaving. The stored destination is consumed, so it is reached at most once;
// without one, DefaultURL is used.
func (s *Service) ResumeNavigation(ctx context.Context) error {
	url := s.cancelledURL
	s.cancelledURL = ""
	if url == "" {
		url = DefaultURL
	}
	return s.navigate(ctx, url)
}

func (s *Service) navigate(ctx context.Context, url string) error {
	if s.navigator == nil {
		return fmt.Errorf("session: navigate to %q: no navigator configured", url)
	}
	if err := s.navigator.NavigateTo(ctx, url); err != nil {
		return fmt.Errorf("session: navigate to %q: %w", url, err)
	}
	s.logger.Debug("navigated", "url", url)
	return nil
}
