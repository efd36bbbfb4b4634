// Package pages implements the screens mounted by the TUI host. Every page is
// built from a view descriptor by a Factory and receives its collaborators
// explicitly through Env.
package pages

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/route"
	"github.com/cristianoliveira/forecast-desk/internal/session"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

// View types of every page.
const (
	TypeHome          view.Type = "home"
	TypeList          view.Type = "forecast-list"
	TypeViewer        view.Type = "forecast-viewer"
	TypeEditor        view.Type = "forecast-editor"
	TypeCounter       view.Type = "counter"
	TypeConfirmDelete view.Type = "confirm-delete"
)

// URLs of the global navigation targets.
const (
	URLHome      = "/"
	URLForecasts = "/forecasts"
	URLNew       = "/forecasts/new"
	URLCounter   = "/counter"
)

// Page is a mounted screen. Update runs on the bubbletea goroutine and may
// navigate, which replaces the page while its Update is still running.
type Page interface {
	view.View
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Help() []string
	Alert() alert.Alert
}

// Closer is implemented by pages that hold resources while mounted.
type Closer interface {
	Close()
}

// Env carries the collaborators shared by every page of a session.
type Env struct {
	Ctx        context.Context
	Manager    *view.Manager
	Session    *session.Service
	Router     *route.Router
	Service    data.Service[domain.Forecast]
	PageSize   int
	DateLayout string
	// Notify shows an alert that outlives the page, such as a result
	// reported right before navigating away. May be nil.
	Notify func(alert.Alert)
}

// Factory builds the page for d.
type Factory func(env Env, d view.Data) (Page, error)

// Factories returns the factory of every page type.
func Factories() map[view.Type]Factory {
	return map[view.Type]Factory{
		TypeHome:          NewHome,
		TypeList:          NewList,
		TypeViewer:        NewViewer,
		TypeEditor:        NewEditor,
		TypeCounter:       NewCounter,
		TypeConfirmDelete: NewConfirmDelete,
	}
}

// Types lists every page type, for view.WithKnownTypes.
func Types() []view.Type {
	return []view.Type{TypeHome, TypeList, TypeViewer, TypeEditor, TypeCounter, TypeConfirmDelete}
}

// RegisterRoutes maps the page URLs on r. The modal has no URL.
func RegisterRoutes(r *route.Router) error {
	routes := []struct {
		pattern string
		t       view.Type
	}{
		{URLHome, TypeHome},
		{URLForecasts, TypeList},
		{URLNew, TypeEditor},
		{"/forecasts/{id}", TypeViewer},
		{"/forecasts/{id}/edit", TypeEditor},
		{URLCounter, TypeCounter},
	}
	for _, rt := range routes {
		if err := r.Register(rt.pattern, rt.t); err != nil {
			return err
		}
	}
	return nil
}

// ModalClosedMsg delivers the result of a modal to the page that opened it.
type ModalClosedMsg struct {
	// Opener is the ID of the page that opened the modal.
	Opener string
	Result view.ModalResult
}

// WaitModal returns a command that blocks until the modal result arrives.
func WaitModal(opener string, results <-chan view.ModalResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-results
		if !ok {
			result = view.Cancel()
		}
		return ModalClosedMsg{Opener: opener, Result: result}
	}
}

func (e Env) ctx() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

func (e Env) notify(a alert.Alert) {
	if e.Notify != nil && a.IsActive {
		e.Notify(a)
	}
}

func (e Env) pageSize() int {
	if e.PageSize <= 0 {
		return data.DefaultPageSize
	}
	return e.PageSize
}

func (e Env) dateLayout() string {
	if e.DateLayout == "" {
		return "2006-01-02"
	}
	return e.DateLayout
}

// navigate asks the session to leave the current page. A vetoed navigation
// returns nil: the active editor shows the veto itself.
func (e Env) navigate(url string) error {
	if _, err := e.Session.RequestNavigation(e.ctx(), url); err != nil {
		return err
	}
	return nil
}

func (e Env) url(t view.Type, params map[string]any) string {
	u, err := e.Router.URL(t, params)
	if err != nil {
		return URLHome
	}
	return u
}

func (e Env) recordURL(t view.Type, id int64) string {
	return e.url(t, map[string]any{view.ParamID: id})
}

func keyString(msg tea.Msg) (string, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", false
	}
	return k.String(), true
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
