// Package state provides the bubbletea model hosting the forecast pages.
package state

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/errors"
	"github.com/cristianoliveira/forecast-desk/internal/logging"
	"github.com/cristianoliveira/forecast-desk/internal/route"
	"github.com/cristianoliveira/forecast-desk/internal/session"
	"github.com/cristianoliveira/forecast-desk/internal/tui/pages"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

const (
	headerFooterLines     = 4
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	statusClearDuration   = 5 * time.Second
)

// Options configures a Model.
type Options struct {
	Service    data.Service[domain.Forecast]
	PageSize   int
	DateLayout string
	// StartURL is the first page shown. Defaults to "/".
	StartURL string
}

// Model hosts the page for the current view and the modal page over it.
type Model struct {
	env       pages.Env
	factories map[view.Type]pages.Factory

	page     pages.Page
	pageData view.Data
	modal    pages.Page

	// pending collects commands produced while mounting pages, which happens
	// inside manager callbacks where no command can be returned.
	pending []tea.Cmd

	width  int
	height int

	statusHandler *errors.TUIHandler
	status        alert.Alert
	statusSeq     int

	unsubscribe []func()
	logger      logging.Logger
}

// NewModel wires a view manager, router and session around opts.Service and
// loads the start page.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("tui: new model: nil forecast service")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.With("component", "tui")

	manager := view.NewManager(view.WithKnownTypes(pages.Types()...), view.WithLogger(logger))
	router := route.New(manager)
	if err := pages.RegisterRoutes(router); err != nil {
		return nil, fmt.Errorf("tui: new model: %w", err)
	}

	m := &Model{
		factories: pages.Factories(),
		status:    alert.Clear(),
		logger:    logger,
	}
	m.env = pages.Env{
		Ctx:        ctx,
		Manager:    manager,
		Session:    session.New(router),
		Router:     router,
		Service:    opts.Service,
		PageSize:   opts.PageSize,
		DateLayout: opts.DateLayout,
		Notify:     m.notify,
	}
	m.statusHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.status = msg.Alert()
		m.statusSeq++
		m.pending = append(m.pending, clearStatusAfter(statusClearDuration, m.statusSeq))
	})

	m.unsubscribe = append(m.unsubscribe,
		manager.Subscribe(m.mount),
		manager.SubscribeModal(m.mountModal),
	)

	start := opts.StartURL
	if start == "" {
		start = pages.URLHome
	}
	if err := router.NavigateTo(ctx, start); err != nil {
		m.statusHandler.Warning(fmt.Sprintf("Cannot open %s: %v", start, err))
		if start == pages.URLHome {
			return nil, fmt.Errorf("tui: new model: %w", err)
		}
		if err := router.NavigateTo(ctx, pages.URLHome); err != nil {
			return nil, fmt.Errorf("tui: new model: %w", err)
		}
	}
	return m, nil
}

// mount replaces the current page with one built for d. When the page cannot
// be built the mounted page stays and the manager is pointed back at it.
func (m *Model) mount(d view.Data) {
	p, err := m.build(d)
	if err != nil {
		m.logger.Error("mount page failed", "view", d.Describe(), "error", err)
		m.statusHandler.Error(err.Error())
		if m.page != nil {
			m.env.Manager.Restore(m.pageData)
			return
		}
		d = view.New(pages.TypeHome, nil)
		if p, err = pages.NewHome(m.env, d); err != nil {
			return
		}
		m.env.Manager.Restore(d)
	}
	m.release(m.page)
	m.page = p
	m.pageData = d
	m.logger.Debug("page mounted", "view", d.Describe(), "id", p.ID())
	if cmd := p.Init(); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) mountModal(d view.Data, open bool) {
	if !open {
		m.release(m.modal)
		m.modal = nil
		return
	}
	p, err := m.build(d)
	if err != nil {
		m.statusHandler.Error(err.Error())
		if closeErr := m.env.Manager.CloseModal(view.Cancel()); closeErr != nil {
			m.logger.Error("close failed modal", "error", closeErr)
		}
		return
	}
	m.modal = p
	if cmd := p.Init(); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) build(d view.Data) (pages.Page, error) {
	factory, ok := m.factories[d.Type()]
	if !ok {
		return nil, fmt.Errorf("tui: %w: %q", view.ErrUnknownView, d.Type())
	}
	return factory(m.env, d)
}

func (m *Model) release(p pages.Page) {
	if c, ok := p.(pages.Closer); ok {
		c.Close()
	}
}

// notify shows a in the status banner until it times out.
func (m *Model) notify(a alert.Alert) {
	switch a.Severity {
	case alert.SeverityDanger:
		m.statusHandler.Error(a.Message)
	case alert.SeverityWarning:
		m.statusHandler.Warning(a.Message)
	case alert.SeveritySuccess:
		m.statusHandler.Success(a.Message)
	default:
		m.statusHandler.Info(a.Message)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.flush(nil)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case statusClearedMsg:
		if msg.seq == m.statusSeq {
			m.status = alert.Clear()
			m.statusHandler.Clear()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, m.flush(m.page.Update(msg))
}

// flush batches cmd with the commands collected while mounting.
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(m.pending, cmd)
	m.pending = nil
	return tea.Batch(cmds...)
}

// Close releases the mounted pages and stops listening to the manager.
func (m *Model) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
	m.release(m.modal)
	m.release(m.page)
	m.modal = nil
}

// Page returns the mounted page.
func (m *Model) Page() pages.Page { return m.page }

// Modal returns the mounted modal page, nil when no modal is open.
func (m *Model) Modal() pages.Page { return m.modal }

// Env returns the collaborators shared by the pages.
func (m *Model) Env() pages.Env { return m.env }

// Status returns the transient status banner.
func (m *Model) Status() alert.Alert { return m.status }
