package state

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/tui/pages"
)

// globalNav maps function keys to the top-level pages.
var globalNav = []struct {
	key   string
	label string
	url   string
	page  string
}{
	{"f1", "Home", pages.URLHome, string(pages.TypeHome)},
	{"f2", "Forecasts", pages.URLForecasts, string(pages.TypeList)},
	{"f3", "Counter", pages.URLCounter, string(pages.TypeCounter)},
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleCtrlC()
	}
	// The modal owns the keyboard while it is open.
	if m.modal != nil {
		return m, m.flush(m.modal.Update(msg))
	}
	key := msg.String()
	for _, nav := range globalNav {
		if key == nav.key {
			return m, m.flush(m.handleNavigate(nav.url))
		}
	}
	return m, m.flush(m.page.Update(msg))
}

// handleCtrlC quits. Unsaved edits are dropped.
func (m *Model) handleCtrlC() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// handleNavigate asks the session to change page. A vetoed request is shown
// by the editor that vetoed it.
func (m *Model) handleNavigate(url string) tea.Cmd {
	ok, err := m.env.Session.RequestNavigation(m.env.Ctx, url)
	if err != nil {
		m.statusHandler.Error(fmt.Sprintf("Navigation failed: %v", err))
		return nil
	}
	if !ok {
		m.logger.Debug("navigation vetoed", "url", url)
	}
	return nil
}
