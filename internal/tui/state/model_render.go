package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/forecast-desk/internal/tui/render"
)

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultViewportWidth
	}
	if height <= 0 {
		height = defaultViewportHeight
	}
	if m.page == nil {
		return ""
	}

	current := ""
	if d, ok := m.env.Manager.Current(); ok {
		current = string(d.Type())
	}
	nav := make([]render.NavItem, len(globalNav))
	for i, n := range globalNav {
		nav[i] = render.NavItem{Key: strings.ToUpper(n.key), Label: n.label, Active: n.page == current}
	}

	sections := []string{render.Header(m.page.Title(), nav, width)}
	for _, banner := range []string{render.Banner(m.page.Alert(), width), render.Banner(m.status, width)} {
		if banner != "" {
			sections = append(sections, banner)
		}
	}

	bodyHeight := height - headerFooterLines - (len(sections) - 1)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	help := m.page.Help()
	var body string
	if m.modal != nil {
		help = m.modal.Help()
		body = render.Modal(m.modal.Title(), m.modal.View(width/2, bodyHeight/2), width, bodyHeight)
	} else {
		body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(m.page.View(width, bodyHeight))
	}

	help = append(help, "F1-F3: navigate", "ctrl+c: quit")
	sections = append(sections, "", body, render.Footer(help))
	return strings.Join(sections, "\n")
}
