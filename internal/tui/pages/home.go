package pages

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/tui/render"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

// Home is the landing page.
type Home struct {
	view.Base
	env   Env
	total int
	alert alert.Alert
}

// NewHome builds the landing page and counts the stored forecasts.
func NewHome(env Env, _ view.Data) (Page, error) {
	h := &Home{Base: view.NewBase(env.Manager), env: env, alert: alert.Clear()}
	total, err := env.Service.GetRecordCount(env.ctx(), data.Filter{})
	if err != nil {
		h.alert = alert.Danger(err.Error())
		total = 0
	}
	h.total = total
	return h, nil
}

// Title implements Page.
func (h *Home) Title() string { return "Home" }

// Init implements Page.
func (h *Home) Init() tea.Cmd { return nil }

// Update implements Page.
func (h *Home) Update(msg tea.Msg) tea.Cmd {
	key, ok := keyString(msg)
	if !ok {
		return nil
	}
	var err error
	switch key {
	case "f", "enter":
		err = h.env.navigate(URLForecasts)
	case "n":
		err = h.env.navigate(URLNew)
	case "c":
		err = h.env.navigate(URLCounter)
	}
	if err != nil {
		h.alert = alert.Danger(err.Error())
	}
	return nil
}

// View implements Page.
func (h *Home) View(_, _ int) string {
	var sb strings.Builder
	sb.WriteString("Welcome to forecast-desk.\n\n")
	sb.WriteString(render.KeyValue("Stored forecasts", pluralize(h.total, "forecast")))
	sb.WriteString("\n\n")
	sb.WriteString("Press f to browse forecasts, n to add one, c for the counter demo.")
	return sb.String()
}

// Help implements Page.
func (h *Home) Help() []string {
	return []string{"f: forecasts", "n: new", "c: counter"}
}

// Alert implements Page.
func (h *Home) Alert() alert.Alert { return h.alert }
