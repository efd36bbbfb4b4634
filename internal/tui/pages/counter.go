package pages

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/tui/render"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

// ParamCount carries the counter value.
const ParamCount = "count"

// Counter demonstrates that loading a view always builds a new instance,
// even when the descriptor does not change.
type Counter struct {
	view.Base
	env   Env
	count int64
	alert alert.Alert
}

// NewCounter builds the counter page.
func NewCounter(env Env, d view.Data) (Page, error) {
	count, _ := d.Int64(ParamCount)
	return &Counter{Base: view.NewBase(env.Manager), env: env, count: count, alert: alert.Clear()}, nil
}

// Count returns the counter value.
func (c *Counter) Count() int64 { return c.count }

// Title implements Page.
func (c *Counter) Title() string { return "Counter" }

// Init implements Page.
func (c *Counter) Init() tea.Cmd { return nil }

// Update implements Page.
func (c *Counter) Update(msg tea.Msg) tea.Cmd {
	key, ok := keyString(msg)
	if !ok {
		return nil
	}
	var err error
	switch key {
	case "+", "=":
		err = view.Load(c.env.ctx(), c, TypeCounter, map[string]any{ParamCount: c.count + 1})
	case "-":
		err = view.Load(c.env.ctx(), c, TypeCounter, map[string]any{ParamCount: c.count - 1})
	case "r":
		err = view.Reload(c.env.ctx(), c)
	case "0":
		err = view.Load(c.env.ctx(), c, TypeCounter, nil)
	}
	if err != nil {
		c.alert = alert.Danger(err.Error())
	}
	return nil
}

// View implements Page.
func (c *Counter) View(_, _ int) string {
	return render.KeyValue("Count", fmt.Sprint(c.count)) + "\n" + render.KeyValue("Instance", c.ID())
}

// Help implements Page.
func (c *Counter) Help() []string {
	return []string{"+/-: change", "r: reload", "0: reset"}
}

// Alert implements Page.
func (c *Counter) Alert() alert.Alert { return c.alert }
