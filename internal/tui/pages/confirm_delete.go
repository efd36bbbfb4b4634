package pages

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

// Confirm-delete modal parameters, besides view.ParamID.
const (
	ParamDate    = "date"
	ParamSummary = "summary"
)

// ConfirmDelete is the modal asking before a forecast is deleted. It closes
// with Exit carrying the record id, or with Cancel.
type ConfirmDelete struct {
	view.Base
	env     Env
	id      int64
	date    string
	summary string
}

// NewConfirmDelete builds the modal.
func NewConfirmDelete(env Env, d view.Data) (Page, error) {
	id := d.RecordID()
	if id <= 0 {
		return nil, fmt.Errorf("confirm delete: %d: invalid record", id)
	}
	return &ConfirmDelete{
		Base:    view.NewBase(env.Manager),
		env:     env,
		id:      id,
		date:    d.String(ParamDate),
		summary: d.String(ParamSummary),
	}, nil
}

// Title implements Page.
func (c *ConfirmDelete) Title() string { return "Delete forecast" }

// Init implements Page.
func (c *ConfirmDelete) Init() tea.Cmd { return nil }

// Update implements Page.
func (c *ConfirmDelete) Update(msg tea.Msg) tea.Cmd {
	key, ok := keyString(msg)
	if !ok {
		return nil
	}
	switch key {
	case "y", "enter":
		c.close(view.Exit(c.id))
	case "n", "esc":
		c.close(view.Cancel())
	}
	return nil
}

func (c *ConfirmDelete) close(result view.ModalResult) {
	if err := c.env.Manager.CloseModal(result); err != nil {
		c.env.notify(alert.Danger(err.Error()))
	}
}

// View implements Page.
func (c *ConfirmDelete) View(_, _ int) string {
	return fmt.Sprintf("Delete forecast #%d for %s (%s)?\n\ny: delete   n: keep", c.id, c.date, c.summary)
}

// Help implements Page.
func (c *ConfirmDelete) Help() []string {
	return []string{"y: delete", "n: cancel"}
}

// Alert implements Page.
func (c *ConfirmDelete) Alert() alert.Alert { return alert.Clear() }
