package pages

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/tui/render"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

// Viewer shows a single forecast read-only.
type Viewer struct {
	view.Base
	env      Env
	forecast domain.Forecast
	alert    alert.Alert
}

// NewViewer loads the forecast named by the id parameter.
func NewViewer(env Env, d view.Data) (Page, error) {
	id := d.RecordID()
	f, err := env.Service.GetRecord(env.ctx(), id)
	if err != nil {
		return nil, fmt.Errorf("forecast viewer: %d: %w", id, err)
	}
	return &Viewer{Base: view.NewBase(env.Manager), env: env, forecast: f, alert: alert.Clear()}, nil
}

// Forecast returns the record shown.
func (v *Viewer) Forecast() domain.Forecast { return v.forecast }

// Title implements Page.
func (v *Viewer) Title() string { return fmt.Sprintf("Forecast #%d", v.forecast.ID) }

// Init implements Page.
func (v *Viewer) Init() tea.Cmd { return nil }

// Update implements Page.
func (v *Viewer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ModalClosedMsg:
		if msg.Opener == v.ID() {
			v.handleDeleteResult(msg.Result)
		}
		return nil
	case tea.KeyMsg:
		var err error
		switch msg.String() {
		case "e":
			err = v.env.navigate(v.env.recordURL(TypeEditor, v.forecast.ID))
		case "esc", "backspace":
			err = v.env.navigate(URLForecasts)
		case "d":
			results, openErr := v.env.Manager.OpenModal(v.env.ctx(), TypeConfirmDelete, map[string]any{
				view.ParamID:  v.forecast.ID,
				ParamDate:    v.forecast.Date.Format(v.env.dateLayout()),
				ParamSummary: v.forecast.Summary,
			})
			if openErr == nil {
				return WaitModal(v.ID(), results)
			}
			err = openErr
		}
		if err != nil {
			v.alert = alert.Danger(err.Error())
		}
	}
	return nil
}

func (v *Viewer) handleDeleteResult(result view.ModalResult) {
	if !result.Confirmed() {
		return
	}
	res := v.env.Service.DeleteRecord(v.env.ctx(), v.forecast)
	v.alert = alert.FromDataResult(res)
	if !res.Success {
		return
	}
	v.env.notify(v.alert)
	if err := v.env.navigate(URLForecasts); err != nil {
		v.alert = alert.Danger(err.Error())
	}
}

// View implements Page.
func (v *Viewer) View(_, _ int) string {
	f := v.forecast
	lines := []string{
		render.KeyValue("ID", fmt.Sprint(f.ID)),
		render.KeyValue("Date", f.Date.Format(v.env.dateLayout())),
		render.KeyValue("Temperature", fmt.Sprintf("%d °C / %d °F", f.TemperatureC, f.TemperatureF())),
		render.KeyValue("Summary", f.Summary),
	}
	if !f.CreatedAt.IsZero() {
		lines = append(lines, render.KeyValue("Created", f.CreatedAt.Format("2006-01-02 15:04")))
	}
	if !f.UpdatedAt.IsZero() {
		lines = append(lines, render.KeyValue("Updated", f.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return strings.Join(lines, "\n")
}

// Help implements Page.
func (v *Viewer) Help() []string {
	return []string{"e: edit", "d: delete", "esc: back"}
}

// Alert implements Page.
func (v *Viewer) Alert() alert.Alert { return v.alert }
