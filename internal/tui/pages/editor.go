package pages

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/editor"
	"github.com/cristianoliveira/forecast-desk/internal/tui/render"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

var editorFields = []struct {
	name  string
	label string
}{
	{domain.FieldDate, "Date"},
	{domain.FieldTemperatureC, "Temperature °C"},
	{domain.FieldSummary, "Summary"},
}

// Editor is the create and update form for a forecast.
type Editor struct {
	view.Base
	env      Env
	forecast domain.Forecast
	editor   *editor.Editor[domain.Forecast]
	inputs   []textinput.Model
	focus    int
}

// NewEditor loads the forecast named by the id parameter, or starts a new
// one dated today when there is none, and attaches to the session.
func NewEditor(env Env, d view.Data) (Page, error) {
	f := domain.Forecast{Date: domain.Day(time.Now())}
	if id := d.RecordID(); id != 0 {
		loaded, err := env.Service.GetRecord(env.ctx(), id)
		if err != nil {
			return nil, err
		}
		f = loaded
	}

	e := &Editor{
		Base:     view.NewBase(env.Manager),
		env:      env,
		forecast: f,
		editor:   editor.New[domain.Forecast](env.Service, domain.Validator{}),
	}

	originals := map[string]string{
		domain.FieldDate:         f.Date.Format(env.dateLayout()),
		domain.FieldTemperatureC: "",
		domain.FieldSummary:      f.Summary,
	}
	if !f.IsNew() {
		originals[domain.FieldTemperatureC] = strconv.Itoa(f.TemperatureC)
	}

	e.inputs = make([]textinput.Model, len(editorFields))
	for i, field := range editorFields {
		e.editor.Fields().Track(field.name, originals[field.name])
		input := textinput.New()
		input.Prompt = ""
		input.SetValue(originals[field.name])
		switch field.name {
		case domain.FieldSummary:
			input.CharLimit = domain.MaxSummaryLength
			input.Placeholder = strings.Join(domain.Summaries[:3], ", ") + "..."
		case domain.FieldTemperatureC:
			input.CharLimit = 4
			input.Placeholder = "0"
		case domain.FieldDate:
			input.Placeholder = env.dateLayout()
		}
		e.inputs[i] = input
	}
	e.inputs[0].Focus()
	e.editor.Attach(env.Session)
	return e, nil
}

// Component returns the editor state machine behind the form.
func (e *Editor) Component() *editor.Editor[domain.Forecast] { return e.editor }

// Forecast returns the record being edited as last loaded or saved.
func (e *Editor) Forecast() domain.Forecast { return e.forecast }

// Close detaches the editor from the session.
func (e *Editor) Close() { e.editor.Detach() }

// Title implements Page.
func (e *Editor) Title() string {
	if e.forecast.IsNew() {
		return "New forecast"
	}
	return "Edit forecast #" + strconv.FormatInt(e.forecast.ID, 10)
}

// Init implements Page.
func (e *Editor) Init() tea.Cmd { return textinput.Blink }

// Update implements Page.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
		return cmd
	}

	if e.editor.ExitAttempt() {
		switch key.String() {
		case "y":
			err := e.editor.ConfirmExit(e.env.ctx())
			e.syncInputs()
			if err != nil {
				e.env.notify(alert.Danger(err.Error()))
			}
			return nil
		case "n", "esc":
			e.editor.CancelExit()
			return nil
		}
	}

	switch key.String() {
	case "ctrl+s":
		e.save()
		return nil
	case "tab", "down":
		return e.setFocus(e.focus + 1)
	case "shift+tab", "up":
		return e.setFocus(e.focus - 1)
	case "esc":
		if err := e.env.navigate(e.backURL()); err != nil {
			e.env.notify(alert.Danger(err.Error()))
		}
		return nil
	}

	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	if err := e.editor.SetField(editorFields[e.focus].name, e.inputs[e.focus].Value()); err != nil {
		e.env.notify(alert.Danger(err.Error()))
	}
	return cmd
}

func (e *Editor) backURL() string {
	if e.forecast.IsNew() {
		return URLForecasts
	}
	return e.env.recordURL(TypeViewer, e.forecast.ID)
}

// syncInputs shows the edit context values again, after edits were discarded
// while the page stayed mounted.
func (e *Editor) syncInputs() {
	fields := e.editor.Fields()
	for i, field := range editorFields {
		e.inputs[i].SetValue(fields.Value(field.name))
	}
}

func (e *Editor) setFocus(i int) tea.Cmd {
	n := len(e.inputs)
	i = ((i % n) + n) % n
	e.inputs[e.focus].Blur()
	e.focus = i
	return e.inputs[i].Focus()
}

// save parses the form into a record and hands it to the editor. Values that
// do not parse are rejected without reaching the validator.
func (e *Editor) save() data.Result {
	fields := e.editor.Fields()
	record := e.forecast

	var problems []data.ValidationMessage
	date := strings.TrimSpace(fields.Value(domain.FieldDate))
	record.Date = time.Time{}
	if date != "" {
		parsed, err := time.ParseInLocation(e.env.dateLayout(), date, time.UTC)
		if err != nil {
			problems = append(problems, data.ValidationMessage{
				Field:   domain.FieldDate,
				Message: "must match " + e.env.dateLayout(),
			})
		}
		record.Date = parsed
	}
	temp, err := strconv.Atoi(strings.TrimSpace(fields.Value(domain.FieldTemperatureC)))
	if err != nil {
		problems = append(problems, data.ValidationMessage{
			Field:   domain.FieldTemperatureC,
			Message: "must be a whole number",
		})
	}
	record.TemperatureC = temp
	record.Summary = strings.TrimSpace(fields.Value(domain.FieldSummary))

	if len(problems) > 0 {
		return e.editor.Reject(problems)
	}

	result := e.editor.Save(e.env.ctx(), record)
	if !result.Success {
		return result
	}
	if result.NewID != 0 {
		record.ID = result.NewID
	}
	e.forecast = record
	return result
}

// View implements Page.
func (e *Editor) View(_, _ int) string {
	modified := make(map[string]bool)
	for _, name := range e.editor.Fields().ModifiedFields() {
		modified[name] = true
	}

	lines := make([]string, 0, len(editorFields)+2)
	for i, field := range editorFields {
		lines = append(lines, render.Field(field.label, e.inputs[i].View(), i == e.focus, modified[field.name]))
	}
	lines = append(lines, "", render.KeyValue("State", e.editor.State().String()))
	return strings.Join(lines, "\n")
}

// Help implements Page.
func (e *Editor) Help() []string {
	if e.editor.ExitAttempt() {
		return []string{"y: discard and leave", "n: keep editing", "ctrl+s: save"}
	}
	return []string{"tab: next field", "ctrl+s: save", "esc: leave"}
}

// Alert implements Page.
func (e *Editor) Alert() alert.Alert { return e.editor.Alert() }
