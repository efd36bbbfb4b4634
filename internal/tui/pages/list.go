package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/tui/render"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

// List parameters. ParamPage counts from 1.
const (
	ParamPage   = "page"
	ParamFilter = "filter"
)

// List shows one page of forecasts.
type List struct {
	view.Base
	env    Env
	filter data.Filter
	rows   []domain.Forecast
	total  int
	cursor int

	filtering bool
	input     textinput.Model
	viewport  viewport.Model

	alert alert.Alert
}

// NewList loads the page of forecasts described by d.
func NewList(env Env, d view.Data) (Page, error) {
	page, _ := d.Int64(ParamPage)
	filter := data.Filter{Summary: strings.TrimSpace(d.String(ParamFilter))}.Page(int(page)-1, env.pageSize())

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "summary contains"
	input.CharLimit = domain.MaxSummaryLength
	input.SetValue(filter.Summary)

	l := &List{
		Base:     view.NewBase(env.Manager),
		env:      env,
		filter:   filter,
		input:    input,
		viewport: viewport.New(0, 0),
		alert:    alert.Clear(),
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *List) load() error {
	ctx := l.env.ctx()
	total, err := l.env.Service.GetRecordCount(ctx, l.filter)
	if err != nil {
		return fmt.Errorf("forecast list: count: %w", err)
	}
	rows, err := l.env.Service.GetRecordList(ctx, l.filter)
	if err != nil {
		return fmt.Errorf("forecast list: list: %w", err)
	}
	l.total = total
	l.rows = rows
	if l.cursor >= len(rows) {
		l.cursor = max(len(rows)-1, 0)
	}
	return nil
}

// Title implements Page.
func (l *List) Title() string {
	return fmt.Sprintf("Forecasts (page %d of %d)", l.filter.PageIndex()+1, l.filter.PageCount(l.total))
}

// Init implements Page.
func (l *List) Init() tea.Cmd { return nil }

// Selected returns the forecast under the cursor.
func (l *List) Selected() (domain.Forecast, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return domain.Forecast{}, false
	}
	return l.rows[l.cursor], true
}

// Filtering reports whether the filter input has focus.
func (l *List) Filtering() bool {
	return l.filtering
}

// Update implements Page.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ModalClosedMsg:
		if msg.Opener == l.ID() {
			l.handleDeleteResult(msg.Result)
		}
		return nil
	case tea.KeyMsg:
		if l.filtering {
			return l.handleFilterKey(msg)
		}
		return l.handleKey(msg.String())
	}
	return nil
}

func (l *List) handleKey(key string) tea.Cmd {
	var err error
	switch key {
	case "j", "down":
		if l.cursor < len(l.rows)-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "g", "home":
		l.cursor = 0
	case "G", "end":
		l.cursor = max(len(l.rows)-1, 0)
	case "enter", "v":
		if f, ok := l.Selected(); ok {
			err = l.env.navigate(l.env.recordURL(TypeViewer, f.ID))
		}
	case "e":
		if f, ok := l.Selected(); ok {
			err = l.env.navigate(l.env.recordURL(TypeEditor, f.ID))
		}
	case "n":
		err = l.env.navigate(URLNew)
	case "d":
		if f, ok := l.Selected(); ok {
			return l.confirmDelete(f)
		}
	case "/":
		l.filtering = true
		return l.input.Focus()
	case "esc":
		if l.filter.Summary != "" {
			err = l.openPage(0, "")
		}
	case "l", "right", "pgdown":
		if l.filter.PageIndex()+1 < l.filter.PageCount(l.total) {
			err = l.openPage(l.filter.PageIndex()+1, l.filter.Summary)
		}
	case "h", "left", "pgup":
		if l.filter.PageIndex() > 0 {
			err = l.openPage(l.filter.PageIndex()-1, l.filter.Summary)
		}
	case "r":
		err = l.load()
		if err == nil {
			l.alert = alert.Info("Reloaded " + pluralize(l.total, "forecast"))
		}
	}
	if err != nil {
		l.alert = alert.Danger(err.Error())
	}
	return nil
}

func (l *List) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		l.filtering = false
		l.input.Blur()
		if err := l.openPage(0, strings.TrimSpace(l.input.Value())); err != nil {
			l.alert = alert.Danger(err.Error())
		}
		return nil
	case "esc":
		l.filtering = false
		l.input.Blur()
		l.input.SetValue(l.filter.Summary)
		return nil
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return cmd
}

// openPage navigates to the page with the given index.
func (l *List) openPage(index int, summary string) error {
	params := map[string]any{}
	if index > 0 {
		params[ParamPage] = index + 1
	}
	if summary != "" {
		params[ParamFilter] = summary
	}
	return l.env.navigate(l.env.url(TypeList, params))
}

func (l *List) confirmDelete(f domain.Forecast) tea.Cmd {
	results, err := l.env.Manager.OpenModal(l.env.ctx(), TypeConfirmDelete, map[string]any{
		view.ParamID:  f.ID,
		ParamDate:    f.Date.Format(l.env.dateLayout()),
		ParamSummary: f.Summary,
	})
	if err != nil {
		l.alert = alert.Danger(err.Error())
		return nil
	}
	return WaitModal(l.ID(), results)
}

func (l *List) handleDeleteResult(result view.ModalResult) {
	if !result.Confirmed() {
		l.alert = alert.Info("Delete cancelled")
		return
	}
	id, ok := result.Data.(int64)
	if !ok {
		return
	}
	res := l.env.Service.DeleteRecord(l.env.ctx(), domain.Forecast{ID: id})
	l.alert = alert.FromDataResult(res)
	if !res.Success {
		return
	}
	if err := l.load(); err != nil {
		l.alert = alert.Danger(err.Error())
	}
}

// View implements Page.
func (l *List) View(width, height int) string {
	var sb strings.Builder
	if l.filtering || l.filter.Summary != "" {
		sb.WriteString(l.input.View())
		sb.WriteString("\n")
		height--
	}
	sb.WriteString(render.TableHeader(width))
	sb.WriteString("\n")
	height--

	if len(l.rows) == 0 {
		sb.WriteString("No forecasts. Press n to add one.")
		return sb.String()
	}

	lines := make([]string, len(l.rows))
	for i, f := range l.rows {
		lines[i] = render.Row(render.RowState{
			Forecast:   f,
			DateLayout: l.env.dateLayout(),
			Width:      width,
			Selected:   i == l.cursor,
		})
	}
	l.viewport.Width = width
	l.viewport.Height = max(height, 1)
	l.viewport.SetContent(strings.Join(lines, "\n"))
	switch {
	case l.cursor < l.viewport.YOffset:
		l.viewport.SetYOffset(l.cursor)
	case l.cursor >= l.viewport.YOffset+l.viewport.Height:
		l.viewport.SetYOffset(l.cursor - l.viewport.Height + 1)
	}
	sb.WriteString(l.viewport.View())
	return sb.String()
}

// Help implements Page.
func (l *List) Help() []string {
	if l.filtering {
		return []string{"enter: apply filter", "esc: cancel"}
	}
	return []string{"j/k: move", "enter: view", "e: edit", "n: new", "d: delete", "/: filter", "h/l: page", "r: reload"}
}

// Alert implements Page.
func (l *List) Alert() alert.Alert { return l.alert }
