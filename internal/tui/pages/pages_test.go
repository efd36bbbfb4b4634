package pages

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/editor"
	"github.com/cristianoliveira/forecast-desk/internal/route"
	"github.com/cristianoliveira/forecast-desk/internal/session"
	"github.com/cristianoliveira/forecast-desk/internal/storage/memory"
	"github.com/cristianoliveira/forecast-desk/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness mounts pages the way the TUI host does.
type harness struct {
	t        *testing.T
	env      Env
	store    *memory.Store
	current  Page
	loads    []view.Data
	notified []alert.Alert
}

func newHarness(t *testing.T, pageSize int, seed ...domain.Forecast) *harness {
	t.Helper()
	m := view.NewManager(view.WithKnownTypes(Types()...))
	r := route.New(m)
	require.NoError(t, RegisterRoutes(r))

	h := &harness{t: t, store: memory.New(seed...)}
	h.env = Env{
		Ctx:      context.Background(),
		Manager:  m,
		Session:  session.New(r),
		Router:   r,
		Service:  h.store,
		PageSize: pageSize,
		Notify:   func(a alert.Alert) { h.notified = append(h.notified, a) },
	}
	m.Subscribe(func(d view.Data) {
		h.loads = append(h.loads, d)
		if c, ok := h.current.(Closer); ok {
			c.Close()
		}
		p, err := Factories()[d.Type()](h.env, d)
		require.NoError(t, err)
		h.current = p
	})
	return h
}

func (h *harness) open(url string) Page {
	h.t.Helper()
	require.NoError(h.t, h.env.Router.NavigateTo(h.env.Ctx, url))
	return h.current
}

func (h *harness) press(keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		if cmd := h.current.Update(key(k)); cmd != nil {
			last = cmd
		}
	}
	return last
}

func (h *harness) lastLoad() view.Data {
	require.NotEmpty(h.t, h.loads)
	return h.loads[len(h.loads)-1]
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(h *harness, text string) {
	for _, r := range text {
		h.current.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func seedForecasts() []domain.Forecast {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	return []domain.Forecast{
		{Date: day, TemperatureC: 12, Summary: "Mild"},
		{Date: day.AddDate(0, 0, 1), TemperatureC: 30, Summary: "Hot"},
		{Date: day.AddDate(0, 0, 2), TemperatureC: -5, Summary: "Freezing"},
	}
}

func TestRegisterRoutes(t *testing.T) {
	r := route.New(view.NewManager())
	require.NoError(t, RegisterRoutes(r))

	tests := []struct {
		url      string
		wantType view.Type
		wantID   int64
	}{
		{"/", TypeHome, 0},
		{"/forecasts", TypeList, 0},
		{"/forecasts/new", TypeEditor, 0},
		{"/forecasts/7", TypeViewer, 7},
		{"/forecasts/7/edit", TypeEditor, 7},
		{"/counter?count=3", TypeCounter, 0},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			d, err := r.Resolve(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, d.Type())
			assert.Equal(t, tt.wantID, d.RecordID())
		})
	}

	_, err := r.Resolve("/forecasts/abc")
	assert.ErrorIs(t, err, route.ErrNoRoute)
}

func TestFactoriesCoverEveryType(t *testing.T) {
	factories := Factories()
	for _, typ := range Types() {
		assert.Contains(t, factories, typ)
	}
	assert.Len(t, factories, len(Types()))
}

func TestHomeNavigation(t *testing.T) {
	h := newHarness(t, 2, seedForecasts()...)
	home := h.open(URLHome)
	assert.Contains(t, home.View(80, 20), "3 forecasts")

	h.press("f")
	assert.Equal(t, TypeList, h.lastLoad().Type())

	h.open(URLHome)
	h.press("c")
	assert.Equal(t, TypeCounter, h.lastLoad().Type())

	h.open(URLHome)
	h.press("n")
	assert.Equal(t, TypeEditor, h.lastLoad().Type())
}

func TestListPaging(t *testing.T) {
	h := newHarness(t, 2, seedForecasts()...)
	list := h.open(URLForecasts).(*List)

	assert.Equal(t, "Forecasts (page 1 of 2)", list.Title())
	out := list.View(80, 10)
	assert.Contains(t, out, "Mild")
	assert.Contains(t, out, "Hot")
	assert.NotContains(t, out, "Freezing")

	h.press("l")
	page, _ := h.lastLoad().Int64(ParamPage)
	assert.Equal(t, int64(2), page, "page numbers in URLs count from 1")
	second := h.current.(*List)
	assert.Equal(t, "Forecasts (page 2 of 2)", second.Title())
	assert.Contains(t, second.View(80, 10), "Freezing")

	// No page past the last one.
	loads := len(h.loads)
	h.press("l")
	assert.Len(t, h.loads, loads)

	h.press("h")
	assert.Equal(t, "Forecasts (page 1 of 2)", h.current.Title())
}

func TestListCursorAndOpen(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	h.open(URLForecasts)

	h.press("j", "j", "j", "k")
	selected, ok := h.current.(*List).Selected()
	require.True(t, ok)
	assert.Equal(t, "Hot", selected.Summary)

	h.press("enter")
	viewer := h.current.(*Viewer)
	assert.Equal(t, selected.ID, viewer.Forecast().ID)

	h.open(URLForecasts)
	h.press("e")
	assert.Equal(t, TypeEditor, h.lastLoad().Type())
	assert.Equal(t, int64(1), h.lastLoad().RecordID())
}

func TestListFilter(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	h.open(URLForecasts)

	h.press("/")
	require.True(t, h.current.(*List).Filtering())
	typeText(h, "FREEZ")
	h.press("enter")

	d := h.lastLoad()
	assert.Equal(t, "FREEZ", d.String(ParamFilter))
	filtered := h.current.(*List)
	assert.False(t, filtered.Filtering())
	out := filtered.View(80, 10)
	assert.Contains(t, out, "Freezing")
	assert.NotContains(t, out, "Mild")

	h.press("esc")
	assert.Empty(t, h.lastLoad().String(ParamFilter))
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t, 10)
	list := h.open(URLForecasts)
	assert.Contains(t, list.View(80, 10), "No forecasts")
	_, ok := list.(*List).Selected()
	assert.False(t, ok)
	assert.Nil(t, h.press("d"))
}

func TestListDeleteWithModal(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		h := newHarness(t, 10, seedForecasts()...)
		list := h.open(URLForecasts).(*List)

		wait := h.press("d")
		require.NotNil(t, wait)
		modalData, open := h.env.Manager.Modal()
		require.True(t, open)
		assert.Equal(t, TypeConfirmDelete, modalData.Type())

		modal, err := NewConfirmDelete(h.env, modalData)
		require.NoError(t, err)
		assert.Contains(t, modal.View(40, 10), "Mild")
		modal.Update(key("y"))

		msg := wait()
		closed, ok := msg.(ModalClosedMsg)
		require.True(t, ok)
		assert.Equal(t, list.ID(), closed.Opener)
		assert.True(t, closed.Result.Confirmed())

		list.Update(msg)
		assert.Equal(t, alert.Success("Forecast Deleted"), list.Alert())
		count, err := h.store.GetRecordCount(context.Background(), data.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.NotContains(t, list.View(80, 10), "Mild")
	})

	t.Run("cancelled", func(t *testing.T) {
		h := newHarness(t, 10, seedForecasts()...)
		list := h.open(URLForecasts).(*List)

		wait := h.press("d")
		modalData, _ := h.env.Manager.Modal()
		modal, err := NewConfirmDelete(h.env, modalData)
		require.NoError(t, err)
		modal.Update(key("esc"))

		list.Update(wait())
		assert.Equal(t, alert.Info("Delete cancelled"), list.Alert())
		count, err := h.store.GetRecordCount(context.Background(), data.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("other opener ignored", func(t *testing.T) {
		h := newHarness(t, 10, seedForecasts()...)
		list := h.open(URLForecasts).(*List)
		list.Update(ModalClosedMsg{Opener: "someone-else", Result: view.Exit(int64(1))})
		count, err := h.store.GetRecordCount(context.Background(), data.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestConfirmDeleteRequiresID(t *testing.T) {
	h := newHarness(t, 10)
	_, err := NewConfirmDelete(h.env, view.New(TypeConfirmDelete, nil))
	assert.Error(t, err)
}

func TestViewer(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	v := h.open("/forecasts/2")
	out := v.View(80, 10)
	assert.Contains(t, out, "Hot")
	assert.Contains(t, out, "30 °C / 85 °F")
	assert.Equal(t, "Forecast #2", v.Title())

	h.press("e")
	assert.Equal(t, "/forecasts/2/edit", mustURL(t, h))

	h.open("/forecasts/2")
	h.press("esc")
	assert.Equal(t, TypeList, h.lastLoad().Type())
}

func TestViewerDeleteNavigatesToList(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	v := h.open("/forecasts/2").(*Viewer)

	wait := h.press("d")
	require.NotNil(t, wait)
	require.NoError(t, h.env.Manager.CloseModal(view.Exit(int64(2))))
	v.Update(wait())

	assert.Equal(t, TypeList, h.lastLoad().Type())
	require.Len(t, h.notified, 1)
	assert.Equal(t, alert.Success("Forecast Deleted"), h.notified[0])
}

func TestViewerMissingRecord(t *testing.T) {
	h := newHarness(t, 10)
	_, err := NewViewer(h.env, view.New(TypeViewer, map[string]any{view.ParamID: int64(9)}))
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func mustURL(t *testing.T, h *harness) string {
	t.Helper()
	u, err := h.env.Router.URLFor(h.lastLoad())
	require.NoError(t, err)
	return u
}

func TestEditorVetoThenSave(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	ed := h.open("/forecasts/1/edit").(*Editor)
	assert.Equal(t, "Edit forecast #1", ed.Title())
	assert.Equal(t, editor.StateClean, ed.Component().State())

	h.press("tab", "tab")
	typeText(h, "er")
	assert.Equal(t, "Milder", ed.Component().Fields().Value(domain.FieldSummary))
	assert.Equal(t, editor.StateDirty, ed.Component().State())
	assert.Equal(t, alert.Warning(editor.DirtyMessage), ed.Alert())

	// Leaving is vetoed while dirty.
	loads := len(h.loads)
	h.press("esc")
	assert.Len(t, h.loads, loads)
	assert.Same(t, ed, h.current)
	assert.Equal(t, editor.StateExitAttempted, ed.Component().State())
	assert.Equal(t, alert.Danger(editor.ExitAttemptMessage), ed.Alert())
	assert.Equal(t, "/forecasts/1", h.env.Session.NavigationCancelledURL())

	h.press("n")
	assert.Equal(t, editor.StateDirty, ed.Component().State())
	assert.Equal(t, alert.Warning(editor.DirtyMessage), ed.Alert())

	h.press("ctrl+s")
	assert.Equal(t, alert.Success("Forecast Saved"), ed.Alert())
	assert.Equal(t, editor.StateClean, ed.Component().State())

	stored, err := h.store.GetRecord(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Milder", stored.Summary)

	h.press("esc")
	assert.Equal(t, TypeViewer, h.lastLoad().Type())
	assert.Equal(t, int64(1), h.lastLoad().RecordID())
}

func TestEditorConfirmExitDiscards(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	ed := h.open("/forecasts/1/edit").(*Editor)

	h.press("tab")
	h.press("backspace", "backspace")
	typeText(h, "25")
	require.False(t, ed.Component().IsClean())

	// A global navigation is vetoed the same way as esc.
	ok, err := h.env.Session.RequestNavigation(context.Background(), URLCounter)
	require.NoError(t, err)
	assert.False(t, ok)
	require.True(t, ed.Component().ExitAttempt())

	h.press("y")
	assert.Equal(t, TypeCounter, h.lastLoad().Type())
	assert.Nil(t, h.env.Session.ActiveComponent())

	stored, err := h.store.GetRecord(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.TemperatureC)
}

func TestEditorCreate(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	ed := h.open(URLNew).(*Editor)
	assert.Equal(t, "New forecast", ed.Title())
	assert.True(t, ed.Forecast().IsNew())

	h.press("tab")
	typeText(h, "21")
	h.press("tab")
	typeText(h, "Warm")
	h.press("ctrl+s")

	assert.Equal(t, alert.Success("Forecast Saved"), ed.Alert())
	assert.Equal(t, int64(4), ed.Forecast().ID)
	assert.Equal(t, "Edit forecast #4", ed.Title())

	stored, err := h.store.GetRecord(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 21, stored.TemperatureC)
	assert.Equal(t, "Warm", stored.Summary)
	assert.Equal(t, domain.Day(time.Now()), stored.Date)

	// A second save updates the same record.
	typeText(h, "er")
	h.press("ctrl+s")
	count, err := h.store.GetRecordCount(context.Background(), data.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestEditorRejectsUnparsableInput(t *testing.T) {
	h := newHarness(t, 10)
	ed := h.open(URLNew).(*Editor)

	h.press("tab")
	typeText(h, "abc")
	h.press("ctrl+s")

	a := ed.Alert()
	assert.Equal(t, alert.SeverityDanger, a.Severity)
	assert.Contains(t, a.Message, "temperature_c: must be a whole number")
	assert.Equal(t, editor.StateDirty, ed.Component().State())

	count, err := h.store.GetRecordCount(context.Background(), data.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEditorValidationMessages(t *testing.T) {
	h := newHarness(t, 10)
	ed := h.open(URLNew).(*Editor)

	h.press("tab")
	typeText(h, "99")
	h.press("ctrl+s")

	a := ed.Alert()
	assert.Equal(t, alert.SeverityDanger, a.Severity)
	assert.Contains(t, a.Message, "summary: summary is required")
	assert.Contains(t, a.Message, "temperature_c:")
}

func TestEditorCloseReleasesSession(t *testing.T) {
	h := newHarness(t, 10, seedForecasts()...)
	ed := h.open("/forecasts/1/edit").(*Editor)
	require.Equal(t, session.Component(ed.Component()), h.env.Session.ActiveComponent())

	h.open(URLHome)
	assert.Nil(t, h.env.Session.ActiveComponent())
}

func TestCounterLoadAndReload(t *testing.T) {
	h := newHarness(t, 10)
	first := h.open(URLCounter).(*Counter)
	assert.Zero(t, first.Count())

	h.press("+", "+")
	second := h.current.(*Counter)
	assert.Equal(t, int64(2), second.Count())

	h.press("r")
	reloaded := h.current.(*Counter)
	assert.Equal(t, int64(2), reloaded.Count())
	assert.NotEqual(t, second.ID(), reloaded.ID())
	assert.Contains(t, reloaded.View(80, 10), reloaded.ID())

	h.press("-", "0")
	assert.Zero(t, h.current.(*Counter).Count())
}

func TestWaitModalClosedChannel(t *testing.T) {
	ch := make(chan view.ModalResult)
	close(ch)
	msg := WaitModal("opener", ch)().(ModalClosedMsg)
	assert.Equal(t, "opener", msg.Opener)
	assert.False(t, msg.Result.Confirmed())
}
