package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockForecastService is a mock implementation of data.Service for forecasts.
type MockForecastService struct {
	mock.Mock
}

func (m *MockForecastService) GetRecord(ctx context.Context, id int64) (domain.Forecast, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Forecast), args.Error(1)
}

func (m *MockForecastService) GetRecordList(ctx context.Context, filter data.Filter) ([]domain.Forecast, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Forecast), args.Error(1)
}

func (m *MockForecastService) GetRecordCount(ctx context.Context, filter data.Filter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockForecastService) CreateRecord(ctx context.Context, record domain.Forecast) data.Result {
	args := m.Called(ctx, record)
	return args.Get(0).(data.Result)
}

func (m *MockForecastService) UpdateRecord(ctx context.Context, record domain.Forecast) data.Result {
	args := m.Called(ctx, record)
	return args.Get(0).(data.Result)
}

func (m *MockForecastService) DeleteRecord(ctx context.Context, record domain.Forecast) data.Result {
	args := m.Called(ctx, record)
	return args.Get(0).(data.Result)
}

type recordingNavigator struct {
	urls []string
}

func (r *recordingNavigator) NavigateTo(_ context.Context, url string) error {
	r.urls = append(r.urls, url)
	return nil
}

type fixture struct {
	editor  *Editor[domain.Forecast]
	service *MockForecastService
	session *session.Service
	nav     *recordingNavigator
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	svc := new(MockForecastService)
	nav := &recordingNavigator{}
	s := session.New(nav)
	e := New[domain.Forecast](svc, domain.Validator{})
	e.Fields().Track(domain.FieldSummary, "Mild")
	e.Fields().Track(domain.FieldTemperatureC, "12")
	e.Attach(s)
	return fixture{editor: e, service: svc, session: s, nav: nav}
}

func sampleForecast() domain.Forecast {
	return domain.Forecast{
		ID:           7,
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		TemperatureC: 12,
		Summary:      "Warm",
	}
}

func TestNewEditorStartsClean(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.editor.IsClean())
	assert.Equal(t, StateClean, f.editor.State())
	assert.False(t, f.editor.Alert().IsActive)
	assert.Same(t, f.editor, f.session.ActiveComponent())
}

func TestFieldChangeMakesDirtyAndRevertMakesClean(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Warm"))
	assert.Equal(t, StateDirty, f.editor.State())
	assert.Equal(t, alert.Warning(DirtyMessage), f.editor.Alert())

	require.NoError(t, f.editor.SetField(domain.FieldTemperatureC, "20"))
	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Mild"))
	assert.Equal(t, StateDirty, f.editor.State(), "temperature is still modified")

	require.NoError(t, f.editor.SetField(domain.FieldTemperatureC, "12"))
	assert.True(t, f.editor.IsClean())
	assert.False(t, f.editor.Alert().IsActive)
}

func TestAnySequenceEndingUnmodifiedIsClean(t *testing.T) {
	sequences := [][]bool{
		{false},
		{true, false},
		{true, true, true, false},
		{false, true, false},
	}
	for _, seq := range sequences {
		f := newFixture(t)
		for _, modified := range seq {
			f.editor.HandleFieldChanged(modified)
		}
		assert.True(t, f.editor.IsClean(), "sequence %v", seq)
		assert.False(t, f.editor.Alert().IsActive, "sequence %v", seq)
	}
}

func TestSetUnknownField(t *testing.T) {
	f := newFixture(t)
	err := f.editor.SetField("humidity", "40")
	require.ErrorIs(t, err, ErrUnknownField)
	assert.True(t, f.editor.IsClean())
}

func TestEditNavigateCancelSaveScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Warm"))
	assert.Equal(t, StateDirty, f.editor.State())
	assert.Equal(t, alert.SeverityWarning, f.editor.Alert().Severity)

	navigated, err := f.session.RequestNavigation(ctx, "/forecasts")
	require.NoError(t, err)
	assert.False(t, navigated)
	assert.Empty(t, f.nav.urls, "navigation must not complete while dirty")
	assert.Equal(t, StateExitAttempted, f.editor.State())
	assert.Equal(t, alert.Danger(ExitAttemptMessage), f.editor.Alert())

	f.editor.CancelExit()
	assert.Equal(t, StateDirty, f.editor.State())
	assert.Equal(t, alert.Warning(DirtyMessage), f.editor.Alert())

	record := sampleForecast()
	f.service.On("UpdateRecord", ctx, record).Return(data.Succeeded("Forecast Saved", 0)).Once()

	result := f.editor.Save(ctx, record)

	assert.True(t, result.Success)
	assert.Equal(t, StateClean, f.editor.State())
	assert.Equal(t, alert.Success("Forecast Saved"), f.editor.Alert())
	assert.Empty(t, f.nav.urls)
	f.service.AssertExpectations(t)
}

func TestConfirmExitNavigatesToStoredURLOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Hot"))
	_, err := f.session.RequestNavigation(ctx, "/forecasts/3")
	require.NoError(t, err)
	require.Equal(t, StateExitAttempted, f.editor.State())

	require.NoError(t, f.editor.ConfirmExit(ctx))

	assert.Equal(t, StateClean, f.editor.State())
	assert.False(t, f.editor.Alert().IsActive)
	assert.Equal(t, "Mild", f.editor.Fields().Value(domain.FieldSummary), "edits are discarded")
	assert.Equal(t, []string{"/forecasts/3"}, f.nav.urls)
	assert.Empty(t, f.session.NavigationCancelledURL())
}

func TestConfirmExitWithoutStoredURLGoesToRoot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Hot"))
	f.session.Cancel("")
	require.Equal(t, StateExitAttempted, f.editor.State())

	require.NoError(t, f.editor.ConfirmExit(ctx))
	assert.Equal(t, []string{session.DefaultURL}, f.nav.urls)
}

func TestConfirmExitRequiresSession(t *testing.T) {
	e := New[domain.Forecast](new(MockForecastService), nil)
	require.ErrorIs(t, e.ConfirmExit(context.Background()), ErrNotAttached)
}

func TestFieldChangeWhileExitAttempted(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Hot"))
	f.session.Cancel("/counter")

	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Balmy"))
	assert.Equal(t, StateExitAttempted, f.editor.State(), "still dirty keeps the confirmation")
	assert.Equal(t, alert.SeverityDanger, f.editor.Alert().Severity)

	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Mild"))
	assert.Equal(t, StateClean, f.editor.State())
	assert.False(t, f.editor.Alert().IsActive)
	assert.Empty(t, f.nav.urls, "reverting never resumes the navigation")
}

func TestNavigationCancelledIgnoredWhenClean(t *testing.T) {
	f := newFixture(t)
	f.session.Cancel("/forecasts")
	assert.Equal(t, StateClean, f.editor.State())
	assert.False(t, f.editor.Alert().IsActive)
}

func TestNavigationCancelledForOtherComponentIsIgnored(t *testing.T) {
	f := newFixture(t)
	other := New[domain.Forecast](f.service, nil)

	f.editor.HandleFieldChanged(true)
	f.editor.HandleNavigationCancelled(session.NavigationCancelled{URL: "/x", Component: other})

	assert.Equal(t, StateDirty, f.editor.State())
}

func TestCancelExitWithoutAttemptIsNoop(t *testing.T) {
	f := newFixture(t)
	f.editor.HandleFieldChanged(true)
	f.editor.CancelExit()
	assert.Equal(t, StateDirty, f.editor.State())
	assert.Equal(t, alert.Warning(DirtyMessage), f.editor.Alert())
}

func TestSaveCreatesNewRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := sampleForecast()
	record.ID = 0

	f.service.On("CreateRecord", ctx, record).Return(data.Succeeded("Forecast Saved", 41)).Once()
	f.editor.HandleFieldChanged(true)

	result := f.editor.Save(ctx, record)

	assert.Equal(t, int64(41), result.NewID)
	assert.True(t, f.editor.IsClean())
	f.service.AssertExpectations(t)
	f.service.AssertNotCalled(t, "UpdateRecord", mock.Anything, mock.Anything)
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := sampleForecast()
	boom := errors.New("disk full")

	f.service.On("UpdateRecord", ctx, record).Return(data.Failed("", boom)).Once()
	require.NoError(t, f.editor.SetField(domain.FieldSummary, "Warm"))

	result := f.editor.Save(ctx, record)

	assert.False(t, result.Success)
	require.ErrorIs(t, result.Err, boom)
	assert.Equal(t, StateDirty, f.editor.State())
	assert.Equal(t, alert.Danger("disk full"), f.editor.Alert())
}

func TestSaveValidationFailureSkipsService(t *testing.T) {
	f := newFixture(t)
	record := domain.Forecast{ID: 3, TemperatureC: 99}
	f.editor.HandleFieldChanged(true)

	result := f.editor.Save(context.Background(), record)

	assert.False(t, result.Success)
	assert.Equal(t, data.MessageKindError, result.Kind)
	assert.Contains(t, result.Message, "date: date is required")
	assert.Contains(t, result.Message, "summary: summary is required")
	assert.Equal(t, alert.SeverityDanger, f.editor.Alert().Severity)
	assert.Equal(t, StateDirty, f.editor.State())
	f.service.AssertNotCalled(t, "UpdateRecord", mock.Anything, mock.Anything)
}

func TestDetachReleasesSession(t *testing.T) {
	f := newFixture(t)
	f.editor.HandleFieldChanged(true)

	f.editor.Detach()
	assert.Nil(t, f.session.ActiveComponent())

	navigated, err := f.session.RequestNavigation(context.Background(), "/")
	require.NoError(t, err)
	assert.True(t, navigated, "a detached dirty editor no longer blocks")
	assert.Equal(t, StateDirty, f.editor.State(), "detached editor hears no cancellations")
}

func TestAttachReplacesPreviousEditor(t *testing.T) {
	f := newFixture(t)
	second := New[domain.Forecast](f.service, nil)
	second.Attach(f.session)

	assert.Same(t, second, f.session.ActiveComponent())

	f.editor.Detach()
	assert.Same(t, second, f.session.ActiveComponent(), "detaching a replaced editor keeps the new one")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "clean", StateClean.String())
	assert.Equal(t, "dirty", StateDirty.String())
	assert.Equal(t, "exit-attempted", StateExitAttempted.String())
}

func TestRejectShowsMessagesWithoutChangingState(t *testing.T) {
	f := newFixture(t)
	f.editor.HandleFieldChanged(true)

	result := f.editor.Reject([]data.ValidationMessage{
		{Field: domain.FieldDate, Message: "use YYYY-MM-DD"},
		{Message: "check the form"},
	})

	assert.False(t, result.Success)
	assert.Equal(t, "date: use YYYY-MM-DD; check the form", result.Message)
	assert.Equal(t, alert.Danger(result.Message), f.editor.Alert())
	assert.Equal(t, StateDirty, f.editor.State())
}
