package view

import (
	"context"
	"testing"

	"github.com/cristianoliveira/forecast-desk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	typeHome   Type = "home"
	typeList   Type = "list"
	typeEditor Type = "editor"
	typeModal  Type = "confirm"
)

func newTestManager() *Manager {
	return NewManager(
		WithKnownTypes(typeHome, typeList, typeEditor, typeModal),
		WithLogger(logging.Nop()),
	)
}

func TestLoadViewSetsCurrentAndNotifies(t *testing.T) {
	m := newTestManager()
	var got []Data
	m.Subscribe(func(d Data) { got = append(got, d) })

	_, ok := m.Current()
	assert.False(t, ok)

	require.NoError(t, m.LoadView(context.Background(), New(typeList, map[string]any{"page": 2})))

	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, typeList, current.Type())
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(current))
}

func TestLoadingSameViewTwiceNotifiesTwice(t *testing.T) {
	m := newTestManager()
	count := 0
	m.Subscribe(func(Data) { count++ })

	d := New(typeHome, nil)
	require.NoError(t, m.LoadView(context.Background(), d))
	require.NoError(t, m.LoadView(context.Background(), d))

	assert.Equal(t, 2, count)
}

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	m := newTestManager()
	var order []string
	m.Subscribe(func(Data) { order = append(order, "first") })
	m.Subscribe(func(Data) { order = append(order, "second") })
	m.Subscribe(func(Data) { order = append(order, "third") })

	require.NoError(t, m.LoadView(context.Background(), New(typeHome, nil)))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestReentrantLoadIsQueued(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	var seen []string

	m.Subscribe(func(d Data) {
		seen = append(seen, "a:"+string(d.Type()))
		if d.Type() == typeHome {
			require.NoError(t, m.LoadView(ctx, New(typeList, nil)))
			require.NoError(t, m.LoadView(ctx, New(typeEditor, nil)))
		}
	})
	m.Subscribe(func(d Data) {
		seen = append(seen, "b:"+string(d.Type()))
	})

	require.NoError(t, m.LoadView(ctx, New(typeHome, nil)))

	assert.Equal(t, []string{
		"a:home", "b:home",
		"a:list", "b:list",
		"a:editor", "b:editor",
	}, seen, "every subscriber sees a load before the next one starts")

	current, _ := m.Current()
	assert.Equal(t, typeEditor, current.Type())
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	m := newTestManager()
	var unsubscribeSecond func()
	secondCalls := 0

	m.Subscribe(func(Data) { unsubscribeSecond() })
	unsubscribeSecond = m.Subscribe(func(Data) { secondCalls++ })

	require.NoError(t, m.LoadView(context.Background(), New(typeHome, nil)))
	require.NoError(t, m.LoadView(context.Background(), New(typeHome, nil)))

	assert.Equal(t, 0, secondCalls)
}

func TestUnknownViewTypeIsRejected(t *testing.T) {
	m := newTestManager()
	called := false
	m.Subscribe(func(Data) { called = true })

	err := m.LoadView(context.Background(), New("missing", nil))
	require.ErrorIs(t, err, ErrUnknownView)

	err = m.LoadView(context.Background(), Data{})
	require.ErrorIs(t, err, ErrUnknownView)

	assert.False(t, called)
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestManagerWithoutKnownTypesAcceptsAnyNonEmptyType(t *testing.T) {
	m := NewManager(WithLogger(logging.Nop()))

	require.NoError(t, m.LoadView(context.Background(), New("anything", nil)))
	require.ErrorIs(t, m.LoadView(context.Background(), New("", nil)), ErrUnknownView)
}

func TestLoadViewHonoursCancelledContext(t *testing.T) {
	m := newTestManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.LoadView(ctx, New(typeHome, nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestReload(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	require.ErrorIs(t, m.Reload(ctx), ErrNoCurrentView)

	var got []Data
	m.Subscribe(func(d Data) { got = append(got, d) })
	d := New(typeEditor, map[string]any{ParamID: int64(4)})
	require.NoError(t, m.LoadView(ctx, d))
	require.NoError(t, m.Reload(ctx))

	require.Len(t, got, 2)
	assert.True(t, got[1].Equal(d))
}

func TestRestoreFromSubscriberKeepsPreviousView(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	editor := New(typeEditor, map[string]any{ParamID: int64(4)})
	require.NoError(t, m.LoadView(ctx, editor))

	calls := 0
	m.Subscribe(func(d Data) {
		calls++
		if d.Type() == typeList {
			m.Restore(editor)
		}
	})
	require.NoError(t, m.LoadView(ctx, New(typeList, nil)))

	current, ok := m.Current()
	require.True(t, ok)
	assert.True(t, current.Equal(editor))
	assert.Equal(t, 1, calls, "restore does not notify")

	require.NoError(t, m.Reload(ctx))
	assert.Equal(t, 2, calls)
	current, _ = m.Current()
	assert.True(t, current.Equal(editor))
}

func TestOpenModalDeliversExactlyOneResult(t *testing.T) {
	m := newTestManager()
	var events []bool
	m.SubscribeModal(func(d Data, open bool) {
		assert.Equal(t, typeModal, d.Type())
		events = append(events, open)
	})

	results, err := m.OpenModal(context.Background(), typeModal, map[string]any{ParamID: 9})
	require.NoError(t, err)

	d, ok := m.Modal()
	require.True(t, ok)
	assert.Equal(t, int64(9), d.RecordID())

	require.NoError(t, m.CloseModal(Exit("yes")))

	result, ok := <-results
	require.True(t, ok)
	assert.True(t, result.Confirmed())
	assert.Equal(t, "yes", result.Data)

	_, ok = <-results
	assert.False(t, ok, "channel is closed after the single result")

	_, ok = m.Modal()
	assert.False(t, ok)
	assert.Equal(t, []bool{true, false}, events)
}

func TestOpenModalTwiceFails(t *testing.T) {
	m := newTestManager()
	_, err := m.OpenModal(context.Background(), typeModal, nil)
	require.NoError(t, err)

	_, err = m.OpenModal(context.Background(), typeModal, nil)
	require.ErrorIs(t, err, ErrModalOpen)
}

func TestCloseModalWithoutModal(t *testing.T) {
	m := newTestManager()
	require.ErrorIs(t, m.CloseModal(Cancel()), ErrNoModal)

	_, err := m.OpenModal(context.Background(), typeModal, nil)
	require.NoError(t, err)
	require.NoError(t, m.CloseModal(Cancel()))
	require.ErrorIs(t, m.CloseModal(Cancel()), ErrNoModal, "a second close is rejected")
}

func TestModalDoesNotReplaceCurrentView(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	require.NoError(t, m.LoadView(ctx, New(typeList, nil)))

	_, err := m.OpenModal(ctx, typeModal, nil)
	require.NoError(t, err)

	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, typeList, current.Type())
}

func TestOpenModalRejectsUnknownTypeAndCancelledContext(t *testing.T) {
	m := newTestManager()
	_, err := m.OpenModal(context.Background(), "nope", nil)
	require.ErrorIs(t, err, ErrUnknownView)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.OpenModal(ctx, typeModal, nil)
	require.ErrorIs(t, err, context.Canceled)
	_, ok := m.Modal()
	assert.False(t, ok)
}

func TestModalResultZeroValueIsCancel(t *testing.T) {
	var r ModalResult
	assert.False(t, r.Confirmed())
	assert.Equal(t, "cancel", r.Kind.String())
	assert.Equal(t, "exit", Exit(nil).Kind.String())
}

func TestBaseViewIdentity(t *testing.T) {
	m := newTestManager()
	a := NewBase(m)
	b := NewBase(m)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, m, a.Manager())

	var loaded Data
	m.Subscribe(func(d Data) { loaded = d })
	require.NoError(t, Load(context.Background(), a, typeHome, nil))
	assert.Equal(t, typeHome, loaded.Type())
	require.NoError(t, Reload(context.Background(), b))
}
