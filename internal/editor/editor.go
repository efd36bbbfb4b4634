// Package editor implements the dirty-tracking behaviour shared by every
// editable form.
//
// An Editor moves between three states:
//
//	Clean  -- field changed -->  Dirty  -- navigation vetoed -->  ExitAttempted
//	Dirty  -- edits reverted or saved -->  Clean
//	ExitAttempted  -- cancel -->  Dirty
//	ExitAttempted  -- confirm -->  Clean, then the vetoed navigation resumes
//
// Every transition replaces the alert shown above the form.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/logging"
	"github.com/cristianoliveira/forecast-desk/internal/session"
)

// Alert texts shown by the editor.
const (
	DirtyMessage       = "The record has unsaved changes."
	ExitAttemptMessage = "RECORD ISN'T SAVED. Save it, confirm exit to discard the changes, or cancel to keep editing."
)

// ErrNotAttached indicates an operation that needs a session before Attach.
var ErrNotAttached = errors.New("editor not attached to a session")

// State is the dirty-tracking state of an editor.
type State int

const (
	StateClean State = iota
	StateDirty
	StateExitAttempted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateExitAttempted:
		return "exit-attempted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Editor holds the dirty state of one form bound to a record type.
type Editor[T data.Record] struct {
	service   data.Service[T]
	validator data.Validator[T]
	fields    *EditContext

	session     *session.Service
	unsubscribe func()

	clean       bool
	exitAttempt bool
	alert       alert.Alert
	beforeExit  alert.Alert

	logger logging.Logger
}

// New creates a clean editor. validator may be nil.
func New[T data.Record](service data.Service[T], validator data.Validator[T]) *Editor[T] {
	return &Editor[T]{
		service:   service,
		validator: validator,
		fields:    NewEditContext(),
		clean:     true,
		alert:     alert.Clear(),
		logger:    logging.With("component", "editor"),
	}
}

// Attach registers the editor as the session's active component and starts
// listening for vetoed navigations.
func (e *Editor[T]) Attach(s *session.Service) {
	if e.session != nil {
		e.Detach()
	}
	e.session = s
	s.SetActiveComponent(e)
	e.unsubscribe = s.OnNavigationCancelled(e.HandleNavigationCancelled)
}

// Detach stops listening and releases the active component slot if the
// editor still holds it.
func (e *Editor[T]) Detach() {
	if e.session == nil {
		return
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.session.Release(e)
	e.session = nil
}

// Fields returns the edit context backing the form.
func (e *Editor[T]) Fields() *EditContext {
	return e.fields
}

// IsClean reports whether the record has no unsaved edits.
func (e *Editor[T]) IsClean() bool {
	return e.clean
}

// ExitAttempt reports whether an exit confirmation is pending.
func (e *Editor[T]) ExitAttempt() bool {
	return e.exitAttempt
}

// Alert returns the alert to render above the form.
func (e *Editor[T]) Alert() alert.Alert {
	return e.alert
}

// State returns the current dirty-tracking state.
func (e *Editor[T]) State() State {
	switch {
	case e.clean:
		return StateClean
	case e.exitAttempt:
		return StateExitAttempted
	default:
		return StateDirty
	}
}

// SetField updates a tracked field and feeds the result to HandleFieldChanged.
func (e *Editor[T]) SetField(name, value string) error {
	modified, err := e.fields.Set(name, value)
	if err != nil {
		return err
	}
	e.HandleFieldChanged(modified)
	return nil
}

// HandleFieldChanged applies a field-change notification. modified reports
// whether the record as a whole differs from what was loaded.
func (e *Editor[T]) HandleFieldChanged(modified bool) {
	if !modified {
		e.clean = true
		e.exitAttempt = false
		e.alert = alert.Clear()
		return
	}
	e.clean = false
	if e.exitAttempt {
		return
	}
	e.alert = alert.Warning(DirtyMessage)
}

// HandleNavigationCancelled reacts to a vetoed navigation. Events meant for
// another component, or arriving while the record is clean, are ignored.
func (e *Editor[T]) HandleNavigationCancelled(evt session.NavigationCancelled) {
	if evt.Component != nil && evt.Component != session.Component(e) {
		return
	}
	if e.clean {
		e.logger.Debug("navigation cancel ignored, record is clean", "url", evt.URL)
		return
	}
	if !e.exitAttempt {
		e.beforeExit = e.alert
	}
	e.exitAttempt = true
	e.alert = alert.Danger(ExitAttemptMessage)
}

// CancelExit drops a pending exit attempt and restores the previous alert.
func (e *Editor[T]) CancelExit() {
	if !e.exitAttempt {
		return
	}
	e.exitAttempt = false
	e.alert = e.beforeExit
	e.beforeExit = alert.Alert{}
}

// ConfirmExit discards the edits and performs the navigation that was vetoed,
// or goes to the root view when none was stored.
func (e *Editor[T]) ConfirmExit(ctx context.Context) error {
	if e.session == nil {
		return fmt.Errorf("editor: confirm exit: %w", ErrNotAttached)
	}
	e.fields.Reset()
	e.clean = true
	e.exitAttempt = false
	e.beforeExit = alert.Alert{}
	e.alert = alert.Clear()
	if err := e.session.ResumeNavigation(ctx); err != nil {
		return fmt.Errorf("editor: confirm exit: %w", err)
	}
	return nil
}

// Reject shows validation messages as a danger alert without saving. The
// dirty state is unchanged.
func (e *Editor[T]) Reject(msgs []data.ValidationMessage) data.Result {
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.String()
	}
	result := data.Result{Kind: data.MessageKindError, Message: strings.Join(lines, "; ")}
	e.alert = alert.FromDataResult(result)
	e.logger.Debug("save rejected by validation", "messages", len(msgs))
	return result
}

// Save validates record and creates it (id 0) or updates it. The returned
// Result is also reflected in the alert. A successful save makes the editor
// clean.
func (e *Editor[T]) Save(ctx context.Context, record T) data.Result {
	if e.validator != nil {
		if msgs := e.validator.Validate(record); len(msgs) > 0 {
			return e.Reject(msgs)
		}
	}

	var result data.Result
	if record.RecordID() == 0 {
		result = e.service.CreateRecord(ctx, record)
	} else {
		result = e.service.UpdateRecord(ctx, record)
	}

	e.alert = alert.FromDataResult(result)
	if !result.Success {
		e.logger.Error("save failed", "id", record.RecordID(), "message", result.Message, "error", result.Err)
		return result
	}

	e.fields.MarkUnmodified()
	e.clean = true
	e.exitAttempt = false
	e.beforeExit = alert.Alert{}
	e.logger.Info("record saved", "id", record.RecordID(), "new_id", result.NewID)
	return result
}
