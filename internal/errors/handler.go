// Package errors reports user-facing messages and CRUD results to the CLI or
// the TUI.
package errors

import (
	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/data"
)

// ErrorHandler receives user-facing messages by severity.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput prints messages in colour.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput.
type CLIHandler struct {
	colors ColorOutput
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler creates a handler writing to out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{colors: out}
}

// NewDefaultCLIHandler creates a handler printing to the terminal.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(terminal{})
}

// terminal is the ColorOutput of the colors package.
type terminal struct{}

func (terminal) Error(msgs ...string)   { colors.Error(msgs...) }
func (terminal) Warning(msgs ...string) { colors.Warning(msgs...) }
func (terminal) Info(msgs ...string)    { colors.Info(msgs...) }
func (terminal) Success(msgs ...string) { colors.Success(msgs...) }

func (h *CLIHandler) Error(msg string) {
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Report sends a CRUD result to h using the severity of its kind.
// Results of kind none carry nothing to show and are dropped.
func Report(h ErrorHandler, r data.Result) {
	msg := r.Message
	if msg == "" && r.Err != nil {
		msg = r.Err.Error()
	}
	if msg == "" {
		return
	}
	switch r.Kind {
	case data.MessageKindError:
		h.Error(msg)
	case data.MessageKindWarning, data.MessageKindNotImplemented:
		h.Warning(msg)
	case data.MessageKindInformation:
		h.Info(msg)
	case data.MessageKindSuccess:
		h.Success(msg)
	}
}

// ReportError sends err to h as an error message. A nil err is ignored.
func ReportError(h ErrorHandler, err error) {
	if err == nil {
		return
	}
	h.Error(err.Error())
}
