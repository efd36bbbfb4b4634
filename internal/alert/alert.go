// Package alert provides the single user-facing status notice shown by views.
package alert

import "github.com/cristianoliveira/forecast-desk/internal/data"

// Severity is the colour class of an alert.
type Severity string

const (
	SeverityPrimary Severity = "primary"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Alert is a display-ready message. The zero value shows nothing.
type Alert struct {
	Message  string
	Severity Severity
	IsActive bool
}

// New returns an active alert.
func New(message string, severity Severity) Alert {
	return Alert{Message: message, Severity: severity, IsActive: true}
}

// Clear returns an inactive alert.
func Clear() Alert {
	return Alert{Severity: SeverityPrimary}
}

// Info returns an active info alert.
func Info(message string) Alert { return New(message, SeverityInfo) }

// Success returns an active success alert.
func Success(message string) Alert { return New(message, SeveritySuccess) }

// Warning returns an active warning alert.
func Warning(message string) Alert { return New(message, SeverityWarning) }

// Danger returns an active danger alert.
func Danger(message string) Alert { return New(message, SeverityDanger) }

// FromResult maps a CRUD message kind to an alert. Kinds without a severity
// (none, not-implemented) produce an inactive primary alert.
func FromResult(message string, kind data.MessageKind) Alert {
	switch kind {
	case data.MessageKindError:
		return New(message, SeverityDanger)
	case data.MessageKindInformation:
		return New(message, SeverityInfo)
	case data.MessageKindSuccess:
		return New(message, SeveritySuccess)
	case data.MessageKindWarning:
		return New(message, SeverityWarning)
	default:
		return Alert{Message: message, Severity: SeverityPrimary, IsActive: false}
	}
}

// FromDataResult is FromResult applied to r.
func FromDataResult(r data.Result) Alert {
	return FromResult(r.Message, r.Kind)
}
