// Package data defines the CRUD contracts that views and editors use to reach
// persistence and validation services.
package data

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound indicates that no record has the requested id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidRecordID indicates a zero, negative or unexpected record id.
	ErrInvalidRecordID = errors.New("invalid record ID")
)

// MessageKind classifies the message carried by a Result.
type MessageKind int

const (
	MessageKindNone MessageKind = iota
	MessageKindSuccess
	MessageKindError
	MessageKindWarning
	MessageKindInformation
	MessageKindNotImplemented
)

// String returns the lowercase name of the kind.
func (k MessageKind) String() string {
	switch k {
	case MessageKindNone:
		return "none"
	case MessageKindSuccess:
		return "success"
	case MessageKindError:
		return "error"
	case MessageKindWarning:
		return "warning"
	case MessageKindInformation:
		return "information"
	case MessageKindNotImplemented:
		return "not-implemented"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of a create, update or delete call.
type Result struct {
	Success bool
	Message string
	Kind    MessageKind
	// NewID is set by CreateRecord on success.
	NewID int64
	// Err is the underlying cause when Success is false.
	Err error
}

// Succeeded builds a successful Result.
func Succeeded(message string, newID int64) Result {
	return Result{Success: true, Message: message, Kind: MessageKindSuccess, NewID: newID}
}

// Failed builds a failed Result from err.
func Failed(message string, err error) Result {
	if err != nil && message == "" {
		message = err.Error()
	}
	return Result{Success: false, Message: message, Kind: MessageKindError, Err: err}
}

// NotImplemented builds a Result for operations a service does not support.
func NotImplemented(op string) Result {
	return Result{Message: op + " is not implemented", Kind: MessageKindNotImplemented}
}

// Record is implemented by every persisted record type.
type Record interface {
	RecordID() int64
}

// Service is the CRUD contract for a record type.
type Service[T Record] interface {
	GetRecord(ctx context.Context, id int64) (T, error)
	GetRecordList(ctx context.Context, filter Filter) ([]T, error)
	GetRecordCount(ctx context.Context, filter Filter) (int, error)
	CreateRecord(ctx context.Context, record T) Result
	UpdateRecord(ctx context.Context, record T) Result
	DeleteRecord(ctx context.Context, record T) Result
}

// ValidationMessage is a single failed rule for a field.
type ValidationMessage struct {
	Field   string
	Message string
}

// String formats the message as "field: message".
func (m ValidationMessage) String() string {
	if m.Field == "" {
		return m.Message
	}
	return m.Field + ": " + m.Message
}

// Validator checks a record before it is created or updated.
type Validator[T Record] interface {
	Validate(record T) []ValidationMessage
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc[T Record] func(record T) []ValidationMessage

// Validate calls f(record).
func (f ValidatorFunc[T]) Validate(record T) []ValidationMessage {
	return f(record)
}
