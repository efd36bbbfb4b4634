package sqlite

import "github.com/cristianoliveira/forecast-desk/internal/data"

var (
	// ErrInvalidRecordID indicates a zero, negative or unexpected record id.
	ErrInvalidRecordID = data.ErrInvalidRecordID
	// ErrRecordNotFound indicates that a forecast cannot be found.
	ErrRecordNotFound = data.ErrRecordNotFound
)
