// Package domain provides the weather forecast record and its rules.
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cristianoliveira/forecast-desk/internal/data"
)

// Field names used by the editor and by validation messages.
const (
	FieldDate         = "date"
	FieldTemperatureC = "temperature_c"
	FieldSummary      = "summary"
)

// Temperature bounds accepted for a forecast, in degrees Celsius.
const (
	MinTemperatureC = -60
	MaxTemperatureC = 60
)

// MaxSummaryLength caps the summary text.
const MaxSummaryLength = 64

// Summaries are the canonical one-word descriptions, coldest first.
var Summaries = []string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild",
	"Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

// Forecast is a single daily weather forecast.
type Forecast struct {
	ID           int64
	Date         time.Time
	TemperatureC int
	Summary      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var _ data.Record = Forecast{}

// RecordID returns the forecast id, 0 for a record not yet stored.
func (f Forecast) RecordID() int64 {
	return f.ID
}

// IsNew reports whether the forecast has never been stored.
func (f Forecast) IsNew() bool {
	return f.ID == 0
}

// TemperatureF converts TemperatureC to Fahrenheit, truncating.
func (f Forecast) TemperatureF() int {
	return 32 + int(float64(f.TemperatureC)/0.5556)
}

// Day returns the forecast date truncated to a UTC calendar day.
func (f Forecast) Day() time.Time {
	return Day(f.Date)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SummaryFor picks the canonical summary closest to a temperature.
func SummaryFor(temperatureC int) string {
	switch {
	case temperatureC <= -10:
		return "Freezing"
	case temperatureC <= -5:
		return "Bracing"
	case temperatureC <= 0:
		return "Chilly"
	case temperatureC <= 8:
		return "Cool"
	case temperatureC <= 15:
		return "Mild"
	case temperatureC <= 21:
		return "Warm"
	case temperatureC <= 26:
		return "Balmy"
	case temperatureC <= 32:
		return "Hot"
	case temperatureC <= 38:
		return "Sweltering"
	default:
		return "Scorching"
	}
}

// Validator checks the forecast field rules.
type Validator struct{}

var _ data.Validator[Forecast] = Validator{}

// Validate returns one message per broken rule, in field order.
func (Validator) Validate(f Forecast) []data.ValidationMessage {
	var msgs []data.ValidationMessage
	if f.Date.IsZero() {
		msgs = append(msgs, data.ValidationMessage{Field: FieldDate, Message: "date is required"})
	}
	if f.TemperatureC < MinTemperatureC || f.TemperatureC > MaxTemperatureC {
		msgs = append(msgs, data.ValidationMessage{
			Field:   FieldTemperatureC,
			Message: fmt.Sprintf("temperature must be between %d and %d", MinTemperatureC, MaxTemperatureC),
		})
	}
	summary := strings.TrimSpace(f.Summary)
	switch {
	case summary == "":
		msgs = append(msgs, data.ValidationMessage{Field: FieldSummary, Message: "summary is required"})
	case utf8.RuneCountInString(summary) > MaxSummaryLength:
		msgs = append(msgs, data.ValidationMessage{
			Field:   FieldSummary,
			Message: fmt.Sprintf("summary must be at most %d characters", MaxSummaryLength),
		})
	}
	return msgs
}

// Result messages shown to the user after a write.
const (
	MessageSaved   = "Forecast Saved"
	MessageDeleted = "Forecast Deleted"
)

// ImportStats summarizes an import run.
type ImportStats struct {
	TotalRows     int
	ImportedRows  int
	SkippedRows   int
	DuplicateRows int
	Warnings      []string
}
