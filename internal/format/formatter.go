// Package format renders forecasts for CLI output.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/forecast-desk/internal/domain"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatForecasts formats forecasts and writes them to writer.
	FormatForecasts(forecasts []domain.Forecast, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeDefault displays forecasts in a table with headers.
	FormatterTypeDefault FormatterType = "default"

	// FormatterTypeMinimal displays id and summary, one forecast per line.
	FormatterTypeMinimal FormatterType = "minimal"

	// FormatterTypeTSV displays forecasts in the format import reads.
	FormatterTypeTSV FormatterType = "tsv"

	// FormatterTypeJSON displays forecasts as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// ValidTypes lists the supported formatter types.
func ValidTypes() []FormatterType {
	return []FormatterType{FormatterTypeDefault, FormatterTypeMinimal, FormatterTypeTSV, FormatterTypeJSON}
}

// ParseType validates name. An empty name selects the default table.
func ParseType(name string) (FormatterType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatterTypeDefault, nil
	}
	for _, ft := range ValidTypes() {
		if string(ft) == name {
			return ft, nil
		}
	}
	names := make([]string, 0, len(ValidTypes()))
	for _, ft := range ValidTypes() {
		names = append(names, string(ft))
	}
	return "", fmt.Errorf("invalid format: %s (must be one of %s)", name, strings.Join(names, ", "))
}

// NewFormatter creates a new formatter of the specified type.
// Dates in the table use dateLayout.
func NewFormatter(formatterType FormatterType, dateLayout string) Formatter {
	switch formatterType {
	case FormatterTypeMinimal:
		return NewMinimalFormatter()
	case FormatterTypeTSV:
		return NewTSVFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter(dateLayout)
	}
}
