package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/storage/sqlite"
)

// MinimalFormatter writes "id<TAB>summary" lines.
type MinimalFormatter struct{}

// NewMinimalFormatter creates a new MinimalFormatter.
func NewMinimalFormatter() *MinimalFormatter {
	return &MinimalFormatter{}
}

// FormatForecasts writes one line per forecast.
func (f *MinimalFormatter) FormatForecasts(forecasts []domain.Forecast, writer io.Writer) error {
	for _, fc := range forecasts {
		if _, err := fmt.Fprintf(writer, "%d\t%s\n", fc.ID, fc.Summary); err != nil {
			return err
		}
	}
	return nil
}

// TSVFormatter writes the lines read back by import.
type TSVFormatter struct{}

// NewTSVFormatter creates a new TSVFormatter.
func NewTSVFormatter() *TSVFormatter {
	return &TSVFormatter{}
}

// FormatForecasts writes forecasts as TSV.
func (f *TSVFormatter) FormatForecasts(forecasts []domain.Forecast, writer io.Writer) error {
	return sqlite.ExportTSV(writer, forecasts)
}

// JSONFormatter formats forecasts as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonForecast struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	TemperatureC int    `json:"temperature_c"`
	TemperatureF int    `json:"temperature_f"`
	Summary      string `json:"summary"`
}

// FormatForecasts formats forecasts as an indented JSON array.
func (f *JSONFormatter) FormatForecasts(forecasts []domain.Forecast, writer io.Writer) error {
	out := make([]jsonForecast, len(forecasts))
	for i, fc := range forecasts {
		out[i] = jsonForecast{
			ID:           fc.ID,
			Date:         fc.Date.Format("2006-01-02"),
			TemperatureC: fc.TemperatureC,
			TemperatureF: fc.TemperatureF(),
			Summary:      fc.Summary,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal forecasts to JSON: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}
