package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":      5,
			"Date":    10,
			"°C":      4,
			"°F":      4,
			"Summary": 32,
		},
		ColumnAlignments: map[string]string{
			"ID": "right",
			"°C": "right",
			"°F": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the cell text from a forecast.
	Extractor func(domain.Forecast) string
}

// TableFormatter writes forecasts as an aligned table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter(dateLayout string) *TableFormatter {
	if dateLayout == "" {
		dateLayout = "2006-01-02"
	}
	config := DefaultTableConfig()
	column := func(name string, value func(domain.Forecast) string) TableColumn {
		width, align := config.ColumnWidths[name], config.ColumnAlignments[name]
		return TableColumn{
			Name:      name,
			Width:     width,
			Alignment: align,
			Extractor: func(f domain.Forecast) string { return formatString(value(f), width, align) },
		}
	}
	columns := []TableColumn{
		column("ID", func(f domain.Forecast) string { return fmt.Sprintf("%d", f.ID) }),
		column("Date", func(f domain.Forecast) string { return f.Date.Format(dateLayout) }),
		column("°C", func(f domain.Forecast) string { return fmt.Sprintf("%d", f.TemperatureC) }),
		column("°F", func(f domain.Forecast) string { return fmt.Sprintf("%d", f.TemperatureF()) }),
		{
			Name:  "Summary",
			Width: config.ColumnWidths["Summary"],
			Extractor: func(f domain.Forecast) string {
				return truncateString(f.Summary, config.ColumnWidths["Summary"])
			},
		},
	}
	return &TableFormatter{config: config, columns: columns}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatForecasts writes the table, or a single notice when there is nothing to show.
func (f *TableFormatter) FormatForecasts(forecasts []domain.Forecast, writer io.Writer) error {
	if len(forecasts) == 0 {
		_, err := fmt.Fprintln(writer, "No forecasts found")
		return err
	}

	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
		if err := f.writeSeparator(writer); err != nil {
			return err
		}
	}

	for _, fc := range forecasts {
		if err := f.writeRow(fc, writer); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeHeader(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(col.Name, col.Width, col.Alignment)
	}
	_, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(cells, "  "), colors.Reset)
	return err
}

func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = makeSeparator(col.Width)
	}
	_, err := fmt.Fprintln(writer, strings.Join(cells, "  "))
	return err
}

func (f *TableFormatter) writeRow(fc domain.Forecast, writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = col.Extractor(fc)
	}
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// formatString pads or cuts s to width runes with the given alignment.
func formatString(s string, width int, alignment string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-n) + s
	case "center":
		left := (width - n) / 2
		right := width - n - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-n)
	}
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n <= width {
		return s + strings.Repeat(" ", width-n)
	}
	r := []rune(s)
	if width < 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
