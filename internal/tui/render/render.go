// Package render draws the shared TUI chrome: header, footer, alert banner,
// modal box and the forecast table.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
)

const (
	idWidth          = 5
	dateWidth        = 12
	celsiusWidth     = 6
	fahrenheitWidth  = 6
	defaultWidth     = 80
	minSummaryWidth  = 10
	spacesBetweenCol = 8
)

// NavItem is a global navigation shortcut shown in the header.
type NavItem struct {
	Key    string
	Label  string
	Active bool
}

// Header renders the application title, the page title and navigation shortcuts.
func Header(title string, nav []NavItem, width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	navStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Underline(true)

	items := make([]string, 0, len(nav))
	for _, n := range nav {
		label := fmt.Sprintf("%s %s", n.Key, n.Label)
		if n.Active {
			items = append(items, activeStyle.Render(label))
			continue
		}
		items = append(items, navStyle.Render(label))
	}

	return truncate(titleStyle.Render("forecast-desk · "+title)+"  "+strings.Join(items, "  "), width)
}

// Footer renders key help separated by bars.
func Footer(help []string) string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return helpStyle.Render(strings.Join(help, "  |  "))
}

// Banner renders an alert. Inactive alerts render as an empty string.
func Banner(a alert.Alert, width int) string {
	if !a.IsActive || a.Message == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	style := lipgloss.NewStyle().
		Bold(a.Severity == alert.SeverityDanger).
		Foreground(lipgloss.Color(SeverityColor(a.Severity))).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(SeverityColor(a.Severity))).
		PaddingLeft(1).
		Width(width - 2)
	return style.Render(a.Message)
}

// SeverityColor maps an alert severity to an ANSI colour number.
func SeverityColor(s alert.Severity) string {
	switch s {
	case alert.SeverityDanger:
		return ansiColorNumber(colors.Red)
	case alert.SeverityWarning:
		return ansiColorNumber(colors.Yellow)
	case alert.SeveritySuccess:
		return ansiColorNumber(colors.Green)
	case alert.SeverityInfo:
		return ansiColorNumber(colors.Cyan)
	default:
		return "241"
	}
}

// Modal centres body in a bordered box over an area of width by height.
func Modal(title, body string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ansiColorNumber(colors.Yellow))).
		Padding(1, 2)
	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + body
	if width <= 0 || height <= 0 {
		return box.Render(content)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

// TableHeader renders the forecast table header.
func TableHeader(width int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	header := fmt.Sprintf("%-*s  %-*s  %*s  %*s  %s",
		idWidth, "ID",
		dateWidth, "DATE",
		celsiusWidth, "TEMP.C",
		fahrenheitWidth, "TEMP.F",
		"SUMMARY",
	)
	return headerStyle.Render(truncate(header, width))
}

// RowState defines the inputs needed to render a forecast row.
type RowState struct {
	Forecast   domain.Forecast
	DateLayout string
	Width      int
	Selected   bool
}

// Row renders a single forecast row.
func Row(state RowState) string {
	rowStyle := lipgloss.NewStyle()
	if state.Selected {
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}

	layout := state.DateLayout
	if layout == "" {
		layout = "2006-01-02"
	}
	f := state.Forecast
	summary := f.Summary
	if w := summaryWidth(state.Width); utf8.RuneCountInString(summary) > w {
		summary = string([]rune(summary)[:w-3]) + "..."
	}

	row := fmt.Sprintf("%-*d  %-*s  %*d  %*d  %s",
		idWidth, f.ID,
		dateWidth, f.Date.Format(layout),
		celsiusWidth, f.TemperatureC,
		fahrenheitWidth, f.TemperatureF(),
		summary,
	)
	return rowStyle.Render(row)
}

// Field renders a labelled form input. Modified fields are marked with '*'.
func Field(label, input string, focused, modified bool) string {
	labelStyle := lipgloss.NewStyle().Width(16)
	if focused {
		labelStyle = labelStyle.Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	}
	marker := " "
	if modified {
		marker = "*"
	}
	return labelStyle.Render(label) + marker + " " + input
}

// KeyValue renders a read-only field.
func KeyValue(label, value string) string {
	return lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("241")).Render(label) + "  " + value
}

func summaryWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	w := width - idWidth - dateWidth - celsiusWidth - fahrenheitWidth - spacesBetweenCol
	if w < minSummaryWidth {
		return minSummaryWidth
	}
	return w
}

func truncate(value string, width int) string {
	if width <= 0 || lipgloss.Width(value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
