package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols with consistent appearance.
const (
	SuccessSymbol = "✓"
	ErrorSymbol   = "✗"
	InfoSymbol    = "ℹ"
	WarningSymbol = "⚠"
	BulletSymbol  = "•"
)

// PrintLogo prints the kiln banner.
func PrintLogo() {
	fmt.Println(TitleStyle.Render("kiln"))
	fmt.Println(SubtitleStyle.Render("CMake pipeline runner"))
}

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	fmt.Println(lipgloss.NewStyle().
		Foreground(lipgloss.Color(SuccessColor)).
		Bold(true).
		Render(SuccessSymbol + " " + message))
}

// PrintError prints an error message inside a visible box.
func PrintError(message string) {
	errorBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ErrorColor)).
		Padding(0, 1).
		Render(ErrorStyle.Bold(true).Render(ErrorSymbol + " Error: " + message))

	fmt.Println(errorBox)
}

// PrintWarning prints a warning message.
func PrintWarning(message string) {
	fmt.Println(WarningStyle.Bold(true).Render(WarningSymbol + " " + message))
}

// PrintInfo prints an info message with label and value.
func PrintInfo(label, value string) {
	fmt.Printf("%s %s\n",
		DimStyle.Bold(true).Render(label+":"),
		InfoStyle.Render(value))
}

// PrintMetadata prints metadata with styled label and value.
func PrintMetadata(label, value string) {
	if value == "" {
		fmt.Printf("%s %s\n",
			InfoStyle.Render(InfoSymbol),
			DimStyle.Bold(true).Render(label))
		return
	}
	fmt.Printf("%s %s %s\n",
		InfoStyle.Render(InfoSymbol),
		DimStyle.Bold(true).Render(label),
		InfoStyle.Render(value))
}

// StyleStatusValue applies styling based on a run status value.
func StyleStatusValue(status string) string {
	switch strings.ToLower(status) {
	case "ok", "success":
		return SuccessStyle.Render(SuccessSymbol + " " + status)
	case "error", "failed":
		return ErrorStyle.Render(ErrorSymbol + " " + status)
	default:
		return status
	}
}

// Table represents a formatted table with headers and rows.
type Table struct {
	Headers     []string
	Rows        [][]string
	ColumnWidth []int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	columnWidth := make([]int, len(headers))
	for i, h := range headers {
		columnWidth[i] = len(h) + 4
	}
	return &Table{
		Headers:     headers,
		Rows:        [][]string{},
		ColumnWidth: columnWidth,
	}
}

// AddRow adds a new row to the table.
func (t *Table) AddRow(values ...string) {
	if len(values) != len(t.Headers) {
		panic(fmt.Sprintf("Row has %d values, expected %d", len(values), len(t.Headers)))
	}

	for i, v := range values {
		if len(v)+4 > t.ColumnWidth[i] {
			t.ColumnWidth[i] = len(v) + 4
		}
	}

	t.Rows = append(t.Rows, values)
}

// RenderTable renders the table with styled headers.
func RenderTable(table *Table) string {
	var b strings.Builder

	for i, h := range table.Headers {
		b.WriteString(TableHeaderStyle.Render(pad(h, table.ColumnWidth[i])))
	}
	b.WriteString("\n")

	for _, row := range table.Rows {
		for i, v := range row {
			b.WriteString(TableRowStyle.Render(pad(v, table.ColumnWidth[i])))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
