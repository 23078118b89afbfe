package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align is a column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TableColumn represents a column in the table
type TableColumn struct {
	Header   string
	MinWidth int
	Align    Align
}

// Table renders rows of cells under a header with a rule beneath it.
// Widths are measured in terminal cells, so emoji and accents line up.
type Table struct {
	Columns  []TableColumn
	Rows     [][]string
	MaxWidth int // total width cap, 0 for none; the last column is truncated
}

// NewTable creates a new table with specified columns
func NewTable(columns ...TableColumn) *Table {
	return &Table{Columns: columns}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := t.columnWidths()
	var b strings.Builder

	header := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = pad(col.Header, widths[i], AlignLeft)
		rule[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(header, "  ")))
	b.WriteString("\n")
	b.WriteString(StyleTableBorder.Render(strings.Join(rule, "  ")))
	b.WriteString("\n")

	for idx, row := range t.Rows {
		parts := make([]string, len(t.Columns))
		for i := range t.Columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			parts[i] = pad(truncate(cell, widths[i]), widths[i], t.Columns[i].Align)
		}

		style := StyleTableRow
		if idx%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(strings.TrimRight(strings.Join(parts, "  "), " ")))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(lipgloss.Width(col.Header), col.MinWidth)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	if t.MaxWidth > 0 {
		total := 2 * (len(widths) - 1)
		for _, w := range widths {
			total += w
		}
		last := len(widths) - 1
		if over := total - t.MaxWidth; over > 0 {
			widths[last] = max(widths[last]-over, lipgloss.Width(t.Columns[last].Header))
		}
	}
	return widths
}

func pad(s string, width int, align Align) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// truncate shortens s to width cells, ending in an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width || width <= 0 {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// RenderKeyValues renders aligned "key: value" lines
func RenderKeyValues(pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		keyWidth = max(keyWidth, lipgloss.Width(p[0]))
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(StyleAccent.Render(pad(p[0]+":", keyWidth+1, AlignLeft)))
		b.WriteString(" ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}
