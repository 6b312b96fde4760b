package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column. Width is a minimum; a column grows to fit
// its widest cell. Numeric columns set Right to right-align their values.
type Column struct {
	Title string
	Width int
	Right bool
}

// Row is a slice of cell values, one per column.
type Row []string

// Table renders a lipgloss-styled listing table.
type Table struct {
	cols []Column
	rows []Row
}

// NewTable creates an empty table over the given columns.
func NewTable(cols []Column) *Table {
	return &Table{cols: cols}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(r Row) {
	t.rows = append(t.rows, r)
}

// widths returns the resolved width of every column: the declared minimum
// grown to the widest cell (or title) seen in that column.
func (t *Table) widths() []int {
	w := make([]int, len(t.cols))
	for i, c := range t.cols {
		w[i] = c.Width
		if len(c.Title) > w[i] {
			w[i] = len(c.Title)
		}
	}
	for _, row := range t.rows {
		for i := range t.cols {
			if i < len(row) && len(row[i]) > w[i] {
				w[i] = len(row[i])
			}
		}
	}
	return w
}

// alignCell fits s into exactly width chars. Padding happens before any
// styling so ANSI escape codes never count toward the width.
func alignCell(s string, width int, right bool) string {
	if len(s) >= width {
		return s[:width]
	}
	fill := strings.Repeat(" ", width-len(s))
	if right {
		return fill + s
	}
	return s + fill
}

// Render returns the full table as a string: styled header, divider, then
// the data rows in insertion order.
func (t *Table) Render() string {
	widths := t.widths()

	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMeta)

	var sb strings.Builder
	line := func(style lipgloss.Style, cells []string) {
		parts := make([]string, len(t.cols))
		for i, c := range t.cols {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			parts[i] = style.Render(alignCell(val, widths[i], c.Right))
		}
		sb.WriteString(strings.Join(parts, "  "))
		sb.WriteString("\n")
	}

	titles := make([]string, len(t.cols))
	divider := make([]string, len(t.cols))
	for i, c := range t.cols {
		titles[i] = c.Title
		divider[i] = strings.Repeat("-", widths[i])
	}
	line(headerStyle, titles)
	line(dimStyle, divider)
	for _, row := range t.rows {
		line(cellStyle, row)
	}

	return sb.String()
}

// KeyValueBlock renders labelled values in a bordered box. The label
// column sizes itself to the longest label.
func KeyValueBlock(title string, pairs [][2]string) string {
	labelWidth := 0
	for _, p := range pairs {
		if len(p[0]) > labelWidth {
			labelWidth = len(p[0])
		}
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		label := StyleMeta.Render(fmt.Sprintf("%-*s", labelWidth+1, p[0]+":"))
		sb.WriteString("  " + label + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(sb.String())
}
