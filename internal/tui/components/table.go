// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table is a scrolling, single-selection table. Cell widths are measured
// in terminal cells, so wide characters are truncated correctly.
type Table struct {
	columns     []Column
	rows        [][]string
	selected    int
	offset      int
	visibleRows int
	focused     bool

	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	rowAltStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	borderStyle   lipgloss.Style
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:       columns,
		rows:          [][]string{},
		visibleRows:   10,
		headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#66FF66")),
		rowStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		rowAltStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")),
		selectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("#00FF00")).Foreground(lipgloss.Color("#000000")),
		borderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")),
	}
}

// SetRows replaces the table data. The selection is kept when still in
// range.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	if t.selected >= len(rows) {
		t.selected = max(len(rows)-1, 0)
	}
	t.clampOffset()
}

// SetColumnWidths overrides column widths; a zero width hides the column.
func (t *Table) SetColumnWidths(widths []int) {
	for i := range t.columns {
		if i < len(widths) {
			t.columns[i].Width = widths[i]
		}
	}
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	t.visibleRows = n
	t.clampOffset()
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// SetSelected moves the selection to idx when it is in range.
func (t *Table) SetSelected(idx int) {
	if idx >= 0 && idx < len(t.rows) {
		t.selected = idx
		t.clampOffset()
	}
}

// MoveUp moves the selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
		t.clampOffset()
	}
}

// MoveDown moves the selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		t.clampOffset()
	}
}

// PageUp moves up one page.
func (t *Table) PageUp() {
	t.selected = max(t.selected-t.visibleRows, 0)
	t.clampOffset()
}

// PageDown moves down one page.
func (t *Table) PageDown() {
	t.selected = max(min(t.selected+t.visibleRows, len(t.rows)-1), 0)
	t.clampOffset()
}

// GoToTop goes to the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom goes to the last row.
func (t *Table) GoToBottom() {
	t.selected = max(len(t.rows)-1, 0)
	t.clampOffset()
}

// clampOffset keeps the selected row inside the visible window.
func (t *Table) clampOffset() {
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.visibleRows {
		t.offset = t.selected - t.visibleRows + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder

	totalWidth := 0
	for _, col := range t.columns {
		if col.Width > 0 {
			totalWidth += col.Width + 3
		}
	}

	b.WriteString(t.renderRow(t.headers(), t.headerStyle))
	b.WriteString("\n")
	b.WriteString(t.borderStyle.Render(strings.Repeat("-", totalWidth)))
	b.WriteString("\n")

	end := min(t.offset+t.visibleRows, len(t.rows))
	for i := t.offset; i < end; i++ {
		style := t.rowStyle
		switch {
		case i == t.selected && t.focused:
			style = t.selectedStyle
		case (i-t.offset)%2 == 1:
			style = t.rowAltStyle
		}

		b.WriteString(t.renderRow(t.rows[i], style))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	var parts []string

	for i, col := range t.columns {
		if col.Width <= 0 {
			continue
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = Truncate(cell, col.Width)

		pad := col.Width - lipgloss.Width(cell)
		switch col.Align {
		case lipgloss.Right:
			cell = strings.Repeat(" ", pad) + cell
		case lipgloss.Center:
			left := pad / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
		default:
			cell += strings.Repeat(" ", pad)
		}

		parts = append(parts, style.Render(cell))
	}

	return " " + strings.Join(parts, " | ") + " "
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}
