package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func testColumns() []Column {
	return []Column{
		{Title: "Code", Width: 12},
		{Title: "Name", Width: 20},
		{Title: "Stock", Width: 6, Align: lipgloss.Right},
	}
}

func testRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{"C" + strings.Repeat("0", i), "Item", "1"}
	}
	return rows
}

func TestNewTable(t *testing.T) {
	table := NewTable(testColumns())

	if !table.Empty() {
		t.Error("Expected new table to be empty")
	}
	if table.Selected() != 0 {
		t.Errorf("Expected selection 0, got %d", table.Selected())
	}
}

func TestTable_SetRows(t *testing.T) {
	table := NewTable(testColumns())
	table.SetRows(testRows(5))

	if table.Empty() {
		t.Error("Expected rows after SetRows")
	}

	table.SetSelected(4)
	table.SetRows(testRows(2))
	if table.Selected() != 1 {
		t.Errorf("Expected selection clamped to 1, got %d", table.Selected())
	}

	table.SetRows(nil)
	if table.Selected() != 0 || !table.Empty() {
		t.Error("Expected empty selection after clearing rows")
	}
}

func TestTable_Navigation(t *testing.T) {
	table := NewTable(testColumns())
	table.SetRows(testRows(3))

	table.MoveUp()
	if table.Selected() != 0 {
		t.Error("Expected MoveUp at top to stay at 0")
	}

	table.MoveDown()
	table.MoveDown()
	table.MoveDown()
	if table.Selected() != 2 {
		t.Errorf("Expected MoveDown to stop at 2, got %d", table.Selected())
	}

	table.GoToTop()
	if table.Selected() != 0 {
		t.Error("Expected GoToTop to select 0")
	}
	table.GoToBottom()
	if table.Selected() != 2 {
		t.Error("Expected GoToBottom to select 2")
	}

	table.SetSelected(7)
	if table.Selected() != 2 {
		t.Error("Expected out-of-range SetSelected to be ignored")
	}
}

func TestTable_PageNavigation(t *testing.T) {
	table := NewTable(testColumns())
	table.SetVisibleRows(4)
	table.SetRows(testRows(10))

	table.PageDown()
	if table.Selected() != 4 {
		t.Errorf("Expected 4 after PageDown, got %d", table.Selected())
	}
	table.PageDown()
	table.PageDown()
	if table.Selected() != 9 {
		t.Errorf("Expected PageDown to stop at 9, got %d", table.Selected())
	}
	table.PageUp()
	if table.Selected() != 5 {
		t.Errorf("Expected 5 after PageUp, got %d", table.Selected())
	}
}

func TestTable_Render(t *testing.T) {
	table := NewTable(testColumns())
	table.SetRows([][]string{{"TIP-12-EG-1", "EG tip 12", "10"}})

	output := table.Render()
	for _, want := range []string{"Code", "Name", "Stock", "TIP-12-EG-1", "EG tip 12"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
	if !strings.Contains(output, "    10") {
		t.Error("Expected right-aligned stock")
	}
}

func TestTable_Render_HiddenColumns(t *testing.T) {
	table := NewTable(testColumns())
	table.SetColumnWidths([]int{12, 0, 6})
	table.SetRows([][]string{{"A", "Alpha", "1"}})

	output := table.Render()
	if strings.Contains(output, "Name") || strings.Contains(output, "Alpha") {
		t.Error("Expected zero-width column hidden")
	}
}

func TestTable_Render_TruncatesWideCells(t *testing.T) {
	table := NewTable([]Column{{Title: "Name", Width: 5}})
	table.SetRows([][]string{{"試薬瓶ラック"}})

	output := table.Render()
	if !strings.Contains(output, "試薬…") {
		t.Errorf("Expected truncated cell, got %q", output)
	}
}

func TestTable_Render_ScrollsWithSelection(t *testing.T) {
	table := NewTable([]Column{{Title: "Code", Width: 8}})
	table.SetVisibleRows(2)
	table.SetRows([][]string{{"R0"}, {"R1"}, {"R2"}, {"R3"}})

	table.GoToBottom()
	output := table.Render()
	if strings.Contains(output, "R0") || !strings.Contains(output, "R3") {
		t.Errorf("Expected window on the last rows, got %q", output)
	}
}
