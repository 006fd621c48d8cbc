package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LayoutBreakpoint defines terminal width thresholds for responsive layout.
type LayoutBreakpoint int

const (
	// BreakpointNarrow is for terminals under 60 columns.
	BreakpointNarrow LayoutBreakpoint = 60
	// BreakpointMedium is for terminals between 60-100 columns.
	BreakpointMedium LayoutBreakpoint = 100
	// BreakpointWide is for terminals over 100 columns.
	BreakpointWide LayoutBreakpoint = 140
)

// GetBreakpoint returns the current layout breakpoint for the given width.
func GetBreakpoint(width int) LayoutBreakpoint {
	switch {
	case width < int(BreakpointNarrow):
		return BreakpointNarrow
	case width < int(BreakpointMedium):
		return BreakpointMedium
	default:
		return BreakpointWide
	}
}

// Panel renders a bordered panel with the title set into the top border.
func (t *Theme) Panel(title, content string, width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Palette.Secondary).
		Width(width - 2). // border chars
		Padding(0, 1)

	rendered := style.Render(content)
	if title == "" {
		return rendered
	}

	lines := strings.Split(rendered, "\n")
	top := []rune(lines[0])
	titleRendered := lipgloss.NewStyle().Foreground(t.Palette.Accent).Bold(true).Render(" " + title + " ")
	titleWidth := lipgloss.Width(titleRendered)
	if titleWidth+4 < lipgloss.Width(lines[0]) && len(top) > 2+titleWidth {
		lines[0] = string(top[:2]) + titleRendered + string(top[2+titleWidth:])
	}
	return strings.Join(lines, "\n")
}

// SideBySide renders two blocks side by side, collapsing to vertical on
// narrow terminals.
func SideBySide(left, right string, totalWidth, gap int) string {
	leftWidth := lipgloss.Width(left)
	if leftWidth+lipgloss.Width(right)+gap > totalWidth {
		return left + "\n\n" + right
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth+gap).Render(left),
		right,
	)
}

// StockBar renders stock against twice the safety level, so the bar is
// half full at the caution threshold.
func (t *Theme) StockBar(stock, safety, width int) string {
	capacity := float64(max(safety*2, 1))
	ratio := min(max(float64(stock)/capacity, 0), 1)

	barWidth := max(width-2, 4) // brackets
	filled := int(ratio * float64(barWidth))
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"

	color := t.Palette.InStock
	switch {
	case stock <= 0:
		color = t.Palette.Shortage
	case stock <= safety:
		color = t.Palette.Caution
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// PadRight pads a string to the given width with spaces.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ContentWidth returns the usable content width, capped between min and max.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := max(termWidth, minWidth)
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	return w
}

// ContentHeight returns the usable content height after subtracting chrome.
func ContentHeight(termHeight, chromeLines int) int {
	return max(termHeight-chromeLines, 5)
}
