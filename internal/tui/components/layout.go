package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColumnSpec defines a column with proportional or fixed width.
type ColumnSpec struct {
	// MinWidth is the absolute minimum width.
	MinWidth int
	// Weight is the proportional share of remaining width.
	Weight float64
	// Fixed is a fixed width (overrides Weight if > 0).
	Fixed int
	// Priority determines drop order when the terminal is narrow (lower is
	// dropped first).
	Priority int
}

// CalculateColumnWidths distributes available width among columns
// proportionally. When the fixed columns do not fit, the lowest-priority
// columns are hidden (width 0). separator is the width of one column gap.
func CalculateColumnWidths(specs []ColumnSpec, availableWidth int, separator int) []int {
	widths := make([]int, len(specs))
	visible := make([]bool, len(specs))
	totalFixed := 0
	totalWeight := 0.0
	visibleCount := 0

	for i, spec := range specs {
		visible[i] = true
		visibleCount++
		if spec.Fixed > 0 {
			totalFixed += spec.Fixed
		} else {
			totalWeight += spec.Weight
		}
	}

	remaining := func() int {
		gaps := 0
		if visibleCount > 1 {
			gaps = (visibleCount - 1) * separator
		}
		return availableWidth - totalFixed - gaps - 2 // row padding
	}

	for remaining() < 0 && visibleCount > 1 {
		lowest := -1
		for i, spec := range specs {
			if visible[i] && (lowest < 0 || spec.Priority < specs[lowest].Priority) {
				lowest = i
			}
		}
		if lowest < 0 {
			break
		}
		visible[lowest] = false
		visibleCount--
		if specs[lowest].Fixed > 0 {
			totalFixed -= specs[lowest].Fixed
		} else {
			totalWeight -= specs[lowest].Weight
		}
	}

	left := max(remaining(), 0)

	for i, spec := range specs {
		switch {
		case !visible[i]:
			widths[i] = 0
		case spec.Fixed > 0:
			widths[i] = spec.Fixed
		case totalWeight > 0:
			widths[i] = max(int(float64(left)*spec.Weight/totalWeight), spec.MinWidth)
		default:
			widths[i] = spec.MinWidth
		}
	}

	return widths
}

// Truncate shortens s to fit within maxWidth terminal cells, adding an
// ellipsis if needed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > maxWidth-1 {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + "…"
}
