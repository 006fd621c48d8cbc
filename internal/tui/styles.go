// Package tui provides the terminal client for stocktrack.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stocktrack/stocktrack/internal/config"
)

// Palette is the set of colors a scheme is built from.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Shortage  lipgloss.Color
	Caution   lipgloss.Color
	InStock   lipgloss.Color
}

var palettes = map[config.ColorScheme]Palette{
	config.ColorSchemeGreenPhosphor: {
		Primary: "#00FF00", Secondary: "#00AA00", Accent: "#66FF66", Muted: "#006600",
		Shortage: "#FF4444", Caution: "#FFAA00", InStock: "#00FF00",
	},
	config.ColorSchemeAmber: {
		Primary: "#FFAA00", Secondary: "#AA7700", Accent: "#FFCC66", Muted: "#664400",
		Shortage: "#FF4444", Caution: "#FFFF00", InStock: "#FFAA00",
	},
	config.ColorSchemeWhite: {
		Primary: "#FFFFFF", Secondary: "#AAAAAA", Accent: "#FFFFFF", Muted: "#666666",
		Shortage: "#FF4444", Caution: "#FFAA00", InStock: "#00FF00",
	},
}

// Theme holds the styles the TUI draws with.
type Theme struct {
	Palette Palette

	Base     lipgloss.Style
	Primary  lipgloss.Style
	Muted    lipgloss.Style
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Box      lipgloss.Style
	Divider  lipgloss.Style

	alerts map[AlertLevel]lipgloss.Style
}

// NewTheme builds the theme for a color scheme. Unknown schemes get green
// phosphor.
func NewTheme(scheme config.ColorScheme) *Theme {
	p, ok := palettes[scheme]
	if !ok {
		p = palettes[config.ColorSchemeGreenPhosphor]
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Theme{
		Palette:  p,
		Base:     fg(p.Primary),
		Primary:  fg(p.Primary),
		Muted:    fg(p.Muted),
		Header:   fg(p.Primary).Bold(true).Padding(0, 1),
		Footer:   fg(p.Secondary).Padding(0, 1),
		Title:    fg(p.Accent).Bold(true).Padding(0, 1),
		Subtitle: fg(p.Primary).Padding(0, 1),
		Label:    fg(p.Secondary),
		Value:    fg(p.Primary),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),
		Divider: fg(p.Muted).SetString(" │ "),
		alerts:  map[AlertLevel]lipgloss.Style{
			AlertInfo:     fg(p.Primary).Bold(true),
			AlertWarning:  fg(p.Caution).Bold(true),
			AlertCritical: fg(p.Shortage).Bold(true),
		},
	}
}

// AlertStyle returns the style of an alert level.
func (t *Theme) AlertStyle(level AlertLevel) lipgloss.Style {
	if s, ok := t.alerts[level]; ok {
		return s
	}
	return t.alerts[AlertInfo]
}

// Rule draws a single horizontal line.
func (t *Theme) Rule(width int) string {
	return t.Label.Render(strings.Repeat("─", max(width, 0)))
}

// DoubleRule draws a double horizontal line.
func (t *Theme) DoubleRule(width int) string {
	return t.Primary.Render(strings.Repeat("═", max(width, 0)))
}
