package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stocktrack/stocktrack/internal/dispatch"
	"github.com/stocktrack/stocktrack/internal/models"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up       Key
	Down     Key
	PageUp   Key
	PageDown Key
	Home     Key
	End      Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Help   Key
	Reload Key

	// Inventory filters
	Search         Key
	QRCode         Key
	OrderFilter    Key
	ShortageFilter Key
	ClearFilters   Key

	// Item actions
	Outbound     Key
	Inbound      Key
	RequestOrder Key
	Edit         Key
	Template     Key

	// Operations page
	SwitchSubtab Key

	// Function keys for page navigation
	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F5  Key
	F6  Key
	F7  Key
	F8  Key
	F9  Key
	F10 Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func key(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key("up", "up", "k"),
		Down:     key("down", "down", "j"),
		PageUp:   key("page up", "pgup", "ctrl+u"),
		PageDown: key("page down", "pgdown", "ctrl+d"),
		Home:     key("home", "home", "g"),
		End:      key("end", "end", "G"),

		Select: key("details", "enter"),
		Back:   key("back", "esc"),
		Quit:   key("quit", "q", "ctrl+c"),
		Help:   key("help", "?", "f1"),
		Reload: key("reload", "r"),

		Search:         key("search", "/"),
		QRCode:         key("qr code", "#"),
		OrderFilter:    key("order status", "o"),
		ShortageFilter: key("shortage status", "s"),
		ClearFilters:   key("clear filters", "x"),

		Outbound:     key("outbound", "O"),
		Inbound:      key("inbound", "I"),
		RequestOrder: key("request order", "R"),
		Edit:         key("edit", "e"),
		Template:     key("csv template", "t"),

		SwitchSubtab: key("switch subtab", "ctrl+t"),

		F1:  key("Help", "f1"),
		F2:  key("Inventory", "f2"),
		F3:  key("Operations", "f3"),
		F4:  key("Order", "f4"),
		F5:  key("Suppliers", "f5"),
		F6:  key("Employees", "f6"),
		F7:  key("Users", "f7"),
		F8:  key("Dispatch", "f8"),
		F9:  key("History", "f9"),
		F10: key("Quit", "f10"),
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, binding := range k.Keys {
		if keyStr == binding {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message is a function key.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3, km.F4, km.F5,
		km.F6, km.F7, km.F8, km.F9, km.F10)
}

// FunctionKeyPage returns the page a function key opens. F10 yields
// PageQuit.
func (km KeyMap) FunctionKeyPage(msg tea.KeyMsg) dispatch.Page {
	switch {
	case km.F1.Matches(msg):
		return PageHelp
	case km.F2.Matches(msg):
		return dispatch.PageInventory
	case km.F3.Matches(msg):
		return dispatch.PageOperations
	case km.F4.Matches(msg):
		return dispatch.PageOrder
	case km.F5.Matches(msg):
		return PageSuppliers
	case km.F6.Matches(msg):
		return PageEmployees
	case km.F7.Matches(msg):
		return PageUsers
	case km.F8.Matches(msg):
		return PageDispatch
	case km.F9.Matches(msg):
		return PageHistory
	case km.F10.Matches(msg):
		return PageQuit
	default:
		return ""
	}
}

// ActionKind returns the item action bound to msg, if any.
func (km KeyMap) ActionKind(msg tea.KeyMsg) (models.ActionKind, bool) {
	switch {
	case km.Outbound.Matches(msg):
		return models.ActionOutbound, true
	case km.Inbound.Matches(msg):
		return models.ActionInbound, true
	case km.RequestOrder.Matches(msg):
		return models.ActionOrder, true
	default:
		return "", false
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp(width int) string {
	if GetBreakpoint(width) == BreakpointNarrow {
		return "[F1]Help [F2]Inv [F3]Ops [F4]Order [F10]Quit"
	}
	return "[F1]Help [F2]Inventory [F3]Operations [F4]Order [F5]Suppliers [F9]History [F10]Quit"
}
