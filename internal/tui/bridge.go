package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stocktrack/stocktrack/internal/dispatch"
	"github.com/stocktrack/stocktrack/internal/models"
)

// bridge implements dispatch.Navigator and dispatch.Forms for code running
// outside the Bubble Tea update loop. Every call becomes a message on the
// event channel; the App applies it in Update and closes the ready channel
// once the page has switched.
type bridge struct {
	events chan<- tea.Msg
}

var (
	_ dispatch.Navigator = bridge{}
	_ dispatch.Forms     = bridge{}
)

type switchPageMsg struct {
	page  dispatch.Page
	ready chan struct{}
}

type switchSubtabMsg struct {
	kind  models.ActionKind
	ready chan struct{}
}

type setCodeMsg struct {
	field string
	code  string
}

type quickInfoMsg struct {
	container string
	details   string
	payload   models.ActionPayload
}

type focusSelectMsg struct {
	field string
}

func (b bridge) SwitchPage(page dispatch.Page) <-chan struct{} {
	ready := make(chan struct{})
	b.events <- switchPageMsg{page: page, ready: ready}
	return ready
}

func (b bridge) SwitchOperationsSubtab(kind models.ActionKind) <-chan struct{} {
	ready := make(chan struct{})
	b.events <- switchSubtabMsg{kind: kind, ready: ready}
	return ready
}

func (b bridge) SetCode(field, code string) {
	b.events <- setCodeMsg{field: field, code: code}
}

func (b bridge) ShowQuickInfo(container, details string, p models.ActionPayload) {
	b.events <- quickInfoMsg{container: container, details: details, payload: p}
}

func (b bridge) FocusSelect(field string) {
	b.events <- focusSelectMsg{field: field}
}

// listen waits for the next bridge event.
func listen(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}
