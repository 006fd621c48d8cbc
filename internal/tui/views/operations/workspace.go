package operations

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stocktrack/stocktrack/internal/models"
)

// Workspace holds the three action forms and the operations subtab.
type Workspace struct {
	outbound *ActionForm
	inbound  *ActionForm
	order    *ActionForm
	subtab   models.ActionKind
}

// NewWorkspace creates empty forms with the outbound subtab selected.
func NewWorkspace() *Workspace {
	return &Workspace{
		outbound: NewActionForm(models.ActionOutbound),
		inbound:  NewActionForm(models.ActionInbound),
		order:    NewActionForm(models.ActionOrder),
		subtab:   models.ActionOutbound,
	}
}

// Subtab returns the selected operations subtab.
func (w *Workspace) Subtab() models.ActionKind {
	return w.subtab
}

// SetSubtab selects an operations subtab. Only outbound and inbound are
// subtabs; other kinds are ignored.
func (w *Workspace) SetSubtab(kind models.ActionKind) {
	if kind == models.ActionOutbound || kind == models.ActionInbound {
		w.subtab = kind
	}
}

// ToggleSubtab flips between outbound and inbound.
func (w *Workspace) ToggleSubtab() {
	if w.subtab == models.ActionOutbound {
		w.subtab = models.ActionInbound
	} else {
		w.subtab = models.ActionOutbound
	}
}

// Form returns the form of kind.
func (w *Workspace) Form(kind models.ActionKind) *ActionForm {
	switch kind {
	case models.ActionOutbound:
		return w.outbound
	case models.ActionInbound:
		return w.inbound
	case models.ActionOrder:
		return w.order
	}
	return nil
}

// Operations returns the form of the current subtab.
func (w *Workspace) Operations() *ActionForm {
	return w.Form(w.subtab)
}

func (w *Workspace) forms() []*ActionForm {
	return []*ActionForm{w.outbound, w.inbound, w.order}
}

// SetCode fills the code field with the given name.
func (w *Workspace) SetCode(field, code string) {
	for _, f := range w.forms() {
		if f.route.CodeField == field {
			f.setCode(code)
			return
		}
	}
}

// ShowQuickInfo shows p on the form whose quick-info container is named
// container.
func (w *Workspace) ShowQuickInfo(container, details string, p models.ActionPayload) {
	for _, f := range w.forms() {
		if f.route.InfoBox == container {
			f.showQuickInfo(container, details, p)
			return
		}
	}
}

// FocusSelect focuses the named field and selects its content.
func (w *Workspace) FocusSelect(field string) {
	for _, f := range w.forms() {
		if f.focusSelect(field) {
			return
		}
	}
}

// RenderOperations renders the subtab bar and the current movement form.
func (w *Workspace) RenderOperations() string {
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00FF00")).Bold(true).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Padding(0, 1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var tabs []string
	for _, kind := range []models.ActionKind{models.ActionOutbound, models.ActionInbound} {
		label := strings.ToUpper(string(kind))
		if kind == w.subtab {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "  " +
		helpStyle.Render("Ctrl+T:Switch") + "\n\n" +
		w.Operations().Render()
}

// RenderOrder renders the order-request form.
func (w *Workspace) RenderOrder() string {
	return w.order.Render()
}
