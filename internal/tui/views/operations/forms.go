// Package operations provides the outbound, inbound and order-request
// forms that item actions land on.
package operations

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stocktrack/stocktrack/internal/dispatch"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/render"
	"github.com/stocktrack/stocktrack/internal/tui/components"
)

// Inbound types offered by the inbound form.
const (
	InboundTypeOrder = "order"
	InboundTypeOther = "other"
)

// QuickInfo is the item summary shown above a form. Container and
// Details name the display slots it was rendered into; Code associates
// the card with its item.
type QuickInfo struct {
	Container string
	Details   string
	Code      string
	Rows      []render.QuickInfoRow
}

// ActionForm is one item-scoped form: outbound, inbound or order.
type ActionForm struct {
	kind  models.ActionKind
	route dispatch.Route
	form  *components.Form
	code  *components.Input
	qty   *components.Input
	info  *QuickInfo

	person      *components.Input
	department  *components.Input
	note        *components.Input
	inboundType *components.Select
	deadline    *components.Input
}

// NewActionForm builds the form for kind. Field names follow the route
// table, so dispatch can address them.
func NewActionForm(kind models.ActionKind) *ActionForm {
	route, ok := dispatch.RouteFor(kind)
	if !ok {
		panic(fmt.Sprintf("no route for action %q", kind))
	}

	f := &ActionForm{
		kind:  kind,
		route: route,
		code:  components.NewInput(route.CodeField, "Code").SetRequired(true).SetWidth(24),
		qty:   components.NewInput(route.FocusField, "Quantity").SetRequired(true).SetWidth(8),
		note:  components.NewInput(string(kind)+"Note", "Note").SetWidth(30).SetMaxLength(500),
	}

	switch kind {
	case models.ActionOrder:
		f.person = components.NewInput("orderRequester", "Requester").SetRequired(true).SetWidth(20)
		f.deadline = components.NewInput("orderDeadline", "Deadline").SetWidth(12).SetPlaceholder("YYYY-MM-DD")
		f.form = components.NewForm("ORDER REQUEST")
		f.form.AddField(f.code).AddField(f.qty).AddField(f.person).AddField(f.deadline).AddField(f.note)
	default:
		f.person = components.NewInput(string(kind)+"Person", "Person").SetRequired(true).SetWidth(20)
		f.department = components.NewInput(string(kind)+"Department", "Department").SetWidth(20)
		f.form = components.NewForm(strings.ToUpper(string(kind)))
		f.form.AddField(f.code).AddField(f.qty).AddField(f.person).AddField(f.department)
		if kind == models.ActionInbound {
			f.inboundType = components.NewSelect("inboundType", "Inbound type", []string{InboundTypeOrder, InboundTypeOther})
			f.form.AddField(f.inboundType)
		}
		f.form.AddField(f.note)
	}

	return f
}

// Kind returns the action kind of the form.
func (f *ActionForm) Kind() models.ActionKind {
	return f.kind
}

// Code returns the entered item code.
func (f *ActionForm) Code() string {
	return strings.TrimSpace(f.code.Value())
}

// Info returns the quick-info card, or nil when none is shown.
func (f *ActionForm) Info() *QuickInfo {
	return f.info
}

// CodeFocused reports whether the code field has focus.
func (f *ActionForm) CodeFocused() bool {
	return f.code.IsFocused()
}

// FocusedField returns the name of the focused field.
func (f *ActionForm) FocusedField() string {
	if field := f.form.Focused(); field != nil {
		return field.Name()
	}
	return ""
}

// HandleKey forwards a key to the form. Editing the code drops a quick-info
// card that no longer matches it.
func (f *ActionForm) HandleKey(key string) {
	f.form.HandleKey(key)
	if f.info != nil && !strings.EqualFold(f.info.Code, f.Code()) {
		f.info = nil
	}
}

// IsSubmitted reports whether the user asked to submit.
func (f *ActionForm) IsSubmitted() bool {
	return f.form.IsSubmitted()
}

// IsCancelled reports whether the user backed out.
func (f *ActionForm) IsCancelled() bool {
	return f.form.IsCancelled()
}

// Rearm clears the submit and cancel flags so the form takes input again.
// A non-nil err is shown on the form.
func (f *ActionForm) Rearm(err error) {
	f.form.ResetState()
	if err != nil {
		f.form.SetError(err.Error())
	} else {
		f.form.SetError("")
	}
}

// Reset clears every field after a successful submit.
func (f *ActionForm) Reset() {
	*f = *NewActionForm(f.kind)
}

func (f *ActionForm) setCode(code string) {
	f.code.SetValue(code)
}

func (f *ActionForm) showQuickInfo(container, details string, p models.ActionPayload) {
	f.info = &QuickInfo{
		Container: container,
		Details:   details,
		Code:      p.Code,
		Rows:      render.QuickInfo(p),
	}
}

func (f *ActionForm) focusSelect(field string) bool {
	return f.form.FocusField(field)
}

func (f *ActionForm) quantity() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(f.qty.Value()))
	if err != nil {
		return 0, errors.New("quantity must be a whole number")
	}
	return n, nil
}

// MovementRequest builds the outbound or inbound request.
func (f *ActionForm) MovementRequest() (models.MovementRequest, error) {
	if f.kind == models.ActionOrder {
		return models.MovementRequest{}, fmt.Errorf("%s form has no movement", f.kind)
	}
	qty, err := f.quantity()
	if err != nil {
		return models.MovementRequest{}, err
	}

	req := models.MovementRequest{
		Code:       f.Code(),
		Quantity:   qty,
		Person:     strings.TrimSpace(f.person.Value()),
		Department: strings.TrimSpace(f.department.Value()),
		Note:       strings.TrimSpace(f.note.Value()),
	}
	if f.inboundType != nil {
		req.InboundType = f.inboundType.Value()
	}
	if err := req.Validate(); err != nil {
		return models.MovementRequest{}, err
	}
	return req, nil
}

// OrderRequest builds the order request.
func (f *ActionForm) OrderRequest() (models.OrderRequest, error) {
	if f.kind != models.ActionOrder {
		return models.OrderRequest{}, fmt.Errorf("%s form has no order request", f.kind)
	}
	qty, err := f.quantity()
	if err != nil {
		return models.OrderRequest{}, err
	}

	req := models.OrderRequest{
		Code:      f.Code(),
		Quantity:  qty,
		Requester: strings.TrimSpace(f.person.Value()),
		Deadline:  strings.TrimSpace(f.deadline.Value()),
		Note:      strings.TrimSpace(f.note.Value()),
	}
	if err := req.Validate(); err != nil {
		return models.OrderRequest{}, err
	}
	return req, nil
}

// Render renders the quick-info card followed by the form.
func (f *ActionForm) Render() string {
	var b strings.Builder
	if f.info != nil {
		b.WriteString(f.info.Render())
		b.WriteString("\n\n")
	}
	b.WriteString(f.form.Render())
	if f.CodeFocused() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#006600")).Render("Enter on Code looks the item up"))
	}
	return b.String()
}

// Render renders the quick-info card.
func (q *QuickInfo) Render() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#00AA00")).
		Padding(0, 1)

	lines := make([]string, len(q.Rows))
	for i, r := range q.Rows {
		lines[i] = labelStyle.Render(r.Label+":") + " " + valueStyle.Render(r.Value)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
