package inventory

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stocktrack/stocktrack/internal/fields"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/status"
	"github.com/stocktrack/stocktrack/internal/tui/components"
)

// Edit form field names.
const (
	FieldName     = "editName"
	FieldCategory = "editCategory"
	FieldUnit     = "editUnit"
	FieldStock    = "editStock"
	FieldSafety   = "editSafety"
	FieldShortage = "editShortage"
	FieldSupplier = "editSupplier"
	FieldNote     = "editNote"
)

// EditForm edits one item. Every change to stock or safety stock
// re-suggests the shortage status.
type EditForm struct {
	form     *components.Form
	original models.Item

	name     *components.Input
	category *components.Input
	unit     *components.Input
	stock    *components.Input
	safety   *components.Input
	shortage *components.Select
	supplier *components.Input
	note     *components.Input
}

// NewEditForm creates an edit form seeded from item. shortageOptions is
// the merged selector list; the item's current label is added when the
// list does not offer it.
func NewEditForm(item models.Item, shortageOptions []string) *EditForm {
	f := &EditForm{
		form:     components.NewForm("EDIT " + item.Code),
		original: item,
		name:     components.NewInput(FieldName, "Name").SetRequired(true).SetWidth(30).SetValue(item.Name),
		category: components.NewInput(FieldCategory, "Category").SetWidth(20).SetValue(item.Category),
		unit:     components.NewInput(FieldUnit, "Unit").SetWidth(10).SetValue(item.Unit),
		stock:    components.NewInput(FieldStock, "Stock").SetRequired(true).SetWidth(10).SetValue(strconv.Itoa(item.StockQuantity)),
		safety:   components.NewInput(FieldSafety, "Safety stock").SetRequired(true).SetWidth(10).SetValue(strconv.Itoa(item.SafetyStock)),
		supplier: components.NewInput(FieldSupplier, "Supplier").SetWidth(20).SetValue(item.SupplierName),
		note:     components.NewInput(FieldNote, "Note").SetWidth(30).SetMaxLength(500).SetValue(item.Note),
	}

	options := append([]string(nil), shortageOptions...)
	if len(options) == 0 {
		options = status.MergeShortageOptions(nil)
	}
	current := status.Canonical(item.ShortageStatus)
	f.shortage = components.NewSelect(FieldShortage, "Shortage", options)
	if !f.selectShortage(current) {
		if current != "" && current != status.Unknown {
			f.shortage.SetOptions(append(options, current))
			f.shortage.SetValue(current)
		} else {
			f.selectShortage(status.SuggestShortage(item.StockQuantity, item.SafetyStock))
		}
	}

	f.form.AddField(f.name).
		AddField(f.category).
		AddField(f.unit).
		AddField(f.stock).
		AddField(f.safety).
		AddField(f.shortage).
		AddField(f.supplier).
		AddField(f.note)

	return f
}

// Code returns the code of the edited item.
func (f *EditForm) Code() string {
	return f.original.Code
}

// HandleKey forwards a key to the form and keeps the shortage selector in
// step with the quantities.
func (f *EditForm) HandleKey(key string) {
	focused := f.form.Focused()
	f.form.HandleKey(key)

	if focused == f.stock || focused == f.safety {
		f.AutoUpdateShortage()
	}
}

// AutoUpdateShortage sets the shortage selector to the status suggested by
// the current stock and safety values. Blank or non-numeric input counts as 0.
func (f *EditForm) AutoUpdateShortage() {
	stock := fields.ParseInt(f.stock.Value())
	safety := fields.ParseInt(f.safety.Value())
	f.selectShortage(status.SuggestShortage(stock, safety))
}

// selectShortage selects the option that canonicalizes to label, so a
// server-spelled option such as 要注意 still matches caution.
func (f *EditForm) selectShortage(label string) bool {
	for idx, opt := range f.shortage.Options() {
		if status.Canonical(opt) == label {
			f.shortage.SetSelected(idx)
			return true
		}
	}
	return false
}

// Shortage returns the selected shortage label.
func (f *EditForm) Shortage() string {
	return f.shortage.Value()
}

// IsSubmitted reports whether the user asked to save.
func (f *EditForm) IsSubmitted() bool {
	return f.form.IsSubmitted()
}

// IsCancelled reports whether the user backed out.
func (f *EditForm) IsCancelled() bool {
	return f.form.IsCancelled()
}

// Rearm clears the submit and cancel flags so the form takes input again.
// A non-nil err is shown on the form.
func (f *EditForm) Rearm(err error) {
	f.form.ResetState()
	if err != nil {
		f.form.SetError(err.Error())
	} else {
		f.form.SetError("")
	}
}

// Update returns the changed fields. Unchanged fields are left nil.
func (f *EditForm) Update() (models.ItemUpdate, error) {
	var u models.ItemUpdate
	var errs []error

	for _, in := range []*components.Input{f.name, f.stock, f.safety} {
		if !in.Validate() {
			errs = append(errs, errors.New(in.Name()+" is required"))
		}
	}

	str := func(in *components.Input, old string) *string {
		v := strings.TrimSpace(in.Value())
		if v == old {
			return nil
		}
		return &v
	}
	num := func(in *components.Input, label string, old int) *int {
		n, err := strconv.Atoi(strings.TrimSpace(in.Value()))
		if err != nil {
			errs = append(errs, errors.New(label+" must be a whole number"))
			return nil
		}
		if n == old {
			return nil
		}
		return &n
	}

	u.Name = str(f.name, f.original.Name)
	u.Category = str(f.category, f.original.Category)
	u.Unit = str(f.unit, f.original.Unit)
	u.SupplierName = str(f.supplier, f.original.SupplierName)
	u.Note = str(f.note, f.original.Note)
	u.StockQuantity = num(f.stock, "stock", f.original.StockQuantity)
	u.SafetyStock = num(f.safety, "safety stock", f.original.SafetyStock)

	if s := f.shortage.Value(); status.Canonical(s) != status.Canonical(f.original.ShortageStatus) {
		u.ShortageStatus = &s
	}

	if len(errs) > 0 {
		return models.ItemUpdate{}, errors.Join(errs...)
	}
	if err := u.Validate(); err != nil {
		return models.ItemUpdate{}, err
	}
	return u, nil
}

// Render renders the form with the live shortage suggestion.
func (f *EditForm) Render() string {
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	shortage := f.Shortage()
	pill := PillStyle(status.Classify(shortage, status.AxisShortage)).Render(shortage)

	return f.form.Render() + "\n\n" + hintStyle.Render("Shortage after save: ") + pill
}
