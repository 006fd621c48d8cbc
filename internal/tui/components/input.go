package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Input is a single-line text input. Editing works on runes so that
// Japanese names and codes behave like ASCII ones.
type Input struct {
	name        string
	label       string
	value       []rune
	placeholder string
	width       int
	focused     bool
	selected    bool // next printable key replaces the whole value
	cursorPos   int
	maxLength   int
	required    bool
	err         string
}

// NewInput creates a new input field. name identifies the field to
// callers that address form fields by name.
func NewInput(name, label string) *Input {
	return &Input{
		name:      name,
		label:     label,
		width:     20,
		maxLength: 100,
	}
}

// Name returns the field name.
func (i *Input) Name() string {
	return i.name
}

// SetValue sets the input value.
func (i *Input) SetValue(v string) *Input {
	i.value = []rune(v)
	i.cursorPos = len(i.value)
	i.selected = false
	return i
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length in runes.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// SetError sets an error message.
func (i *Input) SetError(e string) *Input {
	i.err = e
	return i
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	if !focused {
		i.selected = false
	}
	if focused && i.cursorPos > len(i.value) {
		i.cursorPos = len(i.value)
	}
}

// Select focuses the input and selects its content, so typing replaces it.
func (i *Input) Select() {
	i.Focus(true)
	i.cursorPos = len(i.value)
	i.selected = len(i.value) > 0
}

// IsSelected reports whether the content is selected.
func (i *Input) IsSelected() bool {
	return i.selected
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current value.
func (i *Input) Value() string {
	return string(i.value)
}

// HandleKey handles a key press.
func (i *Input) HandleKey(key string) {
	if !i.focused {
		return
	}

	switch key {
	case "backspace":
		if i.selected {
			i.clear()
			return
		}
		if i.cursorPos > 0 {
			i.value = append(i.value[:i.cursorPos-1], i.value[i.cursorPos:]...)
			i.cursorPos--
		}
	case "delete":
		if i.selected {
			i.clear()
			return
		}
		if i.cursorPos < len(i.value) {
			i.value = append(i.value[:i.cursorPos], i.value[i.cursorPos+1:]...)
		}
	case "left":
		i.selected = false
		if i.cursorPos > 0 {
			i.cursorPos--
		}
	case "right":
		i.selected = false
		if i.cursorPos < len(i.value) {
			i.cursorPos++
		}
	case "home", "ctrl+a":
		i.selected = false
		i.cursorPos = 0
	case "end", "ctrl+e":
		i.selected = false
		i.cursorPos = len(i.value)
	case "ctrl+u":
		i.clear()
	default:
		r := []rune(key)
		if len(r) != 1 {
			return
		}
		if i.selected {
			i.clear()
		}
		if len(i.value) < i.maxLength {
			i.value = append(i.value[:i.cursorPos], append(r, i.value[i.cursorPos:]...)...)
			i.cursorPos++
		}
	}
}

func (i *Input) clear() {
	i.value = nil
	i.cursorPos = 0
	i.selected = false
}

// Validate validates the input.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(i.Value()) == "" {
		i.err = "Required"
		return false
	}
	i.err = ""
	return true
}

// Render renders the input field.
func (i *Input) Render() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(16)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66"))
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#66FF66"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#006600"))

	label := i.label
	if i.required {
		label += "*"
	}
	label += ":"

	var display string
	switch {
	case len(i.value) == 0 && i.placeholder != "" && !i.focused:
		display = mutedStyle.Render(i.placeholder)
	case i.focused && i.selected:
		display = selStyle.Render(i.Value())
	case i.focused:
		before := string(i.value[:i.cursorPos])
		after := string(i.value[i.cursorPos:])
		display = focusStyle.Render(before + "_" + after)
	default:
		display = valueStyle.Render(i.Value())
	}

	if w := lipgloss.Width(display); w < i.width {
		display += strings.Repeat(" ", i.width-w)
	}

	result := labelStyle.Render(label) + " " + display

	if i.err != "" {
		result += " " + errStyle.Render(i.err)
	}

	return result
}

// Select is a selection input component.
type Select struct {
	name     string
	label    string
	options  []string
	selected int
	focused  bool
}

// NewSelect creates a new select input.
func NewSelect(name, label string, options []string) *Select {
	return &Select{
		name:    name,
		label:   label,
		options: options,
	}
}

// Name returns the field name.
func (s *Select) Name() string {
	return s.name
}

// SetOptions replaces the options, keeping the current value when it is
// still offered.
func (s *Select) SetOptions(options []string) *Select {
	current := s.Value()
	s.options = options
	s.selected = 0
	s.SetValue(current)
	return s
}

// Options returns the selectable values.
func (s *Select) Options() []string {
	return s.options
}

// SetSelected sets the selected index.
func (s *Select) SetSelected(idx int) *Select {
	if idx >= 0 && idx < len(s.options) {
		s.selected = idx
	}
	return s
}

// SetValue selects the option equal to v. It reports whether one matched.
func (s *Select) SetValue(v string) bool {
	for idx, opt := range s.options {
		if opt == v {
			s.selected = idx
			return true
		}
	}
	return false
}

// Focus sets the focus state.
func (s *Select) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Select) IsFocused() bool {
	return s.focused
}

// Value returns the selected value.
func (s *Select) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected]
	}
	return ""
}

// SelectedIndex returns the selected index.
func (s *Select) SelectedIndex() int {
	return s.selected
}

// HandleKey handles a key press.
func (s *Select) HandleKey(key string) {
	if !s.focused {
		return
	}

	switch key {
	case "left", "h":
		if s.selected > 0 {
			s.selected--
		}
	case "right", "l", " ":
		if s.selected < len(s.options)-1 {
			s.selected++
		}
	}
}

// Render renders the select.
func (s *Select) Render() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(16)
	optStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)

	var b strings.Builder
	b.WriteString(labelStyle.Render(s.label + ":"))
	b.WriteString(" ")

	for i, opt := range s.options {
		if i > 0 {
			b.WriteString(" ")
		}

		if i == s.selected {
			if s.focused {
				b.WriteString(selStyle.Render("[" + opt + "]"))
			} else {
				b.WriteString(selStyle.Render("(" + opt + ")"))
			}
		} else {
			b.WriteString(optStyle.Render(" " + opt + " "))
		}
	}

	return b.String()
}

// FormField is a named, focusable form element.
type FormField interface {
	Name() string
	Focus(bool)
	IsFocused() bool
	HandleKey(string)
	Render() string
}

var (
	_ FormField = (*Input)(nil)
	_ FormField = (*Select)(nil)
)

// Form is a simple form container.
type Form struct {
	title      string
	fields     []FormField
	focusIndex int
	submitted  bool
	cancelled  bool
	err        string
}

// NewForm creates a new form.
func NewForm(title string) *Form {
	return &Form{
		title: title,
	}
}

// AddField adds a field to the form.
func (f *Form) AddField(field FormField) *Form {
	f.fields = append(f.fields, field)
	if len(f.fields) == 1 {
		field.Focus(true)
	}
	return f
}

// Field looks up a field by name.
func (f *Form) Field(name string) (FormField, bool) {
	for _, field := range f.fields {
		if field.Name() == name {
			return field, true
		}
	}
	return nil, false
}

// Focused returns the focused field, or nil for an empty form.
func (f *Form) Focused() FormField {
	if f.focusIndex < len(f.fields) {
		return f.fields[f.focusIndex]
	}
	return nil
}

// FocusField moves focus to the named field. Inputs get their content
// selected. It reports whether the field exists.
func (f *Form) FocusField(name string) bool {
	for idx, field := range f.fields {
		if field.Name() != name {
			continue
		}
		f.fields[f.focusIndex].Focus(false)
		f.focusIndex = idx
		if in, ok := field.(*Input); ok {
			in.Select()
		} else {
			field.Focus(true)
		}
		return true
	}
	return false
}

// HandleKey handles form navigation.
func (f *Form) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.submitted = true
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.submitted = true
		} else {
			f.nextField()
		}
	default:
		if f.focusIndex < len(f.fields) {
			f.fields[f.focusIndex].HandleKey(key)
		}
	}
}

func (f *Form) nextField() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = (f.focusIndex + 1) % len(f.fields)
	f.fields[f.focusIndex].Focus(true)
}

func (f *Form) prevField() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

// IsSubmitted returns true if form was submitted.
func (f *Form) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if form was cancelled.
func (f *Form) IsCancelled() bool {
	return f.cancelled
}

// ResetState clears the submitted and cancelled flags so the form can be
// used again after a failed save.
func (f *Form) ResetState() {
	f.submitted = false
	f.cancelled = false
}

// SetError sets an error message.
func (f *Form) SetError(err string) {
	f.err = err
}

// Render renders the form.
func (f *Form) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("=== %s ===", f.title)))
	b.WriteString("\n\n")

	for _, field := range f.fields {
		b.WriteString(field.Render())
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Save  Esc:Cancel"))

	return b.String()
}
