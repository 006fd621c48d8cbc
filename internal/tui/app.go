package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stocktrack/stocktrack/internal/client"
	"github.com/stocktrack/stocktrack/internal/config"
	"github.com/stocktrack/stocktrack/internal/dispatch"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/render"
	"github.com/stocktrack/stocktrack/internal/services/inventory"
	"github.com/stocktrack/stocktrack/internal/status"
	"github.com/stocktrack/stocktrack/internal/tui/components"
	invviews "github.com/stocktrack/stocktrack/internal/tui/views/inventory"
	opviews "github.com/stocktrack/stocktrack/internal/tui/views/operations"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// Pages reachable from the function keys in addition to the dispatch
// targets.
const (
	PageHelp      dispatch.Page = "help"
	PageEdit      dispatch.Page = "edit"
	PageSuppliers dispatch.Page = "suppliers"
	PageEmployees dispatch.Page = "employees"
	PageUsers     dispatch.Page = "users"
	PageDispatch  dispatch.Page = "dispatch"
	PageHistory   dispatch.Page = "history"
	PageQuit      dispatch.Page = "quit"
)

// alertTTL is how long an alert stays in the alert bar.
const alertTTL = 8 * time.Second

// API is the backend as seen by the TUI. *client.Client implements it.
type API interface {
	inventory.Source
	LookupItem(ctx context.Context, code string) (models.Item, error)
	Outbound(ctx context.Context, req models.MovementRequest) (int, error)
	Inbound(ctx context.Context, req models.MovementRequest) (int, error)
	RequestOrder(ctx context.Context, req models.OrderRequest) error
	UpdateItem(ctx context.Context, code string, update models.ItemUpdate) error
	DownloadTemplate(ctx context.Context) client.Template
}

var _ API = (*client.Client)(nil)

// filterField names a free-text filter.
type filterField string

const (
	filterNone   filterField = ""
	filterQR     filterField = "qr"
	filterSearch filterField = "search"
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	api    API
	config *config.Config

	// Services
	inventory  *inventory.Service
	dispatcher *dispatch.Dispatcher
	events     chan tea.Msg

	// Views
	invView   *invviews.InventoryView
	workspace *opviews.Workspace
	editForm  *invviews.EditForm

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Current view
	page         dispatch.Page
	previousPage dispatch.Page
	showDetail   bool

	// Filters
	criteria    models.FilterCriteria
	options     inventory.Options
	editing     filterField
	filterInput *components.Input
	debounceGen map[filterField]int

	// Alerts
	alerts []Alert
}

// Alert represents a status message in the alert bar.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// tickMsg is sent periodically to expire alerts.
type tickMsg time.Time

type optionsLoadedMsg struct {
	options inventory.Options
	err     error
}

type inventoryLoadedMsg struct {
	snapshot inventory.Snapshot
	err      error
}

type debounceMsg struct {
	field filterField
	gen   int
}

type dispatchDoneMsg struct {
	kind models.ActionKind
	err  error
}

type lookupDoneMsg struct {
	kind models.ActionKind
	code string
	item models.Item
	err  error
}

type submitDoneMsg struct {
	kind    models.ActionKind
	message string
	err     error
}

type editSavedMsg struct {
	code string
	err  error
}

type templateSavedMsg struct {
	path     string
	fallback bool
	err      error
}

// New creates a new App instance.
func New(api API, cfg *config.Config) *App {
	events := make(chan tea.Msg, 16)
	b := bridge{events: events}

	return &App{
		api:         api,
		config:      cfg,
		inventory:   inventory.NewService(api),
		dispatcher:  dispatch.New(b, b, cfg.Dispatch.ReadyTimeout()),
		events:      events,
		invView:     invviews.NewInventoryView(),
		workspace:   opviews.NewWorkspace(),
		theme:       NewTheme(cfg.Display.ColorScheme),
		keys:        DefaultKeyMap(),
		page:        dispatch.PageInventory,
		debounceGen: map[filterField]int{},
		alerts:      []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		listen(a.events),
		a.loadOptions(),
		a.reload(),
	)
}

// tickCmd returns a command that sends tick messages.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) requestContext() (context.Context, context.CancelFunc) {
	return a.config.Server.RequestContext(context.Background())
}

// loadOptions fetches the status selector choices.
func (a *App) loadOptions() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		opts, err := a.inventory.Options(ctx)
		return optionsLoadedMsg{options: opts, err: err}
	}
}

// reload issues a query for the current criteria. The request generation
// is taken here, in Update, so later keystrokes always supersede it.
func (a *App) reload() tea.Cmd {
	req := a.inventory.NewRequest(a.criteria.Trimmed())
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		snap, err := a.inventory.Fetch(ctx, req)
		return inventoryLoadedMsg{snapshot: snap, err: err}
	}
}

// debounce schedules a reload for field unless another keystroke arrives
// first.
func (a *App) debounce(field filterField) tea.Cmd {
	a.debounceGen[field]++
	gen := a.debounceGen[field]
	return tea.Tick(a.config.Filter.Debounce(), func(time.Time) tea.Msg {
		return debounceMsg{field: field, gen: gen}
	})
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tickMsg:
		a.expireAlerts(time.Time(msg))
		return a, tickCmd()

	case optionsLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load filter options: "+msg.err.Error())
			return a, nil
		}
		a.options = msg.options
		return a, nil

	case inventoryLoadedMsg:
		switch {
		case errors.Is(msg.err, inventory.ErrStale):
		case msg.err != nil:
			a.AddAlert(AlertWarning, "Failed to load inventory: "+msg.err.Error())
		default:
			a.invView.SetResult(msg.snapshot.Result)
		}
		return a, nil

	case debounceMsg:
		if msg.gen != a.debounceGen[msg.field] {
			return a, nil
		}
		return a, a.reload()

	case switchPageMsg:
		cmd := a.switchPage(msg.page)
		close(msg.ready)
		return a, tea.Batch(cmd, listen(a.events))

	case switchSubtabMsg:
		a.workspace.SetSubtab(msg.kind)
		close(msg.ready)
		return a, listen(a.events)

	case setCodeMsg:
		a.workspace.SetCode(msg.field, msg.code)
		return a, listen(a.events)

	case quickInfoMsg:
		a.workspace.ShowQuickInfo(msg.container, msg.details, msg.payload)
		return a, listen(a.events)

	case focusSelectMsg:
		a.workspace.FocusSelect(msg.field)
		return a, listen(a.events)

	case dispatchDoneMsg:
		switch {
		case errors.Is(msg.err, dispatch.ErrUnknownAction):
			slog.Debug("ignoring item action", "kind", msg.kind)
		case msg.err != nil:
			a.AddAlert(AlertWarning, fmt.Sprintf("Could not open %s form: %v", msg.kind, msg.err))
		}
		return a, nil

	case lookupDoneMsg:
		return a, a.applyLookup(msg)

	case submitDoneMsg:
		form := a.workspace.Form(msg.kind)
		if msg.err != nil {
			form.Rearm(msg.err)
			a.AddAlert(AlertWarning, msg.err.Error())
			return a, nil
		}
		form.Reset()
		a.AddAlert(AlertInfo, msg.message)
		return a, a.reload()

	case editSavedMsg:
		if msg.err != nil {
			if a.editForm != nil {
				a.editForm.Rearm(msg.err)
			}
			a.AddAlert(AlertWarning, "Failed to save "+msg.code+": "+msg.err.Error())
			return a, nil
		}
		a.closeEdit()
		a.AddAlert(AlertInfo, msg.code+" saved")
		return a, a.reload()

	case templateSavedMsg:
		switch {
		case msg.err != nil:
			a.AddAlert(AlertWarning, "Failed to save template: "+msg.err.Error())
		case msg.fallback:
			a.AddAlert(AlertInfo, "Template saved to "+msg.path+" (built-in copy)")
		default:
			a.AddAlert(AlertInfo, "Template saved to "+msg.path)
		}
		return a, nil
	}

	return a, nil
}

// switchPage shows page. Returning to the inventory refreshes it.
func (a *App) switchPage(page dispatch.Page) tea.Cmd {
	a.showDetail = false
	a.editing = filterNone
	if a.page == PageEdit && page != PageEdit {
		a.editForm = nil
	}
	if page == PageHelp && a.page != PageHelp {
		a.previousPage = a.page
	}
	a.page = page
	if page == dispatch.PageInventory {
		return a.reload()
	}
	return nil
}

func (a *App) closeEdit() {
	a.editForm = nil
	a.page = dispatch.PageInventory
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
			return a, nil
		}
		return a, nil
	}

	if msg.Type == tea.KeyCtrlC {
		a.showConfirm = true
		return a, nil
	}

	// Function key navigation (always available)
	if a.keys.IsFunctionKey(msg) {
		return a.handleFunctionKey(msg)
	}

	// Form pages take all remaining input
	switch a.page {
	case PageEdit:
		return a.handleEditKeys(msg)
	case dispatch.PageOperations, dispatch.PageOrder:
		return a.handleFormKeys(msg)
	}

	// Filter input needs text keys before the global bindings
	if a.editing != filterNone {
		return a.handleFilterKeys(msg)
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.Help.Matches(msg) {
		return a, a.switchPage(PageHelp)
	}

	if a.keys.Back.Matches(msg) {
		if a.showDetail {
			a.showDetail = false
			return a, nil
		}
		if a.page == PageHelp && a.previousPage != "" {
			page := a.previousPage
			a.previousPage = ""
			return a, a.switchPage(page)
		}
		return a, nil
	}

	if a.page == dispatch.PageInventory {
		return a.handleInventoryKeys(msg)
	}

	return a, nil
}

func (a *App) handleFunctionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := a.keys.FunctionKeyPage(msg)
	switch {
	case page == PageQuit:
		a.showConfirm = true
		return a, nil
	case page == "":
		return a, nil
	case page == dispatch.PageOperations && a.page == dispatch.PageOperations:
		a.workspace.ToggleSubtab()
		return a, nil
	}
	return a, a.switchPage(page)
}

// handleInventoryKeys handles key presses on the inventory page.
func (a *App) handleInventoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if kind, ok := a.keys.ActionKind(msg); ok {
		return a, a.dispatchAction(kind)
	}

	switch {
	case a.keys.Edit.Matches(msg):
		a.openEdit()
		return a, nil
	case a.keys.Template.Matches(msg):
		return a, a.downloadTemplate()
	case a.keys.Reload.Matches(msg):
		return a, tea.Batch(a.loadOptions(), a.reload())
	}

	if a.showDetail {
		return a, nil
	}

	switch {
	case a.keys.Up.Matches(msg):
		a.invView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.invView.MoveDown()
	case a.keys.PageUp.Matches(msg):
		a.invView.PageUp()
	case a.keys.PageDown.Matches(msg):
		a.invView.PageDown()
	case a.keys.Home.Matches(msg):
		a.invView.GoToTop()
	case a.keys.End.Matches(msg):
		a.invView.GoToBottom()
	case a.keys.Select.Matches(msg):
		if a.invView.Selected() != nil {
			a.showDetail = true
		}
	case a.keys.Search.Matches(msg):
		a.startFilter(filterSearch)
	case a.keys.QRCode.Matches(msg):
		a.startFilter(filterQR)
	case a.keys.OrderFilter.Matches(msg):
		a.criteria.OrderStatus = nextOption(a.orderOptions(), a.criteria.OrderStatus)
		return a, a.reload()
	case a.keys.ShortageFilter.Matches(msg):
		a.criteria.ShortageStatus = nextOption(a.shortageOptions(), a.criteria.ShortageStatus)
		return a, a.reload()
	case a.keys.ClearFilters.Matches(msg):
		a.criteria = models.FilterCriteria{}
		a.debounceGen[filterQR]++
		a.debounceGen[filterSearch]++
		return a, a.reload()
	}

	return a, nil
}

func (a *App) orderOptions() []string {
	if len(a.options.OrderStatus) > 0 {
		return a.options.OrderStatus
	}
	return append([]string{status.All}, status.OrderStatuses()...)
}

func (a *App) shortageOptions() []string {
	if len(a.options.ShortageStatus) > 0 {
		return a.options.ShortageStatus
	}
	return append([]string{status.All}, status.ShortageStatuses()...)
}

// nextOption returns the option after current, wrapping around. An empty
// current counts as "all".
func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	want := status.Canonical(current)
	if want == "" {
		want = status.All
	}
	for i, opt := range options {
		if status.Canonical(opt) == want {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// startFilter enters text input for a free-text filter.
func (a *App) startFilter(field filterField) {
	label := "Search"
	value := a.criteria.SearchText
	if field == filterQR {
		label = "QR"
		value = a.criteria.QRCode
	}
	a.filterInput = components.NewInput(string(field), label).SetWidth(30).SetValue(value)
	a.filterInput.Focus(true)
	a.editing = field
}

func (a *App) setFilter(field filterField, value string) {
	switch field {
	case filterQR:
		a.criteria.QRCode = value
	case filterSearch:
		a.criteria.SearchText = value
	}
}

// handleFilterKeys edits a free-text filter. Every keystroke schedules a
// debounced reload; Enter applies at once and Esc clears the filter.
func (a *App) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := a.editing

	switch msg.String() {
	case "enter":
		a.editing = filterNone
		a.debounceGen[field]++
		return a, a.reload()
	case "esc":
		a.editing = filterNone
		a.setFilter(field, "")
		a.debounceGen[field]++
		return a, a.reload()
	}

	before := a.filterInput.Value()
	a.filterInput.HandleKey(msg.String())
	if a.filterInput.Value() == before {
		return a, nil
	}
	a.setFilter(field, a.filterInput.Value())
	return a, a.debounce(field)
}

// dispatchAction routes the selected item to the form of kind. The
// dispatcher blocks on page switches, so it runs off the update loop and
// talks back through the bridge.
func (a *App) dispatchAction(kind models.ActionKind) tea.Cmd {
	card := a.invView.Selected()
	if card == nil {
		return nil
	}
	payload := card.Payload
	a.showDetail = false

	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		err := a.dispatcher.Dispatch(ctx, kind, payload)
		return dispatchDoneMsg{kind: kind, err: err}
	}
}

func (a *App) openEdit() {
	item, ok := a.invView.SelectedItem()
	if !ok {
		return
	}
	a.editForm = invviews.NewEditForm(item, a.options.EditShortage)
	a.showDetail = false
	a.page = PageEdit
}

// handleEditKeys handles key presses on the edit page.
func (a *App) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editForm == nil {
		a.page = dispatch.PageInventory
		return a, nil
	}

	a.editForm.HandleKey(msg.String())

	if a.editForm.IsCancelled() {
		a.closeEdit()
		return a, nil
	}

	if a.editForm.IsSubmitted() {
		update, err := a.editForm.Update()
		a.editForm.Rearm(err)
		if err != nil {
			return a, nil
		}
		if update.IsEmpty() {
			a.closeEdit()
			a.AddAlert(AlertInfo, "No changes")
			return a, nil
		}
		return a, a.saveItem(a.editForm.Code(), update)
	}

	return a, nil
}

func (a *App) saveItem(code string, update models.ItemUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		err := a.api.UpdateItem(ctx, code, update)
		return editSavedMsg{code: code, err: err}
	}
}

func (a *App) currentForm() *opviews.ActionForm {
	if a.page == dispatch.PageOrder {
		return a.workspace.Form(models.ActionOrder)
	}
	return a.workspace.Operations()
}

// handleFormKeys handles key presses on the operations and order pages.
func (a *App) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.page == dispatch.PageOperations && a.keys.SwitchSubtab.Matches(msg) {
		a.workspace.ToggleSubtab()
		return a, nil
	}

	form := a.currentForm()

	if msg.Type == tea.KeyEnter && form.CodeFocused() && form.Code() != "" {
		return a, a.lookupItem(form.Kind(), form.Code())
	}

	form.HandleKey(msg.String())

	if form.IsCancelled() {
		form.Rearm(nil)
		return a, a.switchPage(dispatch.PageInventory)
	}

	if form.IsSubmitted() {
		return a, a.submit(form)
	}

	return a, nil
}

// lookupItem fetches an item typed into a form's code field.
func (a *App) lookupItem(kind models.ActionKind, code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		item, err := a.api.LookupItem(ctx, code)
		return lookupDoneMsg{kind: kind, code: code, item: item, err: err}
	}
}

// applyLookup shows the looked-up item on its form, unless the code has
// changed since the lookup started.
func (a *App) applyLookup(msg lookupDoneMsg) tea.Cmd {
	form := a.workspace.Form(msg.kind)
	if form == nil || !strings.EqualFold(form.Code(), msg.code) {
		return nil
	}
	if errors.Is(msg.err, client.ErrItemNotFound) {
		a.AddAlert(AlertWarning, "Item not found: "+msg.code)
		return nil
	}
	if msg.err != nil {
		a.AddAlert(AlertWarning, "Lookup failed: "+msg.err.Error())
		return nil
	}

	route, ok := dispatch.RouteFor(msg.kind)
	if !ok {
		return nil
	}
	a.workspace.ShowQuickInfo(route.InfoBox, route.InfoDetails, models.NewActionPayload(msg.item))
	a.workspace.FocusSelect(route.FocusField)
	return nil
}

// submit sends the form's request. The form is re-armed at once so a
// second Enter does not resubmit while the request is in flight.
func (a *App) submit(form *opviews.ActionForm) tea.Cmd {
	kind := form.Kind()

	if kind == models.ActionOrder {
		req, err := form.OrderRequest()
		form.Rearm(err)
		if err != nil {
			return nil
		}
		return func() tea.Msg {
			ctx, cancel := a.requestContext()
			defer cancel()
			if err := a.api.RequestOrder(ctx, req); err != nil {
				return submitDoneMsg{kind: kind, err: err}
			}
			return submitDoneMsg{kind: kind, message: fmt.Sprintf("Order requested: %s x%d", req.Code, req.Quantity)}
		}
	}

	req, err := form.MovementRequest()
	form.Rearm(err)
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()

		var stock int
		var err error
		if kind == models.ActionOutbound {
			stock, err = a.api.Outbound(ctx, req)
		} else {
			stock, err = a.api.Inbound(ctx, req)
		}
		if err != nil {
			return submitDoneMsg{kind: kind, err: err}
		}
		return submitDoneMsg{
			kind:    kind,
			message: fmt.Sprintf("%s %s x%d recorded, stock now %d", render.ActionLabel(kind), req.Code, req.Quantity, stock),
		}
	}
}

// downloadTemplate saves the import template to the export directory.
// The client falls back to its built-in copy, so only the write can fail.
func (a *App) downloadTemplate() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()

		tmpl := a.api.DownloadTemplate(ctx)
		path, err := config.ExportPath(a.config, tmpl.Name)
		if err != nil {
			return templateSavedMsg{err: err}
		}
		if err := os.WriteFile(path, tmpl.Data, 0o644); err != nil {
			return templateSavedMsg{err: fmt.Errorf("writing %s: %w", path, err)}
		}
		return templateSavedMsg{path: path, fallback: tmpl.Fallback}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("StockTrack shutting down...")
	}

	var b strings.Builder

	// Header
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	// Alert bar
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	// Main content area
	contentHeight := ContentHeight(a.height, 6)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	// Footer/status bar
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("STOCKTRACK v%s", Version)

	info := strings.ToUpper(string(a.page))
	if a.invView.IsLoaded() {
		info += " | ITEMS: " + a.invView.CountLabel()
	}

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(info) - 2
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DoubleRule(a.width)
}

// renderAlertBar renders the newest alert, or the date when there is none.
func (a *App) renderAlertBar() string {
	date := a.theme.Value.Render(time.Now().Format(a.config.Display.DateFormat))

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		prefix := "INFO: "
		switch alert.Level {
		case AlertCritical:
			prefix = "CRITICAL: "
		case AlertWarning:
			prefix = "WARNING: "
		}
		alertText = a.theme.AlertStyle(alert.Level).Render(prefix + alert.Message)
	} else {
		alertText = a.theme.Muted.Render("Ready")
	}

	return date + a.theme.Divider.Render() + alertText
}

// renderContent renders the main content area based on current page.
func (a *App) renderContent(height int) string {
	contentWidth := ContentWidth(a.width, 40, MaxContentWidth)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(a.pageContent(contentWidth, height)))
}

// pageContent returns the content for the current page.
func (a *App) pageContent(width, height int) string {
	switch a.page {
	case dispatch.PageInventory:
		return a.renderInventory(width, height)
	case dispatch.PageOperations:
		return a.theme.Title.Render("=== OPERATIONS ===") + "\n\n" + a.workspace.RenderOperations()
	case dispatch.PageOrder:
		return a.theme.Title.Render("=== ORDER REQUEST ===") + "\n\n" + a.workspace.RenderOrder()
	case PageEdit:
		if a.editForm != nil {
			return a.editForm.Render()
		}
		return a.renderInventory(width, height)
	case PageHelp:
		return a.renderHelp()
	default:
		return a.renderPlaceholder(string(a.page))
	}
}

// renderInventory renders the list, the detail card or the filter prompt.
func (a *App) renderInventory(width, height int) string {
	if a.showDetail {
		return a.renderDetail(width)
	}

	var prompt string
	if a.editing != filterNone && a.filterInput != nil {
		prompt = a.filterInput.Render() + "\n" +
			a.theme.Muted.Render("Enter:Apply  Esc:Clear") + "\n\n"
	}

	return prompt + a.invView.Render(width, height-lipgloss.Height(prompt), a.criteria)
}

// renderDetail renders the selected item next to its QR code.
func (a *App) renderDetail(width int) string {
	card := a.invView.Selected()
	detail := invviews.RenderDetail(card)
	if card == nil {
		return detail
	}

	detail += "\n\n" + a.theme.Label.Render("Stock ") +
		a.theme.StockBar(card.Stock, card.Safety, 30)

	qr, err := invviews.RenderQR(card.Code)
	if err != nil {
		slog.Debug("skipping QR code", "code", card.Code, "error", err)
		return detail
	}
	if GetBreakpoint(width) == BreakpointNarrow {
		return detail
	}
	return SideBySide(detail, a.theme.Panel("QR", qr, lipgloss.Width(qr)+4), width, 2)
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("=== HELP ==="))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("NAVIGATION"))
	b.WriteString("\n\n")

	navItems := [][2]string{
		{"F1", "Help"},
		{"F2", "Inventory"},
		{"F3", "Operations (again: switch subtab)"},
		{"F4", "Order request"},
		{"F5", "Suppliers"},
		{"F6", "Employees"},
		{"F7", "Users"},
		{"F8", "Dispatch"},
		{"F9", "History"},
		{"F10", "Quit"},
	}

	for _, item := range navItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("INVENTORY"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"Up/Down", "Select item"},
		{"g / G", "First / last item"},
		{"Enter", "Item details"},
		{"/", "Search text"},
		{"#", "QR code"},
		{"o / s", "Cycle order / shortage filter"},
		{"x", "Clear filters"},
		{"O / I", "Outbound / inbound"},
		{"R", "Request order"},
		{"e", "Edit item"},
		{"t", "Save import template"},
		{"r", "Reload"},
		{"Esc", "Back"},
	}

	for _, item := range ctrlItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderPlaceholder renders a placeholder for pages without a view.
func (a *App) renderPlaceholder(name string) string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render(fmt.Sprintf("=== %s ===", strings.ToUpper(name))))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Muted.Render("This page is not yet implemented."))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Label.Render("Press F2 to return to Inventory"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	return a.theme.Rule(a.width) + "\n" +
		a.theme.Footer.Render(a.keys.StatusBarHelp(a.width))
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	switch level {
	case AlertCritical:
		slog.Error(message)
	case AlertWarning:
		slog.Warn(message)
	}

	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// expireAlerts drops alerts older than alertTTL. Critical alerts stay
// until cleared.
func (a *App) expireAlerts(now time.Time) {
	kept := a.alerts[:0]
	for _, alert := range a.alerts {
		if alert.Level == AlertCritical || now.Sub(alert.Time) < alertTTL {
			kept = append(kept, alert)
		}
	}
	a.alerts = kept
}

// Run starts the TUI application.
func Run(ctx context.Context, api API, cfg *config.Config) error {
	app := New(api, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
