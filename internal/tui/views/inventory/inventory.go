// Package inventory provides the TUI inventory list, item detail and
// item edit views.
package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/render"
	"github.com/stocktrack/stocktrack/internal/status"
	"github.com/stocktrack/stocktrack/internal/tui/components"
)

// columnSpecs lays out the list columns; on narrow terminals supplier and
// category go first.
var columnSpecs = []components.ColumnSpec{
	{MinWidth: 10, Weight: 1.2, Priority: 9}, // code
	{MinWidth: 12, Weight: 2.0, Priority: 8}, // name
	{MinWidth: 8, Weight: 1.0, Priority: 2},  // category
	{Fixed: 9, Priority: 7},                  // stock
	{Fixed: 9, Priority: 5},                  // safety
	{Fixed: 10, Priority: 6},                 // shortage
	{Fixed: 12, Priority: 6},                 // order
	{MinWidth: 8, Weight: 1.0, Priority: 1},  // supplier
}

// InventoryView displays the filtered inventory.
type InventoryView struct {
	table    *components.Table
	items    []models.Item
	cards    []render.Card
	filtered int
	total    int
	loaded   bool
}

// NewInventoryView creates a new inventory view.
func NewInventoryView() *InventoryView {
	columns := []components.Column{
		{Title: "Code", Width: 16},
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 12},
		{Title: "Stock", Width: 9, Align: lipgloss.Right},
		{Title: "Safety", Width: 9, Align: lipgloss.Right},
		{Title: "Shortage", Width: 10},
		{Title: "Order", Width: 12},
		{Title: "Supplier", Width: 12},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(15)
	table.Focus(true)

	return &InventoryView{table: table}
}

// SetResult replaces the displayed list. The view keeps its own copy of
// the items; the caller's slice is not retained.
func (v *InventoryView) SetResult(result models.InventoryResult) {
	v.items = append([]models.Item(nil), result.Items...)
	v.cards = render.BuildCards(v.items)
	v.filtered = result.Filtered
	v.total = result.Total
	v.loaded = true

	rows := make([][]string, len(v.cards))
	for i, c := range v.cards {
		rows[i] = []string{
			c.Code,
			render.Text(c.Name),
			render.Text(c.Category),
			strconv.Itoa(c.Stock),
			strconv.Itoa(c.Safety),
			c.ShortageStatus,
			c.OrderStatus,
			render.Text(c.Supplier),
		}
	}
	v.table.SetRows(rows)
}

// IsLoaded reports whether a result has been shown yet.
func (v *InventoryView) IsLoaded() bool {
	return v.loaded
}

// CountLabel returns the "filtered / total" counter.
func (v *InventoryView) CountLabel() string {
	return render.CountLabel(v.filtered, v.total)
}

// MoveUp moves the selection up.
func (v *InventoryView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *InventoryView) MoveDown() {
	v.table.MoveDown()
}

// PageUp moves the selection up one page.
func (v *InventoryView) PageUp() {
	v.table.PageUp()
}

// PageDown moves the selection down one page.
func (v *InventoryView) PageDown() {
	v.table.PageDown()
}

// GoToTop selects the first item.
func (v *InventoryView) GoToTop() {
	v.table.GoToTop()
}

// GoToBottom selects the last item.
func (v *InventoryView) GoToBottom() {
	v.table.GoToBottom()
}

// Selected returns the card of the selected item.
func (v *InventoryView) Selected() *render.Card {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.cards) {
		return &v.cards[idx]
	}
	return nil
}

// SelectedItem returns the selected item.
func (v *InventoryView) SelectedItem() (models.Item, bool) {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.items) {
		return v.items[idx], true
	}
	return models.Item{}, false
}

// Render renders the list. criteria is shown in the filter bar.
func (v *InventoryView) Render(width, height int, criteria models.FilterCriteria) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== CONSUMABLE INVENTORY ==="))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(v.CountLabel()))
	b.WriteString("\n\n")

	filter := func(label, value string) string {
		if value == "" {
			value = status.All
		}
		return labelStyle.Render(label+": ") + valueStyle.Render(value)
	}
	b.WriteString(filter("QR", criteria.QRCode) + "  " +
		filter("Search", criteria.SearchText) + "  " +
		filter("Order", criteria.OrderStatus) + "  " +
		filter("Shortage", criteria.ShortageStatus))
	b.WriteString("\n\n")

	switch {
	case !v.loaded:
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(v.cards) == 0:
		b.WriteString(titleStyle.Render(render.EmptyTitle))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(render.EmptyHint))
		b.WriteString("\n")
	default:
		v.table.SetColumnWidths(components.CalculateColumnWidths(columnSpecs, width, 3))
		v.table.SetVisibleRows(height - 8)
		b.WriteString(v.table.Render())
		if c := v.Selected(); c != nil {
			b.WriteString(RenderPanel(c))
		}
	}

	b.WriteString("\n")
	if width < 80 {
		b.WriteString(helpStyle.Render("/:Search #:QR o/s:Status O/I/R:Act e:Edit"))
	} else {
		b.WriteString(helpStyle.Render("Up/Down:Select  g/G:Top/Bottom  Enter:Details  /:Search  #:QR  o:Order  s:Shortage  x:Clear  O:Outbound  I:Inbound  R:Request  e:Edit  t:Template"))
	}

	return b.String()
}

// PillStyle returns the badge style of a status category.
func PillStyle(cat status.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch cat {
	case status.CategoryAlert:
		return base.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FF4444"))
	case status.CategorySafe, status.CategorySuccess:
		return base.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00FF00"))
	case status.CategoryWarning:
		return base.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFAA00"))
	case status.CategoryInfo:
		return base.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#66CCFF"))
	default:
		return base.Foreground(lipgloss.Color("#00FF00")).Background(lipgloss.Color("#003300"))
	}
}

// RenderPanel renders the order-detail panel of a card, or nothing when the
// card has none.
func RenderPanel(c *render.Card) string {
	if !c.HasPanel() {
		return ""
	}

	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))

	var b strings.Builder
	b.WriteString("\n")

	switch c.Panel {
	case status.PanelPending:
		b.WriteString(sectionStyle.Render("Pending requests"))
		b.WriteString("\n")
		for _, o := range c.Pending {
			b.WriteString(lineStyle.Render(fmt.Sprintf("  %s  %s  qty %d",
				render.Text(o.RequestDate), render.Text(o.Requester), o.RequestedQuantity)))
			b.WriteString("\n")
		}
	case status.PanelCompleted:
		b.WriteString(sectionStyle.Render("Orders placed"))
		b.WriteString("\n")
		for _, o := range c.Completed {
			b.WriteString(lineStyle.Render(fmt.Sprintf("  %s  qty %d  due %s",
				render.Text(o.OrderDate), o.OrderedQuantity, render.Text(o.DueDate))))
			b.WriteString("\n")
		}
	case status.PanelInbound:
		b.WriteString(sectionStyle.Render("Received"))
		b.WriteString("\n")
		for _, d := range c.Inbound {
			b.WriteString(lineStyle.Render(fmt.Sprintf("  %s  qty %d  %s",
				render.Text(d.InboundDate), d.Quantity, render.Text(d.Receiver))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderDetail renders the full card of an item.
func RenderDetail(c *render.Card) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	if c == nil {
		return helpStyle.Render("No item selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== ITEM DETAILS ==="))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label+":") + " " + valueStyle.Render(value) + "\n")
	}
	row("Name", render.Text(c.Name))
	row("Code", render.Text(c.Code))
	row("Order code", render.Text(c.OrderCode))
	row("Category", render.Text(c.Category))
	row("Stock", fmt.Sprintf("%d %s", c.Stock, c.Unit))
	row("Safety stock", fmt.Sprintf("%d %s", c.Safety, c.Unit))
	row("Supplier", render.Text(c.Supplier))
	row("Image", c.ImageURL)
	b.WriteString("\n")

	b.WriteString(PillStyle(c.ShortageClass).Render("Shortage: " + c.ShortageStatus))
	b.WriteString(" ")
	b.WriteString(PillStyle(c.OrderClass).Render("Order: " + c.OrderStatus))
	b.WriteString("\n")

	b.WriteString(RenderPanel(c))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  O:Outbound  I:Inbound  R:Request  e:Edit"))

	return b.String()
}

// RenderQR renders the item code as a terminal QR code.
func RenderQR(code string) (string, error) {
	if code == "" {
		return "", errors.New("empty item code")
	}
	q, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", code, err)
	}
	return q.ToSmallString(false), nil
}
