// Package render turns a filtered item list into display models and HTML
// markup. Everything here is a pure function of its input.
package render

import (
	"strings"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/status"
)

// MaxPanelEntries caps the entries shown in an order-detail panel.
const MaxPanelEntries = 2

// PlaceholderImage is shown for items without an image.
const PlaceholderImage = "https://placehold.co/200x150?text=No+Image"

// Empty-state copy.
const (
	EmptyTitle = "No items match the current filters."
	EmptyHint  = "Change the filter conditions."
)

// Missing is displayed for absent text values.
const Missing = "-"

// Card is the display model of one item.
type Card struct {
	Code      string
	OrderCode string
	Name      string
	Category  string
	Unit      string
	Stock     int
	Safety    int
	Supplier  string
	ImageURL  string

	ShortageStatus string
	OrderStatus    string
	ShortageClass  status.Category
	OrderClass     status.Category

	// Panel selects which of the entry slices below is populated. The
	// other two are always nil.
	Panel     status.Panel
	Pending   []models.PendingOrder
	Completed []models.CompletedOrder
	Inbound   []models.InboundDetail

	Payload models.ActionPayload
}

// HasPanel reports whether the card shows an order-detail panel.
func (c *Card) HasPanel() bool {
	switch c.Panel {
	case status.PanelPending:
		return len(c.Pending) > 0
	case status.PanelCompleted:
		return len(c.Completed) > 0
	case status.PanelInbound:
		return len(c.Inbound) > 0
	}
	return false
}

// BuildCard derives the display model of an item.
func BuildCard(item models.Item) Card {
	c := Card{
		Code:           item.Code,
		OrderCode:      item.OrderCode,
		Name:           item.Name,
		Category:       item.Category,
		Unit:           item.Unit,
		Stock:          item.StockQuantity,
		Safety:         item.SafetyStock,
		Supplier:       item.SupplierName,
		ImageURL:       ImageURL(item.ImagePath),
		ShortageStatus: orDefault(item.ShortageStatus, status.Unknown),
		OrderStatus:    orDefault(item.OrderStatus, status.Unknown),
		Payload:        models.NewActionPayload(item),
	}
	c.ShortageClass = status.Classify(c.ShortageStatus, status.AxisShortage)
	c.OrderClass = status.Classify(c.OrderStatus, status.AxisOrder)

	c.Panel = status.PanelFor(c.OrderStatus)
	switch c.Panel {
	case status.PanelPending:
		c.Pending = head(item.PendingOrders)
	case status.PanelCompleted:
		c.Completed = head(item.CompletedOrders)
	case status.PanelInbound:
		c.Inbound = head(item.InboundDetails)
	}

	return c
}

// BuildCards derives display models for a list, preserving order.
func BuildCards(items []models.Item) []Card {
	cards := make([]Card, len(items))
	for i, item := range items {
		cards[i] = BuildCard(item)
	}
	return cards
}

// head copies at most MaxPanelEntries leading entries.
func head[T any](entries []T) []T {
	if len(entries) == 0 {
		return nil
	}
	n := min(len(entries), MaxPanelEntries)
	out := make([]T, n)
	copy(out, entries[:n])
	return out
}

// ImageURL maps a stored image path to a display URL.
func ImageURL(path string) string {
	switch {
	case path == "":
		return PlaceholderImage
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, "/uploads/"):
		return path
	case strings.HasPrefix(path, "uploads/"):
		return "/" + path
	default:
		return "/uploads/" + path
	}
}

// CountLabel formats the "filtered / total" counter.
func CountLabel(filtered, total int) string {
	return itoa(filtered) + " / " + itoa(total)
}

// Text returns s, or Missing when s is empty.
func Text(s string) string {
	return orDefault(s, Missing)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
