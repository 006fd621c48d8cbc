package fields

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/status"
)

// DefaultUnit is used when a record carries no unit.
const DefaultUnit = "piece"

// Normalize resolves every logical field of a raw record into a typed item.
// It never fails: absent or malformed values fall back to their defaults.
func Normalize(record map[string]any) models.Item {
	item := models.Item{
		Code:           PickString(record, Code),
		OrderCode:      PickString(record, OrderCode),
		Name:           PickString(record, Name),
		Category:       PickString(record, Category),
		Unit:           PickString(record, Unit),
		StockQuantity:  ParseInt(Pick(record, Stock)),
		SafetyStock:    ParseInt(Pick(record, Safety)),
		SupplierName:   PickString(record, Supplier),
		ImagePath:      PickString(record, Image),
		UnitPrice:      parseDecimal(PickString(record, UnitPrice)),
		ShortageStatus: PickString(record, ShortageStatus),
		OrderStatus:    PickString(record, OrderStatus),
		Note:           PickString(record, Note),
	}

	if item.Unit == "" {
		item.Unit = DefaultUnit
	}
	if item.ShortageStatus == "" {
		item.ShortageStatus = status.Unknown
	}
	if item.OrderStatus == "" {
		item.OrderStatus = status.Unknown
	}

	for _, r := range records(Pick(record, PendingOrders)) {
		item.PendingOrders = append(item.PendingOrders, models.PendingOrder{
			RequestDate:       PickString(r, RequestDate),
			Requester:         PickString(r, Requester),
			RequestedQuantity: ParseInt(Pick(r, RequestedQuantity)),
		})
	}
	for _, r := range records(Pick(record, CompletedOrders)) {
		item.CompletedOrders = append(item.CompletedOrders, models.CompletedOrder{
			OrderDate:       PickString(r, OrderDate),
			OrderedQuantity: ParseInt(Pick(r, OrderedQuantity)),
			DueDate:         PickString(r, DueDate),
		})
	}
	for _, r := range records(Pick(record, InboundDetails)) {
		item.InboundDetails = append(item.InboundDetails, models.InboundDetail{
			InboundDate: PickString(r, InboundDate),
			Quantity:    ParseInt(Pick(r, Quantity)),
			Receiver:    PickString(r, Receiver),
		})
	}

	return item
}

// NormalizeAll normalizes a batch of records, preserving order.
func NormalizeAll(recs []map[string]any) []models.Item {
	items := make([]models.Item, len(recs))
	for i, r := range recs {
		items[i] = Normalize(r)
	}
	return items
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
