package models

import (
	"github.com/shopspring/decimal"
)

// Item is a consumable inventory record, normalized from whatever key
// spellings the backend used.
type Item struct {
	Code           string
	OrderCode      string // shared by items ordered from the same template
	Name           string
	Category       string
	Unit           string
	StockQuantity  int
	SafetyStock    int
	SupplierName   string
	ImagePath      string
	UnitPrice      decimal.Decimal
	ShortageStatus string
	OrderStatus    string
	Note           string

	// Only one of these is meaningful at a time, selected by OrderStatus.
	PendingOrders   []PendingOrder
	CompletedOrders []CompletedOrder
	InboundDetails  []InboundDetail
}

// PendingOrder is an order request that has not been placed yet.
type PendingOrder struct {
	RequestDate       string
	Requester         string
	RequestedQuantity int
}

// CompletedOrder is an order placed with a supplier.
type CompletedOrder struct {
	OrderDate       string
	OrderedQuantity int
	DueDate         string
}

// InboundDetail is a receipt against an order.
type InboundDetail struct {
	InboundDate string
	Quantity    int
	Receiver    string
}

// IsBelowSafety reports whether stock has reached the safety level.
func (i *Item) IsBelowSafety() bool {
	return i.StockQuantity <= i.SafetyStock
}

// StockValue returns stock quantity times unit price.
func (i *Item) StockValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.StockQuantity)))
}

// InventoryResult is one filtered page of the catalog.
type InventoryResult struct {
	Items    []Item
	Filtered int
	Total    int
}

// FilterOptions lists the selectable status values reported by the backend.
type FilterOptions struct {
	OrderStatus    []string
	ShortageStatus []string
}
