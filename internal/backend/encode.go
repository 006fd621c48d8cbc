package backend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrack/stocktrack/internal/repository"
)

type itemJSON struct {
	Code            string          `json:"code"`
	OrderCode       string          `json:"order_code"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	StockQuantity   int             `json:"stock_quantity"`
	SafetyStock     int             `json:"safety_stock"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	SupplierName    string          `json:"supplier_name"`
	StorageLocation string          `json:"storage_location"`
	ImagePath       string          `json:"image_path"`
	Note            string          `json:"note"`
	ShortageStatus  string          `json:"shortage_status"`
	OrderStatus     string          `json:"order_status"`
	PendingOrders   []pendingJSON   `json:"pending_orders"`
	CompletedOrders []completedJSON `json:"completed_orders"`
	InboundDetails  []inboundJSON   `json:"inbound_details"`
}

type pendingJSON struct {
	RequestDate       string `json:"request_date"`
	Requester         string `json:"requester"`
	RequestedQuantity int    `json:"requested_quantity"`
}

type completedJSON struct {
	OrderDate       string `json:"order_date"`
	OrderedQuantity int    `json:"ordered_quantity"`
	DueDate         string `json:"due_date"`
}

type inboundJSON struct {
	InboundDate string `json:"inbound_date"`
	Quantity    int    `json:"quantity"`
	Receiver    string `json:"receiver"`
}

type movementJSON struct {
	Direction    string          `json:"direction"`
	Quantity     int             `json:"quantity"`
	BalanceAfter int             `json:"balance_after"`
	Person       string          `json:"person"`
	Department   string          `json:"department,omitempty"`
	Note         string          `json:"note,omitempty"`
	InboundType  string          `json:"inbound_type,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	MovedAt      time.Time       `json:"moved_at"`
}

// encodeItem produces the snake_case wire shape. Nested arrays are always
// present, possibly empty.
func encodeItem(c *repository.Consumable) itemJSON {
	out := itemJSON{
		Code:            c.Code,
		OrderCode:       c.OrderCode,
		Name:            c.Name,
		Category:        c.Category,
		Unit:            c.Unit,
		StockQuantity:   c.StockQuantity,
		SafetyStock:     c.SafetyStock,
		UnitPrice:       c.UnitPrice,
		SupplierName:    c.SupplierName,
		StorageLocation: c.StorageLocation,
		ImagePath:       c.ImagePath,
		Note:            c.Note,
		ShortageStatus:  c.ShortageStatus,
		OrderStatus:     c.OrderStatus,
		PendingOrders:   make([]pendingJSON, 0, len(c.PendingOrders)),
		CompletedOrders: make([]completedJSON, 0, len(c.CompletedOrders)),
		InboundDetails:  make([]inboundJSON, 0, len(c.InboundDetails)),
	}
	for _, p := range c.PendingOrders {
		out.PendingOrders = append(out.PendingOrders, pendingJSON(p))
	}
	for _, o := range c.CompletedOrders {
		out.CompletedOrders = append(out.CompletedOrders, completedJSON(o))
	}
	for _, d := range c.InboundDetails {
		out.InboundDetails = append(out.InboundDetails, inboundJSON(d))
	}
	return out
}

func encodeMovement(m *repository.Movement) movementJSON {
	return movementJSON{
		Direction:    string(m.Direction),
		Quantity:     m.Quantity,
		BalanceAfter: m.BalanceAfter,
		Person:       m.Person,
		Department:   m.Department,
		Note:         m.Note,
		InboundType:  m.InboundType,
		Amount:       m.Amount,
		MovedAt:      m.MovedAt,
	}
}
