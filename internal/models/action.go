package models

import (
	"errors"
	"fmt"
	"strings"
)

// ActionKind is an item-scoped action started from the inventory list.
type ActionKind string

const (
	ActionOutbound ActionKind = "outbound"
	ActionInbound  ActionKind = "inbound"
	ActionOrder    ActionKind = "order"
)

func (k ActionKind) String() string {
	return string(k)
}

// ActionKinds lists the known kinds in button order.
func ActionKinds() []ActionKind {
	return []ActionKind{ActionOutbound, ActionInbound, ActionOrder}
}

// ActionPayload is the item state carried by an action button. It is a
// value copy taken at render time.
type ActionPayload struct {
	Code     string
	Name     string
	Stock    int
	Safety   int
	Unit     string
	Supplier string
}

// NewActionPayload copies the carried fields out of an item.
func NewActionPayload(item Item) ActionPayload {
	return ActionPayload{
		Code:     item.Code,
		Name:     item.Name,
		Stock:    item.StockQuantity,
		Safety:   item.SafetyStock,
		Unit:     item.Unit,
		Supplier: item.SupplierName,
	}
}

// MovementRequest records stock leaving or entering the store.
type MovementRequest struct {
	Code        string `json:"code"`
	Quantity    int    `json:"quantity"`
	Person      string `json:"person"`
	Department  string `json:"department,omitempty"`
	Note        string `json:"note,omitempty"`
	InboundType string `json:"inbound_type,omitempty"`
}

// Validate checks the required fields.
func (r *MovementRequest) Validate() error {
	var errs []error

	if strings.TrimSpace(r.Code) == "" {
		errs = append(errs, errors.New("code is required"))
	}
	if r.Quantity <= 0 {
		errs = append(errs, fmt.Errorf("quantity must be positive, got %d", r.Quantity))
	}
	if strings.TrimSpace(r.Person) == "" {
		errs = append(errs, errors.New("person is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// OrderRequest asks purchasing to order an item.
type OrderRequest struct {
	Code      string `json:"code"`
	Quantity  int    `json:"quantity"`
	Requester string `json:"requester"`
	Deadline  string `json:"deadline,omitempty"`
	Note      string `json:"note,omitempty"`
}

// Validate checks the required fields.
func (r *OrderRequest) Validate() error {
	var errs []error

	if strings.TrimSpace(r.Code) == "" {
		errs = append(errs, errors.New("code is required"))
	}
	if r.Quantity < 1 {
		errs = append(errs, errors.New("quantity must be at least 1"))
	}
	if strings.TrimSpace(r.Requester) == "" {
		errs = append(errs, errors.New("requester is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ItemUpdate carries the editable fields of an item. Nil fields are left
// unchanged.
type ItemUpdate struct {
	Name           *string `json:"name,omitempty"`
	Category       *string `json:"category,omitempty"`
	Unit           *string `json:"unit,omitempty"`
	StockQuantity  *int    `json:"stock_quantity,omitempty"`
	SafetyStock    *int    `json:"safety_stock,omitempty"`
	ShortageStatus *string `json:"shortage_status,omitempty"`
	SupplierName   *string `json:"supplier_name,omitempty"`
	Note           *string `json:"note,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u *ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Unit == nil &&
		u.StockQuantity == nil && u.SafetyStock == nil &&
		u.ShortageStatus == nil && u.SupplierName == nil && u.Note == nil
}

// Validate rejects negative quantities.
func (u *ItemUpdate) Validate() error {
	var errs []error

	if u.StockQuantity != nil && *u.StockQuantity < 0 {
		errs = append(errs, errors.New("stock_quantity must be non-negative"))
	}
	if u.SafetyStock != nil && *u.SafetyStock < 0 {
		errs = append(errs, errors.New("safety_stock must be non-negative"))
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, errors.New("name must not be blank"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
