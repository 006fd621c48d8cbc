package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewActionPayload(t *testing.T) {
	item := Item{
		Code:          "S01",
		Name:          "Nozzle",
		Unit:          "pcs",
		StockQuantity: 4,
		SafetyStock:   8,
		SupplierName:  "FactoryDirect",
	}

	p := NewActionPayload(item)
	if p.Code != "S01" || p.Name != "Nozzle" || p.Stock != 4 || p.Safety != 8 {
		t.Errorf("unexpected payload: %+v", p)
	}

	// The payload is a copy; later edits to the item must not leak into it.
	item.StockQuantity = 99
	item.Name = "changed"
	if p.Stock != 4 || p.Name != "Nozzle" {
		t.Errorf("payload changed after item mutation: %+v", p)
	}
}

func TestMovementRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     MovementRequest
		wantErr string
	}{
		{"Valid", MovementRequest{Code: "A", Quantity: 1, Person: "kim"}, ""},
		{"Missing code", MovementRequest{Quantity: 1, Person: "kim"}, "code is required"},
		{"Zero quantity", MovementRequest{Code: "A", Person: "kim"}, "quantity must be positive"},
		{"Missing person", MovementRequest{Code: "A", Quantity: 2}, "person is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOrderRequest_Validate(t *testing.T) {
	valid := OrderRequest{Code: "A", Quantity: 1, Requester: "lee"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := (&OrderRequest{}).Validate()
	if err == nil {
		t.Fatal("expected error for empty request")
	}
	for _, want := range []string{"code", "quantity", "requester"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected joined error to mention %q, got %v", want, err)
		}
	}
}

func TestItemUpdate(t *testing.T) {
	var u ItemUpdate
	if !u.IsEmpty() {
		t.Error("zero update should be empty")
	}

	neg := -1
	u.StockQuantity = &neg
	if u.IsEmpty() {
		t.Error("update with stock should not be empty")
	}
	if err := u.Validate(); err == nil {
		t.Error("expected error for negative stock")
	}
}

func TestItem_StockValue(t *testing.T) {
	item := Item{StockQuantity: 3, UnitPrice: decimal.RequireFromString("1200.50")}
	if got := item.StockValue().String(); got != "3601.5" {
		t.Errorf("StockValue() = %s, want 3601.5", got)
	}
}

func TestFilterCriteria_IsEmpty(t *testing.T) {
	if !(FilterCriteria{QRCode: "  "}).IsEmpty() {
		t.Error("whitespace-only criteria should be empty")
	}
	if (FilterCriteria{ShortageStatus: "in-stock"}).IsEmpty() {
		t.Error("criteria with a status should not be empty")
	}
}
