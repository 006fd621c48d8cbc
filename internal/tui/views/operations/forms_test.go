package operations

import (
	"errors"
	"strings"
	"testing"

	"github.com/stocktrack/stocktrack/internal/models"
)

func typeInto(f *ActionForm, s string) {
	for _, r := range s {
		f.HandleKey(string(r))
	}
}

func testPayload() models.ActionPayload {
	return models.ActionPayload{
		Code: "ETH-70-500", Name: "Ethanol 70% 500ml",
		Stock: 3, Safety: 3, Unit: "bottle", Supplier: "LabMart",
	}
}

func TestNewActionForm_FieldNames(t *testing.T) {
	tests := []struct {
		kind  models.ActionKind
		code  string
		title string
	}{
		{models.ActionOutbound, "outboundQrCode", "=== OUTBOUND ==="},
		{models.ActionInbound, "inboundQrCode", "=== INBOUND ==="},
		{models.ActionOrder, "orderQrCode", "=== ORDER REQUEST ==="},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := NewActionForm(tt.kind)
			if f.Kind() != tt.kind {
				t.Errorf("Kind() = %q", f.Kind())
			}
			if f.FocusedField() != tt.code {
				t.Errorf("FocusedField() = %q, want %q", f.FocusedField(), tt.code)
			}
			if !f.CodeFocused() {
				t.Error("expected code focused first")
			}
			if !strings.Contains(f.Render(), tt.title) {
				t.Errorf("expected %q in render", tt.title)
			}
		})
	}
}

func TestNewActionForm_UnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an unrouted kind")
		}
	}()
	NewActionForm(models.ActionKind("transfer"))
}

func TestActionForm_MovementRequest(t *testing.T) {
	t.Run("outbound", func(t *testing.T) {
		f := NewActionForm(models.ActionOutbound)
		typeInto(f, "ETH-70-500")
		f.HandleKey("tab")
		typeInto(f, "2")
		f.HandleKey("tab")
		typeInto(f, "Kim")

		req, err := f.MovementRequest()
		if err != nil {
			t.Fatalf("MovementRequest: %v", err)
		}
		if req.Code != "ETH-70-500" || req.Quantity != 2 || req.Person != "Kim" {
			t.Errorf("unexpected request %+v", req)
		}
		if req.InboundType != "" {
			t.Errorf("outbound carries no inbound type, got %q", req.InboundType)
		}
	})

	t.Run("inbound type", func(t *testing.T) {
		f := NewActionForm(models.ActionInbound)
		typeInto(f, "ETH-70-500")
		f.HandleKey("tab")
		typeInto(f, "5")
		f.HandleKey("tab")
		typeInto(f, "Lee")

		req, err := f.MovementRequest()
		if err != nil {
			t.Fatalf("MovementRequest: %v", err)
		}
		if req.InboundType != InboundTypeOrder {
			t.Errorf("InboundType = %q, want %q", req.InboundType, InboundTypeOrder)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			qty  string
			want string
		}{
			{"not a number", "two", "whole number"},
			{"zero", "0", "quantity must be positive"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := NewActionForm(models.ActionOutbound)
				typeInto(f, "ETH-70-500")
				f.HandleKey("tab")
				typeInto(f, tt.qty)

				_, err := f.MovementRequest()
				if err == nil || !strings.Contains(err.Error(), tt.want) {
					t.Errorf("expected error containing %q, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("order form has no movement", func(t *testing.T) {
		if _, err := NewActionForm(models.ActionOrder).MovementRequest(); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestActionForm_OrderRequest(t *testing.T) {
	f := NewActionForm(models.ActionOrder)
	typeInto(f, "GLV-NIT-M")
	f.HandleKey("tab")
	typeInto(f, "4")
	f.HandleKey("tab")
	typeInto(f, "Lee")
	f.HandleKey("tab")
	typeInto(f, "2026-11-01")

	req, err := f.OrderRequest()
	if err != nil {
		t.Fatalf("OrderRequest: %v", err)
	}
	if req.Code != "GLV-NIT-M" || req.Quantity != 4 || req.Requester != "Lee" || req.Deadline != "2026-11-01" {
		t.Errorf("unexpected request %+v", req)
	}

	missing := NewActionForm(models.ActionOrder)
	typeInto(missing, "GLV-NIT-M")
	missing.HandleKey("tab")
	typeInto(missing, "4")
	if _, err := missing.OrderRequest(); err == nil || !strings.Contains(err.Error(), "requester") {
		t.Errorf("expected requester error, got %v", err)
	}

	if _, err := NewActionForm(models.ActionOutbound).OrderRequest(); err == nil {
		t.Error("expected outbound form to refuse an order request")
	}
}

func TestActionForm_QuickInfoDroppedOnCodeEdit(t *testing.T) {
	f := NewActionForm(models.ActionOutbound)
	f.setCode("ETH-70-500")
	f.showQuickInfo("outboundItemInfo", "outboundItemDetails", testPayload())

	if f.Info() == nil {
		t.Fatal("expected quick info")
	}
	out := f.Render()
	for _, want := range []string{"Ethanol 70% 500ml", "3 bottle", "LabMart"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in render", want)
		}
	}

	f.HandleKey("tab")
	if f.Info() == nil {
		t.Error("moving focus should keep the card")
	}

	f.HandleKey("shift+tab")
	f.HandleKey("backspace")
	if f.Info() != nil {
		t.Error("expected the card dropped once the code changes")
	}
}

func TestActionForm_RearmAndReset(t *testing.T) {
	f := NewActionForm(models.ActionOutbound)
	typeInto(f, "ETH-70-500")
	f.HandleKey("ctrl+s")
	if !f.IsSubmitted() {
		t.Fatal("expected submitted")
	}

	f.Rearm(errors.New("insufficient stock"))
	if f.IsSubmitted() {
		t.Error("expected rearm to clear submitted")
	}
	if !strings.Contains(f.Render(), "insufficient stock") {
		t.Error("expected error shown")
	}

	f.Reset()
	if f.Code() != "" || f.Info() != nil {
		t.Error("expected reset to clear the form")
	}
	if f.Kind() != models.ActionOutbound {
		t.Error("expected reset to keep the kind")
	}

	f.HandleKey("esc")
	if !f.IsCancelled() {
		t.Error("expected cancelled")
	}
}
