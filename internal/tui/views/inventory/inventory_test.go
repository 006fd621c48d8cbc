package inventory

import (
	"strings"
	"testing"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/render"
	"github.com/stocktrack/stocktrack/internal/status"
)

func testItems() []models.Item {
	return []models.Item{
		{
			Code: "TIP-12-EG-1", Name: "EG tip 12", Category: "Tips", Unit: "box",
			StockQuantity: 10, SafetyStock: 5, SupplierName: "LabMart",
			ShortageStatus: status.InStock, OrderStatus: status.Requested,
			PendingOrders: []models.PendingOrder{{RequestDate: "2026-10-01", Requester: "Lee", RequestedQuantity: 20}},
		},
		{
			Code: "GLV-NIT-M", Name: "Nitrile gloves M", Unit: "box",
			StockQuantity: 0, SafetyStock: 4,
			ShortageStatus: "欠品", OrderStatus: status.Ordered,
			CompletedOrders: []models.CompletedOrder{{OrderDate: "2026-10-02", OrderedQuantity: 8, DueDate: "2026-10-09"}},
		},
	}
}

func TestInventoryView_Loading(t *testing.T) {
	v := NewInventoryView()

	if v.IsLoaded() {
		t.Error("expected view not loaded")
	}
	out := v.Render(120, 30, models.FilterCriteria{})
	if !strings.Contains(out, "Loading...") {
		t.Error("expected loading message")
	}
	if v.Selected() != nil {
		t.Error("expected no selection before a result")
	}
}

func TestInventoryView_SetResult(t *testing.T) {
	v := NewInventoryView()
	items := testItems()
	v.SetResult(models.InventoryResult{Items: items, Filtered: 2, Total: 7})

	items[0].Name = "changed"
	if c := v.Selected(); c == nil || c.Name != "EG tip 12" {
		t.Error("expected the view to keep its own copy of the items")
	}

	if got := v.CountLabel(); got != "2 / 7" {
		t.Errorf("CountLabel() = %q, want %q", got, "2 / 7")
	}

	out := v.Render(120, 30, models.FilterCriteria{SearchText: "tip"})
	for _, want := range []string{"CONSUMABLE INVENTORY", "2 / 7", "TIP-12-EG-1", "GLV-NIT-M", "Search: tip", "Order: all", "Pending requests", "Lee"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	v.MoveDown()
	item, ok := v.SelectedItem()
	if !ok || item.Code != "GLV-NIT-M" {
		t.Fatalf("expected GLV-NIT-M selected, got %+v", item)
	}
	if c := v.Selected(); c.ShortageStatus != "欠品" || c.ShortageClass != status.CategoryAlert {
		t.Errorf("expected alias label classified as alert, got %q/%v", c.ShortageStatus, c.ShortageClass)
	}

	v.MoveDown()
	if item, _ := v.SelectedItem(); item.Code != "GLV-NIT-M" {
		t.Error("expected selection to stop at the last row")
	}
	v.PageUp()
	if item, _ := v.SelectedItem(); item.Code != "TIP-12-EG-1" {
		t.Error("expected PageUp to reach the first row")
	}
}

func TestInventoryView_EmptyResult(t *testing.T) {
	v := NewInventoryView()
	v.SetResult(models.InventoryResult{Filtered: 0, Total: 3})

	out := v.Render(120, 30, models.FilterCriteria{ShortageStatus: status.Shortage})
	if !strings.Contains(out, render.EmptyTitle) || !strings.Contains(out, render.EmptyHint) {
		t.Error("expected empty state")
	}
	if !strings.Contains(out, "0 / 3") {
		t.Error("expected counter in empty state")
	}
	if _, ok := v.SelectedItem(); ok {
		t.Error("expected no selected item")
	}
}

func TestInventoryView_NarrowHelp(t *testing.T) {
	v := NewInventoryView()
	v.SetResult(models.InventoryResult{Items: testItems(), Filtered: 2, Total: 2})

	out := v.Render(60, 20, models.FilterCriteria{})
	if !strings.Contains(out, "O/I/R:Act") {
		t.Error("expected compact help on narrow terminals")
	}
}

func TestRenderPanel(t *testing.T) {
	items := testItems()

	pending := render.BuildCard(items[0])
	if out := RenderPanel(&pending); !strings.Contains(out, "Pending requests") || !strings.Contains(out, "qty 20") {
		t.Errorf("unexpected pending panel %q", out)
	}

	completed := render.BuildCard(items[1])
	if out := RenderPanel(&completed); !strings.Contains(out, "Orders placed") || !strings.Contains(out, "due 2026-10-09") {
		t.Errorf("unexpected completed panel %q", out)
	}

	received := render.BuildCard(models.Item{
		Code: "X", Name: "X", OrderStatus: status.Received,
		InboundDetails: []models.InboundDetail{{InboundDate: "2026-10-05", Quantity: 3, Receiver: "Kim"}},
	})
	if out := RenderPanel(&received); !strings.Contains(out, "Received") || !strings.Contains(out, "Kim") {
		t.Errorf("unexpected inbound panel %q", out)
	}

	none := render.BuildCard(models.Item{Code: "Y", Name: "Y", OrderStatus: status.NotOrdered})
	if out := RenderPanel(&none); out != "" {
		t.Errorf("expected no panel, got %q", out)
	}
}

func TestRenderDetail(t *testing.T) {
	out := RenderDetail(nil)
	if !strings.Contains(out, "No item selected") {
		t.Error("expected placeholder for nil card")
	}
	if strings.Contains(out, "\n") {
		t.Errorf("expected placeholder on one line, got %q", out)
	}

	card := render.BuildCard(testItems()[1])
	out = RenderDetail(&card)
	for _, want := range []string{"ITEM DETAILS", "Nitrile gloves M", "0 box", render.Missing, "Shortage: 欠品", "Order: ordered", "Orders placed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in detail", want)
		}
	}
}

func TestRenderQR(t *testing.T) {
	out, err := RenderQR("TIP-12-EG-1")
	if err != nil {
		t.Fatalf("RenderQR: %v", err)
	}
	if len(strings.Split(out, "\n")) < 10 {
		t.Errorf("expected a multi-line QR code, got %q", out)
	}

	if _, err := RenderQR(""); err == nil {
		t.Error("expected error for empty code")
	}
}
