package fields

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   any
	}{
		{"Canonical key", map[string]any{"コード": "A1"}, "A1"},
		{"Garbled legacy key", map[string]any{"コーチE": "A2"}, "A2"},
		{"API key", map[string]any{"code": "A3"}, "A3"},
		{"Priority order wins", map[string]any{"code": "low", "コード": "high"}, "high"},
		{"Nil value skipped", map[string]any{"コード": nil, "code": "A4"}, "A4"},
		{"No candidate present", map[string]any{"other": "x"}, ""},
		{"Nil record", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pick(tt.record, Code); got != tt.want {
				t.Errorf("Pick() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPick_ZeroValuesArePresent(t *testing.T) {
	// Present-but-falsy values are returned; only absent or nil keys fall through.
	rec := map[string]any{"在庫数": float64(0), "stock_quantity": float64(7)}
	if got := Pick(rec, Stock); got != float64(0) {
		t.Errorf("Pick() = %v, want 0", got)
	}
}

func TestPickString(t *testing.T) {
	rec := map[string]any{
		"code":       json.Number("1024"),
		"name":       float64(3.5),
		"unit":       true,
		"order_code": "S01",
	}

	if got := PickString(rec, Code); got != "1024" {
		t.Errorf("code = %q", got)
	}
	if got := PickString(rec, Name); got != "3.5" {
		t.Errorf("name = %q", got)
	}
	if got := PickString(rec, Unit); got != "true" {
		t.Errorf("unit = %q", got)
	}
	if got := PickString(rec, Category); got != "" {
		t.Errorf("category = %q, want empty", got)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Nil", nil, 0},
		{"Empty string", "", 0},
		{"Digits", "42", 42},
		{"Leading whitespace", "  17", 17},
		{"Trailing junk", "12abc", 12},
		{"Non-numeric", "abc", 0},
		{"Negative", "-3", -3},
		{"Plus sign", "+8", 8},
		{"Decimal string truncated", "9.9", 9},
		{"Float truncated", float64(5.8), 5},
		{"Negative float truncated", float64(-5.8), -5},
		{"NaN", math.NaN(), 0},
		{"JSON number", json.Number("30"), 30},
		{"Bool", true, 0},
		{"Int", 11, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInt(tt.in); got != tt.want {
				t.Errorf("ParseInt(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	item := Normalize(map[string]any{"code": "X", "stock_quantity": "abc"})

	if item.Unit != DefaultUnit {
		t.Errorf("Unit = %q, want %q", item.Unit, DefaultUnit)
	}
	if item.StockQuantity != 0 {
		t.Errorf("StockQuantity = %d, want 0", item.StockQuantity)
	}
	if item.ShortageStatus != "unknown" || item.OrderStatus != "unknown" {
		t.Errorf("statuses = %q/%q, want unknown/unknown", item.ShortageStatus, item.OrderStatus)
	}
	if !item.UnitPrice.IsZero() {
		t.Errorf("UnitPrice = %s, want 0", item.UnitPrice)
	}
	if item.PendingOrders != nil || item.CompletedOrders != nil || item.InboundDetails != nil {
		t.Error("expected no nested entries")
	}
}

func TestNormalize_LegacyRecord(t *testing.T) {
	raw := `{
		"コード": "TIP-12-EG-1",
		"発注コーチE": "S01",
		"品名": "EG tip S",
		"カテゴリ": "lab",
		"単位": "box",
		"在庫数": 10,
		"安全在庫": "5",
		"購入先": "LabMart",
		"欠品状態": "在庫あり",
		"注文状態": "依頼中",
		"画像URL": "uploads/tip.png",
		"単価": "1200",
		"依頼中注文": [
			{"依頼日": "2024-05-02", "依頼者": "kim", "依頼数量": 3},
			{"依頼日": "2024-05-01", "依頼者": "lee", "依頼数量": "2"},
			"not-an-object"
		]
	}`

	var rec map[string]any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	item := Normalize(rec)

	if item.Code != "TIP-12-EG-1" || item.OrderCode != "S01" {
		t.Errorf("code/orderCode = %q/%q", item.Code, item.OrderCode)
	}
	if item.StockQuantity != 10 || item.SafetyStock != 5 {
		t.Errorf("stock/safety = %d/%d", item.StockQuantity, item.SafetyStock)
	}
	if item.Unit != "box" || item.SupplierName != "LabMart" {
		t.Errorf("unit/supplier = %q/%q", item.Unit, item.SupplierName)
	}
	if item.UnitPrice.String() != "1200" {
		t.Errorf("UnitPrice = %s", item.UnitPrice)
	}
	if len(item.PendingOrders) != 2 {
		t.Fatalf("expected 2 pending orders, got %d", len(item.PendingOrders))
	}
	if item.PendingOrders[0].Requester != "kim" || item.PendingOrders[1].RequestedQuantity != 2 {
		t.Errorf("unexpected pending orders: %+v", item.PendingOrders)
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	items := NormalizeAll([]map[string]any{{"code": "B"}, {"code": "A"}})
	if len(items) != 2 || items[0].Code != "B" || items[1].Code != "A" {
		t.Errorf("unexpected order: %+v", items)
	}
}
