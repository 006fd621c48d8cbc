package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stocktrack/stocktrack/internal/client"
	"github.com/stocktrack/stocktrack/internal/csvtemplate"
	"github.com/stocktrack/stocktrack/internal/database"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/services/stock"
	"github.com/stocktrack/stocktrack/internal/status"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	svc := stock.NewService(db)
	inputs := []stock.CreateConsumableInput{
		{Code: "TIP-12-EG-1", OrderCode: "S01", Name: "EG tip 12", Unit: "box", StockQuantity: 10, SafetyStock: 5, UnitPrice: decimal.RequireFromString("1200"), SupplierName: "LabMart"},
		{Code: "GLV-NIT-M", Name: "Nitrile gloves M", Unit: "box", StockQuantity: 0, SafetyStock: 4, UnitPrice: decimal.RequireFromString("980.5")},
	}
	for _, in := range inputs {
		if _, err := svc.CreateConsumable(ctx, in); err != nil {
			t.Fatalf("failed to create %s: %v", in.Code, err)
		}
	}

	srv := httptest.NewServer(NewRouter(svc))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestHealth_DatabaseClosed(t *testing.T) {
	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	srv := httptest.NewServer(NewRouter(stock.NewService(db)))
	defer srv.Close()

	db.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestInventory_WireShape(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/inventory?qr_code=tip-12-eg-1&search_text=&order_status=all&shortage_status=")
	if err != nil {
		t.Fatalf("GET /api/inventory: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Success  bool             `json:"success"`
		Data     []map[string]any `json:"data"`
		Filtered int              `json:"filtered"`
		Total    int              `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !body.Success || body.Filtered != 1 || body.Total != 2 {
		t.Fatalf("envelope = %+v", body)
	}
	rec := body.Data[0]
	if rec["code"] != "TIP-12-EG-1" {
		t.Errorf("code = %v", rec["code"])
	}
	if rec["unit_price"] != "1200" {
		t.Errorf("unit_price = %#v, want decimal string", rec["unit_price"])
	}
	for _, key := range []string{"pending_orders", "completed_orders", "inbound_details"} {
		arr, ok := rec[key].([]any)
		if !ok || len(arr) != 0 {
			t.Errorf("%s = %#v, want empty array", key, rec[key])
		}
	}
}

func TestFilterOptions(t *testing.T) {
	srv := setupServer(t)
	c := client.NewWithHTTPClient(srv.URL, srv.Client())

	opts, err := c.FilterOptions(context.Background())
	if err != nil {
		t.Fatalf("FilterOptions: %v", err)
	}

	if len(opts.OrderStatus) != 6 || opts.OrderStatus[0] != status.All {
		t.Errorf("order options = %v", opts.OrderStatus)
	}
	if len(opts.ShortageStatus) != 4 || opts.ShortageStatus[0] != status.All {
		t.Errorf("shortage options = %v", opts.ShortageStatus)
	}
}

func TestClientRoundTrip(t *testing.T) {
	srv := setupServer(t)
	c := client.NewWithHTTPClient(srv.URL, srv.Client())
	ctx := context.Background()

	t.Run("Outbound updates stock and shortage", func(t *testing.T) {
		newStock, err := c.Outbound(ctx, models.MovementRequest{Code: "TIP-12-EG-1", Quantity: 6, Person: "Kim"})
		if err != nil {
			t.Fatalf("Outbound: %v", err)
		}
		if newStock != 4 {
			t.Errorf("new stock = %d, want 4", newStock)
		}

		item, err := c.LookupItem(ctx, "TIP-12-EG-1")
		if err != nil {
			t.Fatalf("LookupItem: %v", err)
		}
		if item.ShortageStatus != status.Caution {
			t.Errorf("shortage = %s, want caution", item.ShortageStatus)
		}
		if !item.UnitPrice.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("unit price = %s", item.UnitPrice)
		}
	})

	t.Run("Insufficient stock is an API error", func(t *testing.T) {
		_, err := c.Outbound(ctx, models.MovementRequest{Code: "GLV-NIT-M", Quantity: 1, Person: "Kim"})

		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", apiErr.Status)
		}
	})

	t.Run("Unknown code is 404", func(t *testing.T) {
		_, err := c.Inbound(ctx, models.MovementRequest{Code: "NOPE", Quantity: 1, Person: "Kim"})

		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
			t.Errorf("expected 404 APIError, got %v", err)
		}
	})

	t.Run("Order request shows as pending", func(t *testing.T) {
		err := c.RequestOrder(ctx, models.OrderRequest{Code: "GLV-NIT-M", Quantity: 3, Requester: "Lee"})
		if err != nil {
			t.Fatalf("RequestOrder: %v", err)
		}

		item, err := c.LookupItem(ctx, "GLV-NIT-M")
		if err != nil {
			t.Fatalf("LookupItem: %v", err)
		}
		if item.OrderStatus != status.Requested {
			t.Errorf("order status = %s", item.OrderStatus)
		}
		if len(item.PendingOrders) != 1 || item.PendingOrders[0].Requester != "Lee" {
			t.Errorf("pending = %+v", item.PendingOrders)
		}
	})

	t.Run("Edit changes safety stock", func(t *testing.T) {
		safety := 2
		if err := c.UpdateItem(ctx, "TIP-12-EG-1", models.ItemUpdate{SafetyStock: &safety}); err != nil {
			t.Fatalf("UpdateItem: %v", err)
		}

		item, err := c.LookupItem(ctx, "TIP-12-EG-1")
		if err != nil {
			t.Fatalf("LookupItem: %v", err)
		}
		if item.SafetyStock != 2 || item.ShortageStatus != status.InStock {
			t.Errorf("item = %d / %s", item.SafetyStock, item.ShortageStatus)
		}
	})
}

func TestMovementValidation(t *testing.T) {
	srv := setupServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"missing person", `{"code":"TIP-12-EG-1","quantity":1}`, http.StatusBadRequest},
		{"zero quantity", `{"code":"TIP-12-EG-1","quantity":0,"person":"Kim"}`, http.StatusBadRequest},
		{"valid", `{"code":"TIP-12-EG-1","quantity":1,"person":"Kim"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/inbound", "application/json", bytes.NewBufferString(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestMovementsEndpoint(t *testing.T) {
	srv := setupServer(t)
	c := client.NewWithHTTPClient(srv.URL, srv.Client())

	if _, err := c.Inbound(context.Background(), models.MovementRequest{Code: "TIP-12-EG-1", Quantity: 2, Person: "Choi"}); err != nil {
		t.Fatalf("Inbound: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/consumables/TIP-12-EG-1/movements?limit=5")
	if err != nil {
		t.Fatalf("GET movements: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Data []movementJSON `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].BalanceAfter != 12 {
		t.Errorf("movements = %+v", body.Data)
	}
	if !body.Data[0].Amount.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("amount = %s", body.Data[0].Amount)
	}
}

func TestDownloadTemplate(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/download/consumables-template")
	if err != nil {
		t.Fatalf("GET template: %v", err)
	}
	defer resp.Body.Close()

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv") {
		t.Errorf("content type = %s", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), csvtemplate.FileName) {
		t.Errorf("disposition = %s", resp.Header.Get("Content-Disposition"))
	}

	data, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(data, csvtemplate.Bytes()) {
		t.Error("template body differs from the built-in template")
	}
}
