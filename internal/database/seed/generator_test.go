package seed

import (
	"context"
	"testing"

	"github.com/stocktrack/stocktrack/internal/database"
	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/services/stock"
	"github.com/stocktrack/stocktrack/internal/status"
)

func TestGenerate(t *testing.T) {
	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	svc := stock.NewService(db)
	cfg := DefaultConfig()
	if err := NewGenerator(svc, cfg).Generate(ctx); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	listing, err := svc.Inventory(ctx, models.FilterCriteria{})
	if err != nil {
		t.Fatalf("inventory failed: %v", err)
	}
	if listing.Total != len(catalog)+cfg.Extra {
		t.Errorf("expected %d items, got %d", len(catalog)+cfg.Extra, listing.Total)
	}

	tests := []struct {
		name   string
		filter models.FilterCriteria
		code   string
	}{
		{"Template sample in stock", models.FilterCriteria{QRCode: "TIP-12-EG-1", ShortageStatus: status.InStock}, "TIP-12-EG-1"},
		{"Requested item", models.FilterCriteria{QRCode: "NOZUR-20-DB-1", OrderStatus: status.Requested}, "NOZUR-20-DB-1"},
		{"Ordered item", models.FilterCriteria{QRCode: "GLV-NIT-M", OrderStatus: status.Ordered}, "GLV-NIT-M"},
		{"Received item", models.FilterCriteria{QRCode: "FLT-HEPA-30", OrderStatus: status.Received}, "FLT-HEPA-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := svc.Inventory(ctx, tt.filter)
			if err != nil {
				t.Fatalf("inventory failed: %v", err)
			}
			if len(l.Items) != 1 || l.Items[0].Code != tt.code {
				t.Errorf("expected %s, got %d items", tt.code, len(l.Items))
			}
		})
	}
}
