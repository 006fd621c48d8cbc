// Package seed fills an empty catalog with demo consumables.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/repository"
	"github.com/stocktrack/stocktrack/internal/services/stock"
)

// Config configures the seed data generator.
type Config struct {
	// Extra adds generated filler items beyond the fixed catalog.
	Extra      int
	RandomSeed int64
}

// DefaultConfig returns a default seed configuration.
func DefaultConfig() Config {
	return Config{Extra: 8, RandomSeed: 2024}
}

// Generator generates demo catalog data.
type Generator struct {
	svc *stock.Service
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a new seed data generator.
func NewGenerator(svc *stock.Service, cfg Config) *Generator {
	return &Generator{
		svc: svc,
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.RandomSeed)),
	}
}

// catalog is the fixed part of the demo data. The first two rows match the
// import template samples.
var catalog = []stock.CreateConsumableInput{
	{Code: "TIP-12-EG-1", OrderCode: "S01", Name: "EG tip S", Category: "Lab supplies", Unit: "box", StockQuantity: 10, SafetyStock: 5, UnitPrice: decimal.NewFromInt(1200), SupplierName: "LabMart", StorageLocation: "Reagent A", Note: "Test data"},
	{Code: "NOZUR-20-DB-1", OrderCode: "S01", Name: "Nozzle 20mm", Category: "Consumables A", Unit: "pcs", StockQuantity: 4, SafetyStock: 8, UnitPrice: decimal.NewFromInt(850), SupplierName: "FactoryDirect", StorageLocation: "Equipment 1", Note: "Below safety stock"},
	{Code: "GLV-NIT-M", OrderCode: "G02", Name: "Nitrile gloves M", Category: "Safety", Unit: "box", StockQuantity: 0, SafetyStock: 6, UnitPrice: decimal.RequireFromString("980.50"), SupplierName: "SafeHands"},
	{Code: "PIP-1000-B", OrderCode: "P10", Name: "Pipette tips 1000uL", Category: "Lab supplies", Unit: "rack", StockQuantity: 25, SafetyStock: 10, UnitPrice: decimal.NewFromInt(640), SupplierName: "LabMart"},
	{Code: "FLT-HEPA-30", OrderCode: "F30", Name: "HEPA filter 30cm", Category: "Maintenance", Unit: "pcs", StockQuantity: 2, SafetyStock: 2, UnitPrice: decimal.NewFromInt(15400), SupplierName: "AirWorks"},
	{Code: "TAPE-KPT-10", OrderCode: "T10", Name: "Kapton tape 10mm", Category: "Consumables A", Unit: "roll", StockQuantity: 12, SafetyStock: 4, UnitPrice: decimal.NewFromInt(2100), SupplierName: "FactoryDirect"},
}

// Generate creates the demo catalog and some order history.
func (g *Generator) Generate(ctx context.Context) error {
	slog.Info("starting seed data generation", "fixed", len(catalog), "extra", g.cfg.Extra)

	for _, input := range catalog {
		if _, err := g.svc.CreateConsumable(ctx, input); err != nil {
			return fmt.Errorf("seeding %s: %w", input.Code, err)
		}
	}

	for i := 0; i < g.cfg.Extra; i++ {
		if _, err := g.svc.CreateConsumable(ctx, g.fillerItem(i)); err != nil {
			return fmt.Errorf("seeding filler %d: %w", i, err)
		}
	}

	if err := g.generateOrders(ctx); err != nil {
		return fmt.Errorf("generating orders: %w", err)
	}

	slog.Info("seed data generation complete")
	return nil
}

var fillerKinds = []struct {
	prefix, name, category, unit string
}{
	{"SYR", "Syringe", "Lab supplies", "box"},
	{"WIP", "Cleanroom wipe", "Consumables A", "pack"},
	{"BLT", "Hex bolt", "Maintenance", "bag"},
	{"LBL", "Label roll", "Office", "roll"},
}

func (g *Generator) fillerItem(i int) stock.CreateConsumableInput {
	k := fillerKinds[i%len(fillerKinds)]
	size := 5 * (1 + g.rng.Intn(8))
	safety := 2 + g.rng.Intn(10)
	return stock.CreateConsumableInput{
		Code:          fmt.Sprintf("%s-%02d-%03d", k.prefix, size, i+1),
		OrderCode:     fmt.Sprintf("%c%02d", k.prefix[0], i+1),
		Name:          fmt.Sprintf("%s %d", k.name, size),
		Category:      k.category,
		Unit:          k.unit,
		StockQuantity: g.rng.Intn(3 * safety),
		SafetyStock:   safety,
		UnitPrice:     decimal.NewFromInt(int64(100 + g.rng.Intn(4900))),
		SupplierName:  "General Supply",
	}
}

// generateOrders walks a few items through the order lifecycle so every
// detail panel has data.
func (g *Generator) generateOrders(ctx context.Context) error {
	requests := []models.OrderRequest{
		{Code: "NOZUR-20-DB-1", Quantity: 10, Requester: "Kim", Note: "Line 2 running low"},
		{Code: "NOZUR-20-DB-1", Quantity: 5, Requester: "Lee"},
		{Code: "GLV-NIT-M", Quantity: 12, Requester: "Park"},
		{Code: "FLT-HEPA-30", Quantity: 4, Requester: "Choi"},
	}
	for _, req := range requests {
		if _, err := g.svc.RequestOrder(ctx, req); err != nil {
			return err
		}
	}

	due := time.Now().AddDate(0, 0, 14).Format(time.DateOnly)
	for _, code := range []string{"GLV-NIT-M", "FLT-HEPA-30"} {
		if _, err := g.svc.PlaceOrder(ctx, code, due); err != nil {
			return err
		}
	}

	_, err := g.svc.Inbound(ctx, models.MovementRequest{
		Code:        "FLT-HEPA-30",
		Quantity:    4,
		Person:      "Choi",
		InboundType: repository.InboundTypeOrder,
	})
	return err
}
