package testutil

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/repository"
	"github.com/stocktrack/stocktrack/internal/status"
)

// FixtureConsumable creates a test consumable with sensible defaults.
func FixtureConsumable(overrides ...func(*repository.Consumable)) *repository.Consumable {
	id := uuid.New().String()

	c := &repository.Consumable{
		ID: id,
		Item: models.Item{
			Code:           "TEST-" + id[:8],
			OrderCode:      "S01",
			Name:           "Test tip",
			Category:       "Lab supplies",
			Unit:           "box",
			StockQuantity:  10,
			SafetyStock:    5,
			UnitPrice:      decimal.NewFromInt(1200),
			SupplierName:   "LabMart",
			ShortageStatus: status.InStock,
			OrderStatus:    status.NotOrdered,
		},
		StorageLocation: "Shelf A",
	}

	for _, override := range overrides {
		override(c)
	}

	return c
}

// FixtureOrder creates a requested order for a consumable.
func FixtureOrder(consumableID string, overrides ...func(*repository.Order)) *repository.Order {
	o := &repository.Order{
		ID:                uuid.New().String(),
		ConsumableID:      consumableID,
		Status:            status.Requested,
		RequestedQuantity: 3,
		Requester:         "Kim",
		RequestDate:       "2024-05-01",
	}

	for _, override := range overrides {
		override(o)
	}

	return o
}
