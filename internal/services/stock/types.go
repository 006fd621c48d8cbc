package stock

import "github.com/shopspring/decimal"

// CreateConsumableInput contains data for creating a catalog entry.
type CreateConsumableInput struct {
	Code            string
	OrderCode       string
	Name            string
	Category        string
	Unit            string
	StockQuantity   int
	SafetyStock     int
	UnitPrice       decimal.Decimal
	SupplierName    string
	StorageLocation string
	ImagePath       string
	Note            string
	ShortageStatus  string
	OrderStatus     string
}
