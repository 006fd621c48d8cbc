package render

import (
	"strconv"

	"github.com/stocktrack/stocktrack/internal/models"
)

// QuickInfoRow is one labelled line of a quick-info card.
type QuickInfoRow struct {
	Label string
	Value string
}

// QuickInfo builds the compact summary shown on a destination form.
func QuickInfo(p models.ActionPayload) []QuickInfoRow {
	return []QuickInfoRow{
		{Label: "Name", Value: Text(p.Name)},
		{Label: "Code", Value: Text(p.Code)},
		{Label: "Stock", Value: withUnit(p.Stock, p.Unit)},
		{Label: "Safety stock", Value: withUnit(p.Safety, p.Unit)},
		{Label: "Supplier", Value: Text(p.Supplier)},
	}
}

func withUnit(n int, unit string) string {
	if unit == "" {
		return itoa(n)
	}
	return itoa(n) + " " + unit
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
