package models

import "strings"

// FilterCriteria is the transient query state of the inventory page.
// An empty field means no constraint.
type FilterCriteria struct {
	QRCode         string
	SearchText     string
	OrderStatus    string
	ShortageStatus string
}

// IsEmpty reports whether no criterion constrains the result.
func (c FilterCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.QRCode) == "" &&
		strings.TrimSpace(c.SearchText) == "" &&
		strings.TrimSpace(c.OrderStatus) == "" &&
		strings.TrimSpace(c.ShortageStatus) == ""
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c FilterCriteria) Trimmed() FilterCriteria {
	return FilterCriteria{
		QRCode:         strings.TrimSpace(c.QRCode),
		SearchText:     strings.TrimSpace(c.SearchText),
		OrderStatus:    strings.TrimSpace(c.OrderStatus),
		ShortageStatus: strings.TrimSpace(c.ShortageStatus),
	}
}
