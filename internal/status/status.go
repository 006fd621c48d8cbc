// Package status classifies shortage and order status labels into display
// categories and decides which order-detail panel an item shows.
package status

import (
	"strings"
)

// Canonical labels.
const (
	Shortage = "shortage"
	Caution  = "caution"
	InStock  = "in-stock"

	NotOrdered = "not-ordered"
	Requested  = "requested"
	Preparing  = "preparing"
	Ordered    = "ordered"
	Received   = "received"

	Unknown = "unknown"

	// All is the filter sentinel meaning "no constraint".
	All = "all"
)

// Category is a display class for a status badge.
type Category string

const (
	CategoryNeutral Category = "status-neutral"
	CategoryAlert   Category = "status-alert"
	CategorySafe    Category = "status-safe"
	CategorySuccess Category = "status-success"
	CategoryWarning Category = "status-warning"
	CategoryInfo    Category = "status-info"
)

func (c Category) String() string {
	return string(c)
}

// Axis selects which classification table applies.
type Axis int

const (
	AxisShortage Axis = iota
	AxisOrder
)

func (a Axis) String() string {
	switch a {
	case AxisShortage:
		return "shortage"
	case AxisOrder:
		return "order"
	default:
		return "unknown"
	}
}

// aliases maps legacy backend labels to canonical ones.
var aliases = map[string]string{
	"欠品":   Shortage,
	"要注意":  Caution,
	"在庫あり": InStock,
	"未発注":  NotOrdered,
	"依頼中":  Requested,
	"発注準備": Preparing,
	"発注済み": Ordered,
	"発注済":  Ordered,
	"入庫済み": Received,
	"入庫済":  Received,
	"不明":   Unknown,
	"すべて":  All,
}

var known = map[string]bool{
	Shortage: true, Caution: true, InStock: true,
	NotOrdered: true, Requested: true, Preparing: true, Ordered: true, Received: true,
	Unknown: true, All: true,
}

// Canonical maps a label to its canonical spelling. Matching ignores case
// and surrounding whitespace. Unrecognized labels are returned trimmed but
// otherwise unchanged.
func Canonical(label string) string {
	trimmed := strings.TrimSpace(label)
	if c, ok := aliases[trimmed]; ok {
		return c
	}
	lower := strings.ToLower(trimmed)
	if known[lower] {
		return lower
	}
	return trimmed
}

// IsKnown reports whether label canonicalizes to a known label.
func IsKnown(label string) bool {
	return known[Canonical(label)]
}

// IsAll reports whether label places no constraint on a filter.
func IsAll(label string) bool {
	c := Canonical(label)
	return c == "" || c == All
}

var shortageTable = map[string]Category{
	Shortage: CategoryAlert,
	Caution:  CategoryAlert,
	InStock:  CategorySafe,
	Unknown:  CategoryNeutral,
}

var orderTable = map[string]Category{
	NotOrdered: CategoryInfo,
	Requested:  CategoryWarning,
	Preparing:  CategoryInfo,
	Ordered:    CategorySuccess,
	Received:   CategorySuccess,
	Unknown:    CategoryNeutral,
}

// Classify maps a status label to its display category on the given axis.
// It is total: empty, unknown and unrecognized labels all produce a
// category.
func Classify(label string, axis Axis) Category {
	c := Canonical(label)
	if c == "" {
		return CategoryNeutral
	}

	switch axis {
	case AxisShortage:
		if cat, ok := shortageTable[c]; ok {
			return cat
		}
		if containsAny(c, "欠", "危", "注意") {
			return CategoryAlert
		}
	case AxisOrder:
		if cat, ok := orderTable[c]; ok {
			return cat
		}
		if containsAny(c, "完", "済") {
			return CategorySuccess
		}
		if containsAny(c, "依頼", "待", "確認") {
			return CategoryWarning
		}
	}

	return CategoryNeutral
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
