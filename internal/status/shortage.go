package status

import "strings"

// SuggestShortage derives the shortage label from stock and safety stock.
// The backend applies the same thresholds after every stock movement.
func SuggestShortage(stock, safety int) string {
	switch {
	case stock <= 0:
		return Shortage
	case stock <= safety:
		return Caution
	default:
		return InStock
	}
}

// DefaultShortageOptions are always offered by the edit form selector.
var DefaultShortageOptions = []string{Shortage, Caution, InStock}

// MergeShortageOptions combines the defaults with the server's list. The
// "all" sentinel and blanks are dropped, and duplicates (compared by
// canonical label) keep their first-seen position and spelling.
func MergeShortageOptions(server []string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(label string) {
		c := Canonical(label)
		if c == "" || c == All || seen[c] {
			return
		}
		seen[c] = true
		out = append(out, strings.TrimSpace(label))
	}

	for _, l := range DefaultShortageOptions {
		add(l)
	}
	for _, l := range server {
		add(l)
	}
	return out
}

// OrderStatuses lists the canonical order labels in lifecycle order.
func OrderStatuses() []string {
	return []string{NotOrdered, Requested, Preparing, Ordered, Received}
}

// ShortageStatuses lists the canonical shortage labels, worst first.
func ShortageStatuses() []string {
	return []string{Shortage, Caution, InStock}
}
