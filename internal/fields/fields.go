// Package fields resolves logical item fields against the several key
// spellings the inventory backend has used over time, and normalizes raw
// records into models.Item once at the ingestion boundary.
package fields

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Candidate key tables. Order is priority: canonical spelling first, the
// garbled legacy encoding next, the snake_case API spelling last.
var (
	Code           = []string{"コード", "コーチE", "code"}
	OrderCode      = []string{"発注コード", "発注コーチE", "order_code"}
	Name           = []string{"品名", "name"}
	Category       = []string{"カテゴリ", "category"}
	Unit           = []string{"単位", "unit"}
	Stock          = []string{"在庫数", "stock_quantity"}
	Safety         = []string{"安全在庫", "safety_stock"}
	Supplier       = []string{"購入先", "supplier_name"}
	ShortageStatus = []string{"欠品状態", "shortage_status"}
	OrderStatus    = []string{"注文状態", "order_status"}
	Image          = []string{"画像URL", "image_path"}
	UnitPrice      = []string{"単価", "unit_price"}
	Note           = []string{"備考", "note"}

	PendingOrders   = []string{"依頼中注文", "pending_orders"}
	CompletedOrders = []string{"発注済み注文", "completed_orders"}
	InboundDetails  = []string{"入庫詳細", "inbound_details"}

	RequestDate       = []string{"依頼日", "request_date"}
	Requester         = []string{"依頼者", "requester"}
	RequestedQuantity = []string{"依頼数量", "requested_quantity"}
	OrderDate         = []string{"注文日", "order_date"}
	OrderedQuantity   = []string{"注文数量", "ordered_quantity"}
	DueDate           = []string{"納期", "due_date"}
	InboundDate       = []string{"入庫日", "inbound_date"}
	Quantity          = []string{"数量", "quantity"}
	Receiver          = []string{"入庫者", "receiver"}
)

// Pick returns the value of the first candidate key present in record with
// a non-nil value, or "" when none is.
func Pick(record map[string]any, candidates []string) any {
	for _, key := range candidates {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return ""
}

// PickString is Pick followed by a string conversion.
func PickString(record map[string]any, candidates []string) string {
	return toString(Pick(record, candidates))
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// ParseInt converts v the way JavaScript's parseInt would: leading
// whitespace is skipped, an optional sign and the leading run of decimal
// digits are read, and anything unparseable yields 0. Numbers are
// truncated toward zero.
func ParseInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return truncate(x)
	case float32:
		return truncate(float64(x))
	case bool:
		// parseInt("true") is NaN
		return 0
	case json.Number:
		return parseIntPrefix(x.String())
	case string:
		return parseIntPrefix(x)
	default:
		return parseIntPrefix(fmt.Sprint(x))
	}
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

func parseIntPrefix(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if s == "" {
		return 0
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow: clamp rather than fail.
		if neg {
			return math.MinInt
		}
		return math.MaxInt
	}
	if neg {
		return -n
	}
	return n
}

// records converts a nested array value into a slice of records. Non-array
// values and non-object elements are skipped.
func records(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}

	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
