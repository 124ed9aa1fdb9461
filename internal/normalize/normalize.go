package normalize

import (
	"math"
	"strconv"
	"strings"

	"orderscan/internal/domain"
)

// Source column labels of the marketplace export. Files arrive with either
// the Persian headers or their English equivalents.
const (
	LabelOrderID  = "سریال"
	LabelSKU      = "لیست سفارشات - کد محصول"
	LabelTitle    = "لیست سفارشات - شرح محصول"
	LabelColor    = "رنگ"
	LabelQuantity = "تعداد درخواستی"
	LabelPrice    = "لیست سفارشات - قیمت لیبل"
	LabelState    = "استان"
	LabelCity     = "شهر"
	LabelPayment  = "مبلغ پرداختی"
)

// Row is one raw export row keyed by source label. Values are whatever the
// parser produced: strings from xlsx/csv cells, numbers from JSON payloads.
type Row map[string]any

// Record is a normalized row ready for the order store. Price and Payment
// are whole rial amounts; Payment is nil when the column was absent or
// unreadable.
type Record struct {
	OrderID  string
	SKU      string
	Title    string
	Color    string
	Quantity int
	Price    int64
	State    string
	City     string
	Payment  *int64
}

// Labels returns the Persian export headers in canonical column order.
func Labels() []string {
	return []string{
		LabelOrderID,
		LabelSKU,
		LabelTitle,
		LabelColor,
		LabelQuantity,
		LabelPrice,
		LabelState,
		LabelCity,
		LabelPayment,
	}
}

// aliases lists the accepted header spellings per column, Persian first.
var aliases = map[string][]string{
	LabelOrderID:  {LabelOrderID, "OrderID"},
	LabelSKU:      {LabelSKU, "SKU"},
	LabelTitle:    {LabelTitle, "Title"},
	LabelColor:    {LabelColor, "Color"},
	LabelQuantity: {LabelQuantity, "Quantity"},
	LabelPrice:    {LabelPrice, "Price"},
	LabelState:    {LabelState, "State"},
	LabelCity:     {LabelCity, "City"},
	LabelPayment:  {LabelPayment, "Payment"},
}

// Normalize maps a raw row onto a Record. It never modifies the input and
// invents nothing beyond the documented coercions: quantities clamp to
// non-negative integers, unreadable prices become 0, unreadable payments stay
// absent. Rows without an order id or sku are rejected.
func Normalize(row Row) (Record, error) {
	rec := Record{
		OrderID:  text(row, LabelOrderID),
		SKU:      text(row, LabelSKU),
		Title:    text(row, LabelTitle),
		Color:    text(row, LabelColor),
		Quantity: count(row, LabelQuantity),
		Price:    amountOrZero(row, LabelPrice),
		State:    text(row, LabelState),
		City:     text(row, LabelCity),
	}
	if v, ok := amount(row, LabelPayment); ok {
		rec.Payment = &v
	}
	if rec.OrderID == "" {
		return Record{}, domain.ErrMissingOrderID
	}
	if rec.SKU == "" {
		return Record{}, domain.ErrMissingSKU
	}
	return rec, nil
}

func value(row Row, label string) (any, bool) {
	for _, key := range aliases[label] {
		if v, ok := row[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func text(row Row, label string) string {
	v, ok := value(row, label)
	if !ok {
		return ""
	}
	return asString(v)
}

// asString renders export scalars the way they appear in the file. Serial
// numbers read from spreadsheet cells arrive as floats and drop the trailing
// fraction when integral.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func count(row Row, label string) int {
	v, ok := value(row, label)
	if !ok {
		return 0
	}
	n := 0
	switch t := v.(type) {
	case int:
		n = t
	case int32:
		n = int(t)
	case int64:
		n = int(t)
	case float64:
		if !math.IsNaN(t) {
			n = int(t)
		}
	case string:
		s := strings.TrimSpace(t)
		if parsed, err := strconv.Atoi(s); err == nil {
			n = parsed
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			n = int(f)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

func amount(row Row, label string) (int64, bool) {
	v, ok := value(row, label)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		return int64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func amountOrZero(row Row, label string) int64 {
	v, _ := amount(row, label)
	return v
}
