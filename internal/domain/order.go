package domain

import "time"

type ItemStatus string

const (
	ItemPending   ItemStatus = "Pending"
	ItemFulfilled ItemStatus = "Fulfilled"
)

type OrderStatus string

const (
	// OrderPending is the only lifecycle state assigned today. Orders are
	// created with it and no operation advances it.
	OrderPending OrderStatus = "Pending"
)

// LineItem is one SKU position within an order. Quantity is the requested
// amount from the export; Scanned counts physical scans and only ever grows.
type LineItem struct {
	SKU       string     `json:"sku"`
	Title     string     `json:"title"`
	Color     string     `json:"color"`
	Quantity  int        `json:"quantity"`
	Scanned   int        `json:"scanned"`
	Price     int64      `json:"price"`
	ScannedAt *time.Time `json:"scannedAt,omitempty"`
}

// Status derives the fulfillment state from the counters; it is never stored.
func (li LineItem) Status() ItemStatus {
	if li.Scanned >= li.Quantity {
		return ItemFulfilled
	}
	return ItemPending
}

func (li LineItem) Clone() *LineItem {
	cp := li
	if li.ScannedAt != nil {
		t := *li.ScannedAt
		cp.ScannedAt = &t
	}
	return &cp
}

// Order aggregates the line items of one marketplace order. State, City and
// Payment come from the first ingested row; later rows never overwrite them.
// SKUs holds the line-item keys in insertion order.
type Order struct {
	ID      string               `json:"id"`
	State   string               `json:"state"`
	City    string               `json:"city"`
	Payment *int64               `json:"payment,omitempty"`
	Status  OrderStatus          `json:"status"`
	Items   map[string]*LineItem `json:"items"`
	SKUs    []string             `json:"-"`
}

func (o *Order) Clone() *Order {
	cp := &Order{
		ID:     o.ID,
		State:  o.State,
		City:   o.City,
		Status: o.Status,
		Items:  make(map[string]*LineItem, len(o.Items)),
		SKUs:   append([]string(nil), o.SKUs...),
	}
	if o.Payment != nil {
		p := *o.Payment
		cp.Payment = &p
	}
	for sku, item := range o.Items {
		cp.Items[sku] = item.Clone()
	}
	return cp
}

// LineItemView is a line item flattened together with its order's fields, as
// served by the order board listing.
type LineItemView struct {
	OrderID  string     `json:"id"`
	SKU      string     `json:"sku"`
	Title    string     `json:"title"`
	Color    string     `json:"color"`
	Quantity int        `json:"quantity"`
	Scanned  int        `json:"scanned"`
	Status   ItemStatus `json:"status"`
	Price    int64      `json:"price"`
	State    string     `json:"state"`
	City     string     `json:"city"`
	Payment  *int64     `json:"payment,omitempty"`
}
