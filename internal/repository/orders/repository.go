package orders

import (
	"time"

	"orderscan/internal/domain"
	"orderscan/internal/normalize"
)

// Stats is a point-in-time snapshot of the store size.
type Stats struct {
	Orders    int
	LineItems int
}

// Repository is the order aggregate store. Implementations must apply each
// mutation atomically; readers never observe a partially applied row or scan.
type Repository interface {
	// Ingest folds normalized records into the aggregate. The count of rows
	// applied is returned together with per-row errors; RowError.Row indexes
	// the records argument, 1-based.
	Ingest(records []normalize.Record) (int, []domain.RowError)
	// Get returns a detached copy of one order, or domain.ErrNotFound.
	Get(orderID string) (*domain.Order, error)
	// ListLineItems flattens every order's line items in insertion order:
	// orders by first ingest, items by first appearance within the order.
	ListLineItems() []domain.LineItemView
	// ApplyScan increments the scanned count of one line item and stamps the
	// scan time. Unknown (order, sku) pairs return domain.ErrNotFound.
	ApplyScan(orderID, sku string, at time.Time) (*domain.LineItem, error)
	Stats() Stats
}
