package orders

import (
	"sync"
	"time"

	"orderscan/internal/domain"
	"orderscan/internal/normalize"
)

type memoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Order
	idents []string
}

// NewMemory returns an empty in-memory order store.
func NewMemory() Repository {
	return &memoryRepo{byID: make(map[string]*domain.Order)}
}

func (r *memoryRepo) Ingest(records []normalize.Record) (int, []domain.RowError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := 0
	var rowErrs []domain.RowError
	for i, rec := range records {
		if rec.OrderID == "" {
			rowErrs = append(rowErrs, domain.RowError{Row: i + 1, Err: domain.ErrMissingOrderID})
			continue
		}
		if rec.SKU == "" {
			rowErrs = append(rowErrs, domain.RowError{Row: i + 1, Err: domain.ErrMissingSKU})
			continue
		}

		ord, ok := r.byID[rec.OrderID]
		if !ok {
			ord = &domain.Order{
				ID:     rec.OrderID,
				State:  rec.State,
				City:   rec.City,
				Status: domain.OrderPending,
				Items:  make(map[string]*domain.LineItem),
			}
			if rec.Payment != nil {
				p := *rec.Payment
				ord.Payment = &p
			}
			r.byID[rec.OrderID] = ord
			r.idents = append(r.idents, rec.OrderID)
		}

		item, ok := ord.Items[rec.SKU]
		if !ok {
			item = &domain.LineItem{SKU: rec.SKU}
			ord.Items[rec.SKU] = item
			ord.SKUs = append(ord.SKUs, rec.SKU)
		}
		// Scanned and ScannedAt survive re-ingestion; only the requested
		// fields follow the latest row.
		item.Title = rec.Title
		item.Color = rec.Color
		item.Quantity = rec.Quantity
		item.Price = rec.Price
		applied++
	}
	return applied, rowErrs
}

func (r *memoryRepo) Get(orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ord, ok := r.byID[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ord.Clone(), nil
}

func (r *memoryRepo) ListLineItems() []domain.LineItemView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.LineItemView
	for _, id := range r.idents {
		ord := r.byID[id]
		for _, sku := range ord.SKUs {
			item := ord.Items[sku]
			view := domain.LineItemView{
				OrderID:  ord.ID,
				SKU:      item.SKU,
				Title:    item.Title,
				Color:    item.Color,
				Quantity: item.Quantity,
				Scanned:  item.Scanned,
				Status:   item.Status(),
				Price:    item.Price,
				State:    ord.State,
				City:     ord.City,
			}
			if ord.Payment != nil {
				p := *ord.Payment
				view.Payment = &p
			}
			out = append(out, view)
		}
	}
	return out
}

func (r *memoryRepo) ApplyScan(orderID, sku string, at time.Time) (*domain.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord, ok := r.byID[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	item, ok := ord.Items[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}

	item.Scanned++
	t := at
	item.ScannedAt = &t
	return item.Clone(), nil
}

func (r *memoryRepo) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{Orders: len(r.byID)}
	for _, ord := range r.byID {
		s.LineItems += len(ord.Items)
	}
	return s
}
