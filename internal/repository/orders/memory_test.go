package orders

import (
	"errors"
	"testing"
	"time"

	"orderscan/internal/domain"
	"orderscan/internal/normalize"
)

func rec(orderID, sku string, qty int, price int64) normalize.Record {
	return normalize.Record{OrderID: orderID, SKU: sku, Quantity: qty, Price: price}
}

func TestIngestAggregatesRowsIntoOneOrder(t *testing.T) {
	repo := NewMemory()
	pay := int64(500000)
	first := rec("1001", "A1", 2, 150000)
	first.Title = "Shirt"
	first.State = "تهران"
	first.City = "تهران"
	first.Payment = &pay

	late := int64(999)
	second := rec("1001", "B2", 1, 90000)
	second.State = "اصفهان"
	second.City = "کاشان"
	second.Payment = &late

	applied, rowErrs := repo.Ingest([]normalize.Record{first, second})
	if applied != 2 || len(rowErrs) != 0 {
		t.Fatalf("expected 2 applied rows without errors, got %d applied, errs %v", applied, rowErrs)
	}

	ord, err := repo.Get("1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(ord.Items) != 2 || len(ord.SKUs) != 2 {
		t.Fatalf("expected 2 line items, got %+v", ord)
	}
	if ord.SKUs[0] != "A1" || ord.SKUs[1] != "B2" {
		t.Fatalf("expected insertion order A1,B2, got %v", ord.SKUs)
	}
	if ord.State != "تهران" || ord.City != "تهران" {
		t.Fatalf("expected order fields from the first row, got state=%q city=%q", ord.State, ord.City)
	}
	if ord.Payment == nil || *ord.Payment != 500000 {
		t.Fatalf("expected payment from the first row, got %v", ord.Payment)
	}
	if ord.Status != domain.OrderPending {
		t.Fatalf("expected new order to be pending, got %s", ord.Status)
	}
}

func TestIngestLastRowWinsForLineItemFields(t *testing.T) {
	repo := NewMemory()
	first := rec("1001", "A1", 2, 100)
	first.Title = "Old title"
	first.Color = "Red"
	second := rec("1001", "A1", 5, 200)
	second.Title = "New title"
	second.Color = "Blue"

	applied, _ := repo.Ingest([]normalize.Record{first, second})
	if applied != 2 {
		t.Fatalf("expected both rows applied, got %d", applied)
	}

	ord, err := repo.Get("1001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(ord.Items) != 1 {
		t.Fatalf("expected a single line item, got %d", len(ord.Items))
	}
	item := ord.Items["A1"]
	if item.Title != "New title" || item.Color != "Blue" || item.Quantity != 5 || item.Price != 200 {
		t.Fatalf("expected latest row to win, got %+v", item)
	}
}

func TestIngestPreservesScanProgress(t *testing.T) {
	repo := NewMemory()
	repo.Ingest([]normalize.Record{rec("1001", "A1", 5, 100)})

	at := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	if _, err := repo.ApplyScan("1001", "A1", at); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if _, err := repo.ApplyScan("1001", "A1", at.Add(time.Minute)); err != nil {
		t.Fatalf("scan: %v", err)
	}

	applied, rowErrs := repo.Ingest([]normalize.Record{rec("1001", "A1", 2, 120)})
	if applied != 1 || len(rowErrs) != 0 {
		t.Fatalf("re-ingest failed: applied=%d errs=%v", applied, rowErrs)
	}

	ord, _ := repo.Get("1001")
	item := ord.Items["A1"]
	if item.Scanned != 2 {
		t.Fatalf("expected scan progress to survive re-ingest, got %d", item.Scanned)
	}
	if item.ScannedAt == nil || !item.ScannedAt.Equal(at.Add(time.Minute)) {
		t.Fatalf("expected last scan timestamp to survive, got %v", item.ScannedAt)
	}
	if item.Quantity != 2 || item.Price != 120 {
		t.Fatalf("expected requested fields to follow the new row, got %+v", item)
	}
	if item.Status() != domain.ItemFulfilled {
		t.Fatalf("expected status recomputed against new quantity, got %s", item.Status())
	}
}

func TestIngestSkipsIncompleteRecords(t *testing.T) {
	repo := NewMemory()
	applied, rowErrs := repo.Ingest([]normalize.Record{
		rec("", "A1", 1, 0),
		rec("1001", "", 1, 0),
		rec("1001", "A1", 1, 0),
	})
	if applied != 1 {
		t.Fatalf("expected 1 applied row, got %d", applied)
	}
	if len(rowErrs) != 2 {
		t.Fatalf("expected 2 row errors, got %v", rowErrs)
	}
	if rowErrs[0].Row != 1 || !errors.Is(rowErrs[0], domain.ErrMissingOrderID) {
		t.Fatalf("unexpected first row error: %+v", rowErrs[0])
	}
	if rowErrs[1].Row != 2 || !errors.Is(rowErrs[1], domain.ErrMissingSKU) {
		t.Fatalf("unexpected second row error: %+v", rowErrs[1])
	}
	if s := repo.Stats(); s.Orders != 1 || s.LineItems != 1 {
		t.Fatalf("expected only the valid row stored, got %+v", s)
	}
}

func TestGetUnknownOrder(t *testing.T) {
	repo := NewMemory()
	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	repo := NewMemory()
	repo.Ingest([]normalize.Record{rec("1001", "A1", 2, 100)})

	ord, _ := repo.Get("1001")
	ord.State = "tampered"
	ord.Items["A1"].Scanned = 99
	ord.Items["ghost"] = &domain.LineItem{SKU: "ghost"}

	fresh, _ := repo.Get("1001")
	if fresh.State == "tampered" || fresh.Items["A1"].Scanned != 0 || len(fresh.Items) != 1 {
		t.Fatalf("store state leaked through returned copy: %+v", fresh)
	}
}

func TestListLineItemsFlattensInInsertionOrder(t *testing.T) {
	repo := NewMemory()
	pay := int64(75000)
	first := rec("2001", "A1", 1, 50000)
	first.State = "فارس"
	first.City = "شیراز"
	first.Payment = &pay
	repo.Ingest([]normalize.Record{first, rec("2002", "B1", 0, 0)})
	repo.Ingest([]normalize.Record{rec("2001", "A2", 3, 60000)})

	views := repo.ListLineItems()
	if len(views) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(views))
	}
	if views[0].OrderID != "2001" || views[0].SKU != "A1" ||
		views[1].OrderID != "2002" || views[1].SKU != "B1" ||
		views[2].OrderID != "2001" || views[2].SKU != "A2" {
		t.Fatalf("unexpected listing order: %+v", views)
	}
	if views[0].State != "فارس" || views[0].City != "شیراز" || views[0].Payment == nil || *views[0].Payment != 75000 {
		t.Fatalf("expected order fields on the flattened view, got %+v", views[0])
	}
	// A requested quantity of zero is fulfilled from the start.
	if views[1].Status != domain.ItemFulfilled {
		t.Fatalf("expected zero-quantity item to report fulfilled, got %s", views[1].Status)
	}
	if views[2].Status != domain.ItemPending {
		t.Fatalf("expected unscanned item to report pending, got %s", views[2].Status)
	}

	again := repo.ListLineItems()
	for i := range views {
		if views[i].OrderID != again[i].OrderID || views[i].SKU != again[i].SKU || views[i].Status != again[i].Status {
			t.Fatalf("expected deterministic listing, diverged at %d: %+v vs %+v", i, views[i], again[i])
		}
	}
}

func TestApplyScanIncrementsAndStamps(t *testing.T) {
	repo := NewMemory()
	repo.Ingest([]normalize.Record{rec("1001", "A1", 2, 100)})

	at := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	item, err := repo.ApplyScan("1001", "A1", at)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if item.Scanned != 1 || item.Status() != domain.ItemPending {
		t.Fatalf("expected 1/2 pending after first scan, got %+v", item)
	}
	if item.ScannedAt == nil || !item.ScannedAt.Equal(at) {
		t.Fatalf("expected scan timestamp %v, got %v", at, item.ScannedAt)
	}

	item, _ = repo.ApplyScan("1001", "A1", at.Add(time.Minute))
	if item.Scanned != 2 || item.Status() != domain.ItemFulfilled {
		t.Fatalf("expected 2/2 fulfilled, got %+v", item)
	}

	// Scanning past the requested quantity keeps counting.
	item, _ = repo.ApplyScan("1001", "A1", at.Add(2*time.Minute))
	if item.Scanned != 3 || item.Status() != domain.ItemFulfilled {
		t.Fatalf("expected over-scan to stay fulfilled at 3, got %+v", item)
	}
	if !item.ScannedAt.Equal(at.Add(2 * time.Minute)) {
		t.Fatalf("expected timestamp to follow the latest scan, got %v", item.ScannedAt)
	}
}

func TestApplyScanUnknownPairLeavesStoreUntouched(t *testing.T) {
	repo := NewMemory()
	repo.Ingest([]normalize.Record{rec("1001", "A1", 2, 100)})
	before := repo.ListLineItems()

	if _, err := repo.ApplyScan("1001", "ZZ", time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown sku, got %v", err)
	}
	if _, err := repo.ApplyScan("9999", "A1", time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown order, got %v", err)
	}

	after := repo.ListLineItems()
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatalf("expected store unchanged after missed scans: %+v vs %+v", before, after)
	}
}

func TestStatsCountsOrdersAndLineItems(t *testing.T) {
	repo := NewMemory()
	if s := repo.Stats(); s.Orders != 0 || s.LineItems != 0 {
		t.Fatalf("expected empty stats, got %+v", s)
	}
	repo.Ingest([]normalize.Record{
		rec("1001", "A1", 1, 0),
		rec("1001", "A2", 1, 0),
		rec("1002", "B1", 1, 0),
	})
	if s := repo.Stats(); s.Orders != 2 || s.LineItems != 3 {
		t.Fatalf("expected 2 orders with 3 line items, got %+v", s)
	}
}
