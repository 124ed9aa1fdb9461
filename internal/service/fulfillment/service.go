package fulfillment

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"orderscan/internal/domain"
	"orderscan/internal/metrics"
	"orderscan/internal/repository/audit"
)

type orderRepo interface {
	ApplyScan(orderID, sku string, at time.Time) (*domain.LineItem, error)
}

type Service struct {
	repo    orderRepo
	audit   audit.Recorder
	metrics *metrics.Registry
	lg      *zap.SugaredLogger
	now     func() time.Time
}

func New(repo orderRepo, auditLog audit.Recorder, m *metrics.Registry, lg *zap.SugaredLogger) *Service {
	return &Service{repo: repo, audit: auditLog, metrics: m, lg: lg, now: time.Now}
}

// Scan applies one barcode scan and reports the updated line item. Unknown
// (order, sku) pairs return domain.ErrNotFound and leave no audit trace; a
// missed scan is an expected station condition, not a fault.
func (s *Service) Scan(orderID, sku string) (*domain.LineItem, error) {
	orderID = strings.TrimSpace(orderID)
	sku = strings.TrimSpace(sku)

	item, err := s.repo.ApplyScan(orderID, sku, s.now())
	if err != nil {
		s.metrics.ScanMisses.Inc()
		s.lg.Infof("scan miss order=%s sku=%s", orderID, sku)
		return nil, err
	}

	s.metrics.Scans.Inc()
	s.audit.Record(
		fmt.Sprintf("Item scanned: Order %s, SKU %s", orderID, sku),
		domain.LogSuccess,
		fmt.Sprintf("Scanned count: %d", item.Scanned),
	)
	s.lg.Infof("item scanned order=%s sku=%s count=%d", orderID, sku, item.Scanned)
	return item, nil
}
