package ingest

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"orderscan/internal/domain"
	"orderscan/internal/metrics"
	"orderscan/internal/normalize"
	"orderscan/internal/repository/audit"
	"orderscan/internal/repository/orders"
)

type orderRepo interface {
	Ingest(records []normalize.Record) (int, []domain.RowError)
	Stats() orders.Stats
}

type Service struct {
	repo    orderRepo
	audit   audit.Recorder
	metrics *metrics.Registry
	lg      *zap.SugaredLogger
}

func New(repo orderRepo, auditLog audit.Recorder, m *metrics.Registry, lg *zap.SugaredLogger) *Service {
	return &Service{repo: repo, audit: auditLog, metrics: m, lg: lg}
}

// Result reports one processed batch. Errors are ordered by source row.
type Result struct {
	Processed int
	Errors    []domain.RowError
}

// IngestRows normalizes a batch of raw export rows and folds them into the
// order store. Bad rows are skipped and reported; the batch never aborts.
func (s *Service) IngestRows(rows []normalize.Row) Result {
	records := make([]normalize.Record, 0, len(rows))
	sourceRow := make([]int, 0, len(rows))
	var rowErrs []domain.RowError
	for i, row := range rows {
		rec, err := normalize.Normalize(row)
		if err != nil {
			rowErrs = append(rowErrs, domain.RowError{Row: i + 1, Err: err})
			continue
		}
		records = append(records, rec)
		sourceRow = append(sourceRow, i+1)
	}

	applied, ingestErrs := s.repo.Ingest(records)
	for _, re := range ingestErrs {
		// The repository indexes its input slice; map back to source rows.
		row := re.Row
		if row >= 1 && row <= len(sourceRow) {
			row = sourceRow[row-1]
		}
		rowErrs = append(rowErrs, domain.RowError{Row: row, Err: re.Err})
	}
	sort.Slice(rowErrs, func(i, j int) bool { return rowErrs[i].Row < rowErrs[j].Row })

	s.metrics.RowsIngested.Add(float64(applied))
	s.metrics.RowsRejected.Add(float64(len(rowErrs)))
	s.metrics.OrdersTracked.Set(float64(s.repo.Stats().Orders))

	details := fmt.Sprintf("Processed %d rows", applied)
	if len(rowErrs) > 0 {
		details = fmt.Sprintf("Processed %d rows, skipped %d", applied, len(rowErrs))
	}
	s.audit.Record("Export ingested", domain.LogSuccess, details)
	s.lg.Infof("export ingested rows=%d applied=%d skipped=%d", len(rows), applied, len(rowErrs))

	return Result{Processed: applied, Errors: rowErrs}
}
