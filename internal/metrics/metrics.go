package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the process metrics behind a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	RowsIngested  prometheus.Counter
	RowsRejected  prometheus.Counter
	Scans         prometheus.Counter
	ScanMisses    prometheus.Counter
	OrdersTracked prometheus.Gauge
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		RowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderscan_rows_ingested_total",
			Help: "Rows successfully folded into the order store.",
		}),
		RowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderscan_rows_rejected_total",
			Help: "Rows skipped during ingestion.",
		}),
		Scans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderscan_scans_total",
			Help: "Scan events applied to line items.",
		}),
		ScanMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderscan_scan_misses_total",
			Help: "Scan attempts on unknown order/sku pairs.",
		}),
		OrdersTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orderscan_orders_tracked",
			Help: "Orders currently held in the store.",
		}),
	}
	reg.MustRegister(r.RowsIngested, r.RowsRejected, r.Scans, r.ScanMisses, r.OrdersTracked)
	return r
}

// Handler serves the registry in the standard exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
