package httpserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orderscan/internal/domain"
	"orderscan/internal/normalize"
	"orderscan/internal/repository/orders"
	"orderscan/internal/service/ingest"
)

// OrdersReader is the read side of the order store used by the routes.
type OrdersReader interface {
	Get(orderID string) (*domain.Order, error)
	ListLineItems() []domain.LineItemView
	Stats() orders.Stats
}

// IngestService feeds parsed export rows into the store.
type IngestService interface {
	IngestRows(rows []normalize.Row) ingest.Result
}

// FulfillmentService records warehouse scans.
type FulfillmentService interface {
	Scan(orderID, sku string) (*domain.LineItem, error)
}

// AuditLog is the activity log the routes read and, on upload failures,
// write to.
type AuditLog interface {
	Record(message string, status domain.LogStatus, details string)
	Entries() []domain.LogEntry
	Len() int
}

// Deps carries the collaborators the routes call into.
type Deps struct {
	Orders      OrdersReader
	Ingest      IngestService
	Fulfillment FulfillmentService
	Audit       AuditLog
	// Metrics is mounted on /metrics when non-nil.
	Metrics http.Handler
}

func buildRouter(lg *zap.SugaredLogger, deps Deps, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestLogger(lg), gin.Recovery())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(opts.AuditDB))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := router.Group("/api")
	{
		api.GET("/ping", pingHandler)
		api.GET("/system/status", systemStatusHandler(deps))
		api.GET("/logs", listLogsHandler(deps))
		api.GET("/orders", listOrdersHandler(deps))
		api.GET("/orders/:orderID", getOrderHandler(deps))
		api.POST("/upload", uploadHandler(deps, opts.UploadDir))
		api.POST("/scan", scanHandler(deps))
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
