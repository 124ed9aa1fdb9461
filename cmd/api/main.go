package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"orderscan/internal/config"
	"orderscan/internal/db"
	"orderscan/internal/httpserver"
	"orderscan/internal/logger"
	"orderscan/internal/metrics"
	auditrepo "orderscan/internal/repository/audit"
	ordersrepo "orderscan/internal/repository/orders"
	fulfillmentsvc "orderscan/internal/service/fulfillment"
	ingestsvc "orderscan/internal/service/ingest"
)

func main() {
	cfg, err := config.Read()
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	lg, err := logger.New()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()

	var auditPool *pgxpool.Pool
	var followers []auditrepo.Follower
	if cfg.AuditDatabaseDSN != "" {
		auditPool, err = db.Connect(ctx, cfg.AuditDatabaseDSN)
		if err != nil {
			lg.Fatalf("connect to audit db: %v", err)
		}
		defer auditPool.Close()

		pgLog := auditrepo.NewPostgres(auditPool, lg)
		defer pgLog.Close()
		followers = append(followers, pgLog)
	}

	auditLog := auditrepo.NewMemory(followers...)
	ordersRepo := ordersrepo.NewMemory()
	m := metrics.NewRegistry()
	ingestService := ingestsvc.New(ordersRepo, auditLog, m, lg)
	fulfillmentService := fulfillmentsvc.New(ordersRepo, auditLog, m, lg)

	srv, err := httpserver.New(cfg.RunAddress, lg, httpserver.Deps{
		Orders:      ordersRepo,
		Ingest:      ingestService,
		Fulfillment: fulfillmentService,
		Audit:       auditLog,
		Metrics:     m.Handler(),
	}, httpserver.Options{
		AllowedOrigins: cfg.Origins(),
		UploadDir:      cfg.UploadDir,
		AuditDB:        auditPool,
	})
	if err != nil {
		lg.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		lg.Infof("starting http server on %s", cfg.RunAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		lg.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		lg.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Errorf("graceful shutdown failed: %v", err)
	} else {
		lg.Infof("server stopped")
	}
}
