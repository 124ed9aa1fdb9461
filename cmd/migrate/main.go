package main

import (
	"context"
	"log"

	"orderscan/internal/config"
	"orderscan/internal/db"
	"orderscan/internal/logger"
	"orderscan/internal/migrate"
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

	if cfg.AuditDatabaseDSN == "" {
		lg.Fatal("audit database dsn required: set -d or AUDIT_DATABASE_DSN")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.AuditDatabaseDSN)
	if err != nil {
		lg.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		lg.Fatalf("apply migrations: %v", err)
	}

	lg.Info("migrations applied")
}
