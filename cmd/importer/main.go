package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"orderscan/internal/importer"
	"orderscan/internal/logger"
	"orderscan/internal/metrics"
	auditrepo "orderscan/internal/repository/audit"
	ordersrepo "orderscan/internal/repository/orders"
	ingestsvc "orderscan/internal/service/ingest"
)

// The importer ingests an export file into a throwaway store, so it reports
// exactly what the API would have accepted without running a server.
func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a marketplace order export (.xlsx or .csv)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	lg, err := logger.New()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	start := time.Now()
	rows, err := importer.ParseFile(filePath)
	if err != nil {
		log.Fatalf("parse file: %v", err)
	}

	repo := ordersrepo.NewMemory()
	svc := ingestsvc.New(repo, auditrepo.NewMemory(), metrics.NewRegistry(), lg)
	res := svc.IngestRows(rows)

	stats := repo.Stats()
	fmt.Printf("Ingested %d rows into %d orders (%d line items) in %s\n",
		res.Processed, stats.Orders, stats.LineItems, time.Since(start).Truncate(time.Millisecond))
	for _, rowErr := range res.Errors {
		fmt.Printf("  skipped %v\n", rowErr)
	}
	if len(res.Errors) > 0 {
		os.Exit(1)
	}
}
