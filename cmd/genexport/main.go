package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"orderscan/internal/importer"
	"orderscan/internal/seed"
)

// genexport writes a synthetic marketplace export for local testing. The
// output format follows the file extension, .xlsx or .csv.
func main() {
	var (
		outPath string
		orders  int
		rngSeed int64
	)
	flag.StringVar(&outPath, "out", "export.xlsx", "output file, .xlsx or .csv")
	flag.IntVar(&orders, "orders", 20, "number of orders to generate")
	flag.Int64Var(&rngSeed, "seed", 1, "random seed, same seed gives the same export")
	flag.Parse()

	format, err := importer.DetectFormat(outPath)
	if err != nil {
		log.Fatalf("detect format: %v", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()

	rows := seed.Rows(orders, rngSeed)
	switch format {
	case importer.FormatXLSX:
		err = seed.WriteXLSX(f, rows)
	case importer.FormatCSV:
		err = seed.WriteCSV(f, rows)
	}
	if err != nil {
		log.Fatalf("write export: %v", err)
	}

	fmt.Printf("Wrote %d rows for %d orders to %s\n", len(rows), orders, outPath)
}
