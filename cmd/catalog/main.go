package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"balaji-storefront/internal/importer"
	"balaji-storefront/internal/service/catalog"
)

func main() {
	var (
		exportPath string
		checkPath  string
	)
	flag.StringVar(&exportPath, "export", "", "Write the built-in catalog to this CSV file")
	flag.StringVar(&checkPath, "check", "", "Validate a catalog CSV file")
	flag.Parse()

	logger := log.New(os.Stderr, "[catalog] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if (exportPath == "") == (checkPath == "") {
		flag.Usage()
		os.Exit(2)
	}

	if exportPath != "" {
		f, err := os.Create(exportPath)
		if err != nil {
			logger.Fatalf("create file: %v", err)
		}
		products := catalog.BuiltinProducts()
		if err := importer.WriteCSV(f, products); err != nil {
			f.Close()
			logger.Fatalf("export failed: %v", err)
		}
		if err := f.Close(); err != nil {
			logger.Fatalf("close file: %v", err)
		}
		fmt.Printf("Exported %d products to %s\n", len(products), exportPath)
		return
	}

	f, err := os.Open(checkPath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	products, err := importer.ReadProducts(context.Background(), f)
	if err != nil {
		logger.Fatalf("check failed: %v", err)
	}
	fmt.Printf("Checked %d products in %s\n", len(products), time.Since(start).Truncate(time.Millisecond))
}
