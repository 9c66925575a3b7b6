package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storefront-bff/internal/config"
	"storefront-bff/internal/importer"
	"storefront-bff/internal/platform"
	productsvc "storefront-bff/internal/service/product"
)

func main() {
	var (
		filePath    string
		productType string
		dryRun      bool
	)
	flag.StringVar(&filePath, "file", "", "Path to commercetools product CSV export")
	flag.StringVar(&productType, "product-type", productsvc.DefaultProductTypeKey, "Product type key for imported products")
	flag.BoolVar(&dryRun, "dry-run", false, "Parse and validate the file without creating products")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	var creator importer.ProductCreator
	if !dryRun {
		cfg, err := config.Load(ctx)
		if err != nil {
			logger.Fatalf("load config: %v", err)
		}
		ct, err := platform.Open(ctx, *cfg, logger)
		if err != nil {
			logger.Fatalf("open platform: %v", err)
		}
		defer ct.Close()
		creator = productsvc.NewAdmin(ct.Client, logger)
	}

	imp := importer.NewCSVImporter(f, creator, productType)
	if dryRun {
		imp.DryRun()
	}

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d products: %v", count, err)
	}

	verb := "Imported"
	if dryRun {
		verb = "Validated"
	}
	fmt.Printf("%s %d products in %s\n", verb, count, time.Since(start).Truncate(time.Millisecond))
}
