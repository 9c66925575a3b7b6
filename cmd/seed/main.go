package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront-bff/internal/config"
	"storefront-bff/internal/platform"
	"storefront-bff/internal/seed"
	productsvc "storefront-bff/internal/service/product"
)

func main() {
	var suffix string
	flag.StringVar(&suffix, "suffix", "", "Suffix for product keys, skus and slugs (random when empty)")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ct, err := platform.Open(ctx, *cfg, logger)
	if err != nil {
		logger.Fatalf("open platform: %v", err)
	}
	defer ct.Close()

	if suffix == "" {
		suffix = seed.NewSuffix()
	}
	products, err := seed.Apply(ctx, productsvc.NewAdmin(ct.Client, logger), logger, suffix)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied products=%d suffix=%s", len(products), suffix)
}
