package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-bff/internal/config"
	"storefront-bff/internal/httpserver"
	"storefront-bff/internal/platform"
	cartsvc "storefront-bff/internal/service/cart"
	productsvc "storefront-bff/internal/service/product"
	projectsvc "storefront-bff/internal/service/project"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

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

	deps := httpserver.Deps{
		Catalog: productsvc.New(ct.Client, logger, cfg.DefaultLocale, cfg.DefaultCurrency),
		Carts: cartsvc.New(ct.Client, logger, cartsvc.Options{
			DefaultCurrency: cfg.CartCurrency,
			Locale:          cfg.DefaultLocale,
			MaxRetries:      &cfg.MaxRetries,
		}),
		Admin:       productsvc.NewAdmin(ct.Client, logger),
		Project:     projectsvc.New(ct.Client),
		CORSOrigins: cfg.CORSOrigins,
	}
	if pinger := ct.Pinger(); pinger != nil {
		deps.TokenStore = pinger
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, deps)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
