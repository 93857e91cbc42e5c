package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balaji-storefront/internal/config"
	"balaji-storefront/internal/httpserver"
	"balaji-storefront/internal/importer"
	"balaji-storefront/internal/repository/localstore"
	"balaji-storefront/internal/service/account"
	"balaji-storefront/internal/service/catalog"
	"balaji-storefront/internal/service/session"
	"balaji-storefront/internal/service/visitor"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	store, closeStore, err := localstore.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open local store (%s): %v", cfg.StorageDriver, err)
	}
	defer closeStore()

	catalogService, err := loadCatalog(ctx, cfg.CatalogCSV)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	sessions := session.NewRegistry(store, logger, session.Options{
		Delays: account.Delays{
			Login:   cfg.LoginDelay,
			Signup:  cfg.SignupDelay,
			Profile: cfg.ProfileDelay,
		},
		PlaceOrderDelay: cfg.PlaceOrderDelay,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:            catalogService,
		Visitors:           visitor.New(cfg.VisitorTokenSecret, cfg.VisitorTokenTTL),
		Sessions:           sessions,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthRateRPS:        cfg.AuthRateRPS,
		AuthRateBurst:      cfg.AuthRateBurst,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	evictCtx, stopEvict := context.WithCancel(ctx)
	defer stopEvict()
	go evictIdle(evictCtx, sessions, cfg.SessionIdleTimeout, logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (storage=%s)", cfg.HTTPAddr, cfg.StorageDriver)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// loadCatalog uses the built-in products unless a CSV path is configured.
func loadCatalog(ctx context.Context, path string) (*catalog.Service, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	products, err := importer.ReadProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	return catalog.New(products, catalog.BuiltinCategories()), nil
}

func evictIdle(ctx context.Context, sessions *session.Registry, idle time.Duration, logger *log.Logger) {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Evict(idle); n > 0 {
				logger.Printf("evicted %d idle sessions, %d active", n, sessions.Len())
			}
		}
	}
}
