package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/dealmarket/internal/api"
	"github.com/jafarshop/dealmarket/internal/catalog"
	"github.com/jafarshop/dealmarket/internal/config"
	"github.com/jafarshop/dealmarket/internal/logger"
	"github.com/jafarshop/dealmarket/internal/repository"
	"github.com/jafarshop/dealmarket/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open persisted store
	store, err := repository.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close store", zap.Error(err))
		}
	}()

	// Load catalog
	cat, err := catalog.Load(cfg.Catalog.SeedFile)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.String("seed_file", cfg.Catalog.SeedFile), zap.Error(err))
	}
	log.Info("Catalog loaded",
		zap.Int("offers", len(cat.Offers())),
		zap.Int("shops", len(cat.Shops())),
	)

	svcs := service.NewServices(store, cat, cfg, log)
	router := api.NewRouter(cfg, svcs, cat, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
