package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/classify"
	"github.com/MrJamesThe3rd/euer/internal/config"
	"github.com/MrJamesThe3rd/euer/internal/elster"
	"github.com/MrJamesThe3rd/euer/internal/export"
	"github.com/MrJamesThe3rd/euer/internal/filing"
	euerHttp "github.com/MrJamesThe3rd/euer/internal/http"
	batchHandler "github.com/MrJamesThe3rd/euer/internal/http/batch"
	categoryHandler "github.com/MrJamesThe3rd/euer/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/euer/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/euer/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/euer/internal/http/matching"
	"github.com/MrJamesThe3rd/euer/internal/importer"
	"github.com/MrJamesThe3rd/euer/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/euer/internal/matching/store"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
	txStore "github.com/MrJamesThe3rd/euer/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := cfg.Registry()
	if err := registry.Preload(ctx, category.Variants()...); err != nil {
		slog.Warn("failed to preload charts of accounts", "error", err)
	}

	defs, err := elster.LoadDefinitions()
	if err != nil {
		slog.Error("failed to load field definitions", "error", err)
		os.Exit(1)
	}

	var (
		matchingService    = matching.NewService(matchingStore.New())
		transactionService = transaction.NewService(txStore.New(), classify.New(), registry, matchingService)
		filingService      = filing.NewService(transactionService, registry, defs)
		importService      = importer.NewService()
		exportService      = export.NewService(filingService)
	)

	defaults := importHandler.Defaults{
		Variant:  cfg.DefaultVariant(),
		FlatRate: cfg.EUER.FlatRate,
	}

	var (
		categoryH = categoryHandler.NewHandler(registry)
		importH   = importHandler.NewHandler(importService, transactionService, defaults)
		batchH    = batchHandler.NewHandler(transactionService, filingService)
		exportH   = exportHandler.NewHandler(exportService)
		matchingH = matchingHandler.NewHandler(matchingService)
	)

	router := euerHttp.New(cfg.Server.CORSOrigins, categoryH, importH, batchH, exportH, matchingH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
