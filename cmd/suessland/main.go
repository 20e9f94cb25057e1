package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/suessland/suessland-platform/internal/app"
	"github.com/suessland/suessland-platform/internal/catalog"
	"github.com/suessland/suessland-platform/internal/platform/cache"
	"github.com/suessland/suessland-platform/internal/platform/db"
	"github.com/suessland/suessland-platform/internal/pricing"
	"github.com/suessland/suessland-platform/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, counts cache disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	countsCache := catalog.NewCountsCache(redisClient, cfg.CountsCacheTTL, logger)
	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo, countsCache, logger, catalog.ServiceConfig{
		PrioritySlug: cfg.PriorityCategorySlug,
		Locales:      cfg.Locales(),
	})
	catalogHandler := catalog.NewHandler(logger, catalogService)

	pricingRepo := pricing.NewRepository(pool)
	pricingService := pricing.NewService(pricingRepo, logger, pricing.Params{
		ShippingPerBox:           cfg.ShippingPerBox,
		CustomsPercent:           cfg.CustomsPercent,
		OperationalPercent:       cfg.OperationalPercent,
		DistributorMarginPercent: cfg.DistributorMarginPercent,
		DealerMarginPercent:      cfg.DealerMarginPercent,
		VATPercent:               cfg.VATPercent,
	})

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	pricingHandler := pricing.NewHandler(logger, pricingService, jobsClient)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		CatalogHandler: catalogHandler,
		PricingHandler: pricingHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
