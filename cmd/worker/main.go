package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

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
		slog.Default().Info("test mode detected, skipping worker startup")
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
		logger.Error("connect database", slog.Any("error", err))
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

	pricingRepo := pricing.NewRepository(pool)
	pricingService := pricing.NewService(pricingRepo, logger, pricing.Params{
		ShippingPerBox:           cfg.ShippingPerBox,
		CustomsPercent:           cfg.CustomsPercent,
		OperationalPercent:       cfg.OperationalPercent,
		DistributorMarginPercent: cfg.DistributorMarginPercent,
		DealerMarginPercent:      cfg.DealerMarginPercent,
		VATPercent:               cfg.VATPercent,
	})
	countsCache := catalog.NewCountsCache(redisClient, cfg.CountsCacheTTL, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeBulkReprice, Handler: jobs.NewBulkRepriceHandler(pricingService, countsCache, logger)},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
