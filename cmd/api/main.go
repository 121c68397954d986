package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cartforge/quote-service/api/routes"
	"github.com/cartforge/quote-service/internal/catalog"
	"github.com/cartforge/quote-service/internal/quote"
	"github.com/cartforge/quote-service/internal/uploads"
	"github.com/cartforge/quote-service/pkg/config"
	"github.com/cartforge/quote-service/pkg/db"
	"github.com/cartforge/quote-service/pkg/logger"
	"github.com/cartforge/quote-service/pkg/metrics"
	"github.com/cartforge/quote-service/pkg/migrate"
	"github.com/cartforge/quote-service/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	quoteRepo := quote.NewRepository(dbClient.DB())
	maskRepo := quote.NewMaskRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	totals, err := quote.NewTotalsCalculator(quoteRepo, cfg.Quote.TaxPercent)
	if err != nil {
		logg.Error(context.Background(), "failed to create totals calculator", err)
		os.Exit(1)
	}

	cartService, err := quote.NewService(quote.ServiceParams{
		Quotes:   quoteRepo,
		Masks:    maskRepo,
		Products: catalogRepo,
		Totals:   totals,
		Logger:   logg,
		Metrics:  pipelineMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	uploadService, err := uploads.NewService(cfg.Upload, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create upload service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, cartService, uploadService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
