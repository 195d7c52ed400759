package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/Sumit-SC/job-search-api/internal/config"
	"github.com/Sumit-SC/job-search-api/internal/handler/http/respond"
	"github.com/Sumit-SC/job-search-api/internal/infra/adapter/persistence/file"
	"github.com/Sumit-SC/job-search-api/internal/infra/adapter/persistence/postgres"
	"github.com/Sumit-SC/job-search-api/internal/infra/db"
	"github.com/Sumit-SC/job-search-api/internal/infra/fetcher"
	"github.com/Sumit-SC/job-search-api/internal/infra/source"
	"github.com/Sumit-SC/job-search-api/internal/observability/logging"
	"github.com/Sumit-SC/job-search-api/internal/repository"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
	"github.com/Sumit-SC/job-search-api/internal/usecase/refresh"
)

const refreshJobTimeout = 10 * time.Minute

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := config.Load()

	srcConfig, err := source.LoadConfig(cfg.SourcesFile)
	if err != nil {
		logger.Error("failed to load source configuration",
			slog.String("file", cfg.SourcesFile),
			slog.Any("error", err))
		os.Exit(1)
	}
	registry := source.BuildRegistry(srcConfig, &http.Client{Timeout: cfg.SourceTimeout})

	store, closeStore := buildStore(logger, cfg)
	defer closeStore()

	refresher := &refresh.Service{
		Aggregator: buildAggregator(logger, cfg, registry),
		Store:      store,
	}

	go serveMetrics(logger)
	startScheduler(logger, cfg, refresher)
}

// startScheduler runs the refresh job on the configured cron schedule and
// blocks until SIGINT/SIGTERM, letting a running job finish before exit.
func startScheduler(logger *slog.Logger, cfg config.AppConfig, refresher *refresh.Service) {
	c := cron.New()

	req := aggregate.Request{
		Query: cfg.RefreshQuery,
		Days:  cfg.RefreshDays,
		Limit: cfg.RefreshLimit,
	}

	_, err := c.AddFunc(cfg.RefreshSchedule, func() {
		runRefreshJob(logger, refresher, req)
	})
	if err != nil {
		logger.Error("failed to schedule refresh job",
			slog.String("schedule", cfg.RefreshSchedule),
			slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	logger.Info("worker started", slog.String("schedule", cfg.RefreshSchedule))

	// Run one refresh immediately so a fresh deployment has data before the
	// first scheduled tick.
	runRefreshJob(logger, refresher, req)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("worker stopped")
}

func runRefreshJob(logger *slog.Logger, refresher *refresh.Service, req aggregate.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
	defer cancel()

	logger.Info("refresh started", slog.String("query", req.Query), slog.Int("days", req.Days))

	stats, err := refresher.Run(ctx, req)
	if err != nil {
		logger.Error("refresh failed", slog.String("error", respond.SanitizeError(err)))
		return
	}

	logger.Info("refresh finished",
		slog.Int("listings", stats.Listings),
		slog.Int("failed_sources", stats.FailedSources),
		slog.Duration("duration", stats.Duration))
}

// serveMetrics exposes Prometheus metrics for the worker process.
func serveMetrics(logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":9091",
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("worker metrics listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("metrics server failed", slog.Any("error", err))
	}
}

func buildStore(logger *slog.Logger, cfg config.AppConfig) (repository.ListingStore, func()) {
	if cfg.DatabaseURL == "" {
		logger.Info("using file listing store", slog.String("dir", cfg.DataDir))
		return file.NewListingStore(cfg.DataDir), func() {}
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(context.Background(), database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("using postgres listing store")

	closer := func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}
	return postgres.NewListingStore(database), closer
}

func buildAggregator(logger *slog.Logger, cfg config.AppConfig, registry *source.Registry) *aggregate.Service {
	svc := &aggregate.Service{
		Registry:            registry,
		SourceTimeout:       cfg.SourceTimeout,
		BoardTimeout:        cfg.BoardTimeout,
		BoardRequestsPerSec: cfg.BoardRequestsPerSec,
		TargetExperience:    cfg.TargetExperience,
	}

	enrichCfg, err := fetcher.LoadEnrichConfigFromEnv()
	if err != nil {
		logger.Warn("invalid enrichment configuration, enrichment disabled", slog.Any("error", err))
		return svc
	}
	if enrichCfg.Enabled {
		svc.ContentFetcher = fetcher.NewReadabilityFetcher(enrichCfg)
		svc.Enrich = aggregate.EnrichSettings{
			Threshold:   enrichCfg.Threshold,
			Parallelism: enrichCfg.Parallelism,
		}
	}
	return svc
}
