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

	"github.com/Sumit-SC/job-search-api/internal/cache"
	"github.com/Sumit-SC/job-search-api/internal/config"
	handler "github.com/Sumit-SC/job-search-api/internal/handler/http"
	"github.com/Sumit-SC/job-search-api/internal/infra/adapter/persistence/file"
	"github.com/Sumit-SC/job-search-api/internal/infra/adapter/persistence/postgres"
	"github.com/Sumit-SC/job-search-api/internal/infra/db"
	"github.com/Sumit-SC/job-search-api/internal/infra/fetcher"
	"github.com/Sumit-SC/job-search-api/internal/infra/source"
	"github.com/Sumit-SC/job-search-api/internal/observability/logging"
	"github.com/Sumit-SC/job-search-api/internal/repository"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
	"github.com/Sumit-SC/job-search-api/internal/usecase/listing"
	"github.com/Sumit-SC/job-search-api/internal/usecase/refresh"
)

var version = "dev"

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
	logger.Info("sources configured", slog.Any("names", registry.Names()))

	store, closeStore := buildStore(logger, cfg)
	defer closeStore()

	aggregator := buildAggregator(logger, cfg, registry)
	api := &handler.API{
		Aggregator:  aggregator,
		Listings:    listing.NewService(store),
		Refresher:   &refresh.Service{Aggregator: aggregator, Store: store},
		Registry:    registry,
		Presets:     srcConfig.Presets,
		SearchCache: cache.New("search", cfg.SearchCacheTTL, cfg.CacheMaxEntries),
		FeedsCache:  cache.New("feeds", cfg.FeedsCacheTTL, cfg.CacheMaxEntries),
		Store:       store,
		Version:     version,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Routes(logger, cfg.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// buildStore selects Postgres when DATABASE_URL is set, otherwise the
// flat-file store under DataDir.
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
		logger.Info("description enrichment enabled",
			slog.Int("threshold", enrichCfg.Threshold),
			slog.Int("parallelism", enrichCfg.Parallelism))
	}
	return svc
}
