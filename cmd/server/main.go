package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/nutriscan/backend/config"
	httpDelivery "github.com/nutriscan/backend/internal/delivery/http"
	"github.com/nutriscan/backend/internal/infrastructure/metrics"
	"github.com/nutriscan/backend/internal/infrastructure/openfoodfacts"
	"github.com/nutriscan/backend/internal/usecase"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	development := cfg.Server.Environment == "development"
	if development {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout}).Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("catalog", cfg.Catalog.BaseURL).
		Msg("starting nutriscan backend")

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	// Infrastructure
	catalogClient := openfoodfacts.NewClient(openfoodfacts.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		Timeout:   cfg.Catalog.Timeout,
		UserAgent: cfg.Catalog.UserAgent,
	}, m, logger)

	// Usecase layer
	scanService := usecase.NewScanService(catalogClient, usecase.ScanServiceConfig{
		Thresholds: usecase.RiskThresholds{
			SaltG:         cfg.Risk.SaltLimitG,
			SugarsG:       cfg.Risk.SugarsLimitG,
			SaturatedFatG: cfg.Risk.SaturatedFatLimitG,
			CaloriesKcal:  cfg.Risk.CalorieLimitKcal,
		},
		MaxResults:    cfg.Alternatives.MaxResults,
		PageSize:      cfg.Alternatives.PageSize,
		MaxCategories: cfg.Alternatives.MaxCategories,
	}, logger)

	logger.Info().
		Int("max_results", cfg.Alternatives.MaxResults).
		Int("page_size", cfg.Alternatives.PageSize).
		Int("max_categories", cfg.Alternatives.MaxCategories).
		Msg("alternative search configured")

	// HTTP delivery
	handler := httpDelivery.NewHandler(scanService, m, development, logger)
	router := httpDelivery.SetupRouter(cfg, handler, registry)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server listening")

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
