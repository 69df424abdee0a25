// Package main provides the entrypoint for the NeoScope API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/neoscope/neoscope/internal/api"
	"github.com/neoscope/neoscope/internal/api/middleware"
	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/asteroid/neows"
	"github.com/neoscope/neoscope/internal/database"
	"github.com/neoscope/neoscope/internal/mitigation"
	"github.com/neoscope/neoscope/internal/mitigation/gemini"
	"github.com/neoscope/neoscope/internal/scenario"
	"github.com/neoscope/neoscope/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "neoscope-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting NeoScope API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version)

	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Catalog provider: a local snapshot file when configured, otherwise
	// the live NeoWs API.
	var provider asteroid.Provider
	if path := os.Getenv("NEO_SNAPSHOT_PATH"); path != "" {
		snapshot, snapErr := asteroid.NewSnapshotProvider(path)
		if snapErr != nil {
			log.Fatal().Err(snapErr).Str("path", path).Msg("failed to load snapshot")
		}
		provider = snapshot
		log.Info().Str("path", path).Int("records", snapshot.Len()).Msg("snapshot catalog loaded")
	} else {
		apiKey := os.Getenv("NASA_API_KEY")
		if apiKey == "" {
			apiKey = "DEMO_KEY"
			log.Warn().Msg("NASA_API_KEY not set - using DEMO_KEY with strict rate limits")
		}
		provider = neows.NewClient(neows.ClientConfig{
			APIKey: apiKey,
			Logger: log,
		})
		log.Info().Msg("NeoWs catalog client initialized")
	}

	catalogService := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   log,
	})
	log.Info().Msg("catalog service initialized")

	// Scenario store: PostgreSQL when enabled, in-memory otherwise.
	var scenarioRepo scenario.Repository = scenario.NewInMemoryRepository()
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, dbErr := database.Connect(ctx, dbConfig)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to connect to database")
		}
		defer pool.Close()

		if schemaErr := database.EnsureSchema(ctx, pool); schemaErr != nil {
			log.Fatal().Err(schemaErr).Msg("failed to apply database schema")
		}

		scenarioRepo = scenario.NewPostgresRepository(pool)
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
	} else {
		log.Warn().Msg("DB_ENABLED not set - scenarios are stored in memory only")
	}
	scenarioService := scenario.NewService(scenarioRepo)
	log.Info().Msg("scenario service initialized")

	// Briefing generator is optional; without a key the deterministic
	// template answers every briefing.
	var generator mitigation.Generator
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		generator = gemini.NewClient(gemini.ClientConfig{
			APIKey: geminiKey,
			Model:  os.Getenv("GEMINI_MODEL"),
			Logger: log,
		})
		log.Info().Msg("Gemini briefing generator initialized")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - briefings use the fallback template")
	}
	mitigationService := mitigation.NewService(mitigation.ServiceConfig{
		Generator: generator,
		Logger:    log,
	})
	log.Info().Msg("mitigation service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		CatalogService:    catalogService,
		ScenarioService:   scenarioService,
		MitigationService: mitigationService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
