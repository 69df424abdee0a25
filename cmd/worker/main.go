// Package main provides the entrypoint for the NeoScope feed refresh worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/asteroid/neows"
	"github.com/neoscope/neoscope/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "neoscope-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting NeoScope worker")

	// Worker also exposes a health endpoint for the platform.
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog provider: a local snapshot file when configured, otherwise
	// the live NeoWs API.
	var provider asteroid.Provider
	if path := os.Getenv("NEO_SNAPSHOT_PATH"); path != "" {
		snapshot, err := asteroid.NewSnapshotProvider(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to load snapshot")
		}
		provider = snapshot
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
	}

	catalog := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   log,
	})

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:  worker.DefaultRefreshConfig(),
		Logger:  log,
		Catalog: catalog,
	})

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Jobs arrive over Pub/Sub when a subscription is configured;
	// otherwise the worker refreshes on a fixed interval.
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")

	if projectID != "" && subscription != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer func() {
			if closeErr := handler.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close pubsub client")
			}
		}()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Fatal().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		interval := 10 * time.Minute
		if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				log.Fatal().Err(err).Str("value", v).Msg("invalid REFRESH_INTERVAL")
			}
			interval = parsed
		}
		log.Info().Dur("interval", interval).Msg("pubsub not configured - refreshing on interval")

		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			refreshJob.Run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refreshJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
