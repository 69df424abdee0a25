// Package api provides the HTTP API for NeoScope.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/neoscope/neoscope/internal/api/handler"
	"github.com/neoscope/neoscope/internal/api/middleware"
	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/mitigation"
	"github.com/neoscope/neoscope/internal/scenario"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	CatalogService    *asteroid.Service
	ScenarioService   *scenario.Service
	MitigationService *mitigation.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "neoscope-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.RequireJSON)          // Reject non-JSON bodies
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.CatalogService)
	asteroidHandler := handler.NewAsteroidHandler(cfg.CatalogService)
	simulateHandler := handler.NewSimulateHandler(cfg.CatalogService)
	mitigationHandler := handler.NewMitigationHandler(cfg.MitigationService)
	scenarioHandler := handler.NewScenarioHandler(cfg.ScenarioService)

	// Rate limit middleware for different endpoint categories
	mitigationRateLimit := middleware.RateLimitByIP(middleware.MitigationRateLimit) // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)   // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)     // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Catalog endpoints - standard rate limiting
		r.Route("/asteroids", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", asteroidHandler.Feed)
			r.Get("/browse", asteroidHandler.Browse)
			r.Get("/{asteroidId}", asteroidHandler.Get)
		})

		// Simulation endpoints - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/simulations:compute", simulateHandler.Simulate)

		// Geodesy endpoints - standard rate limiting
		r.With(standardRateLimit).Post("/geo/distance", simulateHandler.Distance)

		// Mitigation briefings call an external model - strictest rate limiting
		r.With(mitigationRateLimit).Post("/mitigation/briefings", mitigationHandler.Brief)

		// Saved scenarios - standard rate limiting
		r.Route("/scenarios", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", scenarioHandler.List)
			r.Post("/", scenarioHandler.Create)
			r.Route("/{scenarioId}", func(r chi.Router) {
				r.Get("/", scenarioHandler.Get)
				r.Put("/", scenarioHandler.Update)
				r.Delete("/", scenarioHandler.Delete)
			})
		})
	})

	return r
}
