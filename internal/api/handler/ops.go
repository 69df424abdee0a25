// Package handler provides HTTP handlers for the NeoScope API.
package handler

import (
	"net/http"
	"time"

	"github.com/neoscope/neoscope/internal/api/models"
	"github.com/neoscope/neoscope/internal/api/response"
	"github.com/neoscope/neoscope/internal/asteroid"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	catalog   *asteroid.Service
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, catalog *asteroid.Service) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		catalog:   catalog,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - catalog provider and cache status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       now,
		Subsystems: []models.SubsystemStatus{},
		Providers:  []models.ProviderStatus{},
	}

	if h.catalog != nil {
		cacheStatus := h.catalog.Status()

		providerStatus := models.ProviderStatus{
			Provider: cacheStatus.Provider,
			Status:   models.HealthStatusOK,
		}
		if !cacheStatus.OldestFetched.IsZero() {
			fetched := models.Timestamp(cacheStatus.OldestFetched)
			providerStatus.LastSuccessAt = &fetched
		}
		status.Providers = append(status.Providers, providerStatus)

		cache := models.SubsystemStatus{Name: "feed-cache", Status: models.HealthStatusOK}
		if cacheStatus.Windows == 0 {
			cache.Status = models.HealthStatusDegraded
		}
		status.Subsystems = append(status.Subsystems, cache)
	}

	response.JSON(w, r, http.StatusOK, status)
}
