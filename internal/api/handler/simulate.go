package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neoscope/neoscope/internal/api/models"
	"github.com/neoscope/neoscope/internal/api/response"
	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/geo"
	"github.com/neoscope/neoscope/internal/impact"
	"github.com/neoscope/neoscope/internal/render"
)

// Default viewport for clients that do not send one.
const (
	defaultViewportWidth  = 800.0
	defaultViewportHeight = 600.0
)

// maxImpactLat keeps simulated impact points away from the projection's
// polar singularity.
const maxImpactLat = 89.9

// SimulateHandler handles impact simulation endpoints.
type SimulateHandler struct {
	catalog *asteroid.Service
}

// NewSimulateHandler creates a new SimulateHandler.
func NewSimulateHandler(catalog *asteroid.Service) *SimulateHandler {
	return &SimulateHandler{catalog: catalog}
}

// Simulate handles POST /v1/simulations:compute - run the impact physics
// and build the screen-space scene for one impact.
func (h *SimulateHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input models.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrs := validateImpactPoint(input.Impact); len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid impact point", fieldErrs)
		return
	}

	params := impact.Params{
		DiameterMeters:   input.DiameterMeters,
		VelocityKmPerSec: input.VelocityKmPerSec,
		DensityKgM3:      input.DensityKgM3,
		AngleDegrees:     input.AngleDegrees,
		OceanImpact:      input.OceanImpact,
	}

	var record *asteroid.Asteroid
	if input.AsteroidID != "" {
		found, err := h.catalog.Get(r.Context(), input.AsteroidID)
		if err != nil {
			h.writeCatalogError(w, r, err)
			return
		}
		record = &found

		// Catalog values seed the physics; explicit fields win.
		if params.DiameterMeters <= 0 {
			params.DiameterMeters = found.DiameterMeters
		}
		if params.VelocityKmPerSec <= 0 {
			params.VelocityKmPerSec = found.VelocityKmPerSec
		}
	}

	if params.DiameterMeters <= 0 || params.VelocityKmPerSec <= 0 {
		response.BadRequest(w, r, "either asteroidId or diameterMeters and velocityKmPerSec are required", nil)
		return
	}

	vp := input.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = render.Viewport{Width: defaultViewportWidth, Height: defaultViewportHeight}
	}

	result := impact.Compute(params)
	scene := render.BuildScene(input.Impact, result, vp, params.DiameterMeters)

	response.JSON(w, r, http.StatusOK, models.SimulateResponse{
		Asteroid: record,
		Impact:   result,
		Scene:    scene,
	})
}

// Distance handles POST /v1/geo/distance - great-circle distance between
// two points.
func (h *SimulateHandler) Distance(w http.ResponseWriter, r *http.Request) {
	var input models.DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	for _, p := range []struct {
		name  string
		point geo.Point
	}{{"from", input.From}, {"to", input.To}} {
		if p.point.Lat < -90 || p.point.Lat > 90 {
			response.BadRequest(w, r, "invalid coordinates", []models.FieldError{
				{Field: p.name + ".lat", Message: "must be between -90 and 90"},
			})
			return
		}
		if p.point.Lng < -180 || p.point.Lng > 180 {
			response.BadRequest(w, r, "invalid coordinates", []models.FieldError{
				{Field: p.name + ".lng", Message: "must be between -180 and 180"},
			})
			return
		}
	}

	km := geo.HaversineKm(input.From, input.To)
	response.JSON(w, r, http.StatusOK, models.DistanceResponse{
		DistanceKm:    km,
		DistanceMiles: km / geo.KmPerMile,
	})
}

func validateImpactPoint(p geo.Point) []models.FieldError {
	var fieldErrs []models.FieldError
	if p.Lat < -maxImpactLat || p.Lat > maxImpactLat {
		fieldErrs = append(fieldErrs, models.FieldError{
			Field: "impact.lat", Message: "must be between -89.9 and 89.9",
		})
	}
	if p.Lng < -180 || p.Lng > 180 {
		fieldErrs = append(fieldErrs, models.FieldError{
			Field: "impact.lng", Message: "must be between -180 and 180",
		})
	}
	return fieldErrs
}

func (h *SimulateHandler) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, asteroid.ErrNotFound):
		response.NotFound(w, r, "asteroid not found")
	case errors.Is(err, asteroid.ErrCatalogUnavailable):
		response.ServiceUnavailable(w, r, "asteroid catalog is temporarily unavailable")
	default:
		response.InternalError(w, r, "failed to query asteroid catalog")
	}
}
