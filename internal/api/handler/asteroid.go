package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neoscope/neoscope/internal/api/models"
	"github.com/neoscope/neoscope/internal/api/response"
	"github.com/neoscope/neoscope/internal/asteroid"
)

const dateLayout = "2006-01-02"

// AsteroidHandler handles asteroid catalog endpoints.
type AsteroidHandler struct {
	catalog *asteroid.Service
}

// NewAsteroidHandler creates a new AsteroidHandler.
func NewAsteroidHandler(catalog *asteroid.Service) *AsteroidHandler {
	return &AsteroidHandler{catalog: catalog}
}

// Feed handles GET /v1/asteroids - list asteroids approaching in a date window.
// Defaults to today when no window is given.
func (h *AsteroidHandler) Feed(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	window := asteroid.FeedWindow{Start: now, End: now}

	if s := r.URL.Query().Get("startDate"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			response.BadRequest(w, r, "invalid startDate", []models.FieldError{
				{Field: "startDate", Message: "must be formatted YYYY-MM-DD"},
			})
			return
		}
		window.Start = parsed
		window.End = parsed
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			response.BadRequest(w, r, "invalid endDate", []models.FieldError{
				{Field: "endDate", Message: "must be formatted YYYY-MM-DD"},
			})
			return
		}
		window.End = parsed
	}
	if window.End.Before(window.Start) {
		response.BadRequest(w, r, "endDate must not be before startDate", nil)
		return
	}

	items, err := h.catalog.Feed(r.Context(), window)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.FeedResponse{
		StartDate: window.Start.Format(dateLayout),
		EndDate:   window.End.Format(dateLayout),
		Count:     len(items),
		Items:     items,
	})
}

// Browse handles GET /v1/asteroids/browse - page through the whole catalog.
func (h *AsteroidHandler) Browse(w http.ResponseWriter, r *http.Request) {
	page := 0
	size := 20

	if s := r.URL.Query().Get("page"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 0 {
			response.BadRequest(w, r, "invalid page", []models.FieldError{
				{Field: "page", Message: "must be a non-negative integer"},
			})
			return
		}
		page = parsed
	}
	if s := r.URL.Query().Get("size"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, r, "invalid size", []models.FieldError{
				{Field: "size", Message: "must be between 1 and 100"},
			})
			return
		}
		size = parsed
	}

	items, err := h.catalog.Browse(r.Context(), page, size)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.PagedAsteroids{
		Items: items,
		Meta:  models.PagedResponseMeta{Limit: size},
	})
}

// Get handles GET /v1/asteroids/{asteroidId} - look up one asteroid.
func (h *AsteroidHandler) Get(w http.ResponseWriter, r *http.Request) {
	asteroidID := chi.URLParam(r, "asteroidId")
	if asteroidID == "" {
		response.BadRequest(w, r, "asteroidId is required", nil)
		return
	}

	record, err := h.catalog.Get(r.Context(), asteroidID)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, record)
}

func (h *AsteroidHandler) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, asteroid.ErrNotFound):
		response.NotFound(w, r, "asteroid not found")
	case errors.Is(err, asteroid.ErrCatalogUnavailable):
		response.ServiceUnavailable(w, r, "asteroid catalog is temporarily unavailable")
	default:
		response.InternalError(w, r, "failed to query asteroid catalog")
	}
}
