package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neoscope/neoscope/internal/api/models"
	"github.com/neoscope/neoscope/internal/api/response"
	"github.com/neoscope/neoscope/internal/scenario"
)

// ScenarioHandler handles saved scenario endpoints.
type ScenarioHandler struct {
	scenarios *scenario.Service
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarios *scenario.Service) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios}
}

// List handles GET /v1/scenarios - list saved scenarios.
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := scenario.ListOptions{
		Limit:  50,
		Cursor: r.URL.Query().Get("cursor"),
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > 100 {
			response.BadRequest(w, r, "invalid limit", []models.FieldError{
				{Field: "limit", Message: "must be between 1 and 100"},
			})
			return
		}
		opts.Limit = parsed
	}

	result, err := h.scenarios.List(r.Context(), opts)
	if err != nil {
		response.InternalError(w, r, "failed to list scenarios")
		return
	}

	page := models.PagedScenarios{
		Items: result.Items,
		Meta:  models.PagedResponseMeta{Limit: opts.Limit},
	}
	if result.NextCursor != "" {
		page.Meta.NextCursor = &result.NextCursor
	}
	if page.Items == nil {
		page.Items = []*scenario.Scenario{}
	}

	response.JSON(w, r, http.StatusOK, page)
}

// Create handles POST /v1/scenarios - save a new scenario.
func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	created, err := h.scenarios.Create(r.Context(), input.ToScenario())
	if err != nil {
		h.writeScenarioError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/scenarios/%s", created.ID)
	response.Created(w, r, location, created)
}

// Get handles GET /v1/scenarios/{scenarioId} - get a saved scenario.
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "scenarioId")
	if scenarioID == "" {
		response.BadRequest(w, r, "scenarioId is required", nil)
		return
	}

	found, err := h.scenarios.Get(r.Context(), scenarioID)
	if err != nil {
		h.writeScenarioError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, found)
}

// Update handles PUT /v1/scenarios/{scenarioId} - update a saved scenario.
func (h *ScenarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "scenarioId")
	if scenarioID == "" {
		response.BadRequest(w, r, "scenarioId is required", nil)
		return
	}

	var input models.ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	sc := input.ToScenario()
	sc.ID = scenarioID

	updated, err := h.scenarios.Update(r.Context(), sc)
	if err != nil {
		h.writeScenarioError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /v1/scenarios/{scenarioId} - delete a saved scenario.
func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "scenarioId")
	if scenarioID == "" {
		response.BadRequest(w, r, "scenarioId is required", nil)
		return
	}

	if err := h.scenarios.Delete(r.Context(), scenarioID); err != nil {
		h.writeScenarioError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

func (h *ScenarioHandler) writeScenarioError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		response.NotFound(w, r, "scenario not found")
	case errors.Is(err, scenario.ErrNoLabel):
		response.BadRequest(w, r, "scenario is invalid", []models.FieldError{
			{Field: "label", Message: "is required"},
		})
	case errors.Is(err, scenario.ErrInvalidLat):
		response.BadRequest(w, r, "scenario is invalid", []models.FieldError{
			{Field: "impactLat", Message: "must be between -89.9 and 89.9"},
		})
	case errors.Is(err, scenario.ErrInvalidLng):
		response.BadRequest(w, r, "scenario is invalid", []models.FieldError{
			{Field: "impactLng", Message: "must be between -180 and 180"},
		})
	default:
		response.InternalError(w, r, "failed to store scenario")
	}
}
