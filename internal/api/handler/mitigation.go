package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neoscope/neoscope/internal/api/models"
	"github.com/neoscope/neoscope/internal/api/response"
	"github.com/neoscope/neoscope/internal/mitigation"
)

// MitigationHandler handles planetary defense briefing endpoints.
type MitigationHandler struct {
	briefings *mitigation.Service
}

// NewMitigationHandler creates a new MitigationHandler.
func NewMitigationHandler(briefings *mitigation.Service) *MitigationHandler {
	return &MitigationHandler{briefings: briefings}
}

// Brief handles POST /v1/mitigation/briefings - generate a mitigation
// briefing for an impact scenario.
func (h *MitigationHandler) Brief(w http.ResponseWriter, r *http.Request) {
	var input models.BriefingRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	briefing, err := h.briefings.Brief(r.Context(), input.ToScenario())
	if err != nil {
		if errors.Is(err, mitigation.ErrEmptyScenario) {
			response.BadRequest(w, r, "scenario needs at least an asteroid name or a diameter", nil)
			return
		}
		response.InternalError(w, r, "failed to generate briefing")
		return
	}

	response.JSON(w, r, http.StatusOK, briefing)
}
