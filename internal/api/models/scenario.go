package models

import "github.com/neoscope/neoscope/internal/scenario"

// ScenarioRequest is the create/update body for a saved scenario.
type ScenarioRequest struct {
	Label            string  `json:"label"`
	AsteroidID       string  `json:"asteroidId,omitempty"`
	AsteroidName     string  `json:"asteroidName,omitempty"`
	ImpactLat        float64 `json:"impactLat"`
	ImpactLng        float64 `json:"impactLng"`
	DiameterMeters   float64 `json:"diameterMeters,omitempty"`
	VelocityKmPerSec float64 `json:"velocityKmPerSec,omitempty"`
	DensityKgM3      float64 `json:"densityKgM3,omitempty"`
	AngleDegrees     float64 `json:"angleDegrees,omitempty"`
	OceanImpact      bool    `json:"oceanImpact"`
	Notes            string  `json:"notes,omitempty"`
}

// ToScenario converts the request to a domain scenario.
func (r ScenarioRequest) ToScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Label:            r.Label,
		AsteroidID:       r.AsteroidID,
		AsteroidName:     r.AsteroidName,
		ImpactLat:        r.ImpactLat,
		ImpactLng:        r.ImpactLng,
		DiameterMeters:   r.DiameterMeters,
		VelocityKmPerSec: r.VelocityKmPerSec,
		DensityKgM3:      r.DensityKgM3,
		AngleDegrees:     r.AngleDegrees,
		OceanImpact:      r.OceanImpact,
		Notes:            r.Notes,
	}
}

// PagedScenarios is a page of saved scenarios.
type PagedScenarios struct {
	Items []*scenario.Scenario `json:"items"`
	Meta  PagedResponseMeta    `json:"meta"`
}
