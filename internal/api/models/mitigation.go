package models

import "github.com/neoscope/neoscope/internal/mitigation"

// BriefingRequest describes the impact scenario a briefing is wanted for.
type BriefingRequest struct {
	AsteroidName     string  `json:"asteroidName,omitempty"`
	DiameterMeters   float64 `json:"diameterMeters,omitempty"`
	VelocityKmPerSec float64 `json:"velocityKmPerSec,omitempty"`
	EnergyMegatons   float64 `json:"energyMegatons,omitempty"`
	LocationName     string  `json:"locationName,omitempty"`
	PopulationAtRisk int64   `json:"populationAtRisk,omitempty"`
	YearsToImpact    float64 `json:"yearsToImpact,omitempty"`
}

// ToScenario converts the request to a mitigation scenario.
func (r BriefingRequest) ToScenario() mitigation.Scenario {
	return mitigation.Scenario{
		AsteroidName:     r.AsteroidName,
		DiameterMeters:   r.DiameterMeters,
		VelocityKmPerSec: r.VelocityKmPerSec,
		EnergyMegatons:   r.EnergyMegatons,
		LocationName:     r.LocationName,
		PopulationAtRisk: r.PopulationAtRisk,
		YearsToImpact:    r.YearsToImpact,
	}
}
