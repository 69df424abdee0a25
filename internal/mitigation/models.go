// Package mitigation produces mitigation-strategy briefings for impact
// scenarios. A generative text provider writes the briefing; when it is
// unconfigured or failing, a deterministic template keeps the endpoint
// serving.
package mitigation

import "errors"

// ErrEmptyScenario is returned when a request carries no asteroid data.
var ErrEmptyScenario = errors.New("mitigation scenario has no asteroid data")

// Scenario carries the scalar fields a briefing is written from. These come
// from the canonical asteroid record and the impact physics, never from raw
// catalog records.
type Scenario struct {
	AsteroidName     string  `json:"asteroidName"`
	DiameterMeters   float64 `json:"diameterMeters"`
	VelocityKmPerSec float64 `json:"velocityKmPerSec"`
	EnergyMegatons   float64 `json:"energyMegatons"`

	// LocationName is a human label for the impact point ("New York City",
	// "North Atlantic").
	LocationName string `json:"locationName"`

	// PopulationAtRisk is the estimated population inside the damage
	// rings; 0 when unknown.
	PopulationAtRisk int64 `json:"populationAtRisk"`

	// YearsToImpact is the warning time; it drives deflection vs.
	// evacuation framing. 0 means an unwarned scenario.
	YearsToImpact float64 `json:"yearsToImpact"`
}

// Briefing is a generated mitigation strategy.
type Briefing struct {
	// Headline is a one-line summary.
	Headline string `json:"headline"`

	// Body is the full briefing text.
	Body string `json:"body"`

	// Source names who wrote the briefing: the generator provider or
	// "fallback" for the deterministic template.
	Source string `json:"source"`
}
