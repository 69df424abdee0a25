// Package scenario stores saved impact scenarios: the inputs a user picked
// (asteroid, impact point, physics overrides), never computed geometry,
// which is always re-derived at render time.
package scenario

import (
	"errors"
	"time"
)

// Scenario errors.
var (
	ErrNotFound   = errors.New("scenario not found")
	ErrInvalidLat = errors.New("impact latitude out of range")
	ErrInvalidLng = errors.New("impact longitude out of range")
	ErrNoLabel    = errors.New("scenario label required")
)

// maxImpactLat keeps saved impact points away from the projection's polar
// singularity.
const maxImpactLat = 89.9

// Scenario is one saved impact configuration.
type Scenario struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// AsteroidID references the catalog record; AsteroidName is denormalized
	// for listings so they render without a catalog round trip.
	AsteroidID   string `json:"asteroidId,omitempty"`
	AsteroidName string `json:"asteroidName,omitempty"`

	ImpactLat float64 `json:"impactLat"`
	ImpactLng float64 `json:"impactLng"`

	// Physics overrides; zero means the simulation defaults apply.
	DiameterMeters   float64 `json:"diameterMeters,omitempty"`
	VelocityKmPerSec float64 `json:"velocityKmPerSec,omitempty"`
	DensityKgM3      float64 `json:"densityKgM3,omitempty"`
	AngleDegrees     float64 `json:"angleDegrees,omitempty"`
	OceanImpact      bool    `json:"oceanImpact"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the scenario's user-supplied fields.
func (s *Scenario) Validate() error {
	if s.Label == "" {
		return ErrNoLabel
	}
	if s.ImpactLat < -maxImpactLat || s.ImpactLat > maxImpactLat {
		return ErrInvalidLat
	}
	if s.ImpactLng < -180 || s.ImpactLng > 180 {
		return ErrInvalidLng
	}
	return nil
}
