package models

import (
	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/geo"
	"github.com/neoscope/neoscope/internal/impact"
	"github.com/neoscope/neoscope/internal/render"
)

// SimulateRequest describes one impact simulation. Either AsteroidID or an
// explicit DiameterMeters/VelocityKmPerSec pair must be provided; when an
// asteroid is referenced its catalog values seed the physics and any
// explicit fields override them.
type SimulateRequest struct {
	AsteroidID string `json:"asteroidId,omitempty"`

	Impact geo.Point `json:"impact"`

	DiameterMeters   float64 `json:"diameterMeters,omitempty"`
	VelocityKmPerSec float64 `json:"velocityKmPerSec,omitempty"`
	DensityKgM3      float64 `json:"densityKgM3,omitempty"`
	AngleDegrees     float64 `json:"angleDegrees,omitempty"`
	OceanImpact      bool    `json:"oceanImpact,omitempty"`

	Viewport render.Viewport `json:"viewport"`
}

// SimulateResponse carries the physics results and the screen-space scene
// for one simulated impact.
type SimulateResponse struct {
	Asteroid *asteroid.Asteroid `json:"asteroid,omitempty"`
	Impact   impact.Result      `json:"impact"`
	Scene    render.Scene       `json:"scene"`
}

// DistanceRequest asks for the great-circle distance between two points.
type DistanceRequest struct {
	From geo.Point `json:"from"`
	To   geo.Point `json:"to"`
}

// DistanceResponse is the great-circle distance between two points.
type DistanceResponse struct {
	DistanceKm    float64 `json:"distanceKm"`
	DistanceMiles float64 `json:"distanceMiles"`
}
