// Package render turns physical impact effects into screen-space geometry
// for map-style rendering: per-effect pixel radii, a fitted zoom level, and
// geographic bounds for the whole scene. It is the boundary where physical
// values are rounded for display; canonical records stay unrounded.
package render

import (
	"math"

	"github.com/neoscope/neoscope/internal/geo"
	"github.com/neoscope/neoscope/internal/impact"
)

// Effect identifies one renderable impact effect ring.
type Effect string

const (
	EffectCrater      Effect = "crater"
	EffectFireball    Effect = "fireball"
	EffectSevereBlast Effect = "severe_blast"
	EffectWindBlast   Effect = "wind_blast"
	EffectEarthquake  Effect = "earthquake"
	EffectTsunami     Effect = "tsunami"
)

// Viewport describes the target drawing surface in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Ring is one effect circle in both physical and screen space at the
// scene's zoom level.
type Ring struct {
	Effect       Effect     `json:"effect"`
	RadiusKm     float64    `json:"radiusKm"`
	RadiusPixels float64    `json:"radiusPixels"`
	Bounds       geo.Bounds `json:"bounds"`
}

// Scene is the full screen-space geometry for one impact.
type Scene struct {
	// Center is the impact point's offset within the viewport; by
	// construction it is the viewport center.
	Center geo.Pixel `json:"center"`

	// Zoom is the level at which the outermost ring fits the viewport.
	Zoom float64 `json:"zoom"`

	// MetersPerPixel is the ground resolution at the impact latitude and
	// the chosen zoom.
	MetersPerPixel float64 `json:"metersPerPixel"`

	// DiameterMeters is the impactor diameter rounded to whole meters for
	// labels.
	DiameterMeters float64 `json:"diameterMeters"`

	// Bounds covers the outermost ring.
	Bounds geo.Bounds `json:"bounds"`

	Rings []Ring `json:"rings"`
}

// BuildScene lays out the rings for an impact at center, fitting the
// outermost nonzero ring into the viewport width. Rings with zero radius
// (no crater for an airburst, no tsunami on land) are omitted.
func BuildScene(center geo.Point, res impact.Result, vp Viewport, diameterMeters float64) Scene {
	type candidate struct {
		effect   Effect
		radiusKm float64
	}

	candidates := []candidate{
		{EffectCrater, res.CraterDiameterKm / 2},
		{EffectFireball, res.FireballRadiusKm},
		{EffectSevereBlast, res.SevereBlastRadiusKm},
		{EffectWindBlast, res.WindBlastRadiusKm},
		{EffectEarthquake, res.EarthquakeRadiusKm},
		{EffectTsunami, res.TsunamiRadiusKm},
	}

	outermost := 0.0
	for _, c := range candidates {
		if c.radiusKm > outermost {
			outermost = c.radiusKm
		}
	}

	zoom := geo.ZoomForRadius(outermost, center.Lat, vp.Width)

	scene := Scene{
		Center:         geo.LatLngToPixel(center, zoom, vp.Width, vp.Height, center),
		Zoom:           zoom,
		MetersPerPixel: geo.MetersPerPixel(center.Lat, zoom),
		DiameterMeters: math.Round(diameterMeters),
		Bounds:         geo.BoundsForRadius(center, outermost),
	}

	for _, c := range candidates {
		if c.radiusKm <= 0 {
			continue
		}
		scene.Rings = append(scene.Rings, Ring{
			Effect:       c.effect,
			RadiusKm:     c.radiusKm,
			RadiusPixels: geo.KmToPixels(c.radiusKm, center.Lat, zoom),
			Bounds:       geo.BoundsForRadius(center, c.radiusKm),
		})
	}

	return scene
}
