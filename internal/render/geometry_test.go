package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoscope/neoscope/internal/geo"
	"github.com/neoscope/neoscope/internal/impact"
	"github.com/neoscope/neoscope/internal/render"
)

func testResult() impact.Result {
	return impact.Compute(impact.Params{
		DiameterMeters:   150,
		VelocityKmPerSec: 20,
	})
}

func TestBuildScene_CenterIsViewportCenter(t *testing.T) {
	center := geo.Point{Lat: 40.7128, Lng: -74.0060}

	scene := render.BuildScene(center, testResult(), render.Viewport{Width: 800, Height: 600}, 150.4)

	assert.InDelta(t, 400, scene.Center.X, 1e-9)
	assert.InDelta(t, 300, scene.Center.Y, 1e-9)
	assert.Equal(t, 150.0, scene.DiameterMeters)
}

func TestBuildScene_OutermostRingFits(t *testing.T) {
	center := geo.Point{Lat: 40.7128, Lng: -74.0060}
	vp := render.Viewport{Width: 800, Height: 600}

	scene := render.BuildScene(center, testResult(), vp, 150)
	require.NotEmpty(t, scene.Rings)

	for _, ring := range scene.Rings {
		assert.LessOrEqual(t, ring.RadiusPixels*2.5, vp.Width+1e-9,
			"ring %s overflows the viewport", ring.Effect)
	}
}

func TestBuildScene_RingsOmitZeroRadii(t *testing.T) {
	// Land impact: no tsunami ring.
	scene := render.BuildScene(geo.Point{Lat: 10, Lng: 10}, testResult(), render.Viewport{Width: 800, Height: 600}, 150)

	for _, ring := range scene.Rings {
		assert.NotEqual(t, render.EffectTsunami, ring.Effect)
		assert.Positive(t, ring.RadiusKm)
		assert.Positive(t, ring.RadiusPixels)
	}
}

func TestBuildScene_OceanImpactIncludesTsunami(t *testing.T) {
	res := impact.Compute(impact.Params{
		DiameterMeters:   150,
		VelocityKmPerSec: 20,
		OceanImpact:      true,
	})

	scene := render.BuildScene(geo.Point{Lat: 0, Lng: -30}, res, render.Viewport{Width: 1024, Height: 768}, 150)

	var found bool
	for _, ring := range scene.Rings {
		if ring.Effect == render.EffectTsunami {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildScene_RingPixelsConsistentWithZoom(t *testing.T) {
	center := geo.Point{Lat: 35.0, Lng: 139.0}
	scene := render.BuildScene(center, testResult(), render.Viewport{Width: 800, Height: 600}, 150)

	for _, ring := range scene.Rings {
		want := geo.KmToPixels(ring.RadiusKm, center.Lat, scene.Zoom)
		assert.InDelta(t, want, ring.RadiusPixels, 1e-9)
	}
	assert.InDelta(t, geo.MetersPerPixel(center.Lat, scene.Zoom), scene.MetersPerPixel, 1e-9)
}

func TestBuildScene_BoundsCoverOutermostRing(t *testing.T) {
	center := geo.Point{Lat: 48.8566, Lng: 2.3522}
	scene := render.BuildScene(center, testResult(), render.Viewport{Width: 800, Height: 600}, 150)

	for _, ring := range scene.Rings {
		assert.GreaterOrEqual(t, scene.Bounds.North+1e-9, ring.Bounds.North)
		assert.LessOrEqual(t, scene.Bounds.South-1e-9, ring.Bounds.South)
	}
}
