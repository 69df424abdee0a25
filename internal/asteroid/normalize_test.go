package asteroid_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoscope/neoscope/internal/asteroid"
)

func f64(v float64) *float64 { return &v }
func b(v bool) *bool         { return &v }

func TestNormalize_MissingID(t *testing.T) {
	_, err := asteroid.Normalize(asteroid.RawRecord{})
	assert.ErrorIs(t, err, asteroid.ErrMissingID)
}

func TestNormalize_AllDefaults(t *testing.T) {
	a, err := asteroid.Normalize(asteroid.RawRecord{ID: "3542519"})
	require.NoError(t, err)

	assert.Equal(t, "3542519", a.ID)
	assert.Equal(t, "Asteroid 3542519", a.Name)
	assert.Equal(t, asteroid.DefaultDiameterMeters, a.DiameterMeters)
	assert.Equal(t, asteroid.DefaultVelocityKmPerSec, a.VelocityKmPerSec)
	assert.Equal(t, asteroid.DefaultMissDistanceKm, a.MissDistanceKm)
	assert.False(t, a.IsHazardous)
	assert.False(t, a.IsSentryObject)
	assert.Empty(t, a.ApproachDate)
	assert.Zero(t, a.Magnitude)
}

func TestNormalize_NamePriority(t *testing.T) {
	tests := []struct {
		name string
		raw  asteroid.RawRecord
		want string
	}{
		{
			name: "full name wins",
			raw:  asteroid.RawRecord{ID: "1", Name: "433 Eros (A898 PA)", NameLimited: "Eros"},
			want: "433 Eros (A898 PA)",
		},
		{
			name: "limited name second",
			raw:  asteroid.RawRecord{ID: "1", NameLimited: "Eros"},
			want: "Eros",
		},
		{
			name: "synthesized last",
			raw:  asteroid.RawRecord{ID: "1"},
			want: "Asteroid 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := asteroid.Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Name)
		})
	}
}

func TestNormalize_DiameterDerivation(t *testing.T) {
	tests := []struct {
		name string
		est  *asteroid.DiameterEstimate
		want float64
	}{
		{
			name: "meters range averaged",
			est: &asteroid.DiameterEstimate{
				Meters: &asteroid.DiameterRange{Min: f64(90), Max: f64(110)},
			},
			want: 100,
		},
		{
			name: "meters preferred over kilometers",
			est: &asteroid.DiameterEstimate{
				Meters:     &asteroid.DiameterRange{Min: f64(80), Max: f64(120)},
				Kilometers: &asteroid.DiameterRange{Min: f64(1), Max: f64(2)},
			},
			want: 100,
		},
		{
			name: "kilometers averaged and scaled",
			est: &asteroid.DiameterEstimate{
				Kilometers: &asteroid.DiameterRange{Min: f64(0.1), Max: f64(0.3)},
			},
			want: 200,
		},
		{
			name: "single-sided meters biases low",
			est: &asteroid.DiameterEstimate{
				Meters: &asteroid.DiameterRange{Max: f64(500)},
			},
			want: 250,
		},
		{
			name: "single-sided kilometers biases low",
			est: &asteroid.DiameterEstimate{
				Kilometers: &asteroid.DiameterRange{Min: f64(2)},
			},
			want: 1000,
		},
		{
			name: "empty estimate falls back",
			est:  &asteroid.DiameterEstimate{},
			want: asteroid.DefaultDiameterMeters,
		},
		{
			name: "absent estimate falls back",
			est:  nil,
			want: asteroid.DefaultDiameterMeters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := asteroid.Normalize(asteroid.RawRecord{ID: "1", EstimatedDiameter: tt.est})
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.DiameterMeters)
		})
	}
}

func TestNormalize_ApproachParsing(t *testing.T) {
	raw := asteroid.RawRecord{
		ID: "1",
		EstimatedDiameter: &asteroid.DiameterEstimate{
			Meters: &asteroid.DiameterRange{Min: f64(90), Max: f64(110)},
		},
		IsHazardous: b(true),
		CloseApproaches: []asteroid.ApproachEvent{
			{
				CloseApproachDate: "2026-09-14",
				RelativeVelocity:  asteroid.RelativeVelocity{KmPerSec: "15.5"},
				MissDistance:      asteroid.MissDistance{Kilometers: "54321"},
			},
			{
				// Later events are ignored even when present.
				RelativeVelocity: asteroid.RelativeVelocity{KmPerSec: "99"},
				MissDistance:     asteroid.MissDistance{Kilometers: "1"},
			},
		},
	}

	a, err := asteroid.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 100.0, a.DiameterMeters)
	assert.Equal(t, 15.5, a.VelocityKmPerSec)
	assert.Equal(t, 54321.0, a.MissDistanceKm)
	assert.True(t, a.IsHazardous)
	assert.Zero(t, a.Magnitude)
	assert.Equal(t, "Asteroid 1", a.Name)
	assert.Equal(t, "2026-09-14", a.ApproachDate)
}

func TestNormalize_MalformedApproachFieldsFallBack(t *testing.T) {
	tests := []struct {
		name     string
		velocity string
		distance string
	}{
		{"empty strings", "", ""},
		{"non-numeric", "fast", "far"},
		{"nan and inf rejected", "NaN", "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := asteroid.Normalize(asteroid.RawRecord{
				ID: "1",
				CloseApproaches: []asteroid.ApproachEvent{{
					RelativeVelocity: asteroid.RelativeVelocity{KmPerSec: tt.velocity},
					MissDistance:     asteroid.MissDistance{Kilometers: tt.distance},
				}},
			})
			require.NoError(t, err)
			assert.Equal(t, asteroid.DefaultVelocityKmPerSec, a.VelocityKmPerSec)
			assert.Equal(t, asteroid.DefaultMissDistanceKm, a.MissDistanceKm)
		})
	}
}

func TestNormalize_PartialApproachEvent(t *testing.T) {
	// One parseable field does not disturb the other's default.
	a, err := asteroid.Normalize(asteroid.RawRecord{
		ID: "1",
		CloseApproaches: []asteroid.ApproachEvent{{
			RelativeVelocity: asteroid.RelativeVelocity{KmPerSec: "7.25"},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, 7.25, a.VelocityKmPerSec)
	assert.Equal(t, asteroid.DefaultMissDistanceKm, a.MissDistanceKm)
}

func TestNormalize_MagnitudeAndSentry(t *testing.T) {
	a, err := asteroid.Normalize(asteroid.RawRecord{
		ID:                "2099942",
		Name:              "99942 Apophis (2004 MN4)",
		AbsoluteMagnitude: f64(19.7),
		IsSentryObject:    b(true),
	})
	require.NoError(t, err)

	assert.Equal(t, 19.7, a.Magnitude)
	assert.True(t, a.IsSentryObject)
	assert.False(t, a.IsHazardous)
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := asteroid.RawRecord{
		ID:   "1",
		Name: "Test",
		EstimatedDiameter: &asteroid.DiameterEstimate{
			Kilometers: &asteroid.DiameterRange{Min: f64(0.5), Max: f64(1.5)},
		},
		CloseApproaches: []asteroid.ApproachEvent{{
			RelativeVelocity: asteroid.RelativeVelocity{KmPerSec: "12.3"},
			MissDistance:     asteroid.MissDistance{Kilometers: "400000"},
		}},
	}

	first, err := asteroid.Normalize(raw)
	require.NoError(t, err)
	second, err := asteroid.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.DiameterMeters, second.DiameterMeters)
	assert.Equal(t, first.VelocityKmPerSec, second.VelocityKmPerSec)
	assert.Equal(t, first.MissDistanceKm, second.MissDistanceKm)
}

func TestNormalize_FromWireJSON(t *testing.T) {
	// A lookup-shaped record straight off the wire, orbital_data untouched.
	payload := `{
		"id": "3726710",
		"neo_reference_id": "3726710",
		"name": "(2015 RC)",
		"absolute_magnitude_h": 24.3,
		"estimated_diameter": {
			"kilometers": {"estimated_diameter_min": 0.0366, "estimated_diameter_max": 0.0817}
		},
		"is_potentially_hazardous_asteroid": false,
		"close_approach_data": [{
			"close_approach_date": "2015-09-08",
			"relative_velocity": {"kilometers_per_second": "19.4850295284"},
			"miss_distance": {"kilometers": "4027962.697099799"},
			"orbiting_body": "Earth"
		}],
		"orbital_data": {"orbit_id": "17", "eccentricity": ".4245482"},
		"is_sentry_object": false
	}`

	var raw asteroid.RawRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	a, err := asteroid.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "(2015 RC)", a.Name)
	assert.InDelta(t, 59.15, a.DiameterMeters, 0.01)
	assert.InDelta(t, 19.485, a.VelocityKmPerSec, 0.001)
	assert.InDelta(t, 4027962.697, a.MissDistanceKm, 0.001)
	assert.Equal(t, 24.3, a.Magnitude)
	assert.Equal(t, "2015-09-08", a.ApproachDate)
	assert.JSONEq(t, `{"orbit_id":"17","eccentricity":".4245482"}`, string(a.Raw.OrbitalData))
}

func TestNormalizeAll_PreservesOrderAndSkips(t *testing.T) {
	raws := []asteroid.RawRecord{
		{ID: "a"},
		{}, // no id, skipped
		{ID: "b"},
		{ID: "c"},
	}

	out, skipped := asteroid.NormalizeAll(raws)

	require.Len(t, out, 3)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "c", out[2].ID)
}
