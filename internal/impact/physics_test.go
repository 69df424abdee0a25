package impact_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoscope/neoscope/internal/impact"
)

func TestCompute_EnergyScaling(t *testing.T) {
	r := impact.Compute(impact.Params{
		DiameterMeters:   100,
		VelocityKmPerSec: 20,
	})

	// m = 3000 * 4/3 * pi * 50^3
	wantMass := 3000 * (4.0 / 3.0) * math.Pi * 125000.0
	assert.InDelta(t, wantMass, r.MassKg, wantMass*1e-9)

	wantEnergy := 0.5 * wantMass * 20000 * 20000
	assert.InDelta(t, wantEnergy, r.EnergyJoules, wantEnergy*1e-9)
	assert.InDelta(t, wantEnergy/4.184e15, r.EnergyMegatons, 1e-6)

	// A 100 m stony impactor at 20 km/s sits in the tens-of-megatons range.
	assert.Greater(t, r.EnergyMegatons, 30.0)
	assert.Less(t, r.EnergyMegatons, 100.0)
}

func TestCompute_DefaultsApplied(t *testing.T) {
	explicit := impact.Compute(impact.Params{
		DiameterMeters:   50,
		VelocityKmPerSec: 17,
		DensityKgM3:      impact.DefaultDensityKgM3,
		AngleDegrees:     impact.DefaultAngleDegrees,
	})
	defaulted := impact.Compute(impact.Params{
		DiameterMeters:   50,
		VelocityKmPerSec: 17,
	})

	assert.Equal(t, explicit, defaulted)
}

func TestCompute_CraterPlausibility(t *testing.T) {
	// Chelyabinsk-class object: no crater worth rendering, sub-km effects.
	small := impact.Compute(impact.Params{DiameterMeters: 20, VelocityKmPerSec: 19})
	assert.Less(t, small.CraterDiameterKm, 1.0)

	// Barringer-class: ~50 m iron at 13 km/s left a ~1.2 km crater.
	barringer := impact.Compute(impact.Params{
		DiameterMeters:   50,
		VelocityKmPerSec: 13,
		DensityKgM3:      7800,
	})
	assert.InDelta(t, 1.2, barringer.CraterDiameterKm, 0.5)

	// Depth tracks diameter.
	assert.InDelta(t, barringer.CraterDiameterKm/5, barringer.CraterDepthKm, 1e-9)
}

func TestCompute_EffectOrdering(t *testing.T) {
	r := impact.Compute(impact.Params{
		DiameterMeters:   300,
		VelocityKmPerSec: 25,
		OceanImpact:      true,
	})

	// Rings nest outward: crater < fireball < severe blast < wind blast.
	require.Positive(t, r.CraterDiameterKm)
	assert.Less(t, r.CraterDiameterKm/2, r.FireballRadiusKm)
	assert.Less(t, r.FireballRadiusKm, r.SevereBlastRadiusKm)
	assert.Less(t, r.SevereBlastRadiusKm, r.WindBlastRadiusKm)
	assert.Positive(t, r.TsunamiRadiusKm)
}

func TestCompute_LandImpactHasNoTsunami(t *testing.T) {
	r := impact.Compute(impact.Params{DiameterMeters: 300, VelocityKmPerSec: 25})
	assert.Zero(t, r.TsunamiRadiusKm)
}

func TestCompute_SeismicMagnitude(t *testing.T) {
	r := impact.Compute(impact.Params{DiameterMeters: 100, VelocityKmPerSec: 20})

	want := 0.67*math.Log10(r.EnergyJoules) - 5.87
	assert.InDelta(t, want, r.SeismicMagnitude, 1e-9)

	// Larger impactor, larger quake.
	bigger := impact.Compute(impact.Params{DiameterMeters: 500, VelocityKmPerSec: 20})
	assert.Greater(t, bigger.SeismicMagnitude, r.SeismicMagnitude)
}

func TestCompute_ZeroImpactor(t *testing.T) {
	r := impact.Compute(impact.Params{})

	assert.Zero(t, r.MassKg)
	assert.Zero(t, r.EnergyJoules)
	assert.Zero(t, r.CraterDiameterKm)
	assert.Zero(t, r.SeismicMagnitude)
	assert.False(t, math.IsNaN(r.FireballRadiusKm))
}
