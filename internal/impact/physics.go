// Package impact derives physical effect sizes for an asteroid strike.
// The formulas are first-order scaling laws in the style of the Earth
// Impact Effects Program: good enough to size craters, fireballs, blast
// rings and felt-earthquake zones for map rendering, not for hazard
// assessment. All functions are pure and safe for concurrent use.
package impact

import "math"

const (
	// DefaultDensityKgM3 is the bulk density assumed for stony asteroids.
	DefaultDensityKgM3 = 3000.0

	// DefaultAngleDegrees is the impact angle assumed when unspecified;
	// 45 degrees is the most probable angle for a random encounter.
	DefaultAngleDegrees = 45.0

	// joulesPerMegaton converts impact energy to megatons of TNT.
	joulesPerMegaton = 4.184e15

	// targetDensityKgM3 is the density of the target crust used by the
	// crater scaling law.
	targetDensityKgM3 = 2500.0

	gravity = 9.81 // m/s^2

	// Cube-root yield coefficients (km per Mt^(1/3)) for the blast rings.
	// Calibrated against 1 Mt surface-burst overpressure radii.
	severeBlastCoeff = 2.2  // ~20 psi, heavy structural damage
	windBlastCoeff   = 11.0 // ~1 psi, window breakage and wind injuries

	// earthquakeCoeff sizes the strongly-felt seismic zone.
	earthquakeCoeff = 15.0

	// tsunamiCoeff sizes the damaging-wave reach for ocean impacts.
	tsunamiCoeff = 45.0
)

// Params describe an impact event. Zero-valued optional fields take the
// package defaults.
type Params struct {
	// DiameterMeters is the impactor diameter.
	DiameterMeters float64

	// VelocityKmPerSec is the entry velocity.
	VelocityKmPerSec float64

	// DensityKgM3 is the impactor bulk density; 0 means DefaultDensityKgM3.
	DensityKgM3 float64

	// AngleDegrees is the impact angle from horizontal; 0 means
	// DefaultAngleDegrees.
	AngleDegrees float64

	// OceanImpact selects tsunami generation.
	OceanImpact bool
}

// Result holds the derived effect sizes. Radii are in kilometers from the
// impact point.
type Result struct {
	MassKg         float64 `json:"massKg"`
	EnergyJoules   float64 `json:"energyJoules"`
	EnergyMegatons float64 `json:"energyMegatons"`

	CraterDiameterKm float64 `json:"craterDiameterKm"`
	CraterDepthKm    float64 `json:"craterDepthKm"`

	FireballRadiusKm    float64 `json:"fireballRadiusKm"`
	SevereBlastRadiusKm float64 `json:"severeBlastRadiusKm"`
	WindBlastRadiusKm   float64 `json:"windBlastRadiusKm"`

	SeismicMagnitude   float64 `json:"seismicMagnitude"`
	EarthquakeRadiusKm float64 `json:"earthquakeRadiusKm"`

	// TsunamiRadiusKm is 0 for land impacts.
	TsunamiRadiusKm float64 `json:"tsunamiRadiusKm"`
}

// Compute derives all effect sizes for the given parameters.
func Compute(p Params) Result {
	density := p.DensityKgM3
	if density <= 0 {
		density = DefaultDensityKgM3
	}
	angle := p.AngleDegrees
	if angle <= 0 {
		angle = DefaultAngleDegrees
	}

	radiusM := p.DiameterMeters / 2
	mass := density * (4.0 / 3.0) * math.Pi * math.Pow(radiusM, 3)

	velocityMS := p.VelocityKmPerSec * 1000
	energy := 0.5 * mass * velocityMS * velocityMS
	megatons := energy / joulesPerMegaton

	r := Result{
		MassKg:         mass,
		EnergyJoules:   energy,
		EnergyMegatons: megatons,
	}

	r.CraterDiameterKm = craterDiameterKm(p.DiameterMeters, velocityMS, density, angle)
	// Depth-to-diameter ratio for simple bowl craters.
	r.CraterDepthKm = r.CraterDiameterKm / 5

	// Fireball radius, Collins et al. R* = 0.002 E^(1/3) (E in joules).
	r.FireballRadiusKm = 0.002 * math.Cbrt(energy) / 1000

	cbrtMt := math.Cbrt(megatons)
	r.SevereBlastRadiusKm = severeBlastCoeff * cbrtMt
	r.WindBlastRadiusKm = windBlastCoeff * cbrtMt

	r.SeismicMagnitude = seismicMagnitude(energy)
	r.EarthquakeRadiusKm = earthquakeCoeff * cbrtMt

	if p.OceanImpact {
		r.TsunamiRadiusKm = tsunamiCoeff * cbrtMt
	}

	return r
}

// craterDiameterKm applies pi-group crater scaling for the final crater
// diameter, assuming a crystalline rock target.
func craterDiameterKm(diameterM, velocityMS, density, angleDeg float64) float64 {
	if diameterM <= 0 || velocityMS <= 0 {
		return 0
	}

	angleRad := angleDeg * math.Pi / 180

	transientM := 1.161 *
		math.Cbrt(density/targetDensityKgM3) *
		math.Pow(diameterM, 0.78) *
		math.Pow(velocityMS, 0.44) *
		math.Pow(gravity, -0.22) *
		math.Cbrt(math.Sin(angleRad))

	// Collapse widens the transient cavity by about 25%.
	return 1.25 * transientM / 1000
}

// seismicMagnitude converts impact energy to an equivalent moment
// magnitude, Collins et al. M = 0.67 log10(E) - 5.87.
func seismicMagnitude(energyJoules float64) float64 {
	if energyJoules <= 0 {
		return 0
	}
	m := 0.67*math.Log10(energyJoules) - 5.87
	if m < 0 {
		return 0
	}
	return m
}
