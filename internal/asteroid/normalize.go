package asteroid

import (
	"math"
	"strconv"
)

// Normalize maps a raw catalog record of any upstream shape to one canonical
// Asteroid. It is deterministic and side-effect free: identical input yields
// identical output. Missing or malformed optional fields degrade to the
// documented defaults; the only failure is a record without an id.
func Normalize(raw RawRecord) (Asteroid, error) {
	if raw.ID == "" {
		return Asteroid{}, ErrMissingID
	}

	a := Asteroid{
		ID:               raw.ID,
		Name:             resolveName(raw),
		DiameterMeters:   deriveDiameterMeters(raw.EstimatedDiameter),
		VelocityKmPerSec: DefaultVelocityKmPerSec,
		MissDistanceKm:   DefaultMissDistanceKm,
		Raw:              raw,
	}

	if raw.AbsoluteMagnitude != nil {
		a.Magnitude = *raw.AbsoluteMagnitude
	}
	if raw.IsHazardous != nil {
		a.IsHazardous = *raw.IsHazardous
	}
	if raw.IsSentryObject != nil {
		a.IsSentryObject = *raw.IsSentryObject
	}

	// Only the first approach event is consulted; upstream orders events
	// chronologically and the first is the nearest. Selecting the event
	// closest to a simulation date is a caller concern.
	if len(raw.CloseApproaches) > 0 {
		first := raw.CloseApproaches[0]
		a.ApproachDate = first.CloseApproachDate

		if v, ok := parseDecimal(first.RelativeVelocity.KmPerSec); ok {
			a.VelocityKmPerSec = v
		}
		if d, ok := parseDecimal(first.MissDistance.Kilometers); ok {
			a.MissDistanceKm = d
		}
	}

	return a, nil
}

// resolveName picks the display name: name, then name_limited, then a
// synthesized placeholder.
func resolveName(raw RawRecord) string {
	if raw.Name != "" {
		return raw.Name
	}
	if raw.NameLimited != "" {
		return raw.NameLimited
	}
	return "Asteroid " + raw.ID
}

// deriveDiameterMeters produces the single-point diameter estimate.
// The meters range wins over kilometers when both are present; a missing
// bound counts as zero before averaging, so a single-sided estimate yields
// a deliberately biased-low value rather than a silent failure.
func deriveDiameterMeters(est *DiameterEstimate) float64 {
	if est == nil {
		return DefaultDiameterMeters
	}
	if est.Meters != nil {
		return averageRange(est.Meters)
	}
	if est.Kilometers != nil {
		return averageRange(est.Kilometers) * 1000
	}
	return DefaultDiameterMeters
}

func averageRange(r *DiameterRange) float64 {
	var min, max float64
	if r.Min != nil {
		min = *r.Min
	}
	if r.Max != nil {
		max = *r.Max
	}
	return (min + max) / 2
}

// parseDecimal parses the catalog's string-encoded decimals. Any failure
// (empty string, junk, NaN/Inf) reports not-ok so the caller keeps the
// default instead of propagating a bad number.
func parseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NormalizeAll normalizes a batch, preserving input order. Records without
// an id are skipped rather than failing the batch; the count of skipped
// records is returned alongside.
func NormalizeAll(raws []RawRecord) ([]Asteroid, int) {
	out := make([]Asteroid, 0, len(raws))
	skipped := 0

	for _, raw := range raws {
		a, err := Normalize(raw)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, a)
	}

	return out, skipped
}
