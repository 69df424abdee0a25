// Package asteroid provides the canonical near-Earth-object model and the
// normalizer that reconciles the heterogeneous record shapes returned by the
// NeoWs catalog (today, feed, lookup, browse and local snapshot variants)
// into simulation-ready records.
package asteroid

import (
	"encoding/json"
	"errors"
	"time"
)

// Asteroid errors.
var (
	// ErrMissingID is returned when a raw record carries no identifier.
	// The identifier is the only required field; everything else defaults.
	ErrMissingID = errors.New("asteroid record has no id")

	// ErrNotFound is returned when the catalog has no record for an id.
	ErrNotFound = errors.New("asteroid not found")

	// ErrCatalogUnavailable is returned when no catalog data can be
	// served, fresh or stale.
	ErrCatalogUnavailable = errors.New("asteroid catalog unavailable")
)

// Normalization defaults. Upstream records routinely omit physical fields;
// these stand in so downstream physics always has finite inputs.
const (
	// DefaultDiameterMeters is assumed when no diameter estimate exists.
	DefaultDiameterMeters = 100.0

	// DefaultVelocityKmPerSec is assumed when no approach event carries a
	// parseable relative velocity.
	DefaultVelocityKmPerSec = 20.0

	// DefaultMissDistanceKm is assumed when no approach event carries a
	// parseable miss distance.
	DefaultMissDistanceKm = 100000.0
)

// RawRecord is the union of upstream NeoWs record shapes. Every field except
// ID is optional; pointer and slice fields distinguish absent from zero.
// OrbitalData is retained opaquely and never interpreted.
type RawRecord struct {
	ID                string            `json:"id"`
	NeoReferenceID    string            `json:"neo_reference_id,omitempty"`
	Name              string            `json:"name,omitempty"`
	NameLimited       string            `json:"name_limited,omitempty"`
	Designation       string            `json:"designation,omitempty"`
	NasaJplURL        string            `json:"nasa_jpl_url,omitempty"`
	AbsoluteMagnitude *float64          `json:"absolute_magnitude_h,omitempty"`
	EstimatedDiameter *DiameterEstimate `json:"estimated_diameter,omitempty"`
	IsHazardous       *bool             `json:"is_potentially_hazardous_asteroid,omitempty"`
	IsSentryObject    *bool             `json:"is_sentry_object,omitempty"`
	CloseApproaches   []ApproachEvent   `json:"close_approach_data,omitempty"`
	OrbitalData       json.RawMessage   `json:"orbital_data,omitempty"`
}

// DiameterEstimate holds per-unit diameter ranges. Sources report one unit,
// both, or neither.
type DiameterEstimate struct {
	Kilometers *DiameterRange `json:"kilometers,omitempty"`
	Meters     *DiameterRange `json:"meters,omitempty"`
}

// DiameterRange is a min/max estimate in a single unit. A missing bound is
// distinct from a zero bound.
type DiameterRange struct {
	Min *float64 `json:"estimated_diameter_min,omitempty"`
	Max *float64 `json:"estimated_diameter_max,omitempty"`
}

// ApproachEvent is one recorded close approach. Velocity and distance are
// string-encoded decimals on the wire, exactly as the catalog sends them;
// they are parsed only by the normalizer.
type ApproachEvent struct {
	CloseApproachDate     string           `json:"close_approach_date,omitempty"`
	CloseApproachDateFull string           `json:"close_approach_date_full,omitempty"`
	EpochDateCloseApproach int64           `json:"epoch_date_close_approach,omitempty"`
	RelativeVelocity      RelativeVelocity `json:"relative_velocity"`
	MissDistance          MissDistance     `json:"miss_distance"`
	OrbitingBody          string           `json:"orbiting_body,omitempty"`
}

// RelativeVelocity carries string-encoded speeds.
type RelativeVelocity struct {
	KmPerSec  string `json:"kilometers_per_second,omitempty"`
	KmPerHour string `json:"kilometers_per_hour,omitempty"`
	MilesPerHour string `json:"miles_per_hour,omitempty"`
}

// MissDistance carries string-encoded distances.
type MissDistance struct {
	Astronomical string `json:"astronomical,omitempty"`
	Lunar        string `json:"lunar,omitempty"`
	Kilometers   string `json:"kilometers,omitempty"`
	Miles        string `json:"miles,omitempty"`
}

// Asteroid is the normalized, simulation-ready record. All numeric fields
// are finite with defined units. Constructed once per raw record and
// immutable thereafter; identity is ID equality.
type Asteroid struct {
	// ID is copied verbatim from the raw record.
	ID string `json:"id"`

	// Name resolves name, then name_limited, then "Asteroid {id}".
	Name string `json:"name"`

	// DiameterMeters is the best single-point estimate, unrounded.
	// Rounding to whole meters happens at the render boundary.
	DiameterMeters float64 `json:"diameterMeters"`

	// VelocityKmPerSec is taken from the first approach event.
	VelocityKmPerSec float64 `json:"velocityKmPerSec"`

	// MissDistanceKm is taken from the first approach event.
	MissDistanceKm float64 `json:"missDistanceKm"`

	IsHazardous    bool `json:"isHazardous"`
	IsSentryObject bool `json:"isSentryObject"`

	// ApproachDate is passed through from the first approach event and is
	// empty when no event exists; it is never defaulted.
	ApproachDate string `json:"approachDate,omitempty"`

	// Magnitude is the absolute magnitude H, 0 when unreported.
	Magnitude float64 `json:"magnitude"`

	// Raw retains the source record for consumers needing fields not
	// modeled above.
	Raw RawRecord `json:"-"`
}

// FeedWindow identifies a date range of the catalog feed.
type FeedWindow struct {
	Start time.Time
	End   time.Time
}
