// Package geo provides stateless geodesy and Web-Mercator projection math
// for mapping physical distances onto screen space. It is independent of any
// specific map widget: callers feed it coordinates, zoom levels and container
// sizes and get back pixels and degree deltas.
//
// All functions are pure and safe for concurrent use. Latitudes at the poles
// (|lat| = 90) produce mathematically degenerate results (infinite ground
// resolution); callers are responsible for guarding them.
package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used for great-circle math.
	EarthRadiusKm = 6371.0

	// mercatorResolution is the Web-Mercator ground resolution at the
	// equator for zoom 0, in meters per pixel (EPSG:3857, 256px tiles).
	mercatorResolution = 156543.03392

	// tileSize is the Web-Mercator tile edge in pixels.
	tileSize = 256.0

	// KmPerMile converts statute miles to kilometers.
	KmPerMile = 1.60934

	// MaxZoom is the highest zoom level considered by ZoomForRadius.
	MaxZoom = 20

	// radiusPadding reserves space around a rendered radius when fitting
	// it into a container: the diameter plus 25% margin must fit.
	radiusPadding = 2.5
)

// Point is a geographic coordinate in degrees.
// Lat is in [-90, 90], Lng in [-180, 180]; the engine does not range-check.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Pixel is a screen-space offset. The origin is caller-defined.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is a geographic bounding box in degrees.
// North > South holds by construction for any positive radius.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// HaversineKm returns the great-circle distance between two points in
// kilometers, using the standard haversine formula on a sphere of mean
// Earth radius. Accurate to well under 0.5% for terrestrial distances.
func HaversineKm(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// MetersPerPixel returns the Web-Mercator ground resolution at the given
// latitude and zoom level. The result grows without bound as |lat|
// approaches 90; that singularity is intentional and left to the caller.
func MetersPerPixel(lat, zoom float64) float64 {
	return mercatorResolution * math.Cos(radians(lat)) / math.Pow(2, zoom)
}

// KmToPixels converts a ground distance in kilometers to pixels at the
// given latitude and zoom.
func KmToPixels(km, lat, zoom float64) float64 {
	return km * 1000 / MetersPerPixel(lat, zoom)
}

// MilesToPixels converts a ground distance in statute miles to pixels at
// the given latitude and zoom.
func MilesToPixels(miles, lat, zoom float64) float64 {
	return KmToPixels(miles*KmPerMile, lat, zoom)
}

// LatLngToPixel projects p into world pixel space at the given zoom using
// the forward spherical Mercator transform, and returns its offset from the
// viewport center, where center is the coordinate rendered at the middle of
// a viewport of the given width and height.
func LatLngToPixel(p Point, zoom, viewportWidth, viewportHeight float64, center Point) Pixel {
	px, py := project(p, zoom)
	cx, cy := project(center, zoom)

	return Pixel{
		X: viewportWidth/2 + (px - cx),
		Y: viewportHeight/2 + (py - cy),
	}
}

// project returns world pixel coordinates for a point at the given zoom.
func project(p Point, zoom float64) (x, y float64) {
	worldSize := tileSize * math.Pow(2, zoom)

	x = (p.Lng + 180) / 360 * worldSize

	mercN := math.Log(math.Tan(math.Pi/4 + radians(p.Lat)/2))
	y = worldSize/2 - worldSize*mercN/(2*math.Pi)

	return x, y
}

// ZoomForRadius returns the highest zoom level at which a circle of
// radiusKm centered at the given latitude fits inside containerWidth with
// padding. Zoom levels are searched from MaxZoom down; 0 is returned when
// no level satisfies the constraint, which is a defined saturation
// fallback rather than an error.
func ZoomForRadius(radiusKm, lat, containerWidth float64) float64 {
	for zoom := float64(MaxZoom); zoom >= 0; zoom-- {
		radiusPixels := KmToPixels(radiusKm, lat, zoom)
		if radiusPixels*radiusPadding <= containerWidth {
			return zoom
		}
	}
	return 0
}

// BoundsForRadius returns a bounding box extending radiusKm in each
// cardinal direction from center, using a small-angle approximation.
// The longitudinal delta is widened by 1/cos(lat), so the box degrades as
// the center approaches a pole; this engine targets terrestrial impact
// sites and does not patch that limit.
func BoundsForRadius(center Point, radiusKm float64) Bounds {
	latDelta := (radiusKm / EarthRadiusKm) * (180 / math.Pi)
	lngDelta := latDelta / math.Cos(radians(center.Lat))

	return Bounds{
		North: center.Lat + latDelta,
		South: center.Lat - latDelta,
		East:  center.Lng + lngDelta,
		West:  center.Lng - lngDelta,
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
