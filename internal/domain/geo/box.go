package geo

import "math"

// MilesPerDegreeLat is the approximate length of one degree of latitude.
const MilesPerDegreeLat = 69.0

// minCosLat keeps the longitude divisor away from zero near the poles.
const minCosLat = 1e-9

// Box is a lat/lng rectangle that contains a search circle.
// When MinLng > MaxLng the box wraps across the antimeridian.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBox returns a rectangle that fully contains the circle of radiusMiles
// around center. The box may admit points outside the circle but never
// excludes a point inside it.
func NewBox(center Coordinate, radiusMiles float64) Box {
	latDelta := radiusMiles / MilesPerDegreeLat

	b := Box{
		MinLat: center.Lat - latDelta,
		MaxLat: center.Lat + latDelta,
		MinLng: -180,
		MaxLng: 180,
	}

	// Reaching a pole means every meridian passes through the circle.
	if b.MinLat <= -90 || b.MaxLat >= 90 {
		b.MinLat = math.Max(b.MinLat, -90)
		b.MaxLat = math.Min(b.MaxLat, 90)
		return b
	}

	lngDelta := lngHalfWidth(center.Lat, radiusMiles)
	if lngDelta >= 180 {
		return b
	}

	b.MinLng = center.Lng - lngDelta
	b.MaxLng = center.Lng + lngDelta
	if b.MinLng < -180 {
		b.MinLng += 360
	}
	if b.MaxLng > 180 {
		b.MaxLng -= 360
	}
	return b
}

// lngHalfWidth returns the longitude half-width in degrees: the flat
// 69-miles-per-degree estimate, widened to the exact spherical extent when
// that is larger.
func lngHalfWidth(lat, radiusMiles float64) float64 {
	cosLat := math.Max(math.Cos(toRadians(lat)), minCosLat)
	approx := radiusMiles / (MilesPerDegreeLat * cosLat)

	angular := radiusMiles / EarthRadiusMiles
	ratio := math.Sin(angular) / cosLat
	if angular >= math.Pi/2 || ratio >= 1 {
		return 180
	}
	exact := toDegrees(math.Asin(ratio))

	return math.Max(approx, exact)
}

// Contains reports whether c lies inside the box.
func (b Box) Contains(c Coordinate) bool {
	if c.Lat < b.MinLat || c.Lat > b.MaxLat {
		return false
	}
	if b.MinLng <= b.MaxLng {
		return c.Lng >= b.MinLng && c.Lng <= b.MaxLng
	}
	return c.Lng >= b.MinLng || c.Lng <= b.MaxLng
}

// FullLongitude reports whether the box spans every meridian.
func (b Box) FullLongitude() bool {
	return b.MinLng == -180 && b.MaxLng == 180
}
