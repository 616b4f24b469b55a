package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMiles is the mean radius of Earth used for Haversine distance.
const EarthRadiusMiles = 3958.8

// Coordinate is a WGS 84 point in degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// NewCoordinate validates latitude/longitude ranges. Out-of-range values are
// rejected, never clamped.
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if !ValidateCoordinates(lat, lng) {
		return Coordinate{}, fmt.Errorf("coordinates out of range: lat=%v lng=%v", lat, lng)
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
// NaN fails both comparisons and is reported invalid.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Distance returns the great-circle distance in miles between a and b.
func Distance(a, b Coordinate) float64 {
	lat1r := toRadians(a.Lat)
	lat2r := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// RoundMiles rounds d to one decimal place without letting the result exceed
// limit. A distance that passed the exact radius check must still read as
// inside the radius after rounding.
func RoundMiles(d, limit float64) float64 {
	r := math.Round(d*10) / 10
	if r > limit {
		r = math.Floor(d*10) / 10
	}
	return r
}

// Destination returns the point reached by travelling miles along the initial
// bearing (degrees clockwise from north) from c. Longitude is normalized to
// [-180, 180].
func Destination(c Coordinate, bearingDeg, miles float64) Coordinate {
	d := miles / EarthRadiusMiles
	br := toRadians(bearingDeg)
	lat1 := toRadians(c.Lat)
	lng1 := toRadians(c.Lng)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(br))
	lng2 := lng1 + math.Atan2(
		math.Sin(br)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)
	lng := toDegrees(lng2)
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return Coordinate{Lat: toDegrees(lat2), Lng: lng}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
