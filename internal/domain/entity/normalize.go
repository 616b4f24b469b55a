package entity

import (
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
)

// Normalize builds a marker from a located record using the normalizer for its type.
func Normalize(r Raw, pos geo.Coordinate, distanceMiles float64) marker.Marker {
	if r.Type == marker.Gig {
		return NormalizeGig(r, pos, distanceMiles)
	}
	return NormalizeGuru(r, pos, distanceMiles)
}

// NormalizeGuru maps a guru profile to a marker.
func NormalizeGuru(r Raw, pos geo.Coordinate, distanceMiles float64) marker.Marker {
	id := r.ID()
	return marker.Marker{
		ID:            id,
		Type:          marker.Guru,
		Position:      pos,
		Title:         r.str("name", "displayName", "title"),
		Description:   r.str("bio", "description"),
		Category:      r.str("category"),
		ImageURL:      r.str("avatar", "profileImage", "imageUrl"),
		DistanceMiles: distanceMiles,
		Href:          "/gurus/" + id,
		Rating:        r.optNumber("rating"),
		HourlyRate:    r.optNumber("hourlyRate"),
		Skills:        r.strList("skills"),
	}
}

// NormalizeGig maps a posted job to a marker.
func NormalizeGig(r Raw, pos geo.Coordinate, distanceMiles float64) marker.Marker {
	id := r.ID()
	urgency := marker.ParseUrgency(r.str("urgency"))
	if urgency == "" {
		urgency = marker.Normal
	}
	return marker.Marker{
		ID:            id,
		Type:          marker.Gig,
		Position:      pos,
		Title:         r.str("title"),
		Description:   r.str("description"),
		Category:      r.str("category"),
		ImageURL:      r.str("imageUrl", "images.0"),
		DistanceMiles: distanceMiles,
		Href:          "/gigs/" + id,
		Urgency:       urgency,
		Budget:        r.optNumber("budget"),
		PostedAt:      r.optTime("postedAt", "createdAt"),
	}
}
