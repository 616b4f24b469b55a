package nearby

import (
	"context"
	"time"
)

// EntityType names a searchable entity kind.
type EntityType string

// Entity types.
const (
	Guru EntityType = "guru"
	Gig  EntityType = "gig"
)

// Query describes a proximity search. Zero RadiusMiles and Limit take the
// client defaults; an empty Types searches both gurus and gigs.
type Query struct {
	Lat         float64
	Lng         float64
	RadiusMiles float64
	Types       []EntityType

	Category      string
	Skills        []string
	MinRating     *float64
	MaxHourlyRate *float64
	MaxBudget     *float64
	Urgency       string

	Page  int
	Limit int
}

// Marker is a single ranked search hit.
type Marker struct {
	ID            string
	Type          EntityType
	Lat           float64
	Lng           float64
	Title         string
	Description   string
	Category      string
	ImageURL      string
	DistanceMiles float64
	Href          string

	Rating     *float64
	HourlyRate *float64
	Skills     []string

	Urgency  string
	Budget   *float64
	PostedAt *time.Time
}

// Result is one page of ranked markers.
type Result struct {
	Markers    []Marker
	Total      int
	Page       int
	Limit      int
	TotalPages int
	TotalGurus int
	TotalGigs  int
}

// Record is a raw JSON document as stored. Key identifies the record when
// the document carries no id of its own.
type Record struct {
	ID  string
	Key string
	Doc []byte
}

// Bounds is the region a search covers. Sources may use it to prefilter;
// the engine re-checks every record regardless.
type Bounds struct {
	CenterLat   float64
	CenterLng   float64
	RadiusMiles float64
	MinLat      float64
	MaxLat      float64
	MinLng      float64
	MaxLng      float64
}

// Source supplies all candidate records of one entity type.
type Source interface {
	FetchAll(ctx context.Context, b Bounds) ([]Record, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, b Bounds) ([]Record, error)

// FetchAll calls f.
func (f SourceFunc) FetchAll(ctx context.Context, b Bounds) ([]Record, error) {
	return f(ctx, b)
}
