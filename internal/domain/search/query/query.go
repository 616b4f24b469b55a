package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/filter"
)

// Search parameter defaults.
const (
	DefaultRadiusMiles = 25.0
	DefaultPageSize    = 50
	MaxPageSize        = 100
)

// Limits are the configured defaults applied during query construction.
type Limits struct {
	DefaultRadiusMiles float64
	DefaultPageSize    int
	MaxPageSize        int
}

// DefaultLimits returns the built-in defaults.
func DefaultLimits() Limits {
	return Limits{
		DefaultRadiusMiles: DefaultRadiusMiles,
		DefaultPageSize:    DefaultPageSize,
		MaxPageSize:        MaxPageSize,
	}
}

// Params are unvalidated query inputs. Nil pointers mean "not provided".
type Params struct {
	Lat         *float64
	Lng         *float64
	RadiusMiles *float64
	Types       []marker.Type
	Filter      filter.Composite
	Page        *int
	PageSize    *int
}

// Query is a validated proximity search. It is never mutated after New.
type Query struct {
	center      geo.Coordinate
	radiusMiles float64
	types       []marker.Type
	filter      filter.Composite
	page        int
	pageSize    int
}

// New validates and normalizes search parameters.
// Missing radius and page size take the defaults from l; a page size above
// the maximum is clamped; a page below 1 becomes 1.
func New(p Params, l Limits) (Query, error) {
	if p.Lat == nil {
		return Query{}, domain.NewValidationError("lat", "is required")
	}
	if p.Lng == nil {
		return Query{}, domain.NewValidationError("lng", "is required")
	}
	if *p.Lat < -90 || *p.Lat > 90 || math.IsNaN(*p.Lat) {
		return Query{}, domain.NewValidationError("lat", "must be between -90 and 90")
	}
	if *p.Lng < -180 || *p.Lng > 180 || math.IsNaN(*p.Lng) {
		return Query{}, domain.NewValidationError("lng", "must be between -180 and 180")
	}
	center := geo.Coordinate{Lat: *p.Lat, Lng: *p.Lng}

	radius := l.DefaultRadiusMiles
	if p.RadiusMiles != nil {
		radius = *p.RadiusMiles
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Query{}, domain.NewValidationError("radius", "must be a positive number")
	}

	types, err := normalizeTypes(p.Types)
	if err != nil {
		return Query{}, err
	}

	pageSize := l.DefaultPageSize
	if p.PageSize != nil {
		pageSize = *p.PageSize
	}
	if pageSize <= 0 {
		return Query{}, domain.NewValidationError("limit", "must be a positive integer")
	}
	if l.MaxPageSize > 0 && pageSize > l.MaxPageSize {
		pageSize = l.MaxPageSize
	}

	page := 1
	if p.Page != nil && *p.Page > 1 {
		page = *p.Page
	}

	return Query{
		center:      center,
		radiusMiles: radius,
		types:       types,
		filter:      p.Filter,
		page:        page,
		pageSize:    pageSize,
	}, nil
}

// normalizeTypes dedupes and orders types as in marker.AllTypes.
func normalizeTypes(in []marker.Type) ([]marker.Type, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError("type", "at least one entity type is required")
	}
	want := make(map[marker.Type]bool, len(in))
	for _, t := range in {
		if !t.IsValid() {
			return nil, domain.NewValidationError("type", fmt.Sprintf("unknown entity type %q", t))
		}
		want[t] = true
	}
	out := make([]marker.Type, 0, len(want))
	for _, t := range marker.AllTypes {
		if want[t] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Center returns the search origin.
func (q *Query) Center() geo.Coordinate { return q.center }

// RadiusMiles returns the search radius.
func (q *Query) RadiusMiles() float64 { return q.radiusMiles }

// Types returns the requested entity types in merge order.
func (q *Query) Types() []marker.Type { return q.types }

// Includes reports whether entity type t was requested.
func (q *Query) Includes(t marker.Type) bool {
	for _, qt := range q.types {
		if qt == t {
			return true
		}
	}
	return false
}

// Filter returns the composite predicate filter.
func (q *Query) Filter() filter.Composite { return q.filter }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PageSize returns the number of markers per page.
func (q *Query) PageSize() int { return q.pageSize }

// Scope is a stable label for the requested types, e.g. "guru+gig".
func (q *Query) Scope() string {
	parts := make([]string, len(q.types))
	for i, t := range q.types {
		parts[i] = string(t)
	}
	return strings.Join(parts, "+")
}
