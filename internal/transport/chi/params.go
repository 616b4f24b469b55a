package chi

import (
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/filter"
	"github.com/kailas-cloud/nearby/internal/domain/search/query"
)

// commonParams are accepted by every search endpoint.
type commonParams struct {
	Lat      *float64
	Lng      *float64
	Radius   *float64
	Limit    *int
	Page     *int
	Category *string
}

// guruParams are the guru-only filters of GET /search/guru.
type guruParams struct {
	Skills        *[]string
	MinRating     *float64
	MaxHourlyRate *float64
}

// gigParams are the gig-only filters of GET /search/gig.
type gigParams struct {
	Urgency   *string
	MaxBudget *float64
}

// bindOptional binds one optional form-style query parameter.
// Non-exploded arrays read a comma-separated list.
func bindOptional(q url.Values, name string, explode bool, dest any, reason string) error {
	if err := runtime.BindQueryParameter("form", explode, false, name, q, dest); err != nil {
		return domain.NewValidationError(name, reason)
	}
	return nil
}

func bindCommon(q url.Values) (commonParams, error) {
	var p commonParams
	binds := []struct {
		name   string
		dest   any
		reason string
	}{
		{"lat", &p.Lat, "must be a number"},
		{"lng", &p.Lng, "must be a number"},
		{"radius", &p.Radius, "must be a number"},
		{"limit", &p.Limit, "must be an integer"},
		{"page", &p.Page, "must be an integer"},
		{"category", &p.Category, "must be a string"},
	}
	for _, b := range binds {
		if err := bindOptional(q, b.name, true, b.dest, b.reason); err != nil {
			return commonParams{}, err
		}
	}
	return p, nil
}

func bindGuru(q url.Values) (guruParams, error) {
	var p guruParams
	if err := bindOptional(q, "skills", false, &p.Skills, "must be a comma-separated list"); err != nil {
		return guruParams{}, err
	}
	if err := bindOptional(q, "minRating", true, &p.MinRating, "must be a number"); err != nil {
		return guruParams{}, err
	}
	if err := bindOptional(q, "maxHourlyRate", true, &p.MaxHourlyRate, "must be a number"); err != nil {
		return guruParams{}, err
	}
	return p, nil
}

func bindGig(q url.Values) (gigParams, error) {
	var p gigParams
	if err := bindOptional(q, "urgency", true, &p.Urgency, "must be a string"); err != nil {
		return gigParams{}, err
	}
	if err := bindOptional(q, "maxBudget", true, &p.MaxBudget, "must be a number"); err != nil {
		return gigParams{}, err
	}
	return p, nil
}

// bindTypes reads the entity types of GET /search/all. Absent or "all"
// selects every type.
func bindTypes(q url.Values) ([]marker.Type, error) {
	var raw *[]string
	if err := bindOptional(q, "type", false, &raw, "must be guru, gig or all"); err != nil {
		return nil, err
	}
	if raw == nil {
		return marker.AllTypes, nil
	}

	var types []marker.Type
	for _, s := range *raw {
		s = strings.ToLower(strings.TrimSpace(s))
		switch s {
		case "":
			continue
		case "all":
			return marker.AllTypes, nil
		}
		t, err := marker.ParseType(s)
		if err != nil {
			return nil, domain.NewValidationError("type", "must be guru, gig or all")
		}
		types = append(types, t)
	}
	if len(types) == 0 {
		return marker.AllTypes, nil
	}
	return types, nil
}

func (p commonParams) queryParams(types []marker.Type, f filter.Composite) query.Params {
	return query.Params{
		Lat:         p.Lat,
		Lng:         p.Lng,
		RadiusMiles: p.Radius,
		Types:       types,
		Filter:      f,
		Page:        p.Page,
		PageSize:    p.Limit,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
