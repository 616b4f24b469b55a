package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/query"
	searchuc "github.com/kailas-cloud/nearby/internal/usecase/search"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the error part of a failed response.
type ErrorBody struct {
	Message string `json:"message"`
}

// SearchResponse is the data of a successful search.
type SearchResponse struct {
	Markers    []MarkerDTO `json:"markers"`
	Pagination Pagination  `json:"pagination"`
	Center     Center      `json:"center"`
	Radius     float64     `json:"radius"`
	Stats      *Stats      `json:"stats,omitempty"`
}

// MarkerDTO is the wire form of a marker.
type MarkerDTO struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	DistanceMiles float64    `json:"distanceMiles"`
	Href          string     `json:"href"`
	Rating        *float64   `json:"rating,omitempty"`
	HourlyRate    *float64   `json:"hourlyRate,omitempty"`
	Skills        []string   `json:"skills,omitempty"`
	Urgency       string     `json:"urgency,omitempty"`
	Budget        *float64   `json:"budget,omitempty"`
	PostedAt      *time.Time `json:"postedAt,omitempty"`
}

// Pagination describes the returned page.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Center echoes the query point.
type Center struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stats are per-type match counts before pagination.
type Stats struct {
	TotalGurus int `json:"totalGurus"`
	TotalGigs  int `json:"totalGigs"`
}

// HealthResponse is the data of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Error: &ErrorBody{Message: message}})
}

// WriteError writes an error envelope. Used by middleware outside this package.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

func searchResultToDTO(q *query.Query, res searchuc.Result, withStats bool) SearchResponse {
	markers := make([]MarkerDTO, len(res.Page.Items))
	for i := range res.Page.Items {
		markers[i] = markerToDTO(&res.Page.Items[i])
	}

	c := q.Center()
	resp := SearchResponse{
		Markers: markers,
		Pagination: Pagination{
			Total:      res.Page.Total,
			Page:       res.Page.Page,
			Limit:      res.Page.PageSize,
			TotalPages: res.Page.TotalPages,
		},
		Center: Center{Lat: c.Lat, Lng: c.Lng},
		Radius: q.RadiusMiles(),
	}
	if withStats {
		resp.Stats = &Stats{
			TotalGurus: res.Totals[marker.Guru],
			TotalGigs:  res.Totals[marker.Gig],
		}
	}
	return resp
}

func markerToDTO(m *marker.Marker) MarkerDTO {
	dto := MarkerDTO{
		ID:            m.ID,
		Type:          string(m.Type),
		Lat:           m.Position.Lat,
		Lng:           m.Position.Lng,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		ImageURL:      m.ImageURL,
		DistanceMiles: m.DistanceMiles,
		Href:          m.Href,
	}
	switch m.Type {
	case marker.Guru:
		dto.Rating = m.Rating
		dto.HourlyRate = m.HourlyRate
		dto.Skills = m.Skills
	case marker.Gig:
		dto.Urgency = string(m.Urgency)
		dto.Budget = m.Budget
		dto.PostedAt = m.PostedAt
	}
	return dto
}
