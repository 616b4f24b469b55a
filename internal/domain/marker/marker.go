// Package marker defines the normalized, rankable search result unit.
package marker

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
)

// Type is the entity kind a marker was built from.
type Type string

// Entity type constants.
const (
	// Guru is a person offering skills.
	Guru Type = "guru"
	// Gig is a posted job.
	Gig Type = "gig"
)

// AllTypes lists every entity type in merge order.
var AllTypes = []Type{Guru, Gig}

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == Guru || t == Gig
}

// ParseType parses a lower-case entity type name.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownEntityType, s)
	}
	return t, nil
}

// Urgency is the posting priority of a gig.
type Urgency string

// Urgency levels, most urgent first.
const (
	Urgent Urgency = "urgent"
	High   Urgency = "high"
	Normal Urgency = "normal"
	Low    Urgency = "low"
)

var urgencyRank = map[Urgency]int{
	Urgent: 0,
	High:   1,
	Normal: 2,
	Low:    3,
}

// ParseUrgency normalizes case and surrounding space. Unknown values are kept
// as-is and rank as Normal.
func ParseUrgency(s string) Urgency {
	return Urgency(strings.ToLower(strings.TrimSpace(s)))
}

// Rank returns the sort rank of the urgency; lower sorts first.
// Empty and unknown values rank as Normal.
func (u Urgency) Rank() int {
	if r, ok := urgencyRank[u]; ok {
		return r
	}
	return urgencyRank[Normal]
}

// Marker is a located entity normalized for ranking and display.
// Optional numeric fields are nil when the source record has no value.
type Marker struct {
	ID            string
	Type          Type
	Position      geo.Coordinate
	Title         string
	Description   string
	Category      string
	ImageURL      string
	DistanceMiles float64
	Href          string

	// Guru fields.
	Rating     *float64
	HourlyRate *float64
	Skills     []string

	// Gig fields.
	Urgency  Urgency
	Budget   *float64
	PostedAt *time.Time
}

// Priority returns the domain priority used before distance when gigs are
// ranked. Gurus carry no urgency and rank alongside normal gigs.
func (m *Marker) Priority() int {
	if m.Type == Gig {
		return m.Urgency.Rank()
	}
	return Normal.Rank()
}
