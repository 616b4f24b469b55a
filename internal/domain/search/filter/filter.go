package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/nearby/internal/domain"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
)

// MaxSkillKeywords is the maximum number of skill keywords per query.
const MaxSkillKeywords = 32

// Composite is a set of optional predicates over marker fields, ANDed.
// The zero value matches every marker.
type Composite struct {
	category      string
	skillKeywords []string
	minRating     *float64
	maxHourlyRate *float64
	maxBudget     *float64
	urgency       marker.Urgency
}

// Options carries raw predicate values; nil or empty means "not set".
type Options struct {
	Category      string
	SkillKeywords []string
	MinRating     *float64
	MaxHourlyRate *float64
	MaxBudget     *float64
	Urgency       string
}

// New validates and creates a Composite filter.
func New(o Options) (Composite, error) {
	var keywords []string
	seen := make(map[string]struct{}, len(o.SkillKeywords))
	for _, k := range o.SkillKeywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
	}
	if len(keywords) > MaxSkillKeywords {
		return Composite{}, domain.NewValidationError("skills", fmt.Sprintf("at most %d keywords", MaxSkillKeywords))
	}
	if o.MinRating != nil && *o.MinRating < 0 {
		return Composite{}, domain.NewValidationError("minRating", "must not be negative")
	}
	if o.MaxHourlyRate != nil && *o.MaxHourlyRate < 0 {
		return Composite{}, domain.NewValidationError("maxHourlyRate", "must not be negative")
	}
	if o.MaxBudget != nil && *o.MaxBudget < 0 {
		return Composite{}, domain.NewValidationError("maxBudget", "must not be negative")
	}

	return Composite{
		category:      strings.TrimSpace(o.Category),
		skillKeywords: keywords,
		minRating:     o.MinRating,
		maxHourlyRate: o.MaxHourlyRate,
		maxBudget:     o.MaxBudget,
		urgency:       marker.ParseUrgency(o.Urgency),
	}, nil
}

// Category returns the required category, or "".
func (c Composite) Category() string { return c.category }

// SkillKeywords returns the lower-cased skill keywords.
func (c Composite) SkillKeywords() []string { return c.skillKeywords }

// MinRating returns the rating floor, or nil.
func (c Composite) MinRating() *float64 { return c.minRating }

// MaxHourlyRate returns the hourly rate ceiling, or nil.
func (c Composite) MaxHourlyRate() *float64 { return c.maxHourlyRate }

// MaxBudget returns the gig budget ceiling, or nil.
func (c Composite) MaxBudget() *float64 { return c.maxBudget }

// Urgency returns the required urgency, or "".
func (c Composite) Urgency() marker.Urgency { return c.urgency }

// IsEmpty reports whether no predicate is set.
func (c Composite) IsEmpty() bool {
	return c.category == "" && len(c.skillKeywords) == 0 &&
		c.minRating == nil && c.maxHourlyRate == nil && c.maxBudget == nil &&
		c.urgency == ""
}

// Match reports whether m satisfies every set predicate.
//
// A rating floor rejects markers without a rating. Price ceilings only reject
// markers that carry a price above the ceiling.
func (c Composite) Match(m *marker.Marker) bool {
	if c.category != "" && !strings.EqualFold(m.Category, c.category) {
		return false
	}
	if c.urgency != "" && m.Urgency != c.urgency {
		return false
	}
	if c.minRating != nil && (m.Rating == nil || *m.Rating < *c.minRating) {
		return false
	}
	if c.maxHourlyRate != nil && m.HourlyRate != nil && *m.HourlyRate > *c.maxHourlyRate {
		return false
	}
	if c.maxBudget != nil && m.Budget != nil && *m.Budget > *c.maxBudget {
		return false
	}
	if len(c.skillKeywords) > 0 && !matchesAnySkill(m.Skills, c.skillKeywords) {
		return false
	}
	return true
}

// matchesAnySkill reports whether any keyword is contained, case-insensitively,
// in any of the skills.
func matchesAnySkill(skills, keywords []string) bool {
	for _, s := range skills {
		s = strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
	}
	return false
}
