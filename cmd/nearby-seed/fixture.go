package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/nearby/internal/domain/entity"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/repository/candidate"
)

var errNotArray = errors.New("fixture must be a JSON array of objects")

// fixtureStats summarizes a parsed fixture.
type fixtureStats struct {
	Records     int
	GeneratedID int
	NoLocation  int
}

// parseFixture splits a JSON array into records. Elements without an id get a
// random UUID key; elements without a usable location are kept but counted,
// since the search pipeline skips them anyway.
func parseFixture(t marker.Type, data []byte) ([]candidate.Record, fixtureStats, error) {
	var stats fixtureStats
	if !gjson.ValidBytes(data) {
		return nil, stats, errNotArray
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, stats, errNotArray
	}

	var recs []candidate.Record
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			err = fmt.Errorf("element %d: %w", key.Int(), errNotArray)
			return false
		}
		doc := []byte(value.Raw)
		raw := entity.NewRaw(t, "", doc)

		id := raw.ID()
		if id == "" {
			id = uuid.NewString()
			stats.GeneratedID++
		}
		if _, ok := raw.Location(); !ok {
			stats.NoLocation++
		}
		recs = append(recs, candidate.Record{ID: id, Doc: doc})
		return true
	})
	if err != nil {
		return nil, fixtureStats{}, err
	}
	stats.Records = len(recs)
	return recs, stats, nil
}

var (
	sampleCategories = []string{"music", "tutoring", "fitness", "home", "tech", "pets"}
	sampleSkills     = []string{"piano", "guitar", "math", "yoga", "plumbing", "golang", "dog walking", "spanish"}
	sampleUrgencies  = []marker.Urgency{marker.Urgent, marker.High, marker.Normal, marker.Normal, marker.Low}
)

// generate produces n synthetic records scattered uniformly over a disc of
// radiusMiles around center.
func generate(t marker.Type, n int, center geo.Coordinate, radiusMiles float64, rng *rand.Rand) []candidate.Record {
	recs := make([]candidate.Record, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.NewString()
		pos := randomPoint(center, radiusMiles, rng)
		cat := sampleCategories[rng.IntN(len(sampleCategories))]

		var doc string
		switch t {
		case marker.Guru:
			doc = fmt.Sprintf(
				`{"id":%q,"name":"Guru %d","bio":"Sample guru","category":%q,"rating":%.1f,`+
					`"hourlyRate":%d,"skills":[%q,%q],"location":{"lat":%.6f,"lng":%.6f}}`,
				id, i+1, cat, 3+rng.Float64()*2, 10+rng.IntN(140),
				sampleSkills[rng.IntN(len(sampleSkills))], sampleSkills[rng.IntN(len(sampleSkills))],
				pos.Lat, pos.Lng)
		default:
			doc = fmt.Sprintf(
				`{"id":%q,"title":"Gig %d","description":"Sample gig","category":%q,"urgency":%q,`+
					`"budget":%d,"postedAt":%q,"location":{"lat":%.6f,"lng":%.6f}}`,
				id, i+1, cat, sampleUrgencies[rng.IntN(len(sampleUrgencies))], 20+rng.IntN(480),
				time.Now().Add(-time.Duration(rng.IntN(72))*time.Hour).UTC().Format(time.RFC3339),
				pos.Lat, pos.Lng)
		}
		recs = append(recs, candidate.Record{ID: id, Doc: []byte(doc)})
	}
	return recs
}

// randomPoint picks a point at a uniform random bearing and sqrt-scaled
// distance, so density is even over the disc.
func randomPoint(center geo.Coordinate, radiusMiles float64, rng *rand.Rand) geo.Coordinate {
	return geo.Destination(center, rng.Float64()*360, radiusMiles*math.Sqrt(rng.Float64()))
}

func parseEntityType(s string) (marker.Type, error) {
	return marker.ParseType(strings.ToLower(strings.TrimSpace(s)))
}
