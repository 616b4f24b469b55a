package search

import (
	"github.com/kailas-cloud/nearby/internal/domain/entity"
	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
	"github.com/kailas-cloud/nearby/internal/domain/search/query"
)

// FilterStats counts how candidates of one entity type left the pipeline.
type FilterStats struct {
	Scanned       int
	NoLocation    int
	OutsideBox    int
	OutsideRadius int
	Filtered      int
	Matched       int
}

// filterCandidates runs the per-type pipeline, cheapest rejection first:
// location, bounding box, exact distance, then composite predicates on the
// normalized marker. Malformed records count as NoLocation and are skipped.
func filterCandidates(
	t marker.Type, raws []entity.Raw, q *query.Query, box geo.Box,
) ([]marker.Marker, FilterStats) {
	stats := FilterStats{Scanned: len(raws)}
	center := q.Center()
	radius := q.RadiusMiles()
	f := q.Filter()

	var out []marker.Marker
	for _, r := range raws {
		pos, ok := r.Location()
		if !ok {
			stats.NoLocation++
			continue
		}
		if !box.Contains(pos) {
			stats.OutsideBox++
			continue
		}
		d := geo.Distance(center, pos)
		if !(d <= radius) {
			stats.OutsideRadius++
			continue
		}

		r.Type = t
		m := entity.Normalize(r, pos, geo.RoundMiles(d, radius))
		if !f.Match(&m) {
			stats.Filtered++
			continue
		}
		out = append(out, m)
	}
	stats.Matched = len(out)
	return out, stats
}
