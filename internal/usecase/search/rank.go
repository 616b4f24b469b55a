package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/nearby/internal/domain/marker"
)

// merge concatenates per-type markers in request order and sorts them by
// domain priority (when withPriority) and then rounded distance. The sort is
// stable, so ties keep their fetch order.
func merge(perType [][]marker.Marker, withPriority bool) []marker.Marker {
	n := 0
	for _, ms := range perType {
		n += len(ms)
	}
	out := make([]marker.Marker, 0, n)
	for _, ms := range perType {
		out = append(out, ms...)
	}

	slices.SortStableFunc(out, func(a, b marker.Marker) int {
		if withPriority {
			if c := cmp.Compare(a.Priority(), b.Priority()); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
	})
	return out
}
