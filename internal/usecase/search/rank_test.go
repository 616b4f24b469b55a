package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/nearby/internal/domain/marker"
)

func gigMarker(id string, d float64, u marker.Urgency) marker.Marker {
	return marker.Marker{ID: id, Type: marker.Gig, DistanceMiles: d, Urgency: u}
}

func guruMarker(id string, d float64) marker.Marker {
	return marker.Marker{ID: id, Type: marker.Guru, DistanceMiles: d}
}

func TestMerge_DistanceOnlyWithoutGigs(t *testing.T) {
	got := merge([][]marker.Marker{{
		guruMarker("c", 3), guruMarker("a", 1), guruMarker("b", 2),
	}}, false)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestMerge_PriorityBeforeDistance(t *testing.T) {
	gurus := []marker.Marker{guruMarker("guru-near", 0.1)}
	gigs := []marker.Marker{
		gigMarker("low", 0.1, marker.Low),
		gigMarker("normal-far", 5, marker.Normal),
		gigMarker("urgent-far", 9, marker.Urgent),
		gigMarker("high", 3, marker.High),
	}
	got := merge([][]marker.Marker{gurus, gigs}, true)
	assert.Equal(t, []string{"urgent-far", "high", "guru-near", "normal-far", "low"}, ids(got))
}

func TestMerge_UrgentBeatsNormalAtEqualDistance(t *testing.T) {
	got := merge([][]marker.Marker{{
		gigMarker("normal", 2, marker.Normal),
		gigMarker("urgent", 2, marker.Urgent),
	}}, true)
	assert.Equal(t, []string{"urgent", "normal"}, ids(got))
}

func TestMerge_UnknownUrgencyRanksNormal(t *testing.T) {
	got := merge([][]marker.Marker{{
		gigMarker("weird", 1, marker.Urgency("whenever")),
		gigMarker("low", 0.5, marker.Low),
		gigMarker("normal", 1, marker.Normal),
	}}, true)
	assert.Equal(t, []string{"weird", "normal", "low"}, ids(got))
}

func TestMerge_StableOnTies(t *testing.T) {
	gurus := []marker.Marker{guruMarker("g1", 1), guruMarker("g2", 1)}
	gigs := []marker.Marker{gigMarker("x1", 1, marker.Normal), gigMarker("x2", 1, marker.Normal)}

	got := merge([][]marker.Marker{gurus, gigs}, true)
	assert.Equal(t, []string{"g1", "g2", "x1", "x2"}, ids(got))
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	in := []marker.Marker{guruMarker("b", 2), guruMarker("a", 1)}
	_ = merge([][]marker.Marker{in}, false)
	assert.Equal(t, []string{"b", "a"}, ids(in))
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, merge(nil, true))
	assert.Empty(t, merge([][]marker.Marker{nil, {}}, false))
}
