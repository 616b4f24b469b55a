package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "search_requests_total",
			Help:      "Total number of proximity searches",
		},
		[]string{"scope", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nearby",
			Name:      "search_duration_seconds",
			Help:      "Proximity search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"scope"},
	)

	CandidateFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nearby",
			Name:      "candidate_fetch_duration_seconds",
			Help:      "Candidate source fetch duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"entity_type", "status"},
	)

	CandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "candidates_total",
			Help:      "Candidates scanned by pipeline outcome",
		},
		[]string{"entity_type", "outcome"}, // no_location, outside_box, outside_radius, filtered, matched
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(CandidateFetchDuration)
	prometheus.MustRegister(CandidatesTotal)
	searchMetricsRegistered = true
}

// ObserveSearch records one finished search.
func ObserveSearch(scope string, start time.Time, err error) {
	SearchRequestsTotal.WithLabelValues(scope, status(err)).Inc()
	SearchDuration.WithLabelValues(scope).Observe(time.Since(start).Seconds())
}

// ObserveFetch records one candidate source fetch.
func ObserveFetch(entityType string, start time.Time, err error) {
	CandidateFetchDuration.WithLabelValues(entityType, status(err)).Observe(time.Since(start).Seconds())
}

// AddCandidates adds pipeline outcome counts for one entity type.
func AddCandidates(entityType string, noLocation, outsideBox, outsideRadius, filtered, matched int) {
	CandidatesTotal.WithLabelValues(entityType, "no_location").Add(float64(noLocation))
	CandidatesTotal.WithLabelValues(entityType, "outside_box").Add(float64(outsideBox))
	CandidatesTotal.WithLabelValues(entityType, "outside_radius").Add(float64(outsideRadius))
	CandidatesTotal.WithLabelValues(entityType, "filtered").Add(float64(filtered))
	CandidatesTotal.WithLabelValues(entityType, "matched").Add(float64(matched))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
