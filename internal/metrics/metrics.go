package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devreports_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// SynthesisDuration tracks synthesis latency per provider.
	SynthesisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devreports_synthesis_duration_seconds",
		Help:    "Time spent generating one-line syntheses.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"provider"})

	// SynthesisCacheHits counts memoized synthesis lookups.
	SynthesisCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devreports_synthesis_cache_lookups_total",
		Help: "Synthesis cache lookups by outcome.",
	}, []string{"outcome"})

	// SearchResults tracks the distribution of filtered result counts.
	SearchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "devreports_search_results",
		Help:    "Number of paragraphs matching a topic search.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)
