// Package metrics holds the Prometheus instruments for the analytics domain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments analytics computations.
type Metrics struct {
	AnalysesComputed   *prometheus.CounterVec
	ComputeDuration    *prometheus.HistogramVec
	BaselineCacheHits  prometheus.Counter
	BaselineCacheMiss  prometheus.Counter
	RecordsNormalized  prometheus.Counter
	MalformedRecords   prometheus.Counter
	UpstreamFetchFails prometheus.Counter
}

// New creates and registers all analytics metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AnalysesComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "judgefinder_analyses_computed_total",
			Help: "Analytics computations completed, by kind (bias_metrics, time_to_ruling).",
		}, []string{"kind"}),
		ComputeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "judgefinder_compute_duration_seconds",
			Help:    "Wall time of one analytics computation, by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		BaselineCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "judgefinder_baseline_cache_hits_total",
			Help: "Court baselines served from cache.",
		}),
		BaselineCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "judgefinder_baseline_cache_misses_total",
			Help: "Court baselines recomputed from peer records.",
		}),
		RecordsNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "judgefinder_records_normalized_total",
			Help: "Raw case rows passed through the normalizer.",
		}),
		MalformedRecords: promauto.NewCounter(prometheus.CounterOpts{
			Name: "judgefinder_malformed_records_total",
			Help: "Rows with at least one field that failed coercion.",
		}),
		UpstreamFetchFails: promauto.NewCounter(prometheus.CounterOpts{
			Name: "judgefinder_upstream_fetch_failures_total",
			Help: "Record storage fetches that failed and were propagated.",
		}),
	}
}
