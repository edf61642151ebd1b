package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gac_correlation_runs_total",
			Help: "Total number of correlation runs",
		},
		[]string{"status"}, // success, error
	)

	r.RunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gac_correlation_duration_seconds",
			Help:    "Duration of correlation runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	r.AlertsProcessed = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gac_alerts_processed_total",
			Help: "Total number of alerts passed to successful runs",
		},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gac_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"stage"}, // store, similarity, percolation, classify
	)
}
