package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initClusterMetrics() {
	r.ClustersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gac_clusters_total",
			Help: "Total number of classified clusters",
		},
		[]string{"pattern"}, // one-to-one, one-to-many, many-to-one, many-to-many
	)

	r.ClusterCertainty = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gac_cluster_certainty",
			Help:    "Certainty of the winning pattern per cluster",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	r.DegenerateTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gac_degenerate_clusters_total",
			Help: "Clusters whose flow graph had at most two addresses",
		},
	)

	r.ClusterSizeAlerts = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gac_cluster_size_alerts",
			Help:    "Number of alerts per cluster",
			Buckets: prometheus.ExponentialBuckets(2, 2, 12),
		},
	)
}
