package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.SimilarityEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gac_similarity_edges",
			Help: "Edges in the similarity graph of the last run",
		},
	)

	r.MaximalCliques = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gac_maximal_cliques",
			Help: "Maximal cliques of size >= k found in the last run",
		},
	)

	r.Communities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gac_communities",
			Help: "Communities found in the last run",
		},
	)
}
