package metrics

import (
	"time"
)

// RecordRun records a finished correlation run. Alerts only count towards
// gac_alerts_processed_total when the run succeeded.
func (r *Registry) RecordRun(status string, duration time.Duration, alerts int) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
	if status == StatusSuccess {
		r.AlertsProcessed.Add(float64(alerts))
	}
}

// RecordStage records the duration of one pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// UpdateGraphMetrics sets the graph sizes of the latest run
func (r *Registry) UpdateGraphMetrics(edges, maximalCliques, communities int) {
	r.SimilarityEdges.Set(float64(edges))
	r.MaximalCliques.Set(float64(maximalCliques))
	r.Communities.Set(float64(communities))
}

// RecordCluster records one classified cluster
func (r *Registry) RecordCluster(pattern string, certainty float64, alerts int, degenerate bool) {
	r.ClustersTotal.WithLabelValues(pattern).Inc()
	r.ClusterCertainty.Observe(certainty)
	r.ClusterSizeAlerts.Observe(float64(alerts))
	if degenerate {
		r.DegenerateTotal.Inc()
	}
}
