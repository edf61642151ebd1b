// Package metrics exposes prometheus instrumentation for correlation runs.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes used as the status label
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Pipeline stages used as the stage label
const (
	StageStore       = "store"
	StageSimilarity  = "similarity"
	StagePercolation = "percolation"
	StageClassify    = "classify"
)

// Registry holds all metrics for the correlator
type Registry struct {
	// Run Metrics
	RunsTotal       *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	AlertsProcessed prometheus.Counter
	StageDuration   *prometheus.HistogramVec

	// Graph Metrics
	SimilarityEdges prometheus.Gauge
	MaximalCliques  prometheus.Gauge
	Communities     prometheus.Gauge

	// Cluster Metrics
	ClustersTotal     *prometheus.CounterVec
	ClusterCertainty  prometheus.Histogram
	DegenerateTotal   prometheus.Counter
	ClusterSizeAlerts prometheus.Histogram

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initRunMetrics()
	r.initGraphMetrics()
	r.initClusterMetrics()

	return r
}

// Gatherer returns the underlying registry for exposition
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
