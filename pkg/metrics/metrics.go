// Package metrics exposes Prometheus instrumentation for the analytics
// pipelines.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline label values
const (
	PipelineNetwork    = "network"
	PipelineClustering = "clustering"
	PipelinePredictive = "predictive"
)

// Registry holds all metrics for the engine
type Registry struct {
	registry *prometheus.Registry

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec

	// Network view metrics
	GraphNodesTotal prometheus.Gauge
	GraphEdgesTotal prometheus.Gauge

	// Clustering view metrics
	ClusteringInertia prometheus.Gauge
	ClusteredGroups   prometheus.Gauge

	// Predictive view metrics
	RecordsScoredTotal prometheus.Counter
}

// NewRegistry creates a registry with all engine metrics registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.PipelineRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "spillover_pipeline_runs_total",
			Help: "Total number of pipeline invocations",
		},
		[]string{"pipeline", "status"},
	)

	r.PipelineDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spillover_pipeline_duration_seconds",
			Help:    "Pipeline execution duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"pipeline"},
	)

	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "spillover_graph_nodes",
			Help: "Node count of the most recent spillover graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "spillover_graph_edges",
			Help: "Edge count of the most recent spillover graph",
		},
	)

	r.ClusteringInertia = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "spillover_clustering_inertia",
			Help: "Best inertia of the most recent clustering run",
		},
	)

	r.ClusteredGroups = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "spillover_clustered_groups",
			Help: "Number of groups assigned in the most recent clustering run",
		},
	)

	r.RecordsScoredTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "spillover_risk_records_scored_total",
			Help: "Total number of yearly records scored",
		},
	)

	return r
}

// RecordPipelineRun records one pipeline invocation with its duration
func (r *Registry) RecordPipelineRun(pipeline, status string, duration time.Duration) {
	r.PipelineRunsTotal.WithLabelValues(pipeline, status).Inc()
	r.PipelineDuration.WithLabelValues(pipeline).Observe(duration.Seconds())
}

// UpdateGraphSize records the dimensions of the latest spillover graph
func (r *Registry) UpdateGraphSize(nodes, edges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// UpdateClustering records the outcome of the latest clustering run
func (r *Registry) UpdateClustering(groups int, inertia float64) {
	r.ClusteredGroups.Set(float64(groups))
	r.ClusteringInertia.Set(inertia)
}

// Gatherer exposes the underlying registry for scrape handlers
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
