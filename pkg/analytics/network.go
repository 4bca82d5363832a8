package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adhummel/spillover-analytics/pkg/graph"
	"github.com/adhummel/spillover-analytics/pkg/logging"
	"github.com/adhummel/spillover-analytics/pkg/metrics"
	"github.com/adhummel/spillover-analytics/pkg/validation"
	"github.com/adhummel/spillover-analytics/pkg/visualization"
)

// NetworkNode is one positioned node of the spillover network, with the
// degree counts callers use for visual scaling.
type NetworkNode struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	InDegree  int     `json:"inDegree"`
	OutDegree int     `json:"outDegree"`
}

// NetworkResult is the network view output: the filtered graph and a
// deterministic 2-D embedding of it.
type NetworkResult struct {
	RunID     string
	Graph     *graph.Graph
	Positions map[string]visualization.Position
	Nodes     []NetworkNode
}

// NetworkView validates the edge rows, builds the thresholded spillover
// graph, and computes its force-directed layout. An input with no
// qualifying edges yields an empty (but valid) result.
func (e *Engine) NetworkView(records []validation.EdgeRecord) (*NetworkResult, error) {
	runID := uuid.NewString()
	log := e.log.With(logging.Pipeline(metrics.PipelineNetwork), logging.RunID(runID))
	start := time.Now()

	if err := validation.ValidateEdgeRecords(records); err != nil {
		e.recordRun(metrics.PipelineNetwork, "error", time.Since(start).Seconds())
		log.Error("rejected edge input", logging.Error(err))
		return nil, fmt.Errorf("network view: %w", err)
	}

	edges := make([]graph.Edge, len(records))
	for i, rec := range records {
		edges[i] = graph.Edge{
			Source:       rec.SourceCountry,
			Target:       rec.TargetCountry,
			Weight:       rec.Weight,
			SharedGroups: rec.SharedGroups,
			Intensity:    rec.Intensity,
		}
	}

	g, err := graph.Build(edges, e.cfg.MinEdgeWeight)
	if err != nil {
		e.recordRun(metrics.PipelineNetwork, "error", time.Since(start).Seconds())
		log.Error("graph construction failed", logging.Error(err))
		return nil, fmt.Errorf("network view: %w", err)
	}

	layout := visualization.NewForceDirectedLayout(&visualization.LayoutConfig{
		Width:           e.cfg.Layout.Width,
		Height:          e.cfg.Layout.Height,
		Iterations:      e.cfg.Layout.Iterations,
		OptimalDistance: e.cfg.Layout.OptimalDistance,
		Seed:            e.cfg.Layout.Seed,
	})
	positions, err := layout.ComputeLayout(g)
	if err != nil {
		e.recordRun(metrics.PipelineNetwork, "error", time.Since(start).Seconds())
		log.Error("layout failed", logging.Error(err))
		return nil, fmt.Errorf("network view: %w", err)
	}

	nodes := make([]NetworkNode, 0, g.NodeCount())
	for _, name := range g.Nodes() {
		pos := positions[name]
		nodes = append(nodes, NetworkNode{
			ID:        name,
			X:         pos.X,
			Y:         pos.Y,
			InDegree:  g.InDegree(name),
			OutDegree: g.OutDegree(name),
		})
	}

	elapsed := time.Since(start)
	e.recordRun(metrics.PipelineNetwork, "success", elapsed.Seconds())
	if e.metrics != nil {
		e.metrics.UpdateGraphSize(g.NodeCount(), g.EdgeCount())
	}
	log.Info("network view computed",
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Latency(elapsed),
	)

	return &NetworkResult{
		RunID:     runID,
		Graph:     g,
		Positions: positions,
		Nodes:     nodes,
	}, nil
}
