package visualization

import (
	"encoding/json"

	"github.com/adhummel/spillover-analytics/pkg/graph"
)

// Visualization represents a laid-out graph ready for the presentation layer
type Visualization struct {
	Graph     *graph.Graph
	Positions map[string]Position
}

// ExportJSON exports nodes with coordinates and degree counts, plus the
// edge list with its spillover metrics. Degrees are included so the
// caller can scale node markers without re-deriving them.
func (v *Visualization) ExportJSON() ([]byte, error) {
	type NodeViz struct {
		ID        string  `json:"id"`
		X         float64 `json:"x"`
		Y         float64 `json:"y"`
		InDegree  int     `json:"inDegree"`
		OutDegree int     `json:"outDegree"`
	}

	type EdgeViz struct {
		Source       string  `json:"source"`
		Target       string  `json:"target"`
		Weight       float64 `json:"weight"`
		SharedGroups int     `json:"sharedGroups"`
		Intensity    float64 `json:"intensity"`
	}

	type VizData struct {
		Nodes []NodeViz `json:"nodes"`
		Edges []EdgeViz `json:"edges"`
	}

	data := VizData{
		Nodes: make([]NodeViz, 0, v.Graph.NodeCount()),
		Edges: make([]EdgeViz, 0, v.Graph.EdgeCount()),
	}

	for _, name := range v.Graph.Nodes() {
		pos := v.Positions[name]
		data.Nodes = append(data.Nodes, NodeViz{
			ID:        name,
			X:         pos.X,
			Y:         pos.Y,
			InDegree:  v.Graph.InDegree(name),
			OutDegree: v.Graph.OutDegree(name),
		})
	}

	for _, e := range v.Graph.Edges() {
		data.Edges = append(data.Edges, EdgeViz{
			Source:       e.Source,
			Target:       e.Target,
			Weight:       e.Weight,
			SharedGroups: e.SharedGroups,
			Intensity:    e.Intensity,
		})
	}

	return json.Marshal(data)
}
