package graph

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultMinWeight is the minimum shared-attack count an edge must exceed
// to appear in the spillover graph. Matches the upstream flow filter.
const DefaultMinWeight = 5.0

// ErrInvalidEdge indicates an edge row that violates the builder's input
// contract. Rows are expected to be validated at the boundary first.
var ErrInvalidEdge = errors.New("invalid edge")

// Edge is a directed spillover relationship: attacks by groups based in
// Source carried out in Target.
type Edge struct {
	Source       string
	Target       string
	Weight       float64 // shared attack count
	SharedGroups int
	Intensity    float64
}

// Graph is an in-memory directed weighted graph built from spillover
// edges. It is immutable after Build and safe for concurrent reads.
type Graph struct {
	out   map[string]map[string]Edge
	in    map[string]map[string]Edge
	nodes []string // sorted
}

// Build constructs a graph from edge rows.
//
// Self-loops and edges with weight <= minWeight are dropped. If the same
// ordered (source, target) pair appears more than once the later row
// overwrites the earlier one; upstream guarantees distinct pairs, so the
// overwrite path is defensive only. The node set is exactly the union of
// endpoints of retained edges. An input with no qualifying edges yields a
// valid empty graph.
func Build(edges []Edge, minWeight float64) (*Graph, error) {
	g := &Graph{
		out: make(map[string]map[string]Edge),
		in:  make(map[string]map[string]Edge),
	}

	for i, e := range edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("%w: row %d is missing an endpoint", ErrInvalidEdge, i)
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: row %d (%s -> %s) has negative weight %g",
				ErrInvalidEdge, i, e.Source, e.Target, e.Weight)
		}

		// Self-loops carry no spillover information
		if e.Source == e.Target {
			continue
		}
		if e.Weight <= minWeight {
			continue
		}

		if g.out[e.Source] == nil {
			g.out[e.Source] = make(map[string]Edge)
		}
		if g.in[e.Target] == nil {
			g.in[e.Target] = make(map[string]Edge)
		}
		// Last write wins on duplicate pairs
		g.out[e.Source][e.Target] = e
		g.in[e.Target][e.Source] = e
	}

	seen := make(map[string]bool)
	for source, targets := range g.out {
		if !seen[source] {
			seen[source] = true
			g.nodes = append(g.nodes, source)
		}
		for target := range targets {
			if !seen[target] {
				seen[target] = true
				g.nodes = append(g.nodes, target)
			}
		}
	}
	sort.Strings(g.nodes)

	return g, nil
}

// Nodes returns all node names in sorted order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, targets := range g.out {
		count += len(targets)
	}
	return count
}

// HasNode reports whether the named node appears in the graph.
func (g *Graph) HasNode(name string) bool {
	i := sort.SearchStrings(g.nodes, name)
	return i < len(g.nodes) && g.nodes[i] == name
}

// Edge returns the directed edge from source to target, if present.
func (g *Graph) Edge(source, target string) (Edge, bool) {
	e, ok := g.out[source][target]
	return e, ok
}

// Edges returns all edges sorted by (source, target).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, source := range g.nodes {
		targets := make([]string, 0, len(g.out[source]))
		for target := range g.out[source] {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, target := range targets {
			edges = append(edges, g.out[source][target])
		}
	}
	return edges
}

// OutEdges returns the edges leaving the named node, sorted by target.
func (g *Graph) OutEdges(name string) []Edge {
	return sortedEdges(g.out[name], func(e Edge) string { return e.Target })
}

// InEdges returns the edges entering the named node, sorted by source.
func (g *Graph) InEdges(name string) []Edge {
	return sortedEdges(g.in[name], func(e Edge) string { return e.Source })
}

// OutDegree returns the number of edges leaving the named node.
func (g *Graph) OutDegree(name string) int {
	return len(g.out[name])
}

// InDegree returns the number of edges entering the named node.
func (g *Graph) InDegree(name string) int {
	return len(g.in[name])
}

// Neighbors returns every node connected to name by an edge in either
// direction, sorted. Used by layout, which treats edges as springs
// regardless of direction.
func (g *Graph) Neighbors(name string) []string {
	set := make(map[string]bool, len(g.out[name])+len(g.in[name]))
	for target := range g.out[name] {
		set[target] = true
	}
	for source := range g.in[name] {
		set[source] = true
	}

	neighbors := make([]string, 0, len(set))
	for n := range set {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

func sortedEdges(m map[string]Edge, key func(Edge) string) []Edge {
	edges := make([]Edge, 0, len(m))
	for _, e := range m {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return key(edges[i]) < key(edges[j]) })
	return edges
}
