package graph

import (
	"errors"
	"testing"
)

// TestBuildThreshold verifies the dashboard's min-weight cutoff
// scenario: edges at or below the threshold are excluded entirely.
func TestBuildThreshold(t *testing.T) {
	edges := []Edge{
		{Source: "A", Target: "B", Weight: 10},
		{Source: "B", Target: "C", Weight: 3},
		{Source: "A", Target: "C", Weight: 7},
	}

	g, err := Build(edges, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("Expected 3 nodes, got %d", g.NodeCount())
	}
	for _, name := range []string{"A", "B", "C"} {
		if !g.HasNode(name) {
			t.Errorf("Expected node %s in graph", name)
		}
	}

	if g.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges, got %d", g.EdgeCount())
	}
	if e, ok := g.Edge("A", "B"); !ok || e.Weight != 10 {
		t.Errorf("Expected A->B with weight 10, got %+v (ok=%v)", e, ok)
	}
	if e, ok := g.Edge("A", "C"); !ok || e.Weight != 7 {
		t.Errorf("Expected A->C with weight 7, got %+v (ok=%v)", e, ok)
	}
	if _, ok := g.Edge("B", "C"); ok {
		t.Error("B->C (weight 3) should be excluded by threshold 5")
	}
}

// TestBuildExactThreshold verifies that weight equal to the threshold is
// dropped (the upstream filter is strictly greater-than).
func TestBuildExactThreshold(t *testing.T) {
	g, err := Build([]Edge{{Source: "A", Target: "B", Weight: 5}}, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("Weight == threshold should be dropped, got %d nodes, %d edges",
			g.NodeCount(), g.EdgeCount())
	}
}

func TestBuildExcludesSelfLoops(t *testing.T) {
	edges := []Edge{
		{Source: "A", Target: "A", Weight: 100},
		{Source: "A", Target: "B", Weight: 10},
	}

	g, err := Build(edges, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := g.Edge("A", "A"); ok {
		t.Error("Self-loop should be excluded")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
}

// TestBuildDuplicateLastWriteWins documents the defensive duplicate
// policy: the later row silently replaces the earlier one. Upstream
// guarantees distinct pairs, so no information is expected to be lost
// in practice.
func TestBuildDuplicateLastWriteWins(t *testing.T) {
	edges := []Edge{
		{Source: "A", Target: "B", Weight: 10, SharedGroups: 2},
		{Source: "A", Target: "B", Weight: 8, SharedGroups: 4},
	}

	g, err := Build(edges, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if g.EdgeCount() != 1 {
		t.Fatalf("Expected 1 edge after dedup, got %d", g.EdgeCount())
	}
	e, _ := g.Edge("A", "B")
	if e.Weight != 8 || e.SharedGroups != 4 {
		t.Errorf("Expected later row to win (weight 8, groups 4), got %+v", e)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	g, err := Build(nil, 5)
	if err != nil {
		t.Fatalf("Empty input should not error: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("Expected empty graph, got %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if len(g.Nodes()) != 0 {
		t.Error("Nodes() on empty graph should be empty")
	}
}

func TestBuildRejectsNegativeWeight(t *testing.T) {
	_, err := Build([]Edge{{Source: "A", Target: "B", Weight: -1}}, 5)
	if !errors.Is(err, ErrInvalidEdge) {
		t.Errorf("Expected ErrInvalidEdge, got %v", err)
	}
}

func TestBuildRejectsMissingEndpoint(t *testing.T) {
	_, err := Build([]Edge{{Source: "", Target: "B", Weight: 10}}, 5)
	if !errors.Is(err, ErrInvalidEdge) {
		t.Errorf("Expected ErrInvalidEdge for missing source, got %v", err)
	}

	_, err = Build([]Edge{{Source: "A", Target: "", Weight: 10}}, 5)
	if !errors.Is(err, ErrInvalidEdge) {
		t.Errorf("Expected ErrInvalidEdge for missing target, got %v", err)
	}
}

func TestDegrees(t *testing.T) {
	edges := []Edge{
		{Source: "A", Target: "B", Weight: 10},
		{Source: "A", Target: "C", Weight: 9},
		{Source: "C", Target: "B", Weight: 8},
	}

	g, err := Build(edges, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := g.OutDegree("A"); got != 2 {
		t.Errorf("OutDegree(A) = %d, want 2", got)
	}
	if got := g.InDegree("B"); got != 2 {
		t.Errorf("InDegree(B) = %d, want 2", got)
	}
	if got := g.InDegree("A"); got != 0 {
		t.Errorf("InDegree(A) = %d, want 0", got)
	}
	if got := g.OutDegree("B"); got != 0 {
		t.Errorf("OutDegree(B) = %d, want 0", got)
	}
}

func TestNeighborsUnionOfDirections(t *testing.T) {
	edges := []Edge{
		{Source: "A", Target: "B", Weight: 10},
		{Source: "C", Target: "A", Weight: 9},
	}

	g, err := Build(edges, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	neighbors := g.Neighbors("A")
	if len(neighbors) != 2 || neighbors[0] != "B" || neighbors[1] != "C" {
		t.Errorf("Neighbors(A) = %v, want [B C]", neighbors)
	}
}

func TestEdgesSortedAndComplete(t *testing.T) {
	edges := []Edge{
		{Source: "C", Target: "A", Weight: 8},
		{Source: "A", Target: "B", Weight: 10},
		{Source: "A", Target: "C", Weight: 9},
	}

	g, err := Build(edges, 5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got := g.Edges()
	if len(got) != 3 {
		t.Fatalf("Expected 3 edges, got %d", len(got))
	}
	want := [][2]string{{"A", "B"}, {"A", "C"}, {"C", "A"}}
	for i, pair := range want {
		if got[i].Source != pair[0] || got[i].Target != pair[1] {
			t.Errorf("Edges()[%d] = %s->%s, want %s->%s",
				i, got[i].Source, got[i].Target, pair[0], pair[1])
		}
	}
}
