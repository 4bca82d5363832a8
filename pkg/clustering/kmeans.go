// Package clustering partitions standardized behavioral feature vectors
// into a fixed number of clusters with seeded, restarted K-means.
package clustering

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidMatrix indicates rows of unequal width.
var ErrInvalidMatrix = errors.New("invalid feature matrix")

// ErrInvalidConfig indicates a negative cluster count or restart count.
var ErrInvalidConfig = errors.New("invalid clustering config")

// Config controls a clustering run. Zero values fall back to the
// dashboard defaults.
type Config struct {
	K             int   // cluster count
	Seed          int64 // base PRNG seed; restart i uses Seed+i
	Restarts      int   // random restarts, best inertia kept
	MaxIterations int   // safety cap per restart
}

// DefaultConfig mirrors the dashboard clustering setup: k=5, seed 42,
// 10 restarts.
func DefaultConfig() Config {
	return Config{K: 5, Seed: 42, Restarts: 10, MaxIterations: 300}
}

// Result is the best partitioning found across restarts.
type Result struct {
	Assignments []int       // cluster index per input row, in input order
	Centroids   [][]float64 // one per effective cluster
	Inertia     float64     // sum of squared distances to assigned centroids
}

// Cluster partitions the rows of matrix into cfg.K clusters.
//
// Restarts run with PRNG seeds Seed, Seed+1, ... and the lowest-inertia
// result wins, ties broken by the earlier restart, so the outcome does
// not depend on execution order. If fewer rows than clusters are
// supplied the effective cluster count is reduced to the row count;
// labels remain in [0, K). An empty matrix yields an empty assignment.
func Cluster(matrix [][]float64, cfg Config) (*Result, error) {
	if cfg.K == 0 {
		cfg.K = DefaultConfig().K
	}
	if cfg.Restarts == 0 {
		cfg.Restarts = DefaultConfig().Restarts
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultConfig().MaxIterations
	}
	if cfg.K < 0 || cfg.Restarts < 0 {
		return nil, fmt.Errorf("%w: cluster count and restarts must be positive", ErrInvalidConfig)
	}

	if len(matrix) == 0 {
		return &Result{Assignments: []int{}}, nil
	}

	dim := len(matrix[0])
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrInvalidMatrix, i, len(row), dim)
		}
	}

	// Degenerate case: fewer rows than requested clusters
	k := cfg.K
	if len(matrix) < k {
		k = len(matrix)
	}

	best := &Result{Inertia: math.Inf(1)}
	for restart := 0; restart < cfg.Restarts; restart++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(restart)))
		candidate := runLloyd(matrix, k, cfg.MaxIterations, rng)
		if candidate.Inertia < best.Inertia {
			best = candidate
		}
	}

	return best, nil
}

// runLloyd performs one seeded K-means run to convergence or the
// iteration cap.
func runLloyd(matrix [][]float64, k, maxIterations int, rng *rand.Rand) *Result {
	n := len(matrix)
	dim := len(matrix[0])

	// Initialize centroids from k distinct rows
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), matrix[idx]...)
	}

	assignments := make([]int, n)
	counts := make([]int, k)

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, row := range matrix {
			nearest := nearestCentroid(row, centroids)
			if assignments[i] != nearest || iter == 0 {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}

		// Recompute centroids as cluster means
		for c := range centroids {
			counts[c] = 0
			for d := 0; d < dim; d++ {
				centroids[c][d] = 0
			}
		}
		for i, row := range matrix {
			c := assignments[i]
			counts[c]++
			floats.Add(centroids[c], row)
		}
		var empty []int
		for c := range centroids {
			if counts[c] == 0 {
				empty = append(empty, c)
				continue
			}
			floats.Scale(1/float64(counts[c]), centroids[c])
		}
		// Reseed empty clusters from the points farthest from their
		// assigned centroids
		for _, c := range empty {
			centroids[c] = append([]float64(nil), matrix[farthestPoint(matrix, assignments, centroids)]...)
		}
	}

	var inertia float64
	for i, row := range matrix {
		d := floats.Distance(row, centroids[assignments[i]], 2)
		inertia += d * d
	}

	return &Result{
		Assignments: assignments,
		Centroids:   centroids,
		Inertia:     inertia,
	}
}

// nearestCentroid returns the index of the closest centroid, ties going
// to the lowest index.
func nearestCentroid(row []float64, centroids [][]float64) int {
	nearest := 0
	minDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := floats.Distance(row, centroid, 2); d < minDist {
			minDist = d
			nearest = c
		}
	}
	return nearest
}

// farthestPoint returns the index of the row farthest from its assigned
// centroid.
func farthestPoint(matrix [][]float64, assignments []int, centroids [][]float64) int {
	farthest := 0
	maxDist := -1.0
	for i, row := range matrix {
		if d := floats.Distance(row, centroids[assignments[i]], 2); d > maxDist {
			maxDist = d
			farthest = i
		}
	}
	return farthest
}
