package visualization

import (
	"math"
	"math/rand"

	"github.com/adhummel/spillover-analytics/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultSeed is the fixed layout seed. Repeated runs on the same graph
// must produce identical coordinates for reproducible visualization.
const DefaultSeed = 42

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width           float64 // Canvas width
	Height          float64 // Canvas height
	Iterations      int     // Number of iterations for iterative algorithms
	Padding         float64 // Padding from edges
	OptimalDistance float64 // Spring rest length; 0 derives it from canvas area
	Seed            int64   // PRNG seed; 0 falls back to DefaultSeed
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *graph.Graph) (map[string]Position, error)
}

// ForceDirectedLayout implements deterministic force-directed graph layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	if config.Seed == 0 {
		config.Seed = DefaultSeed
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using a spring model: repulsion k²/d
// between all node pairs, attraction d²/k along edges, with linear
// cooling. Node order and the PRNG are both fixed, so the result is
// identical across calls for the same graph.
func (fdl *ForceDirectedLayout) ComputeLayout(g *graph.Graph) (map[string]Position, error) {
	nodes := g.Nodes()

	if len(nodes) == 0 {
		return make(map[string]Position), nil
	}

	// Single node - center it
	if len(nodes) == 1 {
		return map[string]Position{
			nodes[0]: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	// Initialize positions from the seeded PRNG, in sorted node order
	rng := rand.New(rand.NewSource(fdl.config.Seed))
	positions := make(map[string]Position)

	for _, node := range nodes {
		positions[node] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	// Springs act along edges regardless of direction
	neighbors := make(map[string][]string, len(nodes))
	for _, node := range nodes {
		neighbors[node] = g.Neighbors(node)
	}

	k := fdl.config.OptimalDistance
	if k == 0 {
		k = math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodes)))
	}
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]Position)
		for _, node := range nodes {
			forces[node] = Position{X: 0, Y: 0}
		}

		// Repulsion between all nodes
		for i, node1 := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				node2 := nodes[j]
				dx := positions[node1].X - positions[node2].X
				dy := positions[node1].Y - positions[node2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[node1] = Position{
					X: forces[node1].X + fx,
					Y: forces[node1].Y + fy,
				}
				forces[node2] = Position{
					X: forces[node2].X - fx,
					Y: forces[node2].Y - fy,
				}
			}
		}

		// Attraction between connected nodes
		for _, node1 := range nodes {
			for _, node2 := range neighbors[node1] {
				dx := positions[node1].X - positions[node2].X
				dy := positions[node1].Y - positions[node2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[node1] = Position{
					X: forces[node1].X - fx,
					Y: forces[node1].Y - fy,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, node := range nodes {
			fx := forces[node].X
			fy := forces[node].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool

				positions[node] = Position{
					X: positions[node].X + dx,
					Y: positions[node].Y + dy,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}

// CircularLayout arranges nodes evenly on a circle. Deterministic by
// construction; used as the fallback when force placement is not wanted.
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges nodes in a circle in sorted node order
func (cl *CircularLayout) ComputeLayout(g *graph.Graph) (map[string]Position, error) {
	positions := make(map[string]Position)
	nodes := g.Nodes()

	if len(nodes) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(nodes))

	for i, node := range nodes {
		angle := float64(i) * angleStep
		positions[node] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[string]Position, width, height, padding float64) map[string]Position {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[string]Position)
	for node, pos := range positions {
		normalized[node] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}
