// Package config carries the engine's tunable parameters with their
// dashboard defaults and range validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a parameter outside its allowed range.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full engine configuration.
type Config struct {
	// MinEdgeWeight is the spillover edge threshold; edges must exceed it
	MinEdgeWeight float64 `yaml:"min_edge_weight"`

	Layout     LayoutConfig     `yaml:"layout"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Risk       RiskConfig       `yaml:"risk"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// LayoutConfig holds force-directed layout parameters.
type LayoutConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Iterations      int     `yaml:"iterations"`
	OptimalDistance float64 `yaml:"optimal_distance"`
	Seed            int64   `yaml:"seed"`
}

// ClusteringConfig holds K-means parameters.
type ClusteringConfig struct {
	Clusters int   `yaml:"clusters"`
	Seed     int64 `yaml:"seed"`
	Restarts int   `yaml:"restarts"`
}

// RiskConfig holds the scoring weights and ranking depth.
type RiskConfig struct {
	MomentumWeight   float64 `yaml:"momentum_weight"`
	VolatilityWeight float64 `yaml:"volatility_weight"`
	SpikeWeight      float64 `yaml:"spike_weight"`
	TopN             int     `yaml:"top_n"`
}

// Default returns the configuration the dashboard runs with.
func Default() Config {
	return Config{
		MinEdgeWeight: 5,
		Layout: LayoutConfig{
			Width:      800,
			Height:     600,
			Iterations: 50,
			Seed:       42,
		},
		Clustering: ClusteringConfig{
			Clusters: 5,
			Seed:     42,
			Restarts: 10,
		},
		Risk: RiskConfig{
			MomentumWeight:   0.4,
			VolatilityWeight: 0.3,
			SpikeWeight:      0.3,
			TopN:             15,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file layered over the defaults: absent keys
// keep their default values. The result is validated before return.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every parameter range.
func (c *Config) Validate() error {
	if c.MinEdgeWeight < 0 {
		return fmt.Errorf("%w: min_edge_weight must be >= 0, got %g", ErrInvalidConfig, c.MinEdgeWeight)
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("%w: layout dimensions must be positive, got %gx%g",
			ErrInvalidConfig, c.Layout.Width, c.Layout.Height)
	}
	if c.Layout.Iterations < 1 {
		return fmt.Errorf("%w: layout iterations must be >= 1, got %d", ErrInvalidConfig, c.Layout.Iterations)
	}
	if c.Layout.OptimalDistance < 0 {
		return fmt.Errorf("%w: optimal_distance must be >= 0, got %g", ErrInvalidConfig, c.Layout.OptimalDistance)
	}
	if c.Clustering.Clusters < 1 {
		return fmt.Errorf("%w: cluster count must be >= 1, got %d", ErrInvalidConfig, c.Clustering.Clusters)
	}
	if c.Clustering.Restarts < 1 {
		return fmt.Errorf("%w: restarts must be >= 1, got %d", ErrInvalidConfig, c.Clustering.Restarts)
	}
	if c.Risk.MomentumWeight < 0 || c.Risk.VolatilityWeight < 0 || c.Risk.SpikeWeight < 0 {
		return fmt.Errorf("%w: risk weights must be >= 0", ErrInvalidConfig)
	}
	if c.Risk.TopN < 1 {
		return fmt.Errorf("%w: top_n must be >= 1, got %d", ErrInvalidConfig, c.Risk.TopN)
	}
	return nil
}
