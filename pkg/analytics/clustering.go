package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adhummel/spillover-analytics/pkg/clustering"
	"github.com/adhummel/spillover-analytics/pkg/features"
	"github.com/adhummel/spillover-analytics/pkg/logging"
	"github.com/adhummel/spillover-analytics/pkg/metrics"
	"github.com/adhummel/spillover-analytics/pkg/validation"
)

// GroupAssignment is one group's cluster membership.
type GroupAssignment struct {
	Group        string  `json:"group"`
	Cluster      int     `json:"cluster"`
	Archetype    string  `json:"archetype"`
	TotalAttacks float64 `json:"totalAttacks"`
}

// ClusterProfile summarizes one cluster: its size and the mean of each
// raw (pre-standardization) feature over its members.
type ClusterProfile struct {
	Cluster      int                `json:"cluster"`
	Archetype    string             `json:"archetype"`
	Size         int                `json:"size"`
	FeatureMeans map[string]float64 `json:"featureMeans"`
}

// ClusteringResult is the clustering view output.
type ClusteringResult struct {
	RunID    string            `json:"runId"`
	Groups   []GroupAssignment `json:"groups"`
	Profiles []ClusterProfile  `json:"profiles"`
	Inertia  float64           `json:"inertia"`
}

// ClusteringView standardizes the behavioral feature rows and partitions
// them into the configured number of clusters. Labels are recomputed
// from scratch on every invocation and carry no meaning across runs.
func (e *Engine) ClusteringView(records []validation.FeatureRecord) (*ClusteringResult, error) {
	runID := uuid.NewString()
	log := e.log.With(logging.Pipeline(metrics.PipelineClustering), logging.RunID(runID))
	start := time.Now()

	if err := validation.ValidateFeatureRecords(records); err != nil {
		e.recordRun(metrics.PipelineClustering, "error", time.Since(start).Seconds())
		log.Error("rejected feature input", logging.Error(err))
		return nil, fmt.Errorf("clustering view: %w", err)
	}

	rows := make([]features.Row, len(records))
	for i, rec := range records {
		rows[i] = features.Row{
			Group:        rec.Group,
			TotalAttacks: rec.TotalAttacks,
			Values:       rec.Features,
		}
	}

	matrix, _, err := features.Standardize(rows, features.DefaultColumns)
	if err != nil {
		e.recordRun(metrics.PipelineClustering, "error", time.Since(start).Seconds())
		log.Error("standardization failed", logging.Error(err))
		return nil, fmt.Errorf("clustering view: %w", err)
	}

	result, err := clustering.Cluster(matrix, clustering.Config{
		K:        e.cfg.Clustering.Clusters,
		Seed:     e.cfg.Clustering.Seed,
		Restarts: e.cfg.Clustering.Restarts,
	})
	if err != nil {
		e.recordRun(metrics.PipelineClustering, "error", time.Since(start).Seconds())
		log.Error("clustering failed", logging.Error(err))
		return nil, fmt.Errorf("clustering view: %w", err)
	}

	archetypes := clustering.DefaultArchetypes()

	groups := make([]GroupAssignment, len(rows))
	for i, row := range rows {
		label := result.Assignments[i]
		groups[i] = GroupAssignment{
			Group:        row.Group,
			Cluster:      label,
			Archetype:    archetypes.Label(label),
			TotalAttacks: row.TotalAttacks,
		}
	}

	profiles := buildProfiles(rows, result.Assignments, archetypes)

	elapsed := time.Since(start)
	e.recordRun(metrics.PipelineClustering, "success", elapsed.Seconds())
	if e.metrics != nil {
		e.metrics.UpdateClustering(len(groups), result.Inertia)
	}
	log.Info("clustering view computed",
		logging.Count(len(groups)),
		logging.Int("clusters", len(profiles)),
		logging.Float64("inertia", result.Inertia),
		logging.Latency(elapsed),
	)

	return &ClusteringResult{
		RunID:    runID,
		Groups:   groups,
		Profiles: profiles,
		Inertia:  result.Inertia,
	}, nil
}

// buildProfiles aggregates raw feature means per cluster, ordered by
// cluster index. Clusters with no members are omitted.
func buildProfiles(rows []features.Row, assignments []int, archetypes clustering.ArchetypeMap) []ClusterProfile {
	maxLabel := -1
	for _, label := range assignments {
		if label > maxLabel {
			maxLabel = label
		}
	}

	var profiles []ClusterProfile
	for label := 0; label <= maxLabel; label++ {
		sums := make(map[string]float64, len(features.DefaultColumns))
		size := 0
		for i, assigned := range assignments {
			if assigned != label {
				continue
			}
			size++
			for _, col := range features.DefaultColumns {
				sums[col] += rows[i].Value(col)
			}
		}
		if size == 0 {
			continue
		}

		means := make(map[string]float64, len(sums))
		for col, sum := range sums {
			means[col] = sum / float64(size)
		}
		profiles = append(profiles, ClusterProfile{
			Cluster:      label,
			Archetype:    archetypes.Label(label),
			Size:         size,
			FeatureMeans: means,
		})
	}
	return profiles
}
