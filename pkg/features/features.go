// Package features holds the per-group behavioral feature table and its
// standardization step, the input side of the clustering pipeline.
package features

import "math"

// DefaultColumns is the fixed behavioral feature set used for
// clustering, in the canonical column order.
var DefaultColumns = []string{
	"normalized_attack_volume",
	"normalized_lethality",
	"normalized_geographic_reach",
	"suicide_attack_rate_pct",
	"success_rate_pct",
	"explosives_pct",
	"firearms_pct",
	"govt_target_pct",
	"civilian_target_pct",
}

// Row is one entity's feature vector. TotalAttacks is used only for
// visual marker sizing downstream, never for clustering.
type Row struct {
	Group        string
	TotalAttacks float64
	Values       map[string]float64
}

// Value returns the named feature, mapping missing or non-finite values
// to 0. Treating gaps as zero (rather than the column mean) mirrors the
// upstream pipeline and is a known simplification.
func (r Row) Value(column string) float64 {
	v, ok := r.Values[column]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
