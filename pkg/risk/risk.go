// Package risk computes the composite near-term risk score used by the
// predictive view: a fixed-weight linear combination of momentum,
// volatility, and prior-year-spike indicators.
package risk

import "sort"

// DefaultTopN matches the number of high-risk rows the dashboard shows.
const DefaultTopN = 15

// YearlyRecord is one entity-year of time-series-derived risk inputs.
// Inputs are assumed already scaled upstream; no cross-row
// normalization happens here.
type YearlyRecord struct {
	Name           string  `json:"name"`
	Year           int     `json:"year"`
	Momentum       float64 `json:"momentum"`
	Volatility     float64 `json:"volatility"`
	PriorYearSpike float64 `json:"priorYearSpike"`
}

// Weights are the fixed linear coefficients of the composite score.
type Weights struct {
	Momentum       float64
	Volatility     float64
	PriorYearSpike float64
}

// DefaultWeights returns the dashboard weighting: 0.4 momentum,
// 0.3 volatility, 0.3 prior-year spike.
func DefaultWeights() Weights {
	return Weights{Momentum: 0.4, Volatility: 0.3, PriorYearSpike: 0.3}
}

// Score computes the composite risk score for one record. Pure and
// stateless: identical input always yields identical output.
func (w Weights) Score(r YearlyRecord) float64 {
	return w.Momentum*r.Momentum + w.Volatility*r.Volatility + w.PriorYearSpike*r.PriorYearSpike
}

// ScoredRecord pairs a record with its computed score.
type ScoredRecord struct {
	YearlyRecord
	Score float64 `json:"score"`
}

// LatestYear returns the maximum year present. ok is false when the
// record set is empty.
func LatestYear(records []YearlyRecord) (year int, ok bool) {
	if len(records) == 0 {
		return 0, false
	}
	year = records[0].Year
	for _, r := range records[1:] {
		if r.Year > year {
			year = r.Year
		}
	}
	return year, true
}

// ScoreLatest scores only the rows belonging to the latest year,
// preserving their input order. An empty record set yields an empty
// result.
func ScoreLatest(records []YearlyRecord, w Weights) []ScoredRecord {
	year, ok := LatestYear(records)
	if !ok {
		return []ScoredRecord{}
	}

	scored := make([]ScoredRecord, 0, len(records))
	for _, r := range records {
		if r.Year != year {
			continue
		}
		scored = append(scored, ScoredRecord{YearlyRecord: r, Score: w.Score(r)})
	}
	return scored
}

// TopN returns the n highest-scoring records in descending order. The
// sort is stable, so ties keep their input order. n larger than the
// input returns everything; n <= 0 returns an empty slice.
func TopN(scored []ScoredRecord, n int) []ScoredRecord {
	if n <= 0 {
		return []ScoredRecord{}
	}

	ranked := make([]ScoredRecord, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
