package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adhummel/spillover-analytics/pkg/logging"
	"github.com/adhummel/spillover-analytics/pkg/metrics"
	"github.com/adhummel/spillover-analytics/pkg/risk"
	"github.com/adhummel/spillover-analytics/pkg/validation"
)

// PredictiveResult is the predictive view output: the latest year's
// records ranked by composite risk score.
type PredictiveResult struct {
	RunID  string              `json:"runId"`
	Year   int                 `json:"year"`
	Ranked []risk.ScoredRecord `json:"ranked"`
}

// PredictiveView scores the latest-year rows with the configured weights
// and returns the topN highest, ties in input order. topN <= 0 uses the
// configured default. Empty input yields an empty ranking.
func (e *Engine) PredictiveView(records []validation.YearlyRecord, topN int) (*PredictiveResult, error) {
	runID := uuid.NewString()
	log := e.log.With(logging.Pipeline(metrics.PipelinePredictive), logging.RunID(runID))
	start := time.Now()

	if err := validation.ValidateYearlyRecords(records); err != nil {
		e.recordRun(metrics.PipelinePredictive, "error", time.Since(start).Seconds())
		log.Error("rejected yearly input", logging.Error(err))
		return nil, fmt.Errorf("predictive view: %w", err)
	}

	if topN <= 0 {
		topN = e.cfg.Risk.TopN
	}

	rows := make([]risk.YearlyRecord, len(records))
	for i, rec := range records {
		rows[i] = risk.YearlyRecord{
			Name:           rec.Name,
			Year:           rec.Year,
			Momentum:       rec.Momentum,
			Volatility:     rec.Volatility,
			PriorYearSpike: rec.PriorYearSpike,
		}
	}

	weights := risk.Weights{
		Momentum:       e.cfg.Risk.MomentumWeight,
		Volatility:     e.cfg.Risk.VolatilityWeight,
		PriorYearSpike: e.cfg.Risk.SpikeWeight,
	}

	scored := risk.ScoreLatest(rows, weights)
	ranked := risk.TopN(scored, topN)

	year, _ := risk.LatestYear(rows)

	elapsed := time.Since(start)
	e.recordRun(metrics.PipelinePredictive, "success", elapsed.Seconds())
	if e.metrics != nil {
		e.metrics.RecordsScoredTotal.Add(float64(len(scored)))
	}
	log.Info("predictive view computed",
		logging.Int("year", year),
		logging.Int("scored", len(scored)),
		logging.Int("ranked", len(ranked)),
		logging.Latency(elapsed),
	)

	return &PredictiveResult{
		RunID:  runID,
		Year:   year,
		Ranked: ranked,
	}, nil
}
