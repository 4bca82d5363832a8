// Package analytics wires the network, clustering, and predictive
// pipelines behind one engine with shared configuration, logging, and
// metrics. Pipelines hold no mutable state between runs and may be
// invoked concurrently.
package analytics

import (
	"os"

	"github.com/adhummel/spillover-analytics/pkg/config"
	"github.com/adhummel/spillover-analytics/pkg/logging"
	"github.com/adhummel/spillover-analytics/pkg/metrics"
)

// Engine runs analytics pipelines over in-memory input rows. How the
// rows were obtained (and how the results are rendered) is the caller's
// concern.
type Engine struct {
	cfg     config.Config
	log     logging.Logger
	metrics *metrics.Registry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces the default stdout logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) { e.log = logger }
}

// WithMetrics attaches a Prometheus registry. Without one, no metrics
// are recorded.
func WithMetrics(reg *metrics.Registry) Option {
	return func(e *Engine) { e.metrics = reg }
}

// New creates an engine from a validated configuration.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	}
	return e, nil
}

func (e *Engine) recordRun(pipeline, status string, seconds float64) {
	if e.metrics == nil {
		return
	}
	e.metrics.PipelineRunsTotal.WithLabelValues(pipeline, status).Inc()
	e.metrics.PipelineDuration.WithLabelValues(pipeline).Observe(seconds)
}
