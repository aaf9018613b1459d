package observability

import (
	"context"
	"time"

	"github.com/aretw0/exinc/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of exinc_expansions_total.
const (
	OutcomeSuccess     = "success"
	OutcomeDiagnostics = "diagnostics"
	OutcomeFailure     = "failure"
)

// Metrics holds the Prometheus collectors for expansions.
type Metrics struct {
	filesInlined prometheus.Counter
	diagnostics  *prometheus.CounterVec
	expansions   *prometheus.CounterVec
	duration     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// It panics if they are already registered, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		filesInlined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exinc_files_inlined_total",
			Help: "Total number of include files inlined",
		}),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exinc_diagnostics_total",
				Help: "Total number of diagnostics reported, by kind",
			},
			[]string{"kind"},
		),
		expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exinc_expansions_total",
				Help: "Total number of expansions, by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "exinc_expansion_duration_seconds",
			Help:    "Duration of expansions",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	reg.MustRegister(m.filesInlined, m.diagnostics, m.expansions, m.duration)
	return m
}

// Hooks returns the hooks feeding the per-file counters.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnFileEnter: func(context.Context, *domain.FileEvent) {
			m.filesInlined.Inc()
		},
		OnDiagnostic: func(_ context.Context, d domain.Diagnostic) {
			m.diagnostics.WithLabelValues(string(d.Kind)).Inc()
		},
	}
}

// ObserveRun records the outcome and duration of a finished expansion.
func (m *Metrics) ObserveRun(res domain.Result, elapsed time.Duration) {
	m.expansions.WithLabelValues(Outcome(res)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Outcome classifies a result for the outcome label.
func Outcome(res domain.Result) string {
	switch {
	case res.Failure != nil:
		return OutcomeFailure
	case len(res.Diagnostics) > 0:
		return OutcomeDiagnostics
	default:
		return OutcomeSuccess
	}
}
