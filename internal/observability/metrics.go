package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// RunMetrics holds the collectors for a single verification run.
// Each run gets its own registry so nothing leaks between runs in tests.
type RunMetrics struct {
	registry *prometheus.Registry
	runID    string

	// Trials executed, including the failing one.
	TrialsTotal prometheus.Counter

	// Mismatches detected. At most 1 per run since the checker fails fast.
	MismatchesTotal prometheus.Counter

	// Wall time of the trial loop.
	RunDuration prometheus.Gauge

	// 1 when the run passed, 0 otherwise.
	RunSuccess prometheus.Gauge
}

// NewRunMetrics creates and registers the run collectors
func NewRunMetrics(runID, subject string) *RunMetrics {
	labels := prometheus.Labels{"subject": subject}

	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		runID:    runID,
		TrialsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "plusverify_trials_total",
			Help:        "Total number of trials executed",
			ConstLabels: labels,
		}),
		MismatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "plusverify_mismatches_total",
			Help:        "Total number of mismatching trials",
			ConstLabels: labels,
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "plusverify_run_duration_seconds",
			Help:        "Duration of the trial loop in seconds",
			ConstLabels: labels,
		}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "plusverify_run_success",
			Help:        "Whether the last run passed (1) or failed (0)",
			ConstLabels: labels,
		}),
	}

	m.registry.MustRegister(m.TrialsTotal, m.MismatchesTotal, m.RunDuration, m.RunSuccess)
	return m
}

// Registry exposes the run registry for gathering
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Record stores the outcome of a run
func (m *RunMetrics) Record(trials int, mismatched bool, elapsed time.Duration) {
	m.TrialsTotal.Add(float64(trials))
	m.RunDuration.Set(elapsed.Seconds())
	if mismatched {
		m.MismatchesTotal.Inc()
		m.RunSuccess.Set(0)
		return
	}
	m.RunSuccess.Set(1)
}

// Push sends the run metrics to a Prometheus Pushgateway grouped by run id
func (m *RunMetrics) Push(url, job string) error {
	err := push.New(url, job).
		Gatherer(m.registry).
		Grouping("run_id", m.runID).
		Push()
	if err != nil {
		return fmt.Errorf("push to %s: %w", url, err)
	}
	return nil
}
