package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trialrun-io/trialrun/internal/constants"
)

var (
	experimentRunsTotal   *prometheus.CounterVec
	experimentVariant     *prometheus.CounterVec
	experimentOutcome     *prometheus.CounterVec
	experimentRunDuration *prometheus.HistogramVec
)

// InitMetrics registers all custom metrics with the provided registry
func InitMetrics(registry prometheus.Registerer) {
	experimentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: constants.ExperimentRunsTotal,
			Help: "Total number of experiment runs",
		},
		[]string{"name"},
	)
	experimentVariant = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: constants.ExperimentVariantTotal,
			Help: "Execution variant selected for each experiment run",
		},
		[]string{"name", "kind"},
	)
	experimentOutcome = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: constants.ExperimentOutcomeTotal,
			Help: "Per-path outcomes of experiment runs",
		},
		[]string{"name", "kind", "outcome"},
	)
	experimentRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    constants.ExperimentRunDurationSeconds,
			Help:    "Wall-clock duration of each computation path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"name", "kind"},
	)

	registry.MustRegister(experimentRunsTotal)
	registry.MustRegister(experimentVariant)
	registry.MustRegister(experimentOutcome)
	registry.MustRegister(experimentRunDuration)
}

// EmitRun counts one experiment run. A no-op until InitMetrics is called.
func EmitRun(name string) {
	if experimentRunsTotal == nil {
		return
	}
	experimentRunsTotal.WithLabelValues(name).Inc()
}

// EmitVariant counts the execution variant chosen for a run.
func EmitVariant(name, kind string) {
	if experimentVariant == nil {
		return
	}
	experimentVariant.WithLabelValues(name, kind).Inc()
}

// EmitOutcome counts the outcome of one computation path.
func EmitOutcome(name, kind, outcome string) {
	if experimentOutcome == nil {
		return
	}
	experimentOutcome.WithLabelValues(name, kind, outcome).Inc()
}

// EmitMismatch counts a comparison that found control and experimental
// in disagreement.
func EmitMismatch(name string) {
	EmitOutcome(name, constants.KindExperimentalAndCompare, constants.OutcomeMismatch)
}

// ObserveDuration records the wall-clock duration of one computation path.
func ObserveDuration(name, kind string, d time.Duration) {
	if experimentRunDuration == nil {
		return
	}
	experimentRunDuration.WithLabelValues(name, kind).Observe(d.Seconds())
}
