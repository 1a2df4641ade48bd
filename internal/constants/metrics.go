// Package constants provides centralized constant definitions for trialrun.
package constants

// Experiment Output Metrics
// These metric names are used to emit experiment engine metrics to Prometheus.
// The metrics expose per-experiment run counts, variant selection, comparison
// outcomes and path latencies for monitoring and alerting.
const (
	// ExperimentRunsTotal tracks the total number of experiment runs.
	ExperimentRunsTotal = "trialrun_experiment_runs_total"

	// ExperimentVariantTotal tracks which execution variant was selected
	// for each run (control only, experimental and compare, experimental only).
	ExperimentVariantTotal = "trialrun_experiment_variant_total"

	// ExperimentOutcomeTotal tracks per-path outcomes (ok, error, mismatch).
	ExperimentOutcomeTotal = "trialrun_experiment_outcome_total"

	// ExperimentRunDurationSeconds tracks the wall-clock duration of each
	// computation path.
	ExperimentRunDurationSeconds = "trialrun_experiment_run_duration_seconds"
)

// Label values for the "kind" label of the experiment metrics.
const (
	KindControl                = "control"
	KindExperimental           = "experimental"
	KindExperimentalAndCompare = "experimental_and_compare"
)

// Label values for the "outcome" label of ExperimentOutcomeTotal.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeMismatch = "mismatch"
)
