package experiment

import "time"

// Outcome reports the final value of one run together with execution
// metadata. The metadata is informational; callers that only want the
// value can use Run instead of RunOutcome.
type Outcome[T any] struct {
	// Value is the run's final value, as governed by the resolution policy.
	Value T

	// Decision is the execution variant selected for this run.
	Decision Decision

	// ExperimentalRan reports whether the experimental computation was
	// executed and its result collected.
	ExperimentalRan bool

	// Matched reports whether both paths ran and produced equal values.
	Matched bool

	// Resolved reports whether the mismatch resolver was invoked.
	Resolved bool

	// ControlDuration is the wall-clock time of the control path, when it ran.
	ControlDuration time.Duration

	// ExperimentalDuration is the wall-clock time of the experimental path,
	// when it ran and was collected.
	ExperimentalDuration time.Duration
}
