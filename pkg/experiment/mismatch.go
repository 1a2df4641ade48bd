package experiment

// Mismatch carries the disagreeing outputs of one run to the resolver.
// It exists only for the duration of resolution.
type Mismatch[T any] struct {
	// Experiment is the name of the experiment that produced the mismatch.
	Experiment string

	// Control is the control computation's value. The resolver is only
	// invoked when the control succeeded, so it is always populated.
	Control T

	// Experimental is the experimental computation's value. It is the zero
	// value when ExperimentalErr is non-nil.
	Experimental T

	// ExperimentalErr is non-nil when the experimental path failed
	// (returned an error, was cancelled, or panicked).
	ExperimentalErr error
}

// ExperimentalFailed reports whether the mismatch was caused by a failure
// of the experimental path rather than a value disagreement.
func (m Mismatch[T]) ExperimentalFailed() bool { return m.ExperimentalErr != nil }

// Resolver decides the final value of a run whose control and experimental
// outputs disagree. A returned error becomes the run's error.
type Resolver[T any] func(m Mismatch[T]) (T, error)

// AlwaysControl resolves every mismatch to the control's value.
func AlwaysControl[T any](m Mismatch[T]) (T, error) {
	return m.Control, nil
}

// PreferExperimental resolves to the experimental value, falling back to
// the control's value when the experimental path failed.
func PreferExperimental[T any](m Mismatch[T]) (T, error) {
	if m.ExperimentalErr != nil {
		return m.Control, nil
	}
	return m.Experimental, nil
}
