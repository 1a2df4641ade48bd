package experiment

import "errors"

var (
	// ErrInvalidConfiguration reports a builder setting outside its valid
	// range, e.g. a rollout probability outside [0,1]. It is latched at
	// configuration time and surfaced by Run before any execution.
	ErrInvalidConfiguration = errors.New("invalid experiment configuration")

	// ErrIncompleteExperiment reports a Run invoked without a control
	// computation, or without an experimental computation or mismatch
	// resolver on a run that may execute the experimental path.
	ErrIncompleteExperiment = errors.New("incomplete experiment")

	// ErrControlFailed marks a run that failed because the control
	// computation failed. The control's own error is wrapped alongside it.
	ErrControlFailed = errors.New("control computation failed")
)
