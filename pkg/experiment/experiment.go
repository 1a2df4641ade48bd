package experiment

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/trialrun-io/trialrun/internal/constants"
	"github.com/trialrun-io/trialrun/internal/logger"
	"github.com/trialrun-io/trialrun/internal/metrics"
)

// Computation is one deferred unit of work producing a value of type T.
// It is invoked at most once per run.
type Computation[T any] func(ctx context.Context) (T, error)

// Experiment compares an established control computation against an
// experimental candidate meant to replace it. The control governs the
// returned value and the run's failure mode; the experimental path is
// sampled in, raced concurrently, and any disagreement or failure on it
// is handed to the mismatch resolver instead of the caller.
//
// An Experiment is assembled fluently and is read-only once a run begins.
// Setter validation errors are latched and surfaced by Run before any
// execution.
type Experiment[T any] struct {
	name         string
	control      Computation[T]
	experimental Computation[T]
	strategy     Strategy
	resolver     Resolver[T]
	equals       func(a, b T) bool
	err          error
}

// New creates a named experiment. The name is an opaque label used in
// logs, metrics and error context; the engine never interprets it.
func New[T any](name string) *Experiment[T] {
	return &Experiment[T]{
		name:   name,
		equals: func(a, b T) bool { return reflect.DeepEqual(a, b) },
	}
}

// Name returns the experiment's label.
func (e *Experiment[T]) Name() string { return e.name }

// Control sets the trusted computation. Its value is the run's result on
// every non-sampled run, and its failure always fails the run.
func (e *Experiment[T]) Control(fn Computation[T]) *Experiment[T] {
	e.control = fn
	return e
}

// Experimental sets the candidate computation.
func (e *Experiment[T]) Experimental(fn Computation[T]) *Experiment[T] {
	e.experimental = fn
	return e
}

// Rollout samples the experimental path on fraction p of runs, p in [0,1].
// An out-of-range p is latched as ErrInvalidConfiguration.
func (e *Experiment[T]) Rollout(p float64) *Experiment[T] {
	s, err := NewProbability(p)
	if err != nil {
		e.fail(err)
		return e
	}
	e.strategy = s
	return e
}

// RolloutStrategy replaces the rollout decision logic wholesale. A bare
// Decision forces that variant on every run. A custom Strategy is assumed
// able to select any variant, so Run requires both an experimental
// computation and a resolver when one is set.
func (e *Experiment[T]) RolloutStrategy(s Strategy) *Experiment[T] {
	e.strategy = s
	return e
}

// Sampler overrides the randomness source of a probability-based rollout.
// Call it after Rollout; it has no effect on other strategies.
func (e *Experiment[T]) Sampler(draw Sampler) *Experiment[T] {
	if pr, ok := e.strategy.(*Probability); ok {
		pr.draw = draw
	}
	return e
}

// OnMismatch sets the resolver invoked when control and experimental
// disagree, or when the experimental path fails.
func (e *Experiment[T]) OnMismatch(r Resolver[T]) *Experiment[T] {
	e.resolver = r
	return e
}

// CompareWith replaces the equality function used to compare outputs.
// The default is reflect.DeepEqual.
func (e *Experiment[T]) CompareWith(equals func(a, b T) bool) *Experiment[T] {
	e.equals = equals
	return e
}

func (e *Experiment[T]) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// validate fails fast, before any execution, when the experiment cannot
// honor the paths its strategy may select.
func (e *Experiment[T]) validate() error {
	if e.err != nil {
		return e.err
	}
	if e.control == nil {
		return fmt.Errorf("%w: experiment %q has no control computation", ErrIncompleteExperiment, e.name)
	}
	needsExperimental, needsResolver := pathRequirements(e.strategy)
	if needsExperimental && e.experimental == nil {
		return fmt.Errorf("%w: experiment %q may run the experimental path but has no experimental computation", ErrIncompleteExperiment, e.name)
	}
	if needsResolver && e.resolver == nil {
		return fmt.Errorf("%w: experiment %q may compare outputs but has no mismatch resolver", ErrIncompleteExperiment, e.name)
	}
	return nil
}

// pathRequirements reports which collaborators a strategy can demand.
// Unknown strategy implementations are assumed able to select any variant.
func pathRequirements(s Strategy) (needsExperimental, needsResolver bool) {
	switch v := s.(type) {
	case nil:
		return false, false
	case *Probability:
		return v.p > 0, v.p > 0
	case Decision:
		return v != UseControl, v == UseExperimentalAndCompare
	default:
		return true, true
	}
}

// Run executes the experiment once and returns its final value. On the
// non-sampled fraction of runs this is behaviorally identical to calling
// the control computation directly.
func (e *Experiment[T]) Run(ctx context.Context) (T, error) {
	out, err := e.RunOutcome(ctx)
	return out.Value, err
}

// RunOutcome executes the experiment once and returns the final value
// together with execution metadata.
func (e *Experiment[T]) RunOutcome(ctx context.Context) (Outcome[T], error) {
	var out Outcome[T]
	if err := e.validate(); err != nil {
		return out, err
	}

	decision := UseControl
	if e.strategy != nil {
		decision = e.strategy.Decide()
	}
	out.Decision = decision

	metrics.EmitRun(e.name)
	metrics.EmitVariant(e.name, decision.kind())
	logger.Log.Debugw("experiment run", "experiment", e.name, "decision", decision.String())

	switch decision {
	case UseExperimentalAndCompare:
		return e.runCompared(ctx, out)
	case UseExperimental:
		return e.runExperimentalOnly(ctx, out)
	default:
		return e.runControlOnly(ctx, out)
	}
}

// pathResult is the raw product of one computation path.
type pathResult[T any] struct {
	value    T
	err      error
	duration time.Duration
}

func runPath[T any](ctx context.Context, fn Computation[T]) pathResult[T] {
	start := time.Now()
	v, err := fn(ctx)
	return pathResult[T]{value: v, err: err, duration: time.Since(start)}
}

// runRecovered shields the caller from a panicking computation, capturing
// the panic as the path's error.
func runRecovered[T any](ctx context.Context, fn Computation[T]) (res pathResult[T]) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = pathResult[T]{
				err:      fmt.Errorf("experimental computation panicked: %v", r),
				duration: time.Since(start),
			}
		}
	}()
	return runPath(ctx, fn)
}

// record emits the duration and ok/error outcome of a collected path.
func (e *Experiment[T]) record(kind string, res pathResult[T]) {
	metrics.ObserveDuration(e.name, kind, res.duration)
	outcome := constants.OutcomeOK
	if res.err != nil {
		outcome = constants.OutcomeError
	}
	metrics.EmitOutcome(e.name, kind, outcome)
}

func (e *Experiment[T]) runControlOnly(ctx context.Context, out Outcome[T]) (Outcome[T], error) {
	res := runPath(ctx, e.control)
	e.record(constants.KindControl, res)
	out.ControlDuration = res.duration
	if res.err != nil {
		return out, e.controlFailure(res.err)
	}
	out.Value = res.value
	return out, nil
}

func (e *Experiment[T]) runExperimentalOnly(ctx context.Context, out Outcome[T]) (Outcome[T], error) {
	res := runPath(ctx, e.experimental)
	e.record(constants.KindExperimental, res)
	out.ExperimentalRan = true
	out.ExperimentalDuration = res.duration
	if res.err != nil {
		return out, fmt.Errorf("experiment %q: %w", e.name, res.err)
	}
	out.Value = res.value
	return out, nil
}

func (e *Experiment[T]) runCompared(ctx context.Context, out Outcome[T]) (Outcome[T], error) {
	// The experimental path runs on its own goroutine; the buffered channel
	// lets it finish even when the run abandons its result.
	expCh := make(chan pathResult[T], 1)
	go func() {
		expCh <- runRecovered(ctx, e.experimental)
	}()

	control := runPath(ctx, e.control)
	e.record(constants.KindControl, control)
	out.ControlDuration = control.duration
	if control.err != nil {
		// The experimental result is discarded, never awaited.
		return out, e.controlFailure(control.err)
	}
	out.Value = control.value

	exp := <-expCh
	e.record(constants.KindExperimental, exp)
	out.ExperimentalRan = true
	out.ExperimentalDuration = exp.duration

	if exp.err == nil && e.equals(control.value, exp.value) {
		out.Matched = true
		return out, nil
	}

	metrics.EmitMismatch(e.name)
	logger.Log.Warnw("experiment mismatch",
		"experiment", e.name,
		"experimentalFailed", exp.err != nil,
		"error", exp.err,
	)

	resolved, err := e.resolver(Mismatch[T]{
		Experiment:      e.name,
		Control:         control.value,
		Experimental:    exp.value,
		ExperimentalErr: exp.err,
	})
	out.Resolved = true
	if err != nil {
		return out, fmt.Errorf("experiment %q: mismatch resolver: %w", e.name, err)
	}
	out.Value = resolved
	return out, nil
}

func (e *Experiment[T]) controlFailure(err error) error {
	logger.Log.Errorw("control computation failed", "experiment", e.name, "error", err)
	return fmt.Errorf("experiment %q: %w: %w", e.name, ErrControlFailed, err)
}
