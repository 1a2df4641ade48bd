package experiment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/trialrun-io/trialrun/internal/constants"
)

// Decision selects which computation paths a single run executes.
type Decision int

const (
	// UseControl runs only the control computation.
	UseControl Decision = iota

	// UseExperimentalAndCompare runs both computations concurrently and
	// compares their outputs.
	UseExperimentalAndCompare

	// UseExperimental runs only the experimental computation and returns
	// its result verbatim. This is the end state of a migration, once the
	// candidate has earned trust.
	UseExperimental
)

func (d Decision) String() string {
	switch d {
	case UseControl:
		return "use_control"
	case UseExperimentalAndCompare:
		return "use_experimental_and_compare"
	case UseExperimental:
		return "use_experimental"
	default:
		return "unknown"
	}
}

// kind maps a decision to its metric label value.
func (d Decision) kind() string {
	switch d {
	case UseExperimentalAndCompare:
		return constants.KindExperimentalAndCompare
	case UseExperimental:
		return constants.KindExperimental
	default:
		return constants.KindControl
	}
}

// Decide implements Strategy: a bare Decision forces itself on every run.
func (d Decision) Decide() Decision { return d }

// Strategy decides, once per run, which paths that run executes.
type Strategy interface {
	Decide() Decision
}

// Sampler draws one uniform number in [0,1). The default draws from the
// process-wide math/rand source, which is safe for concurrent use.
type Sampler func() float64

// Probability samples the experimental path on a fixed fraction of runs.
// A run compares control and experimental iff draw < p; it never yields
// UseExperimental.
type Probability struct {
	p    float64
	draw Sampler
}

// NewProbability builds a probability strategy. p must lie in [0,1].
func NewProbability(p float64) (*Probability, error) {
	if math.IsNaN(p) || p < constants.MinRolloutProbability || p > constants.MaxRolloutProbability {
		return nil, fmt.Errorf("%w: rollout probability %v outside [%v,%v]",
			ErrInvalidConfiguration, p, constants.MinRolloutProbability, constants.MaxRolloutProbability)
	}
	return &Probability{p: p, draw: rand.Float64}, nil
}

// Percent builds a probability strategy from a percentage in [0,100].
func Percent(pct float64) (*Probability, error) {
	return NewProbability(pct / constants.PercentScale)
}

// WithSampler substitutes the randomness source, letting tests force the
// sampled or unsampled branch deterministically.
func (pr *Probability) WithSampler(draw Sampler) *Probability {
	pr.draw = draw
	return pr
}

func (pr *Probability) Decide() Decision {
	if pr.draw() < pr.p {
		return UseExperimentalAndCompare
	}
	return UseControl
}
