package constants

// Rollout probability bounds
const (
	// MinRolloutProbability is the lowest accepted sampling probability;
	// at this value the experimental path never executes.
	MinRolloutProbability = 0.0

	// MaxRolloutProbability is the highest accepted sampling probability;
	// at this value the experimental path executes on every run.
	MaxRolloutProbability = 1.0

	// PercentScale converts a percentage rollout figure to a probability.
	PercentScale = 100.0
)
