package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/trialrun-io/trialrun/internal/constants"
)

func TestEmitBeforeInitIsNoop(t *testing.T) {
	// Runs before TestInitMetricsAndEmit; nothing is registered yet and
	// every emitter must be a safe no-op.
	EmitRun("exp")
	EmitVariant("exp", constants.KindControl)
	EmitOutcome("exp", constants.KindControl, constants.OutcomeOK)
	EmitMismatch("exp")
	ObserveDuration("exp", constants.KindControl, time.Millisecond)
}

func TestInitMetricsAndEmit(t *testing.T) {
	registry := prometheus.NewRegistry()
	InitMetrics(registry)

	EmitRun("exp")
	EmitRun("exp")
	EmitVariant("exp", constants.KindExperimentalAndCompare)
	EmitOutcome("exp", constants.KindControl, constants.OutcomeOK)
	EmitOutcome("exp", constants.KindExperimental, constants.OutcomeError)
	EmitMismatch("exp")
	ObserveDuration("exp", constants.KindControl, 250*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(experimentRunsTotal.WithLabelValues("exp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(experimentVariant.WithLabelValues("exp", constants.KindExperimentalAndCompare)))
	assert.Equal(t, 1.0, testutil.ToFloat64(experimentOutcome.WithLabelValues("exp", constants.KindControl, constants.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(experimentOutcome.WithLabelValues("exp", constants.KindExperimental, constants.OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(experimentOutcome.WithLabelValues("exp", constants.KindExperimentalAndCompare, constants.OutcomeMismatch)))
	assert.Equal(t, 1, testutil.CollectAndCount(experimentRunDuration, constants.ExperimentRunDurationSeconds))
}
