package experiment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlwaysControl(t *testing.T) {
	t.Parallel()

	v, err := AlwaysControl(Mismatch[int]{Control: 4, Experimental: 7})
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = AlwaysControl(Mismatch[int]{Control: 4, ExperimentalErr: errors.New("broken")})
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestPreferExperimental(t *testing.T) {
	t.Parallel()

	v, err := PreferExperimental(Mismatch[int]{Control: 4, Experimental: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	// Falls back to control when the experimental path failed.
	v, err = PreferExperimental(Mismatch[int]{Control: 4, ExperimentalErr: errors.New("broken")})
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestMismatchExperimentalFailed(t *testing.T) {
	t.Parallel()

	assert.False(t, Mismatch[int]{Control: 4, Experimental: 7}.ExperimentalFailed())
	assert.True(t, Mismatch[int]{Control: 4, ExperimentalErr: errors.New("broken")}.ExperimentalFailed())
}
