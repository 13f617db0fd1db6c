package gpssim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcConfig() *Config {
	cfg := NewConfig()
	cfg.NoiseStd = 5
	cfg.Seed = 20240601
	cfg.HasSeed = true
	return cfg
}

func TestRunMonteCarlo_MoreReferencesAverageNoise(t *testing.T) {
	rslt, err := RunMonteCarlo(mcConfig(), DefaultConstellation(), 400, []int{4, 6})
	require.NoError(t, err)
	require.Len(t, rslt, 2)

	assert.Equal(t, 4, rslt[0].RefCount)
	assert.Equal(t, 6, rslt[1].RefCount)
	assert.Equal(t, 400, rslt[0].Trials)
	assert.LessOrEqual(t, rslt[1].MSE, rslt[0].MSE)

	for _, r := range rslt {
		assert.InDelta(t, r.MSE, SQ(r.RMS), 1e-9*r.MSE)
		assert.Greater(t, r.P95, r.Mean)
		assert.Greater(t, r.Std, 0.0)
	}
}

func TestRunMonteCarlo_Reproducible(t *testing.T) {
	r1, err := RunMonteCarlo(mcConfig(), DefaultConstellation(), 50, []int{4, 5})
	require.NoError(t, err)
	r2, err := RunMonteCarlo(mcConfig(), DefaultConstellation(), 50, []int{4, 5})
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestRunMonteCarlo_NoNoise(t *testing.T) {
	cfg := mcConfig()
	cfg.NoiseStd = 0
	rslt, err := RunMonteCarlo(cfg, DefaultConstellation(), 3, []int{4, 5, 6})
	require.NoError(t, err)
	for _, r := range rslt {
		assert.Less(t, r.RMS, 1e-3)
	}
}

func TestRunMonteCarlo_Validation(t *testing.T) {
	c := DefaultConstellation()

	_, err := RunMonteCarlo(mcConfig(), c, 0, []int{4})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = RunMonteCarlo(mcConfig(), c, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = RunMonteCarlo(mcConfig(), c, 10, []int{3, 4})
	assert.ErrorIs(t, err, ErrInsufficientMeasurements)

	_, err = RunMonteCarlo(mcConfig(), c, 10, []int{4, 7})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPrintMCResults(t *testing.T) {
	var buf bytes.Buffer
	PrintMCResults(&buf, []MCResult{{RefCount: 4, Trials: 10, RMS: 1.5, Mean: 1.25, Std: 0.5, P95: 2}})
	assert.Contains(t, buf.String(), "refs")
	assert.Contains(t, buf.String(), "     4       10         1.500         1.250         0.500         2.000")
}
