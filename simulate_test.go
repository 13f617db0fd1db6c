package gpssim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSimulateRanges_NoNoise(t *testing.T) {
	refs := DefaultConstellation().RefPoints()
	truth := NewConfig().TruePos

	ranges, err := SimulateRanges(refs, truth, 0, nil)
	require.NoError(t, err)
	require.Len(t, ranges, len(refs))
	for i := range refs {
		assert.Equal(t, EucDist(&refs[i], &truth), ranges[i])
	}

	// A source may be given, it does not change the result
	ranges2, err := SimulateRanges(refs, truth, 0, NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, ranges, ranges2)
}

func TestSimulateRanges_InvalidNoise(t *testing.T) {
	refs := DefaultConstellation().RefPoints()

	_, err := SimulateRanges(refs, PosXYZ{}, -1, NewSource(1))
	assert.ErrorIs(t, err, ErrInvalidNoise)

	_, err = SimulateRanges(refs, PosXYZ{}, 5, nil)
	assert.ErrorIs(t, err, ErrInvalidNoise)
}

func TestSimulateRanges_Reproducible(t *testing.T) {
	refs := DefaultConstellation().RefPoints()
	truth := NewConfig().TruePos

	r1, err := SimulateRanges(refs, truth, 5, NewSource(42))
	require.NoError(t, err)
	r2, err := SimulateRanges(refs, truth, 5, NewSource(42))
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	r3, err := SimulateRanges(refs, truth, 5, NewSource(43))
	require.NoError(t, err)
	assert.NotEqual(t, r1, r3)

	// Draws are independent across references
	exact, _ := SimulateRanges(refs, truth, 0, nil)
	seen := map[float64]bool{}
	for i := range r1 {
		e := r1[i] - exact[i]
		assert.NotZero(t, e)
		assert.False(t, seen[e])
		seen[e] = true
	}
}

func TestSimulateRanges_NoiseStatistics(t *testing.T) {
	const n = 4000
	const sigma = 5.0
	p := PosXYZ{X: 20000000}
	refs := make([]PosXYZ, n)
	for i := range refs {
		refs[i] = p
	}

	ranges, err := SimulateRanges(refs, PosXYZ{}, sigma, NewSource(7))
	require.NoError(t, err)
	e := make([]float64, n)
	for i := range ranges {
		e[i] = ranges[i] - 20000000
	}
	// 5 sigma bounds of the sample mean and std
	assert.InDelta(t, 0, stat.Mean(e, nil), 5*sigma/63)
	assert.InDelta(t, sigma, stat.StdDev(e, nil), 5*sigma/89)
}

func TestSimulateRanges_NegativeNotClamped(t *testing.T) {
	// Receiver at the reference point: half of the noisy ranges are negative
	p := PosXYZ{X: 1, Y: 2, Z: 3}
	refs := make([]PosXYZ, 100)
	for i := range refs {
		refs[i] = p
	}
	ranges, err := SimulateRanges(refs, p, 1, NewSource(3))
	require.NoError(t, err)

	neg := 0
	for _, r := range ranges {
		if r < 0 {
			neg++
		}
	}
	assert.Greater(t, neg, 0)
}

func TestSimulateThenTrilaterate_Reproducible(t *testing.T) {
	refs := DefaultConstellation().RefPoints()
	truth := NewConfig().TruePos

	run := func() PosXYZ {
		ranges, err := SimulateRanges(refs, truth, 10, NewSource(2024))
		require.NoError(t, err)
		sol, err := Trilaterate(refs, ranges)
		require.NoError(t, err)
		return sol.Pos
	}
	assert.Equal(t, run(), run())
}
