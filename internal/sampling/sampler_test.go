package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedDeterminism(t *testing.T) {
	weights := []float64{0.1, 0.2, 0.3, 0.4}

	a, err := Weighted(weights, NewRNG(42))
	require.NoError(t, err)

	b, err := Weighted(weights, NewRNG(42))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestWeightedAllMassOnOneIndex(t *testing.T) {
	weights := []float64{0, 0, 1, 0}

	for seed := int64(0); seed < 20; seed++ {
		idx, err := Weighted(weights, NewRNG(seed))
		require.NoError(t, err)
		assert.Equal(t, 2, idx)
	}
}

func TestWeightedRoundingFallback(t *testing.T) {
	// Cumulative sum stays marginally below 1; a draw above it must
	// fall back to the last positive-weight index instead of failing.
	weights := []float64{0.5, 0.4999999999}

	for seed := int64(0); seed < 50; seed++ {
		idx, err := Weighted(weights, NewRNG(seed))
		require.NoError(t, err)
		assert.Contains(t, []int{0, 1}, idx)
	}
}

func TestWeightedZeroMass(t *testing.T) {
	_, err := Weighted([]float64{0, 0, 0}, NewRNG(1))
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestWeightedEmpty(t *testing.T) {
	_, err := Weighted(nil, NewRNG(1))
	assert.ErrorIs(t, err, ErrNoWeights)
}

func TestWeightedConsumesExactlyOneDraw(t *testing.T) {
	weights := []float64{0.25, 0.25, 0.25, 0.25}

	a := NewRNG(7)
	_, err := Weighted(weights, a)
	require.NoError(t, err)
	next := a.Float64()

	b := NewRNG(7)
	b.Float64() // one draw consumed by sampling
	assert.Equal(t, next, b.Float64())
}

func TestNormalize(t *testing.T) {
	w := []float64{2, 2, 4}
	require.True(t, Normalize(w))
	assert.InDelta(t, 0.25, w[0], 1e-12)
	assert.InDelta(t, 0.5, w[2], 1e-12)

	zero := []float64{0, 0}
	assert.False(t, Normalize(zero))
}

func TestUniform(t *testing.T) {
	w := Uniform(4)
	require.Len(t, w, 4)
	for _, p := range w {
		assert.InDelta(t, 0.25, p, 1e-12)
	}
}

func TestDeriveIndependentStreams(t *testing.T) {
	root := NewRNG(99)

	r0 := root.Derive(0)
	r1 := root.Derive(1)
	assert.NotEqual(t, r0.Seed(), r1.Seed())

	// Same derivation yields the same stream.
	again := NewRNG(99).Derive(0)
	assert.Equal(t, r0.Float64(), again.Float64())
}
