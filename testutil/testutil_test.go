package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42).UniformVectors(10, 4)
	b := NewRNG(42).UniformVectors(10, 4)

	assert.Equal(t, a, b)
}

func TestRNGReset(t *testing.T) {
	rng := NewRNG(7)

	first := rng.GaussianVectors(5, 3)
	rng.Reset()
	second := rng.GaussianVectors(5, 3)

	assert.Equal(t, first, second)
}

func TestBlobs(t *testing.T) {
	rng := NewRNG(1)

	centers := [][]float32{{0, 0}, {100, 100}}
	points := Blobs(rng, centers, 50, 0.5)

	require.Len(t, points, 100)
	assert.Equal(t, "c0-p0", points[0].ID)
	assert.Equal(t, "c1-p49", points[99].ID)

	// Jitter keeps each point near its generating center.
	for _, p := range points[:50] {
		assert.InDelta(t, 0, float64(p.Vector[0]), 5)
	}
	for _, p := range points[50:] {
		assert.InDelta(t, 100, float64(p.Vector[0]), 5)
	}
}
