package sampling

import "math/rand"

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Derive returns a new RNG whose seed is derived deterministically from
// this RNG's seed and the given trial index. Deriving instead of
// sharing one source keeps results reproducible when trials execute
// concurrently: each trial consumes draws only from its own stream.
func (r *RNG) Derive(run int) *RNG {
	return NewRNG(int64(splitmix64(uint64(r.seed) + uint64(run) + 1))) // nolint gosec
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a uniform int in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// Float64 returns a uniform float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// splitmix64 is the SplitMix64 mixing function. It decorrelates the
// per-trial seeds so neighboring trial indices do not produce
// overlapping draw sequences.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
