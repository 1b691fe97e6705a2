// Package testutil provides testing utilities for parclust.
//
// This package is intended for use in tests, examples, and benchmarks
// only. It provides helpers for generating random vectors and labeled
// point clouds with known cluster structure.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float32, 16)
//	rng.FillUniform(vec)      // uniform [0, 1)
//	rng.FillGaussian(vec)     // standard normal
//
// # Synthetic Clusters
//
//	centers := [][]float32{{0, 0}, {10, 10}}
//	points := testutil.Blobs(rng, centers, 100, 0.5)
package testutil
