// Package parclust provides parallel multi-trial k-means clustering
// with k-means++ seeding for Go.
//
// A clustering invocation advances RUNS independent trials in lockstep:
// every trial is seeded with well-spread initial centroids
// (probability-proportional-to-squared-distance sampling), refined with
// Lloyd iterations until the maximum per-trial centroid shift drops to
// the convergence threshold, and ranked by the sum-of-squared-distances
// objective so the caller can pick the best trial.
//
// # Quick Start
//
//	ctx := context.Background()
//	km, _ := parclust.New(2,
//	    parclust.WithRuns(8),
//	    parclust.WithConvergenceThreshold(0.01),
//	    parclust.WithRandomSeed(42),
//	)
//	result, _ := km.Fit(ctx, points)
//	centroids := result.Best()     // winning trial's centroids
//	costs := result.Costs          // objective per trial
//
// The phases are also exposed individually (Seed, Refine, Cost,
// Nearest) for callers that drive the lifecycle themselves or feed the
// assignment primitive into external diagnostics.
//
// # Reproducibility
//
// All randomness flows from a single root seed. Each trial derives its
// own sub-seed, so results are identical regardless of the worker count
// or how trials are scheduled.
//
// # Persistence
//
// The featurestore package loads point datasets from and saves centroid
// snapshots to any blobstore backend (local filesystem, memory, S3,
// MinIO) using self-describing compressed envelopes.
package parclust
