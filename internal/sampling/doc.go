// Package sampling provides the seeded randomness used by k-means++
// seeding: per-trial random sources derived deterministically from a
// root seed, and inverse-CDF sampling over a discrete weight vector.
package sampling
