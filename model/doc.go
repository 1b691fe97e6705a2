// Package model defines core types used throughout parclust.
//
// # Data Types
//
//   - Point: Identified feature vector, the unit of clustering input
//   - CentroidSet: One trial's K centroids, mutated in place during refinement
//   - CentroidCollection: All RUNS trials' centroid sets, advanced in lockstep
//
// A CentroidCollection is produced by seeding, refined until convergence
// and read-only afterwards. Cloning helpers exist so callers can hold on
// to intermediate states without aliasing the slices the refiner mutates.
package model
