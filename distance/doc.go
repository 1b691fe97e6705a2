// Package distance provides the vector distance kernels used by the
// clustering core.
//
// Clustering in parclust is defined over Euclidean geometry, so the
// package exposes squared and plain L2 distance plus the small set of
// vector helpers (dot product, in-place scaling, mean accumulation)
// the seeding and refinement phases need.
//
// # Usage
//
//	d2 := distance.SquaredL2(a, b)
//	d := distance.L2(a, b)
package distance
