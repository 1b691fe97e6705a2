package model

import (
	"fmt"
	"slices"
)

// Point is a single clustering input: a stable identifier paired with a
// fixed-dimension feature vector. The dimension must be identical for
// every point in a dataset.
type Point struct {
	ID     string
	Vector []float32
}

// Dim returns the dimensionality of the point's feature vector.
func (p Point) Dim() int {
	return len(p.Vector)
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("Point(%s, dim=%d)", p.ID, len(p.Vector))
}

// CentroidSet holds the K centroids of one trial, ordered by cluster
// index. Centroids are replaced in place during refinement, never
// removed, so len(set) stays K for the lifetime of a clustering run.
type CentroidSet [][]float32

// K returns the number of centroids in the set.
func (s CentroidSet) K() int {
	return len(s)
}

// Dim returns the dimensionality of the centroids, or 0 for an empty set.
func (s CentroidSet) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the set.
func (s CentroidSet) Clone() CentroidSet {
	out := make(CentroidSet, len(s))
	for i, c := range s {
		out[i] = slices.Clone(c)
	}
	return out
}

// CentroidCollection holds the centroid sets of all RUNS trials,
// indexed 0..RUNS-1. It is the unit that is seeded once and then
// mutated synchronously across Lloyd iterations.
type CentroidCollection []CentroidSet

// Runs returns the number of trials in the collection.
func (c CentroidCollection) Runs() int {
	return len(c)
}

// K returns the number of centroids per trial, or 0 for an empty
// collection.
func (c CentroidCollection) K() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Dim returns the centroid dimensionality, or 0 for an empty collection.
func (c CentroidCollection) Dim() int {
	if len(c) == 0 {
		return 0
	}
	return c[0].Dim()
}

// Clone returns a deep copy of the collection.
func (c CentroidCollection) Clone() CentroidCollection {
	out := make(CentroidCollection, len(c))
	for i, s := range c {
		out[i] = s.Clone()
	}
	return out
}

// Vectors returns the feature vectors of points without copying.
func Vectors(points []Point) [][]float32 {
	vecs := make([][]float32, len(points))
	for i, p := range points {
		vecs[i] = p.Vector
	}
	return vecs
}
