package kmeans

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/parclust/distance"
	"github.com/hupe1980/parclust/model"
)

// NearestOne returns the index of the centroid in set closest to vec
// and the squared distance to it. Ties break to the lowest index.
// The set must not be empty (caller's responsibility).
func NearestOne(vec []float32, set model.CentroidSet) (int, float32) {
	best := 0
	minDist := float32(math.MaxFloat32)

	for j, center := range set {
		if d := distance.SquaredL2(vec, center); d < minDist {
			minDist = d
			best = j
		}
	}

	return best, minDist
}

// Nearest returns, for each trial in cc, the index of the centroid
// closest to vec. It is pure and allocates only the result slice.
func Nearest(vec []float32, cc model.CentroidCollection) ([]int, error) {
	if cc.Runs() == 0 || cc.K() == 0 {
		return nil, ErrEmptyCentroids
	}

	out := make([]int, cc.Runs())
	for r, set := range cc {
		out[r], _ = NearestOne(vec, set)
	}

	return out, nil
}

// assignment is the per-iteration nearest-centroid matrix, indexed
// [run][point].
type assignment [][]int

// assignAll computes the assignment matrix for all points against a
// single consistent snapshot of cc. Points are partitioned into chunks
// that are mapped in parallel; results land in preallocated slices in
// original point order, so no synchronization beyond the group wait is
// needed.
func assignAll(ctx context.Context, points []model.Point, cc model.CentroidCollection, workers int) (assignment, error) {
	if cc.Runs() == 0 || cc.K() == 0 {
		return nil, ErrEmptyCentroids
	}

	runs := cc.Runs()
	n := len(points)

	assign := make(assignment, runs)
	for r := range assign {
		assign[r] = make([]int, n)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo, hi := range chunks(n, workers) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				vec := points[i].Vector
				for r, set := range cc {
					assign[r][i], _ = NearestOne(vec, set)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assign, nil
}

// chunks yields [lo, hi) ranges that partition n items into at most
// workers contiguous chunks.
func chunks(n, workers int) func(yield func(int, int) bool) {
	if workers < 1 {
		workers = 1
	}

	size := (n + workers - 1) / workers
	if size < 1 {
		size = 1
	}

	return func(yield func(int, int) bool) {
		for lo := 0; lo < n; lo += size {
			hi := lo + size
			if hi > n {
				hi = n
			}
			if !yield(lo, hi) {
				return
			}
		}
	}
}
