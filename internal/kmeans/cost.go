package kmeans

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/parclust/model"
)

// Cost computes the clustering objective of each trial: the sum of
// squared distances from every point to its nearest centroid in that
// trial. It is pure; neither points nor cc are mutated.
func Cost(ctx context.Context, points []model.Point, cc model.CentroidCollection, workers int) ([]float64, error) {
	if cc.Runs() == 0 || cc.K() == 0 {
		return nil, ErrEmptyCentroids
	}

	runs := cc.Runs()
	workers = max(workers, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// One partial sum vector per chunk; merged after the group waits so
	// no locking is needed.
	var partials [][]float64

	for lo, hi := range chunks(len(points), workers) {
		part := make([]float64, runs)
		partials = append(partials, part)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				for r, set := range cc {
					_, d := NearestOne(points[i].Vector, set)
					part[r] += float64(d)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	costs := make([]float64, runs)
	for _, part := range partials {
		for r, v := range part {
			costs[r] += v
		}
	}

	return costs, nil
}

// BestRun returns the index of the trial with minimum cost. Ties break
// to the lowest index.
func BestRun(costs []float64) int {
	best := 0
	for r, c := range costs {
		if c < costs[best] {
			best = r
		}
	}
	return best
}
