package kmeans

import (
	"context"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/parclust/distance"
	"github.com/hupe1980/parclust/internal/sampling"
	"github.com/hupe1980/parclust/model"
)

// Seed builds cfg.Runs independent centroid sets of cfg.K centroids
// each using k-means++ initialization: one uniform pick per trial, then
// K-1 rounds of sampling proportional to the squared distance from the
// nearest centroid chosen so far.
//
// Each trial consumes exactly one uniform draw plus one weighted draw
// per round from its own derived random stream, so results are
// reproducible regardless of how trials are scheduled. Points already
// chosen as centroids are not excluded from later rounds; their weight
// is naturally near zero, and the residual chance of a duplicate
// centroid is intentional k-means++ behavior.
func Seed(ctx context.Context, points []model.Point, cfg Config) (model.CentroidCollection, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrEmptyDataset
	}
	if n < cfg.K {
		return nil, &ErrInsufficientData{N: n, K: cfg.K}
	}

	root := sampling.NewRNG(cfg.Seed)
	cc := make(model.CentroidCollection, cfg.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))

	for r := 0; r < cfg.Runs; r++ {
		rng := root.Derive(r)
		g.Go(func() error {
			set, err := seedOne(ctx, points, cfg.K, rng)
			if err != nil {
				return err
			}
			cc[r] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return cc, nil
}

// seedOne runs k-means++ initialization for a single trial.
func seedOne(ctx context.Context, points []model.Point, k int, rng *sampling.RNG) (model.CentroidSet, error) {
	n := len(points)

	set := make(model.CentroidSet, k)
	set[0] = slices.Clone(points[rng.Intn(n)].Vector)

	// Running minimum squared distance from each point to the nearest
	// centroid chosen so far. Entries only ever decrease.
	mins := make([]float64, n)
	for i := range mins {
		mins[i] = math.Inf(1)
	}

	for round := 1; round < k; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		added := set[round-1]
		for i, p := range points {
			if d := float64(distance.SquaredL2(p.Vector, added)); d < mins[i] {
				mins[i] = d
			}
		}

		weights := slices.Clone(mins)
		if !sampling.Normalize(weights) {
			// Every point coincides with a chosen centroid; fall back
			// to a uniform pick. The draw budget stays one per round.
			weights = sampling.Uniform(n)
		}

		idx, err := sampling.Weighted(weights, rng)
		if err != nil {
			return nil, err
		}

		set[round] = slices.Clone(points[idx].Vector)
	}

	return set, nil
}
