package kmeans

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/parclust/distance"
	"github.com/hupe1980/parclust/internal/sampling"
	"github.com/hupe1980/parclust/model"
)

// Refine advances all trials of cc in lockstep through Lloyd
// iterations until the convergence metric (the maximum across trials
// of the summed centroid displacement) drops to cfg.Threshold.
//
// cc is mutated in place and returned together with the number of
// iterations executed. Updates are synchronous: every candidate
// centroid of an iteration is computed against a single consistent
// snapshot of the previous iteration before any centroid is replaced.
//
// With cfg.MaxIterations > 0 the loop stops at the cap and returns an
// ErrNonConvergence; cc then holds the best state obtained so far.
func Refine(ctx context.Context, points []model.Point, cc model.CentroidCollection, cfg Config) (model.CentroidCollection, int, error) {
	if len(points) == 0 {
		return nil, 0, ErrEmptyDataset
	}
	if cc.Runs() == 0 || cc.K() == 0 {
		return nil, 0, ErrEmptyCentroids
	}

	runs := cc.Runs()
	k := cc.K()
	dim := cc.Dim()
	workers := max(cfg.Workers, 1)

	// Reseed draws for empty clusters come from per-trial streams
	// offset past the seeding streams, so refinement never perturbs
	// seeding reproducibility.
	root := sampling.NewRNG(cfg.Seed)
	rngs := make([]*sampling.RNG, runs)
	for r := range rngs {
		rngs[r] = root.Derive(cfg.Runs + r)
	}

	iterations := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, iterations, err
		}

		assign, err := assignAll(ctx, points, cc, workers)
		if err != nil {
			return nil, iterations, err
		}

		shifts := make([]float64, runs)

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		for r := 0; r < runs; r++ {
			g.Go(func() error {
				return updateRun(points, cc[r], assign[r], k, dim, rngs[r], cfg.Policy, &shifts[r])
			})
		}

		if err := g.Wait(); err != nil {
			return nil, iterations, err
		}

		iterations++

		var metric float64
		for _, s := range shifts {
			if s > metric {
				metric = s
			}
		}

		if cfg.OnIteration != nil {
			cfg.OnIteration(metric)
		}

		if metric <= cfg.Threshold {
			return cc, iterations, nil
		}

		if cfg.MaxIterations > 0 && iterations >= cfg.MaxIterations {
			return cc, iterations, &ErrNonConvergence{Iterations: iterations, Shift: metric}
		}
	}
}

// updateRun recomputes one trial's centroids as the coordinate-wise
// means of their assigned points, resolves empty clusters by policy,
// accumulates the trial's summed centroid displacement into shift and
// swaps the new centroids in.
func updateRun(points []model.Point, set model.CentroidSet, assign []int, k, dim int, rng *sampling.RNG, policy EmptyClusterPolicy, shift *float64) error {
	sums := make([][]float32, k)
	counts := make([]int, k)
	for j := range sums {
		sums[j] = make([]float32, dim)
	}

	for i, p := range points {
		j := assign[i]
		distance.AddInPlace(sums[j], p.Vector)
		counts[j]++
	}

	var total float64
	for j := 0; j < k; j++ {
		var next []float32

		switch {
		case counts[j] > 0:
			next = sums[j]
			distance.ScaleInPlace(next, 1/float32(counts[j]))
		case policy == EmptyClusterKeep:
			next = set[j]
		default:
			next = slices.Clone(points[rng.Intn(len(points))].Vector)
		}

		total += float64(distance.L2(set[j], next))
		set[j] = next
	}

	*shift = total
	return nil
}
