package parclust

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/parclust/internal/kmeans"
	"github.com/hupe1980/parclust/model"
)

// KMeans clusters a fixed dataset into k clusters by advancing multiple
// independent k-means++ trials in lockstep. K, the trial count and the
// random seed are fixed for the lifetime of the instance.
//
// A KMeans is safe for concurrent use; all state lives in the inputs
// and outputs of its methods.
type KMeans struct {
	k    int
	seed int64
	opts options
}

// New creates a KMeans for the given cluster count.
func New(k int, optFns ...Option) (*KMeans, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if k <= 0 {
		return nil, ErrInvalidK
	}
	if opts.runs <= 0 {
		return nil, ErrInvalidRuns
	}
	if opts.threshold <= 0 {
		return nil, ErrInvalidThreshold
	}
	if opts.workers < 1 {
		opts.workers = 1
	}

	seed := time.Now().UnixNano()
	if opts.seed != nil {
		seed = *opts.seed
	}

	return &KMeans{
		k:    k,
		seed: seed,
		opts: opts,
	}, nil
}

// K returns the configured cluster count.
func (km *KMeans) K() int { return km.k }

// Runs returns the configured trial count.
func (km *KMeans) Runs() int { return km.opts.runs }

// Seed builds the initial centroid collection: one k-means++ seeded
// centroid set per trial. The dataset is not mutated and no partial
// collection is produced on error.
func (km *KMeans) Seed(ctx context.Context, points []model.Point) (model.CentroidCollection, error) {
	start := time.Now()

	cc, err := km.seedCollection(ctx, points)

	km.opts.metrics.RecordSeeding(time.Since(start), err)
	km.opts.logger.LogSeeding(ctx, km.k, km.opts.runs, len(points), err)

	return cc, err
}

func (km *KMeans) seedCollection(ctx context.Context, points []model.Point) (model.CentroidCollection, error) {
	if err := validatePoints(points); err != nil {
		return nil, err
	}

	cc, err := kmeans.Seed(ctx, points, km.config())
	if err != nil {
		return nil, translateError(err)
	}

	return cc, nil
}

// Refine advances all trials of cc through Lloyd iterations until the
// convergence metric drops to the configured threshold. cc is mutated
// in place and returned.
//
// If a max-iteration cap is configured and exceeded, Refine returns the
// best centroid state obtained so far together with an
// ErrNonConvergence.
func (km *KMeans) Refine(ctx context.Context, points []model.Point, cc model.CentroidCollection) (model.CentroidCollection, error) {
	refined, _, err := km.refineTimed(ctx, points, cc)
	return refined, err
}

func (km *KMeans) refineTimed(ctx context.Context, points []model.Point, cc model.CentroidCollection) (model.CentroidCollection, int, error) {
	start := time.Now()

	refined, iterations, err := km.refine(ctx, points, cc)

	km.opts.metrics.RecordRefine(iterations, time.Since(start), err)
	km.opts.logger.LogRefine(ctx, iterations, err)

	return refined, iterations, err
}

func (km *KMeans) refine(ctx context.Context, points []model.Point, cc model.CentroidCollection) (model.CentroidCollection, int, error) {
	if err := validatePoints(points); err != nil {
		return nil, 0, err
	}
	if len(points) > 0 && cc.Dim() != 0 && cc.Dim() != points[0].Dim() {
		return nil, 0, &ErrDimensionMismatch{Expected: points[0].Dim(), Actual: cc.Dim()}
	}

	refined, iterations, err := kmeans.Refine(ctx, points, cc, km.config())
	if err != nil {
		// Non-convergence still carries a usable state.
		return refined, iterations, translateError(err)
	}

	return refined, iterations, nil
}

// Cost computes the sum of squared distances from every point to its
// nearest centroid, per trial. Neither input is mutated.
func (km *KMeans) Cost(ctx context.Context, points []model.Point, cc model.CentroidCollection) ([]float64, error) {
	start := time.Now()

	costs, err := kmeans.Cost(ctx, points, cc, km.opts.workers)
	if err != nil {
		err = translateError(err)
	}

	km.opts.metrics.RecordCost(time.Since(start), err)

	return costs, err
}

// Nearest returns, for each trial in cc, the index of the centroid
// nearest to vec (ties break to the lowest index). It backs external
// per-point diagnostics such as cluster-membership reporting.
func (km *KMeans) Nearest(vec []float32, cc model.CentroidCollection) ([]int, error) {
	idx, err := kmeans.Nearest(vec, cc)
	if err != nil {
		return nil, translateError(err)
	}
	return idx, nil
}

// Result is the outcome of a full clustering invocation.
type Result struct {
	// Centroids holds the converged centroid sets of all trials.
	Centroids model.CentroidCollection

	// Costs is the clustering objective per trial.
	Costs []float64

	// BestRun is the index of the trial with minimum cost.
	BestRun int

	// Iterations is the number of Lloyd iterations executed.
	Iterations int
}

// Best returns the winning trial's centroid set.
func (r *Result) Best() model.CentroidSet {
	return r.Centroids[r.BestRun]
}

// Fit runs the full pipeline: seed, refine until convergence and rank
// the trials by cost.
//
// On non-convergence Fit returns both the Result for the state at the
// iteration cap and an ErrNonConvergence, so callers can decide whether
// the partial outcome is acceptable.
func (km *KMeans) Fit(ctx context.Context, points []model.Point) (*Result, error) {
	cc, err := km.Seed(ctx, points)
	if err != nil {
		return nil, err
	}

	cc, iterations, refineErr := km.refineTimed(ctx, points, cc)
	if refineErr != nil {
		var nc *ErrNonConvergence
		if !errors.As(refineErr, &nc) {
			return nil, refineErr
		}
		// cc holds the best state at the cap; rank it anyway.
	}

	costs, err := km.Cost(ctx, points, cc)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Centroids:  cc,
		Costs:      costs,
		BestRun:    kmeans.BestRun(costs),
		Iterations: iterations,
	}

	km.opts.logger.LogFit(ctx, result.Iterations, result.BestRun, costs[result.BestRun])

	return result, refineErr
}

func (km *KMeans) config() kmeans.Config {
	return kmeans.Config{
		K:             km.k,
		Runs:          km.opts.runs,
		Threshold:     km.opts.threshold,
		MaxIterations: km.opts.maxIterations,
		Workers:       km.opts.workers,
		Policy:        km.opts.policyInternal(),
		Seed:          km.seed,
		OnIteration:   km.opts.metrics.RecordIteration,
	}
}

func validatePoints(points []model.Point) error {
	if len(points) == 0 {
		return nil // size faults are raised by the core
	}

	dim := points[0].Dim()
	for _, p := range points[1:] {
		if p.Dim() != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: p.Dim(), ID: p.ID}
		}
	}

	return nil
}
