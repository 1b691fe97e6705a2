package parclust

import (
	"runtime"

	"github.com/hupe1980/parclust/internal/kmeans"
)

// EmptyClusterPolicy selects how refinement resolves a cluster that
// received zero points in an iteration. The policy is applied
// consistently for the lifetime of an invocation.
type EmptyClusterPolicy int

const (
	// EmptyClusterReseed replaces an empty cluster's centroid with a
	// random point from the dataset (the default).
	EmptyClusterReseed EmptyClusterPolicy = iota

	// EmptyClusterKeep retains the previous centroid unchanged.
	EmptyClusterKeep
)

// Defaults for optional configuration.
const (
	DefaultRuns                 = 8
	DefaultConvergenceThreshold = 0.01
)

type options struct {
	runs          int
	threshold     float64
	maxIterations int
	workers       int
	seed          *int64
	policy        EmptyClusterPolicy
	logger        *Logger
	metrics       MetricsCollector
}

// Option configures KMeans constructor behavior.
type Option func(*options)

// WithRuns sets the number of independent trials advanced in lockstep.
// More trials cost proportionally more work per iteration but make a
// good final clustering much more likely; the best trial is selected by
// cost. Default: 8.
func WithRuns(runs int) Option {
	return func(o *options) {
		o.runs = runs
	}
}

// WithConvergenceThreshold sets the threshold the convergence metric
// (maximum per-trial summed centroid displacement) is compared against.
// Default: 0.01.
func WithConvergenceThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithMaxIterations caps Lloyd iterations. When the cap is exceeded the
// refinement returns an ErrNonConvergence together with the best
// centroid state obtained so far. 0 (the default) means uncapped;
// pathological inputs such as heavily duplicated points can stall
// convergence, so long-running callers should set a cap.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithWorkers bounds the parallelism of the per-point map phases
// (assignment and cost) and of per-trial work. Default: GOMAXPROCS.
//
// The worker count never affects results: randomness is pre-scoped to
// each trial, and all reads of an iteration's centroids complete before
// any are replaced.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithRandomSeed fixes the root random seed for reproducible results.
// If unset, a time-derived seed is used.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithEmptyClusterPolicy sets the empty-cluster resolution policy.
// Default: EmptyClusterReseed.
func WithEmptyClusterPolicy(policy EmptyClusterPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithLogger sets the logger. If nil, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector sets the metrics collector.
// If nil, metrics collection is disabled.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}

func defaultOptions() options {
	return options{
		runs:      DefaultRuns,
		threshold: DefaultConvergenceThreshold,
		workers:   runtime.GOMAXPROCS(0),
		policy:    EmptyClusterReseed,
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
	}
}

func (o options) policyInternal() kmeans.EmptyClusterPolicy {
	if o.policy == EmptyClusterKeep {
		return kmeans.EmptyClusterKeep
	}
	return kmeans.EmptyClusterReseed
}
