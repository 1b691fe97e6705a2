package kmeans

// EmptyClusterPolicy selects how the refiner resolves a cluster that
// received zero points in an iteration. The chosen policy is applied
// consistently for the whole refinement; silently propagating an
// undefined mean would corrupt every subsequent distance computation
// for that trial.
type EmptyClusterPolicy int

const (
	// EmptyClusterReseed replaces an empty cluster's centroid with a
	// random point from the dataset.
	EmptyClusterReseed EmptyClusterPolicy = iota

	// EmptyClusterKeep retains the previous centroid unchanged.
	EmptyClusterKeep
)

// Config carries the parameters of one clustering invocation. K, Runs
// and the random seed are fixed for its lifetime.
type Config struct {
	// K is the target number of clusters per trial.
	K int

	// Runs is the number of independent trials advanced in lockstep.
	Runs int

	// Threshold is the convergence threshold compared against the
	// maximum per-trial summed centroid displacement.
	Threshold float64

	// MaxIterations caps Lloyd iterations. 0 means uncapped.
	MaxIterations int

	// Workers bounds the parallelism of per-point map phases.
	Workers int

	// Policy resolves empty clusters during refinement.
	Policy EmptyClusterPolicy

	// Seed is the root seed; each trial derives its own sub-seed.
	Seed int64

	// OnIteration, if set, is invoked after every Lloyd iteration with
	// the convergence metric of that iteration.
	OnIteration func(shift float64)
}
