package parclust

import (
	"errors"
	"fmt"

	"github.com/hupe1980/parclust/internal/kmeans"
	"github.com/hupe1980/parclust/internal/sampling"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRuns is returned when the trial count is not positive.
	ErrInvalidRuns = errors.New("runs must be positive")

	// ErrInvalidThreshold is returned when the convergence threshold is
	// not positive.
	ErrInvalidThreshold = errors.New("convergence threshold must be positive")

	// ErrEmptyCentroids is returned when an operation receives a
	// centroid collection with no trials or no centroids. It indicates
	// misconfiguration and is raised immediately.
	ErrEmptyCentroids = errors.New("centroid collection must contain at least one centroid per trial")

	// ErrSamplingExhausted is returned when weighted sampling cannot
	// select an index. It indicates a numerical-precision bug and is
	// surfaced rather than silently defaulted.
	ErrSamplingExhausted = errors.New("weighted sampling exhausted")
)

// ErrInsufficientData indicates fewer points than requested clusters.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInsufficientData struct {
	N     int
	K     int
	cause error
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("insufficient data: %d points for k=%d", e.N, e.K)
}

func (e *ErrInsufficientData) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a point whose vector dimension differs
// from the rest of the dataset.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	ID       string
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch for point %q: expected %d, got %d", e.ID, e.Expected, e.Actual)
}

// ErrNonConvergence indicates the iteration cap was exceeded before the
// shift metric reached the threshold. The centroid state at the cap is
// still returned alongside this error.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrNonConvergence struct {
	Iterations int
	Shift      float64
	cause      error
}

func (e *ErrNonConvergence) Error() string {
	return fmt.Sprintf("no convergence after %d iterations (shift %g)", e.Iterations, e.Shift)
}

func (e *ErrNonConvergence) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var id *kmeans.ErrInsufficientData
	if errors.As(err, &id) {
		return &ErrInsufficientData{N: id.N, K: id.K, cause: err}
	}

	// An empty dataset cannot satisfy any k; unify with the
	// insufficient-data fault.
	if errors.Is(err, kmeans.ErrEmptyDataset) {
		return &ErrInsufficientData{N: 0, cause: err}
	}

	if errors.Is(err, kmeans.ErrEmptyCentroids) {
		return fmt.Errorf("%w: %w", ErrEmptyCentroids, err)
	}

	if errors.Is(err, sampling.ErrExhausted) || errors.Is(err, sampling.ErrNoWeights) {
		return fmt.Errorf("%w: %w", ErrSamplingExhausted, err)
	}

	var nc *kmeans.ErrNonConvergence
	if errors.As(err, &nc) {
		return &ErrNonConvergence{Iterations: nc.Iterations, Shift: nc.Shift, cause: err}
	}

	return err
}
