package kmeans

import (
	"errors"
	"fmt"
)

// ErrEmptyCentroids is returned when assignment is attempted against a
// collection with no trials or no centroids. It indicates
// misconfiguration, not a transient failure.
var ErrEmptyCentroids = errors.New("centroid collection must contain at least one centroid per trial")

// ErrEmptyDataset is returned when an operation requires at least one
// point and the dataset is empty.
var ErrEmptyDataset = errors.New("dataset must contain at least one point")

// ErrInsufficientData indicates fewer points than requested clusters.
type ErrInsufficientData struct {
	N int
	K int
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("insufficient data: %d points for k=%d", e.N, e.K)
}

// ErrNonConvergence indicates the iteration cap was exceeded before the
// convergence metric dropped to the threshold. The centroid state at
// the cap is retained by the caller, not discarded.
type ErrNonConvergence struct {
	Iterations int
	Shift      float64
}

func (e *ErrNonConvergence) Error() string {
	return fmt.Sprintf("no convergence after %d iterations (shift %g)", e.Iterations, e.Shift)
}
