package sampling

import "errors"

// ErrExhausted is returned when inverse-CDF sampling fails to select an
// index. With normalized weights this indicates a numerical-precision
// bug in the caller, not a transient condition.
var ErrExhausted = errors.New("weighted sampling exhausted without selecting an index")

// ErrNoWeights is returned when the weight vector is empty.
var ErrNoWeights = errors.New("weight vector must contain at least one element")

// Weighted draws an index from the discrete distribution described by
// weights, which must be non-negative and sum to (approximately) 1.
//
// It performs an inverse-CDF scan: a single uniform draw in [0, 1) is
// consumed from rng and the first index whose cumulative weight exceeds
// the draw is returned. Exactly one draw is consumed per call, so
// callers can rely on a fixed draw budget for reproducibility.
//
// Floating-point rounding can leave the cumulative sum just below the
// draw after the scan completes. In that case the last index with
// positive weight is returned instead of failing, which keeps
// degenerate distributions (for instance all mass on one point) usable.
// ErrExhausted is returned only when no index carries positive weight.
func Weighted(weights []float64, rng *RNG) (int, error) {
	if len(weights) == 0 {
		return 0, ErrNoWeights
	}

	u := rng.Float64()

	last := -1
	var cum float64
	for i, w := range weights {
		if w > 0 {
			last = i
		}
		cum += w
		if u < cum {
			return i, nil
		}
	}

	if last < 0 {
		return 0, ErrExhausted
	}

	return last, nil
}

// Uniform returns the uniform distribution over n elements. It is the
// fallback the seeder uses when every candidate weight collapses to
// zero (all points coincide with a centroid already).
func Uniform(n int) []float64 {
	w := make([]float64, n)
	p := 1 / float64(n)
	for i := range w {
		w[i] = p
	}
	return w
}

// Normalize scales weights in place so they sum to 1 and reports
// whether normalization was possible. A total of zero (or a negative
// rounding artifact) leaves the input untouched and returns false.
func Normalize(weights []float64) bool {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return false
	}

	inv := 1 / total
	for i := range weights {
		weights[i] *= inv
	}
	return true
}
