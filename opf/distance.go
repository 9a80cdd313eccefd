package opf

import (
	"math"

	"github.com/pkg/errors"
)

// Distance returns the Euclidean distance between a and b. Both vectors must
// be non-empty and of equal length.
func Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Wrapf(ErrInvalidInput, "vector lengths differ: %d != %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, errors.Wrap(ErrInvalidInput, "vectors are empty")
	}
	return euclidean(a, b), nil
}

// euclidean computes the distance without validation. Callers must have
// checked that the lengths match.
func euclidean(a, b []float64) float64 {
	sum := 0.0
	for k := range a {
		d := a[k] - b[k]
		sum += d * d
	}
	return math.Sqrt(sum)
}
