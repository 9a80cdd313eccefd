package opf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVector(rng *rand.Rand, d int) []float64 {
	v := make([]float64, d)
	for i := range v {
		v[i] = rng.Float64()*20 - 10
	}
	return v
}

func TestDistanceThreeFourFive(t *testing.T) {
	got, err := Distance([]float64{1, 2}, []float64{4, 6})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestDistanceMismatchedLengths(t *testing.T) {
	_, err := Distance([]float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Distance(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestDistanceMetricProperties checks symmetry, identity, non-negativity and
// the triangle inequality on random vectors.
func TestDistanceMetricProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const eps = 1e-9
	for trial := 0; trial < 200; trial++ {
		d := 1 + rng.Intn(8)
		a := randomVector(rng, d)
		b := randomVector(rng, d)
		c := randomVector(rng, d)

		ab, err := Distance(a, b)
		require.NoError(t, err, "trial %d", trial)
		ba, _ := Distance(b, a)
		require.Equal(t, ab, ba, "trial %d: not symmetric", trial)
		require.GreaterOrEqual(t, ab, 0.0, "trial %d", trial)

		aa, _ := Distance(a, a)
		require.Equal(t, 0.0, aa, "trial %d: distance to self", trial)

		ac, _ := Distance(a, c)
		cb, _ := Distance(c, b)
		require.LessOrEqual(t, ab, ac+cb+eps, "trial %d: triangle inequality", trial)
	}
}

func TestDistanceZeroOnlyForEqualVectors(t *testing.T) {
	got, err := Distance([]float64{0, 0, 1}, []float64{0, 0, 1 + 1e-12})
	require.NoError(t, err)
	assert.NotZero(t, got)
	assert.InDelta(t, 1e-12, got, 1e-15)
}

func TestDistanceNaNPropagates(t *testing.T) {
	got, err := Distance([]float64{math.NaN(), 0}, []float64{0, 0})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}
