// Package generator draws random query vectors for exercising a trained
// classifier. The random source is always supplied by the caller so that runs
// can be reproduced from a seed.
package generator

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Default bounds match the value range of the banana dataset.
const (
	DefaultMin = -2.0
	DefaultMax = 2.0
)

// Generator draws vectors with every component uniform in [Min, Max).
type Generator struct {
	Min float64
	Max float64

	rng *rand.Rand
}

// New creates a Generator. rng must be non-nil and min must be below max.
func New(rng *rand.Rand, min, max float64) (*Generator, error) {
	if rng == nil {
		return nil, errors.New("random source cannot be nil")
	}
	if !(min < max) {
		return nil, errors.Errorf("min must be below max, got [%v, %v]", min, max)
	}
	return &Generator{Min: min, Max: max, rng: rng}, nil
}

// NewSeeded is shorthand for New with a fresh source seeded by seed.
func NewSeeded(seed int64, min, max float64) (*Generator, error) {
	return New(rand.New(rand.NewSource(seed)), min, max)
}

// Vector returns a vector of d random components.
func (g *Generator) Vector(d int) ([]float64, error) {
	if d < 1 {
		return nil, errors.Errorf("dimension must be >= 1, got %d", d)
	}
	v := make([]float64, d)
	span := g.Max - g.Min
	for i := range v {
		v[i] = g.Min + g.rng.Float64()*span
	}
	return v, nil
}

// Vectors returns n random vectors of dimension d.
func (g *Generator) Vectors(n, d int) ([][]float64, error) {
	if n < 0 {
		return nil, errors.Errorf("count must be >= 0, got %d", n)
	}
	out := make([][]float64, n)
	for i := range out {
		v, err := g.Vector(d)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Contains reports whether every component of v lies in [Min, Max]. The
// interactive front end uses it to detect the "leave" value.
func (g *Generator) Contains(v []float64) bool {
	for _, x := range v {
		if x < g.Min || x > g.Max {
			return false
		}
	}
	return true
}
