// Package opf implements a small distance-based classifier. A labeled sample
// set is relabeled by nearest-neighbor propagation (Train) and new feature
// vectors are then classified by the label of their nearest sample (Classify).
//
// The package performs no I/O. Loading samples from disk lives in the
// datasets package and the interactive front end lives in cmd/opf.
package opf

import (
	"github.com/pkg/errors"
)

// ErrInvalidInput is wrapped by every error caused by the shape of the input:
// mismatched dimensionality, empty vectors, or a sample set too small for the
// requested operation.
var ErrInvalidInput = errors.New("opf: invalid input")

// Label is the class tag attached to a sample. It is kept apart from the
// feature values so that labels are never mixed into distance arithmetic; the
// engine only copies and compares labels.
type Label float64

// Sample is a labeled feature vector.
type Sample struct {
	Features []float64
	Label    Label
}

// Clone returns a copy of s that shares no memory with it.
func (s Sample) Clone() Sample {
	f := make([]float64, len(s.Features))
	copy(f, s.Features)
	return Sample{Features: f, Label: s.Label}
}

// validateSet checks that samples holds at least minCount samples and that every
// feature vector has the same positive length. It returns that length.
func validateSet(samples []Sample, minCount int) (int, error) {
	if len(samples) < minCount {
		return 0, errors.Wrapf(ErrInvalidInput, "need at least %d samples, got %d", minCount, len(samples))
	}
	d := len(samples[0].Features)
	if d == 0 {
		return 0, errors.Wrap(ErrInvalidInput, "sample 0 has no features")
	}
	for i := 1; i < len(samples); i++ {
		if len(samples[i].Features) != d {
			return 0, errors.Wrapf(ErrInvalidInput,
				"sample %d has %d features, expected %d", i, len(samples[i].Features), d)
		}
	}
	return d, nil
}

// checkQuery verifies that query matches the sample dimensionality d.
func checkQuery(query []float64, d int) error {
	if len(query) != d {
		return errors.Wrapf(ErrInvalidInput, "query has %d features, expected %d", len(query), d)
	}
	return nil
}
