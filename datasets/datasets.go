package datasets

import (
	"github.com/pkg/errors"

	"github.com/Noofbiz/opf/opf"
)

// This package loads labeled sample sets from disk for the opf classifier.
//
// Two on-disk formats are supported:
//
// Text (the format of the original banana.txt dataset)
//   - whitespace separated tokens
//   - first record: sample count n, feature dimensionality d, class count c
//   - then n records of d feature reals followed by one label real
//
// CSV
//   - a header row naming the columns
//   - one column holds the label (matched case-insensitively); every other
//     column is a feature, in header order
//
// Both loaders read the whole file eagerly. Sample sets for this classifier
// are scanned in full by every training pass, so lazy row access would only
// add repeated I/O.

// Dataset is an in-memory labeled sample set.
type Dataset struct {
	// Classes is the class count declared by the text header. It is
	// informational only; CSV datasets count the distinct labels instead.
	Classes int

	// Dim is the feature dimensionality shared by every sample.
	Dim int

	// FeatureNames holds CSV column names. Text datasets leave it nil.
	FeatureNames []string

	// Samples in file order.
	Samples []opf.Sample
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Example returns the features and label of sample idx.
func (d *Dataset) Example(idx int) ([]float64, opf.Label, error) {
	if idx < 0 || idx >= len(d.Samples) {
		return nil, 0, errors.Errorf("index %d out of range [0, %d)", idx, len(d.Samples))
	}
	s := d.Samples[idx]
	return s.Features, s.Label, nil
}

// Batch returns the samples at the given indices, in the order given.
func (d *Dataset) Batch(indices []int) ([]opf.Sample, error) {
	out := make([]opf.Sample, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(d.Samples) {
			return nil, errors.Errorf("batch position %d: index %d out of range [0, %d)", i, idx, len(d.Samples))
		}
		out[i] = d.Samples[idx]
	}
	return out, nil
}

// Queries returns the feature vectors of every sample, for use as
// classification queries.
func (d *Dataset) Queries() [][]float64 {
	out := make([][]float64, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = s.Features
	}
	return out
}

// distinctLabels counts the different labels in samples.
func distinctLabels(samples []opf.Sample) int {
	seen := make(map[opf.Label]struct{})
	for _, s := range samples {
		seen[s.Label] = struct{}{}
	}
	return len(seen)
}
