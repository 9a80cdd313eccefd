package datasets

import (
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"

	"github.com/Noofbiz/opf/opf"
)

// BatchFlat stores a batch of samples in flat contiguous buffers.
type BatchFlat struct {
	Features  []float64
	Labels    []float64
	BatchSize int
	Dim       int
}

// MakeBatchFlat flattens samples into contiguous buffers.
func MakeBatchFlat(samples []opf.Sample) (*BatchFlat, error) {
	if len(samples) == 0 {
		return &BatchFlat{}, nil
	}

	batchSize := len(samples)
	dim := len(samples[0].Features)

	flat := make([]float64, batchSize*dim)
	labels := make([]float64, batchSize)
	for i, s := range samples {
		if len(s.Features) != dim {
			return nil, errors.Errorf("inconsistent feature dimensions at example %d: expected %d, got %d",
				i, dim, len(s.Features))
		}
		copy(flat[i*dim:], s.Features)
		labels[i] = float64(s.Label)
	}

	return &BatchFlat{
		Features:  flat,
		Labels:    labels,
		BatchSize: batchSize,
		Dim:       dim,
	}, nil
}

// Row returns the features of example i as a slice into the flat buffer.
func (b *BatchFlat) Row(i int) []float64 {
	return b.Features[i*b.Dim : (i+1)*b.Dim]
}

// ToGomlxTensors converts the batch to gomlx tensors of shape
// [BatchSize, Dim] (features) and [BatchSize] (labels). Empty batches have no
// tensor shape and are rejected.
func (b *BatchFlat) ToGomlxTensors() (*tensors.Tensor, *tensors.Tensor, error) {
	if b.BatchSize == 0 || b.Dim == 0 {
		return nil, nil, errors.New("cannot convert an empty batch to tensors")
	}
	rows := make([][]float64, b.BatchSize)
	for i := range b.BatchSize {
		rows[i] = b.Row(i)
	}
	featT := tensors.FromAnyValue(rows)
	labT := tensors.FromAnyValue(b.Labels)
	return featT, labT, nil
}
