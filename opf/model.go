package opf

import (
	"sync"
)

// Model owns a sample set and serializes training against classification:
// Fit takes the write lock, Predict and PredictBatch take the read lock.
type Model struct {
	// Options used by Fit and PredictBatch.
	Options Options

	mu      sync.RWMutex
	samples []Sample
	dim     int
	trained bool
}

// NewModel validates samples and returns an untrained model holding a copy
// of them.
func NewModel(samples []Sample, opts ...Option) (*Model, error) {
	d, err := validateSet(samples, 1)
	if err != nil {
		return nil, err
	}
	own := make([]Sample, len(samples))
	for i := range samples {
		own[i] = samples[i].Clone()
	}
	return &Model{
		Options: buildOptions(opts),
		samples: own,
		dim:     d,
	}, nil
}

// Fit runs the training pass over the model's samples and replaces them with
// the relabeled set. Calling Fit again trains the already relabeled set.
func (m *Model) Fit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	trained, err := Train(m.samples, m.optionList()...)
	if err != nil {
		return err
	}
	m.samples = trained
	m.trained = true
	return nil
}

// Predict returns the label of the sample nearest to query.
func (m *Model) Predict(query []float64) (Label, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Classify(m.samples, query)
}

// PredictBatch classifies queries concurrently and returns labels in order.
func (m *Model) PredictBatch(queries [][]float64) ([]Label, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ClassifyBatch(m.samples, queries, m.optionList()...)
}

// Nearest reports the index and distance of the sample nearest to query.
func (m *Model) Nearest(query []float64) (int, float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Nearest(m.samples, query)
}

// Samples returns a deep copy of the current sample set.
func (m *Model) Samples() []Sample {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Sample, len(m.samples))
	for i := range m.samples {
		out[i] = m.samples[i].Clone()
	}
	return out
}

// Dim returns the feature dimensionality.
func (m *Model) Dim() int { return m.dim }

// Len returns the number of samples.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.samples)
}

// Trained reports whether Fit has completed at least once.
func (m *Model) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trained
}

func (m *Model) optionList() []Option {
	return []Option{WithPolicy(m.Options.Policy), WithWorkers(m.Options.Workers)}
}
