package opf

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Nearest returns the index of the sample closest to query and its distance.
// On ties the lowest index wins.
func Nearest(samples []Sample, query []float64) (int, float64, error) {
	d, err := validateSet(samples, 1)
	if err != nil {
		return -1, 0, err
	}
	if err := checkQuery(query, d); err != nil {
		return -1, 0, err
	}
	idx, dist := nearest(samples, query)
	return idx, dist, nil
}

// Classify returns the label of the sample nearest to query. It is normally
// called with the output of Train.
func Classify(samples []Sample, query []float64) (Label, error) {
	idx, _, err := Nearest(samples, query)
	if err != nil {
		return 0, err
	}
	return samples[idx].Label, nil
}

// ClassifyBatch classifies every query against samples and returns the labels
// in query order. Queries are independent read-only scans and are spread over
// a worker pool; the samples must not be modified while the call runs.
func ClassifyBatch(samples []Sample, queries [][]float64, opts ...Option) ([]Label, error) {
	d, err := validateSet(samples, 1)
	if err != nil {
		return nil, err
	}
	for qi, q := range queries {
		if err := checkQuery(q, d); err != nil {
			return nil, errors.Wrapf(err, "query %d", qi)
		}
	}

	labels := make([]Label, len(queries))
	if len(queries) == 0 {
		return labels, nil
	}

	o := buildOptions(opts)
	workers := o.workerCount(len(queries))

	jobs := make(chan int, len(queries))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for qi := range jobs {
				idx, _ := nearest(samples, queries[qi])
				labels[qi] = samples[idx].Label
			}
		}()
	}
	for qi := range queries {
		jobs <- qi
	}
	close(jobs)
	wg.Wait()

	return labels, nil
}

// nearest scans samples linearly. Inputs must already be validated. NaN
// distances never win; if nothing compares below +Inf, index 0 is returned.
func nearest(samples []Sample, query []float64) (int, float64) {
	minDist := math.Inf(1)
	minIdx := -1
	for i := range samples {
		dist := euclidean(samples[i].Features, query)
		if dist < minDist {
			minDist = dist
			minIdx = i
		}
	}
	if minIdx < 0 {
		return 0, euclidean(samples[0].Features, query)
	}
	return minIdx, minDist
}
