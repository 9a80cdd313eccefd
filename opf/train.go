package opf

import (
	"math"
	"sync"
)

// Train relabels every sample with the label of its nearest other sample and
// returns the relabeled set in input order. The input slice is not modified;
// feature vectors of the result are copies.
//
// Ties are broken by index: the first sample found at the minimum distance
// wins. At least two samples are required.
func Train(samples []Sample, opts ...Option) ([]Sample, error) {
	if _, err := validateSet(samples, 2); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	out := make([]Sample, len(samples))
	for i := range samples {
		out[i] = samples[i].Clone()
	}

	if o.Policy == InPlaceLabels {
		trainInPlace(out)
		return out, nil
	}

	// snapshot of the original labels; scans only read from here
	frozen := make([]Label, len(samples))
	for i := range samples {
		frozen[i] = samples[i].Label
	}

	workers := o.workerCount(len(out))
	if workers == 1 {
		for i := range out {
			out[i].Label = frozen[nearestOther(out, i)]
		}
		return out, nil
	}

	jobs := make(chan int, len(out))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				// each worker writes a distinct index
				out[i].Label = frozen[nearestOther(out, i)]
			}
		}()
	}
	for i := range out {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out, nil
}

// trainInPlace runs the pass serially, overwriting labels as it goes.
func trainInPlace(samples []Sample) {
	for i := range samples {
		samples[i].Label = samples[nearestOther(samples, i)].Label
	}
}

// nearestOther returns the index of the sample closest to samples[i],
// excluding i itself. samples must hold at least two entries. NaN distances
// never win; when no distance is finite the first other index is returned.
func nearestOther(samples []Sample, i int) int {
	minDist := math.Inf(1)
	minIdx := -1
	for j := range samples {
		if j == i {
			continue
		}
		dist := euclidean(samples[i].Features, samples[j].Features)
		if dist < minDist {
			minDist = dist
			minIdx = j
		}
	}
	if minIdx < 0 {
		if i == 0 {
			return 1
		}
		return 0
	}
	return minIdx
}
