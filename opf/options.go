package opf

import "runtime"

// LabelPolicy selects which labels a training scan observes.
type LabelPolicy int

const (
	// FrozenLabels reads every neighbor label from a snapshot taken before the
	// pass. The result does not depend on iteration order, so the scans may
	// run in parallel.
	FrozenLabels LabelPolicy = iota

	// InPlaceLabels overwrites labels as the pass progresses, so a scan for
	// sample i may observe labels already rewritten for samples k < i. This
	// reproduces the behavior of the original tool and always runs serially.
	InPlaceLabels
)

// String implements fmt.Stringer.
func (p LabelPolicy) String() string {
	switch p {
	case FrozenLabels:
		return "frozen"
	case InPlaceLabels:
		return "in-place"
	default:
		return "unknown"
	}
}

// ParseLabelPolicy maps the names returned by String back to a policy.
func ParseLabelPolicy(s string) (LabelPolicy, bool) {
	switch s {
	case "frozen", "":
		return FrozenLabels, true
	case "in-place", "inplace":
		return InPlaceLabels, true
	}
	return FrozenLabels, false
}

// Options configures Train and ClassifyBatch.
//
// Policy  – label visibility during training (default FrozenLabels).
// Workers – goroutines used for independent scans; 0 means runtime.NumCPU().
type Options struct {
	Policy  LabelPolicy
	Workers int
}

// Option is a functional option for Options.
type Option func(*Options)

// WithPolicy sets the label policy used by the training pass.
func WithPolicy(p LabelPolicy) Option {
	return func(o *Options) {
		o.Policy = p
	}
}

// WithWorkers sets the number of worker goroutines. Values <= 0 select
// runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Policy: FrozenLabels}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// workerCount resolves the number of goroutines to use for n jobs.
func (o Options) workerCount(n int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}
