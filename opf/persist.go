package opf

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// modelVersion is incremented when the on-disk model format changes.
const modelVersion = 1

// ErrBadModelFile is returned by LoadModel when the file is not a gob model or
// its contents do not describe a usable model. Validation failures also match
// ErrInvalidInput.
var ErrBadModelFile = errors.New("opf: bad model file")

// modelFile is the gob representation of a Model.
type modelFile struct {
	Version   int
	Dim       int
	Trained   bool
	Policy    LabelPolicy
	CreatedAt int64
	Features  [][]float64
	Labels    []Label
}

// Save writes the model to path. The write is atomic: data goes to a temp
// file in the same directory which is then renamed over path.
func (m *Model) Save(path string) error {
	if path == "" {
		return errors.New("empty model path")
	}

	m.mu.RLock()
	mf := modelFile{
		Version:   modelVersion,
		Dim:       m.dim,
		Trained:   m.trained,
		Policy:    m.Options.Policy,
		CreatedAt: time.Now().Unix(),
		Features:  make([][]float64, len(m.samples)),
		Labels:    make([]Label, len(m.samples)),
	}
	for i, s := range m.samples {
		mf.Features[i] = s.Features
		mf.Labels[i] = s.Label
	}
	m.mu.RUnlock()

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return errors.Wrap(err, "create temp model file")
	}
	tmpName := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		_ = os.Remove(tmpName)
	}()

	if err := gob.NewEncoder(tmpFile).Encode(&mf); err != nil {
		return errors.Wrap(err, "encode model")
	}
	if err := tmpFile.Sync(); err != nil {
		return errors.Wrap(err, "sync temp model file")
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "close temp model file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "rename temp model file")
	}
	return nil
}

// LoadModel reads a model written by Save. The options are applied to the
// returned model; the stored policy is used unless one is given.
func LoadModel(path string, opts ...Option) (*Model, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open model %s", path)
	}
	defer fh.Close()

	var mf modelFile
	if err := gob.NewDecoder(fh).Decode(&mf); err != nil {
		return nil, errors.Wrapf(multierr.Append(ErrBadModelFile, err), "decode model %s", path)
	}
	if mf.Version != modelVersion {
		return nil, errors.Wrapf(ErrBadModelFile, "version mismatch: file=%d expected=%d", mf.Version, modelVersion)
	}
	if len(mf.Features) != len(mf.Labels) {
		return nil, errors.Wrapf(ErrBadModelFile, "%d feature rows but %d labels", len(mf.Features), len(mf.Labels))
	}

	samples := make([]Sample, len(mf.Features))
	for i := range mf.Features {
		samples[i] = Sample{Features: mf.Features[i], Label: mf.Labels[i]}
	}
	d, err := validateSet(samples, 1)
	if err != nil {
		return nil, errors.Wrap(multierr.Append(ErrBadModelFile, err), "validate model rows")
	}
	if d != mf.Dim {
		return nil, errors.Wrapf(ErrBadModelFile, "dimension mismatch: file=%d rows=%d", mf.Dim, d)
	}

	o := Options{Policy: mf.Policy}
	for _, fn := range opts {
		fn(&o)
	}
	return &Model{
		Options: o,
		samples: samples,
		dim:     d,
		trained: mf.Trained,
	}, nil
}
