package datasets

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Noofbiz/opf/opf"
)

// maxPrealloc caps the capacity reserved from header counts.
const maxPrealloc = 4096

// OpenText loads a text dataset from path.
func OpenText(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	ds, err := LoadText(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load dataset %s", path)
	}
	return ds, nil
}

// LoadText reads a dataset in the "n d c" header format. Tokens after the
// n-th record are ignored.
func LoadText(r io.Reader) (*Dataset, error) {
	tr := newTokenReader(r)

	n, err := tr.readInt("sample count")
	if err != nil {
		return nil, err
	}
	d, err := tr.readInt("feature count")
	if err != nil {
		return nil, err
	}
	c, err := tr.readInt("class count")
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.Errorf("sample count must be positive, got %d", n)
	}
	if d < 1 {
		return nil, errors.Errorf("feature count must be positive, got %d", d)
	}

	// the header is untrusted; slices grow as records actually parse
	samples := make([]opf.Sample, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		features := make([]float64, 0, min(d, maxPrealloc))
		for j := 0; j < d; j++ {
			v, err := tr.readFloat()
			if err != nil {
				return nil, errors.Wrapf(err, "sample %d feature %d", i+1, j+1)
			}
			features = append(features, v)
		}
		label, err := tr.readFloat()
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d label", i+1)
		}
		samples = append(samples, opf.Sample{Features: features, Label: opf.Label(label)})
	}

	return &Dataset{
		Classes: c,
		Dim:     d,
		Samples: samples,
	}, nil
}

// tokenReader yields whitespace separated tokens.
type tokenReader struct {
	sc *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.sc.Text(), nil
}

func (t *tokenReader) readInt(what string) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", what)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", what)
	}
	return v, nil
}

func (t *tokenReader) readFloat() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	return parseFloat64(tok)
}
