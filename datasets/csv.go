package datasets

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/Noofbiz/opf/opf"
)

// DefaultLabelColumn is used by the CSV loaders when no label column is named.
const DefaultLabelColumn = "label"

// OpenCSV loads every CSV file matching pattern, in lexical path order, and
// concatenates their rows. All files must have the same feature columns.
func OpenCSV(pattern, labelColumn string) (*Dataset, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "glob pattern %s", pattern)
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no CSV files found matching pattern: %s", pattern)
	}
	sort.Strings(paths)

	var merged *Dataset
	for _, path := range paths {
		ds, err := openCSVFile(path, labelColumn)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = ds
			continue
		}
		if !sameColumns(merged.FeatureNames, ds.FeatureNames) {
			return nil, errors.Errorf("%s: feature columns %v differ from %v", path, ds.FeatureNames, merged.FeatureNames)
		}
		merged.Samples = append(merged.Samples, ds.Samples...)
	}
	merged.Classes = distinctLabels(merged.Samples)
	return merged, nil
}

func openCSVFile(path, labelColumn string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open CSV %s", path)
	}
	defer f.Close()

	ds, err := LoadCSV(f, labelColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "load CSV %s", path)
	}
	return ds, nil
}

// LoadCSV reads a CSV stream with a header row. labelColumn names the label
// column; an empty name selects DefaultLabelColumn.
func LoadCSV(r io.Reader, labelColumn string) (*Dataset, error) {
	if labelColumn == "" {
		labelColumn = DefaultLabelColumn
	}
	labelColumn = strings.TrimSpace(strings.ToLower(labelColumn))

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	labelIdx := -1
	var names []string
	var featureIdx []int
	for i, col := range header {
		name := strings.TrimSpace(strings.ToLower(col))
		if name == labelColumn && labelIdx < 0 {
			labelIdx = i
			continue
		}
		names = append(names, name)
		featureIdx = append(featureIdx, i)
	}
	if labelIdx < 0 {
		return nil, errors.Errorf("required column %q not found in CSV", labelColumn)
	}
	if len(featureIdx) == 0 {
		return nil, errors.New("CSV has no feature columns")
	}

	var samples []opf.Sample
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read row %d", row)
		}

		features := make([]float64, len(featureIdx))
		for i, col := range featureIdx {
			v, err := parseFloat64(record[col])
			if err != nil {
				return nil, errors.Wrapf(err, "row %d: failed to parse %s", row, names[i])
			}
			features[i] = v
		}
		label, err := parseFloat64(record[labelIdx])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: failed to parse %s", row, labelColumn)
		}
		samples = append(samples, opf.Sample{Features: features, Label: opf.Label(label)})
	}
	if len(samples) == 0 {
		return nil, errors.New("CSV has no data rows")
	}

	return &Dataset{
		Classes:      distinctLabels(samples),
		Dim:          len(featureIdx),
		FeatureNames: names,
		Samples:      samples,
	}, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
