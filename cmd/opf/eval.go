package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Noofbiz/opf/datasets"
	"github.com/Noofbiz/opf/opf"
)

// evalResult summarizes how a model labels a held-out dataset.
type evalResult struct {
	Total   int
	Correct int
}

// Accuracy returns Correct/Total, or 0 for an empty evaluation.
func (r evalResult) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// evaluate classifies every sample of ds with model and compares against
// its label. When outCSV is set one row per example is written there.
func evaluate(model *opf.Model, ds *datasets.Dataset, outCSV string) (evalResult, error) {
	predicted, err := model.PredictBatch(ds.Queries())
	if err != nil {
		return evalResult{}, err
	}

	res := evalResult{Total: len(predicted)}
	for i, p := range predicted {
		if p == ds.Samples[i].Label {
			res.Correct++
		}
	}

	if outCSV == "" {
		return res, nil
	}
	if dir := filepath.Dir(outCSV); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return res, errors.Wrapf(err, "mkdir %s", dir)
		}
	}
	f, err := os.Create(outCSV)
	if err != nil {
		return res, errors.Wrapf(err, "create %s", outCSV)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"idx", "label", "predicted", "correct"})
	for i, p := range predicted {
		want := ds.Samples[i].Label
		_ = w.Write([]string{
			strconv.Itoa(i),
			formatLabel(want),
			formatLabel(p),
			strconv.FormatBool(p == want),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return res, errors.Wrap(err, "write evaluation CSV")
	}
	return res, nil
}
