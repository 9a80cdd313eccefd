package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Noofbiz/opf/datasets"
	"github.com/Noofbiz/opf/opf"
)

const smallBanana = `6 2 2
-1.2 0.4 1
-1.1 0.5 1
-1.0 0.45 -1
1.3 -0.2 -1
1.25 -0.3 -1
1.4 -0.25 1
`

func writeBanana(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "banana.txt")
	require.NoError(t, os.WriteFile(path, []byte(smallBanana), 0644))
	return path
}

func TestRunTrainSaveEvalPlot(t *testing.T) {
	tmp := t.TempDir()
	a := defaultArgs()
	a.Dataset = writeBanana(t)
	a.Mode = "random"
	a.Count = 5
	a.Seed = 7
	a.ModelOut = filepath.Join(tmp, "model.gob")
	a.Eval = a.Dataset
	a.OutCSV = filepath.Join(tmp, "eval", "out.csv")
	a.Plot = filepath.Join(tmp, "plots")
	require.NoError(t, a.validate())

	var out bytes.Buffer
	require.NoError(t, run(a, zap.NewNop().Sugar(), strings.NewReader(""), &out))

	assert.Contains(t, out.String(), "Evaluation over 6 examples")
	assert.Equal(t, 5, strings.Count(out.String(), "Predicted class:"))
	assert.FileExists(t, a.ModelOut)
	assert.FileExists(t, filepath.Join(a.Plot, "samples.png"))

	f, err := os.Open(a.OutCSV)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 7)
	assert.Equal(t, []string{"idx", "label", "predicted", "correct"}, rows[0])

	// second run reuses the saved model
	b := defaultArgs()
	b.ModelIn = a.ModelOut
	b.Mode = "none"
	b.Dataset = ""
	require.NoError(t, b.validate())
	require.NoError(t, run(b, zap.NewNop().Sugar(), strings.NewReader(""), &out))
}

func TestRunMissingDataset(t *testing.T) {
	a := defaultArgs()
	a.Dataset = filepath.Join(t.TempDir(), "missing.txt")
	a.Mode = "none"
	var out bytes.Buffer
	assert.Error(t, run(a, zap.NewNop().Sugar(), strings.NewReader(""), &out))
}

func TestRunSingleSampleFailsTraining(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 2\n0 0 1\n"), 0644))
	a := defaultArgs()
	a.Dataset = path
	a.Mode = "none"
	var out bytes.Buffer
	err := run(a, zap.NewNop().Sugar(), strings.NewReader(""), &out)
	assert.ErrorIs(t, err, opf.ErrInvalidInput)
}

func TestEvaluateAccuracy(t *testing.T) {
	ds, err := datasets.LoadText(strings.NewReader(smallBanana))
	require.NoError(t, err)
	model, err := opf.NewModel(ds.Samples)
	require.NoError(t, err)

	// untrained: every sample is its own nearest neighbor
	res, err := evaluate(model, ds, "")
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 6, res.Correct)
	assert.Equal(t, 1.0, res.Accuracy())

	assert.Equal(t, 0.0, evalResult{}.Accuracy())
}

func TestPlotNeedsTwoFeatures(t *testing.T) {
	_, err := plotSamples(t.TempDir(), []opf.Sample{{Features: []float64{1}, Label: 1}}, nil)
	assert.Error(t, err)
	_, err = plotSamples(t.TempDir(), nil, nil)
	assert.Error(t, err)
}

func TestAutoRange(t *testing.T) {
	xmin, xmax, ymin, ymax := autoRange(nil)
	assert.Equal(t, []float64{-1, 1, -1, 1}, []float64{xmin, xmax, ymin, ymax})
}
