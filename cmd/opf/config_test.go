package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noofbiz/opf/opf"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "opf.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestConfigFileFillsDefaultsOnly(t *testing.T) {
	a := defaultArgs()
	a.Mode = "manual" // as if given on the command line
	a.Config = writeConfig(t, `{"mode": "random", "count": 50, "min": -1, "policy": "in-place"}`)

	require.NoError(t, a.applyConfigFile())
	assert.Equal(t, "manual", a.Mode)
	assert.Equal(t, 50, a.Count)
	assert.Equal(t, -1.0, a.Min)
	assert.Equal(t, 2.0, a.Max)
	assert.Equal(t, "in-place", a.Policy)
	assert.NoError(t, a.validate())
}

func TestConfigFileErrors(t *testing.T) {
	a := defaultArgs()
	a.Config = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, a.applyConfigFile())

	a.Config = writeConfig(t, `{"count": "many"}`)
	assert.Error(t, a.applyConfigFile())
}

func TestValidate(t *testing.T) {
	a := defaultArgs()
	require.NoError(t, a.validate())

	cases := map[string]func(*args){
		"format":    func(a *args) { a.Format = "xml" },
		"mode":      func(a *args) { a.Mode = "batch" },
		"policy":    func(a *args) { a.Policy = "sideways" },
		"range":     func(a *args) { a.Min, a.Max = 2, -2 },
		"count":     func(a *args) { a.Count = -1 },
		"no input":  func(a *args) { a.Dataset = "" },
		"log level": func(a *args) { a.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		bad := defaultArgs()
		mutate(&bad)
		assert.Error(t, bad.validate(), name)
	}
}

func TestEffectiveJSON(t *testing.T) {
	a := defaultArgs()
	a.Count = 7
	data, err := a.effectiveJSON()
	require.NoError(t, err)

	var fc fileConfig
	require.NoError(t, json.Unmarshal(data, &fc))
	require.NotNil(t, fc.Count)
	assert.Equal(t, 7, *fc.Count)
	require.NotNil(t, fc.Dataset)
	assert.Equal(t, "banana.txt", *fc.Dataset)
}

func TestNewLoggerWritesToConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(logConfig{Level: "info", Console: &buf})
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown")
	require.NoError(t, log.Sync())
	assert.Contains(t, buf.String(), "[INFO]")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "hidden")

	nop, err := newLogger(logConfig{Level: "debug"})
	require.NoError(t, err)
	nop.Info("nowhere")
}

func TestNewLoggerRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opf.log")
	a := defaultArgs()
	a.LogPath = path
	log, err := newLogger(a.logConfig(nil))
	require.NoError(t, err)
	log.Info("to file")
	require.NoError(t, log.Sync())

	files, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestLogTrainingSetAtDebug(t *testing.T) {
	samples := []opf.Sample{
		{Features: []float64{-1.2, 0.4}, Label: 1},
		{Features: []float64{1.3, -0.2}, Label: -1},
	}

	var buf bytes.Buffer
	log, err := newLogger(logConfig{Level: "debug", Console: &buf})
	require.NoError(t, err)
	logTrainingSet(samples, log)
	require.NoError(t, log.Sync())
	assert.Contains(t, buf.String(), "training set (2 samples)")
	assert.Contains(t, buf.String(), "sample 2: features=[1.3 -0.2] label=-1")

	buf.Reset()
	quiet, err := newLogger(logConfig{Level: "info", Console: &buf})
	require.NoError(t, err)
	logTrainingSet(samples, quiet)
	assert.False(t, strings.Contains(buf.String(), "training set"))
}
