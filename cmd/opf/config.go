package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/Noofbiz/opf/generator"
	"github.com/Noofbiz/opf/opf"
)

// args are the command line arguments. Values set in the struct before
// parsing are the defaults shown in --help.
type args struct {
	Dataset     string  `arg:"-d,--dataset" help:"path of the training dataset (glob pattern for csv)"`
	Format      string  `arg:"--format" help:"dataset format: text or csv"`
	LabelColumn string  `arg:"--label-column" help:"label column name for csv datasets"`
	Mode        string  `arg:"-m,--mode" help:"menu, random, manual or none"`
	Count       int     `arg:"-n,--count" help:"number of random vectors for --mode random"`
	Seed        int64   `arg:"--seed" help:"random seed for generated vectors (0 = time based)"`
	Min         float64 `arg:"--min" help:"lower bound of generated and manual values"`
	Max         float64 `arg:"--max" help:"upper bound of generated and manual values"`
	Policy      string  `arg:"--policy" help:"training label policy: frozen or in-place"`
	Workers     int     `arg:"--workers" help:"worker goroutines (0 = NumCPU)"`
	ModelIn     string  `arg:"--model-in" help:"load a saved model instead of training"`
	ModelOut    string  `arg:"--model-out" help:"save the trained model to this path"`
	Eval        string  `arg:"--eval" help:"labeled dataset to score the model against"`
	OutCSV      string  `arg:"--out-csv" help:"write per-example evaluation rows to this path"`
	Plot        string  `arg:"--plot" help:"directory for samples.png"`
	Config      string  `arg:"-c,--config" help:"JSON config file; fills in values left at their defaults"`
	LogLevel    string  `arg:"--log-level" help:"debug, info, warn or error"`
	LogPath     string  `arg:"--log-path" help:"also write logs to a rotating file with this prefix"`
	PrintConfig bool    `arg:"--print-config" help:"print the effective configuration and exit"`
}

func (args) Description() string {
	return "Trains a nearest-neighbor relabeling classifier on a labeled dataset and classifies test vectors."
}

func defaultArgs() args {
	return args{
		Dataset:     "banana.txt",
		Format:      "text",
		LabelColumn: "label",
		Mode:        "menu",
		Count:       10,
		Min:         generator.DefaultMin,
		Max:         generator.DefaultMax,
		Policy:      opf.FrozenLabels.String(),
		LogLevel:    "info",
	}
}

// fileConfig is the JSON config file layout. Pointer fields distinguish
// "absent" from zero values.
type fileConfig struct {
	Dataset     *string  `json:"dataset"`
	Format      *string  `json:"format"`
	LabelColumn *string  `json:"label_column"`
	Mode        *string  `json:"mode"`
	Count       *int     `json:"count"`
	Seed        *int64   `json:"seed"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Policy      *string  `json:"policy"`
	Workers     *int     `json:"workers"`
	ModelIn     *string  `json:"model_in"`
	ModelOut    *string  `json:"model_out"`
	Eval        *string  `json:"eval"`
	OutCSV      *string  `json:"out_csv"`
	Plot        *string  `json:"plot"`
	LogLevel    *string  `json:"log_level"`
	LogPath     *string  `json:"log_path"`
}

// loadFileConfig reads the JSON config at path.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrapf(err, "unmarshal config %s", path)
	}
	return &fc, nil
}

// merge copies every field set in fc into a, unless a already differs from
// def (meaning it was given on the command line).
func (fc *fileConfig) merge(a *args, def args) {
	setString(&a.Dataset, def.Dataset, fc.Dataset)
	setString(&a.Format, def.Format, fc.Format)
	setString(&a.LabelColumn, def.LabelColumn, fc.LabelColumn)
	setString(&a.Mode, def.Mode, fc.Mode)
	setString(&a.Policy, def.Policy, fc.Policy)
	setString(&a.ModelIn, def.ModelIn, fc.ModelIn)
	setString(&a.ModelOut, def.ModelOut, fc.ModelOut)
	setString(&a.Eval, def.Eval, fc.Eval)
	setString(&a.OutCSV, def.OutCSV, fc.OutCSV)
	setString(&a.Plot, def.Plot, fc.Plot)
	setString(&a.LogLevel, def.LogLevel, fc.LogLevel)
	setString(&a.LogPath, def.LogPath, fc.LogPath)
	if fc.Count != nil && a.Count == def.Count {
		a.Count = *fc.Count
	}
	if fc.Workers != nil && a.Workers == def.Workers {
		a.Workers = *fc.Workers
	}
	if fc.Seed != nil && a.Seed == def.Seed {
		a.Seed = *fc.Seed
	}
	if fc.Min != nil && a.Min == def.Min {
		a.Min = *fc.Min
	}
	if fc.Max != nil && a.Max == def.Max {
		a.Max = *fc.Max
	}
}

func setString(dst *string, def string, v *string) {
	if v != nil && *dst == def {
		*dst = *v
	}
}

// applyConfigFile merges the config file named by a.Config, if any.
func (a *args) applyConfigFile() error {
	if a.Config == "" {
		return nil
	}
	fc, err := loadFileConfig(a.Config)
	if err != nil {
		return err
	}
	fc.merge(a, defaultArgs())
	return nil
}

// validate checks values that go-arg cannot check by type alone.
func (a *args) validate() error {
	switch a.Format {
	case "text", "csv":
	default:
		return errors.Errorf("unknown format %q", a.Format)
	}
	switch a.Mode {
	case "menu", "random", "manual", "none":
	default:
		return errors.Errorf("unknown mode %q", a.Mode)
	}
	if _, ok := opf.ParseLabelPolicy(a.Policy); !ok {
		return errors.Errorf("unknown policy %q", a.Policy)
	}
	if !(a.Min < a.Max) {
		return errors.Errorf("min must be below max, got [%v, %v]", a.Min, a.Max)
	}
	if a.Count < 0 {
		return errors.Errorf("count must be >= 0, got %d", a.Count)
	}
	if a.Dataset == "" && a.ModelIn == "" {
		return errors.New("either --dataset or --model-in is required")
	}
	if _, ok := zapLevels[a.LogLevel]; !ok {
		return errors.Errorf("unknown log level %q", a.LogLevel)
	}
	return nil
}

// effectiveJSON renders the merged configuration for --print-config.
func (a *args) effectiveJSON() ([]byte, error) {
	fc := fileConfig{
		Dataset:     &a.Dataset,
		Format:      &a.Format,
		LabelColumn: &a.LabelColumn,
		Mode:        &a.Mode,
		Count:       &a.Count,
		Seed:        &a.Seed,
		Min:         &a.Min,
		Max:         &a.Max,
		Policy:      &a.Policy,
		Workers:     &a.Workers,
		ModelIn:     &a.ModelIn,
		ModelOut:    &a.ModelOut,
		Eval:        &a.Eval,
		OutCSV:      &a.OutCSV,
		Plot:        &a.Plot,
		LogLevel:    &a.LogLevel,
		LogPath:     &a.LogPath,
	}
	return json.MarshalIndent(fc, "", "  ")
}
