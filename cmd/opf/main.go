package main

import (
	"fmt"
	"io"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Noofbiz/opf/datasets"
	"github.com/Noofbiz/opf/generator"
	"github.com/Noofbiz/opf/opf"
)

func main() {
	a := defaultArgs()
	p := arg.MustParse(&a)
	if err := a.applyConfigFile(); err != nil {
		p.Fail(err.Error())
	}
	if err := a.validate(); err != nil {
		p.Fail(err.Error())
	}

	if a.PrintConfig {
		data, err := a.effectiveJSON()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	log, err := newLogger(a.logConfig(os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(a, log, os.Stdin, os.Stdout); err != nil {
		log.Errorf("%v", err)
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// run wires the dataset, model, session and outputs together.
func run(a args, log *zap.SugaredLogger, in io.Reader, out io.Writer) error {
	policy, _ := opf.ParseLabelPolicy(a.Policy)
	opts := []opf.Option{opf.WithPolicy(policy), opf.WithWorkers(a.Workers)}

	model, err := buildModel(a, opts, log)
	if err != nil {
		return err
	}

	if a.ModelOut != "" {
		if err := model.Save(a.ModelOut); err != nil {
			return errors.Wrap(err, "save model")
		}
		log.Infof("saved model to %s", a.ModelOut)
	}

	if a.Eval != "" {
		evalDS, err := loadDataset(a.Eval, a.Format, a.LabelColumn)
		if err != nil {
			return errors.Wrap(err, "load evaluation dataset")
		}
		res, err := evaluate(model, evalDS, a.OutCSV)
		if err != nil {
			return errors.Wrap(err, "evaluate")
		}
		fmt.Fprintf(out, "Evaluation over %d examples: accuracy = %.4f (%d correct)\n", res.Total, res.Accuracy(), res.Correct)
	}

	seed := a.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen, err := generator.NewSeeded(seed, a.Min, a.Max)
	if err != nil {
		return err
	}

	s := newSession(model, gen, in, out, log)
	if err := s.run(a.Mode, a.Count); err != nil {
		return err
	}

	if a.Plot != "" {
		path, err := plotSamples(a.Plot, model.Samples(), s.results)
		if err != nil {
			return errors.Wrap(err, "plot")
		}
		log.Infof("wrote plot to %s", path)
	}
	return nil
}

// buildModel loads a saved model or trains a new one from the dataset.
func buildModel(a args, opts []opf.Option, log *zap.SugaredLogger) (*opf.Model, error) {
	if a.ModelIn != "" {
		model, err := opf.LoadModel(a.ModelIn, opts...)
		if err != nil {
			return nil, err
		}
		log.Infof("loaded model from %s: samples=%d dim=%d trained=%v", a.ModelIn, model.Len(), model.Dim(), model.Trained())
		if !model.Trained() {
			if err := model.Fit(); err != nil {
				return nil, errors.Wrap(err, "train")
			}
		}
		return model, nil
	}

	ds, err := loadDataset(a.Dataset, a.Format, a.LabelColumn)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded dataset %s: samples=%d dim=%d classes=%d", a.Dataset, ds.Len(), ds.Dim, ds.Classes)
	logTensorShape(ds, log)
	logTrainingSet(ds.Samples, log)

	model, err := opf.NewModel(ds.Samples, opts...)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := model.Fit(); err != nil {
		return nil, errors.Wrap(err, "train")
	}
	log.Infof("trained %d samples in %s (policy=%s)", model.Len(), time.Since(start), model.Options.Policy)
	return model, nil
}

func loadDataset(path, format, labelColumn string) (*datasets.Dataset, error) {
	switch format {
	case "csv":
		return datasets.OpenCSV(path, labelColumn)
	default:
		return datasets.OpenText(path)
	}
}

// logTrainingSet echoes every loaded sample at debug level before training.
func logTrainingSet(samples []opf.Sample, log *zap.SugaredLogger) {
	if !log.Desugar().Core().Enabled(zap.DebugLevel) {
		return
	}
	log.Debugf("training set (%d samples):", len(samples))
	for i, s := range samples {
		log.Debugf("sample %d: features=%v label=%s", i+1, s.Features, formatLabel(s.Label))
	}
}

// logTensorShape reports the dataset as a gomlx tensor at debug level.
func logTensorShape(ds *datasets.Dataset, log *zap.SugaredLogger) {
	flat, err := datasets.MakeBatchFlat(ds.Samples)
	if err != nil {
		log.Warnf("flatten dataset: %v", err)
		return
	}
	featT, _, err := flat.ToGomlxTensors()
	if err != nil {
		log.Warnf("convert dataset to tensors: %v", err)
		return
	}
	log.Debugf("feature tensor shape: %s", featT.Shape())
}
