package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Noofbiz/opf/generator"
	"github.com/Noofbiz/opf/opf"
)

// classified is one query the session ran through the model.
type classified struct {
	Query []float64
	Label opf.Label
}

// session drives the interactive test loop over a trained model. Prompts go
// to out and answers are read as whitespace separated tokens from in.
type session struct {
	model *opf.Model
	gen   *generator.Generator
	in    *bufio.Scanner
	out   io.Writer
	log   *zap.SugaredLogger

	results []classified
}

func newSession(model *opf.Model, gen *generator.Generator, in io.Reader, out io.Writer, log *zap.SugaredLogger) *session {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &session{
		model: model,
		gen:   gen,
		in:    sc,
		out:   out,
		log:   log,
	}
}

// run executes the given mode. count is used by the random mode only; the
// menu asks for it instead.
func (s *session) run(mode string, count int) error {
	switch mode {
	case "menu":
		return s.menu()
	case "random":
		return s.random(count)
	case "manual":
		return s.manual()
	case "none":
		return nil
	}
	return errors.Errorf("unknown mode %q", mode)
}

func (s *session) token() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// menu repeats the option prompt until a valid option has been run.
func (s *session) menu() error {
	for {
		fmt.Fprintln(s.out, "Choose a test option:")
		fmt.Fprintln(s.out, "1 - Test with N random samples")
		fmt.Fprintln(s.out, "2 - Test with manually entered values")

		tok, ok := s.token()
		if !ok {
			s.log.Warn("input closed before an option was chosen")
			return nil
		}
		switch tok {
		case "1":
			n, ok := s.readCount()
			if !ok {
				s.log.Warn("input closed before a sample count was given")
				return nil
			}
			return s.random(n)
		case "2":
			return s.manual()
		default:
			fmt.Fprintln(s.out, "Invalid option. Try again.")
		}
	}
}

func (s *session) readCount() (int, bool) {
	for {
		fmt.Fprintln(s.out, "How many samples do you want to generate?")
		tok, ok := s.token()
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			fmt.Fprintf(s.out, "Not a valid count: %q\n", tok)
			continue
		}
		return n, true
	}
}

// random classifies n generated vectors.
func (s *session) random(n int) error {
	queries, err := s.gen.Vectors(n, s.model.Dim())
	if err != nil {
		return err
	}
	labels, err := s.model.PredictBatch(queries)
	if err != nil {
		return err
	}
	for i, q := range queries {
		fmt.Fprintf(s.out, "Test sample %d:\n", i+1)
		for j, v := range q {
			fmt.Fprintf(s.out, "Feature %d: %f\n", j+1, v)
		}
		fmt.Fprintf(s.out, "Predicted class: %s\n\n", formatLabel(labels[i]))
		s.results = append(s.results, classified{Query: q, Label: labels[i]})
	}
	s.log.Infof("classified %d random samples", n)
	return nil
}

// manual reads vectors value by value and classifies each complete one. A
// value outside the generator bounds, or the end of input, ends the loop.
func (s *session) manual() error {
	d := s.model.Dim()
	fmt.Fprintf(s.out, "To leave, enter any value outside the range [%g, %g]\n", s.gen.Min, s.gen.Max)
	for {
		q := make([]float64, d)
		for j := 0; j < d; j++ {
			fmt.Fprintf(s.out, "\nEnter value %d of the test sample: ", j+1)
			tok, ok := s.token()
			if !ok {
				return nil
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				fmt.Fprintf(s.out, "Not a number: %q\n", tok)
				j--
				continue
			}
			if !s.gen.Contains([]float64{v}) {
				return nil
			}
			q[j] = v
		}
		label, err := s.model.Predict(q)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Predicted class: %s\n\n", formatLabel(label))
		s.results = append(s.results, classified{Query: q, Label: label})
		s.log.Debugf("classified %v as %s", q, formatLabel(label))
	}
}

func formatLabel(l opf.Label) string {
	return strconv.FormatFloat(float64(l), 'f', -1, 64)
}
