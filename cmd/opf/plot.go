package main

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Noofbiz/opf/opf"
)

// palette cycles through label colors.
var palette = []color.RGBA{
	{R: 20, G: 80, B: 200, A: 200},
	{R: 200, G: 30, B: 30, A: 200},
	{R: 40, G: 140, B: 40, A: 200},
	{R: 200, G: 140, B: 20, A: 200},
	{R: 120, G: 40, B: 160, A: 200},
}

// plotSamples writes samples.png into outDir: the trained samples as one
// scatter group per label (first two features), and the classified queries
// as crosses in the color of their predicted label.
func plotSamples(outDir string, samples []opf.Sample, queries []classified) (string, error) {
	if len(samples) == 0 {
		return "", errors.New("no samples to plot")
	}
	if len(samples[0].Features) < 2 {
		return "", errors.Errorf("need at least 2 features to plot, got %d", len(samples[0].Features))
	}

	byLabel := make(map[opf.Label]plotter.XYs)
	for _, s := range samples {
		byLabel[s.Label] = append(byLabel[s.Label], plotter.XY{X: s.Features[0], Y: s.Features[1]})
	}
	labels := make([]opf.Label, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	colorOf := make(map[opf.Label]color.RGBA, len(labels))
	for i, l := range labels {
		colorOf[l] = palette[i%len(palette)]
	}

	p := plot.New()
	p.Title.Text = "Trained samples and classified queries"
	p.X.Label.Text = "feature 1"
	p.Y.Label.Text = "feature 2"
	p.Add(plotter.NewGrid())

	all := make(plotter.XYs, 0, len(samples)+len(queries))
	for _, l := range labels {
		sc, err := plotter.NewScatter(byLabel[l])
		if err != nil {
			return "", err
		}
		sc.GlyphStyle.Color = colorOf[l]
		sc.GlyphStyle.Radius = vg.Points(1.8)
		p.Add(sc)
		p.Legend.Add("class "+formatLabel(l), sc)
		all = append(all, byLabel[l]...)
	}

	for _, q := range queries {
		if len(q.Query) < 2 {
			continue
		}
		xy := plotter.XYs{{X: q.Query[0], Y: q.Query[1]}}
		sc, err := plotter.NewScatter(xy)
		if err != nil {
			return "", err
		}
		c, ok := colorOf[q.Label]
		if !ok {
			c = color.RGBA{A: 255}
		}
		c.A = 255
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Shape = draw.CrossGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
		all = append(all, xy...)
	}

	xmin, xmax, ymin, ymax := autoRange(all)
	p.X.Min = xmin
	p.X.Max = xmax
	p.Y.Min = ymin
	p.Y.Max = ymax

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", errors.Wrapf(err, "mkdir %s", outDir)
	}
	outPath := filepath.Join(outDir, "samples.png")
	if err := p.Save(8*vg.Inch, 6*vg.Inch, outPath); err != nil {
		return "", errors.Wrap(err, "save plot")
	}
	return outPath, nil
}

// autoRange computes padded min/max for X and Y for a set of points.
func autoRange(xs plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	if len(xs) == 0 {
		return -1, 1, -1, 1
	}
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, p := range xs {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	padx := (xmax - xmin) * 0.06
	pady := (ymax - ymin) * 0.06
	if padx == 0 {
		padx = 1.0
	}
	if pady == 0 {
		pady = 1.0
	}
	return xmin - padx, xmax + padx, ymin - pady, ymax + pady
}
