// Copyright 2026 The Glimpse Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package figure

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// defaultBins is the histogram bin count when the caller passes 0.
const defaultBins = 30

func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func withAlpha(c color.Color, alpha float64) color.Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	nrgba.A = uint8(math.Round(255 * alpha))
	return nrgba
}

// Histogram plots the distribution of one continuous column.
func Histogram(title string, values []float64, bins int) (*plot.Plot, error) {
	values = dropNaN(values)
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram %q: no finite values", title)
	}
	if bins <= 0 {
		bins = defaultBins
	}
	p := plot.New()
	p.Title.Text = title
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)
	return p, nil
}

// ClassHistogram overlays one translucent histogram per class so the
// class-conditional distributions of a feature can be compared.
// Classes are drawn in the order given.
func ClassHistogram(title string, byClass map[string][]float64, bins int, alpha float64) (*plot.Plot, error) {
	if bins <= 0 {
		bins = defaultBins
	}
	labels := make([]string, 0, len(byClass))
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	p := plot.New()
	p.Title.Text = title
	added := 0
	for i, label := range labels {
		vals := dropNaN(byClass[label])
		if len(vals) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(vals), bins)
		if err != nil {
			return nil, err
		}
		h.Normalize(1)
		h.FillColor = withAlpha(plotutil.Color(i), alpha)
		h.LineStyle.Color = plotutil.Color(i)
		p.Add(h)
		p.Legend.Add(label, h)
		added++
	}
	if added == 0 {
		return nil, fmt.Errorf("class histogram %q: no finite values", title)
	}
	p.Legend.Top = true
	return p, nil
}

// kdePoints evaluates a gaussian kernel density estimate on a
// 100-point grid. Bandwidth follows Silverman's rule.
func kdePoints(values []float64) (plotter.XYs, error) {
	values = dropNaN(values)
	if len(values) < 2 {
		return nil, fmt.Errorf("kde: need at least 2 finite values")
	}
	sigma := stat.StdDev(values, nil)
	if sigma == 0 {
		return nil, fmt.Errorf("kde: constant values")
	}
	bw := 1.06 * sigma * math.Pow(float64(len(values)), -0.2)

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bw
	hi += 3 * bw

	const gridPoints = 100
	pts := make(plotter.XYs, gridPoints)
	norm := 1 / (float64(len(values)) * bw * math.Sqrt(2*math.Pi))
	for i := 0; i < gridPoints; i++ {
		x := lo + (hi-lo)*float64(i)/float64(gridPoints-1)
		density := 0.0
		for _, v := range values {
			z := (x - v) / bw
			density += math.Exp(-0.5 * z * z)
		}
		pts[i] = plotter.XY{X: x, Y: density * norm}
	}
	return pts, nil
}

// KDELine plots a gaussian kernel density estimate of the values.
func KDELine(title string, values []float64) (*plot.Plot, error) {
	pts, err := kdePoints(values)
	if err != nil {
		return nil, fmt.Errorf("kde %q: %v", title, err)
	}
	p := plot.New()
	p.Title.Text = title
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	return p, nil
}

// ClassKDE overlays one density line per class. Classes whose density
// cannot be estimated (constant or near-empty) are skipped.
func ClassKDE(title string, byClass map[string][]float64) (*plot.Plot, error) {
	labels := make([]string, 0, len(byClass))
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	p := plot.New()
	p.Title.Text = title
	added := 0
	for i, label := range labels {
		pts, err := kdePoints(byClass[label])
		if err != nil {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(label, line)
		added++
	}
	if added == 0 {
		return nil, fmt.Errorf("class kde %q: no estimable class density", title)
	}
	p.Legend.Top = true
	return p, nil
}

// Group is one labelled value series for box plots.
type Group struct {
	Label  string
	Values []float64
}

// BoxPlot draws one box per group at the given order. The caller
// decides the ordering (e.g. by ascending median).
func BoxPlot(title string, groups []Group) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	labels := make([]string, 0, len(groups))
	loc := 0.0
	for _, g := range groups {
		vals := dropNaN(g.Values)
		if len(vals) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(18), loc, plotter.Values(vals))
		if err != nil {
			return nil, err
		}
		p.Add(b)
		labels = append(labels, g.Label)
		loc++
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("box plot %q: no finite values", title)
	}
	p.NominalX(labels...)
	return p, nil
}

// CountBar draws one bar per categorical level. When proportion is
// true the counts are normalized to sum to 1.
func CountBar(title string, labels []string, counts []float64, proportion bool) (*plot.Plot, error) {
	if len(labels) != len(counts) {
		return nil, fmt.Errorf("count bar %q: %d labels but %d counts", title, len(labels), len(counts))
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("count bar %q: no levels", title)
	}
	vals := append([]float64(nil), counts...)
	if proportion {
		total := 0.0
		for _, c := range vals {
			total += c
		}
		if total > 0 {
			for i := range vals {
				vals[i] /= total
			}
		}
	}
	p := plot.New()
	p.Title.Text = title
	bars, err := plotter.NewBarChart(plotter.Values(vals), vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// GroupedCountBar draws per-level bars split by class: grouped bars
// when proportion is false, a per-level normalized stack when true.
// counts[ci][li] is the count of class ci at level li.
func GroupedCountBar(title string, levels, classes []string, counts [][]float64, proportion bool) (*plot.Plot, error) {
	if len(counts) != len(classes) {
		return nil, fmt.Errorf("grouped bar %q: %d classes but %d count rows", title, len(classes), len(counts))
	}
	if len(levels) == 0 || len(classes) == 0 {
		return nil, fmt.Errorf("grouped bar %q: no levels or classes", title)
	}
	for ci := range counts {
		if len(counts[ci]) != len(levels) {
			return nil, fmt.Errorf("grouped bar %q: class %q has %d counts for %d levels",
				title, classes[ci], len(counts[ci]), len(levels))
		}
	}

	vals := make([][]float64, len(classes))
	for ci := range counts {
		vals[ci] = append([]float64(nil), counts[ci]...)
	}
	if proportion {
		for li := range levels {
			total := 0.0
			for ci := range classes {
				total += vals[ci][li]
			}
			if total > 0 {
				for ci := range classes {
					vals[ci][li] /= total
				}
			}
		}
	}

	p := plot.New()
	p.Title.Text = title
	width := vg.Points(20)
	if !proportion {
		width = vg.Points(20) / vg.Length(len(classes))
	}
	var prev *plotter.BarChart
	for ci := range classes {
		bars, err := plotter.NewBarChart(plotter.Values(vals[ci]), width)
		if err != nil {
			return nil, err
		}
		bars.Color = plotutil.Color(ci)
		if proportion {
			if prev != nil {
				bars.StackOn(prev)
			}
		} else {
			bars.Offset = width * vg.Length(ci)
		}
		p.Add(bars)
		p.Legend.Add(classes[ci], bars)
		prev = bars
	}
	p.NominalX(levels...)
	p.Legend.Top = true
	return p, nil
}

// DiscreteScatter plots x against y with one color per class label.
// alpha and size come from the resolved plot options.
func DiscreteScatter(title, xName, yName string, x, y []float64, labels []string, alpha, size float64) (*plot.Plot, error) {
	if len(x) != len(y) || len(x) != len(labels) {
		return nil, fmt.Errorf("scatter %q: mismatched lengths", title)
	}
	classes := []string{}
	byClass := map[string]plotter.XYs{}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		if _, ok := byClass[labels[i]]; !ok {
			classes = append(classes, labels[i])
		}
		byClass[labels[i]] = append(byClass[labels[i]], plotter.XY{X: x[i], Y: y[i]})
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("scatter %q: no finite points", title)
	}
	sort.Strings(classes)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xName
	p.Y.Label.Text = yName
	for i, class := range classes {
		s, err := plotter.NewScatter(byClass[class])
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = withAlpha(plotutil.Color(i), alpha)
		s.GlyphStyle.Radius = vg.Points(size)
		p.Add(s)
		p.Legend.Add(class, s)
	}
	p.Legend.Top = true
	return p, nil
}

// ContinuousScatter plots x against y for regression targets, marking
// nothing but the points themselves.
func ContinuousScatter(title, xName, yName string, x, y []float64, alpha, size float64) (*plot.Plot, error) {
	pts := plotter.XYs{}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("scatter %q: no finite points", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xName
	p.Y.Label.Text = yName
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = withAlpha(plotutil.Color(0), alpha)
	s.GlyphStyle.Radius = vg.Points(size)
	p.Add(s)
	return p, nil
}

// Mosaic draws a mosaic plot of two categorical columns: column widths
// follow the marginal distribution of x, cell heights the conditional
// distribution of y given x.
func Mosaic(title string, x, y []string) (*plot.Plot, error) {
	if len(x) != len(y) || len(x) == 0 {
		return nil, fmt.Errorf("mosaic %q: empty or mismatched columns", title)
	}
	xLevels := sortedLevels(x)
	yLevels := sortedLevels(y)

	joint := map[[2]string]float64{}
	xMarginal := map[string]float64{}
	for i := range x {
		joint[[2]string{x[i], y[i]}]++
		xMarginal[x[i]]++
	}
	n := float64(len(x))

	p := plot.New()
	p.Title.Text = title
	const pad = 0.01
	left := 0.0
	for _, xl := range xLevels {
		width := xMarginal[xl]/n - pad
		if width <= 0 {
			continue
		}
		bottom := 0.0
		for yi, yl := range yLevels {
			height := joint[[2]string{xl, yl}] / xMarginal[xl]
			if height > 0 {
				cell := plotter.XYs{
					{X: left, Y: bottom},
					{X: left + width, Y: bottom},
					{X: left + width, Y: bottom + height - pad},
					{X: left, Y: bottom + height - pad},
				}
				poly, err := plotter.NewPolygon(cell)
				if err != nil {
					return nil, err
				}
				poly.Color = plotutil.Color(yi)
				p.Add(poly)
			}
			bottom += height
		}
		left += width + pad
	}
	for yi, yl := range yLevels {
		thumb, err := plotter.NewPolygon(plotter.XYs{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}})
		if err != nil {
			return nil, err
		}
		thumb.Color = plotutil.Color(yi)
		p.Legend.Add(yl, thumb)
	}
	p.Legend.Top = true
	p.HideAxes()
	return p, nil
}

func sortedLevels(values []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// ROC is one receiver-operating-characteristic curve.
type ROC struct {
	Label string
	FPR   []float64
	TPR   []float64
	AUC   float64
}

// ROCCurve plots one or more ROC curves with the chance diagonal.
func ROCCurve(title string, curves []ROC) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("roc %q: no curves", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "false positive rate"
	p.Y.Label.Text = "true positive rate"

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, err
	}
	diag.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	diag.Color = color.Gray{Y: 128}
	p.Add(diag)

	for i, c := range curves {
		if len(c.FPR) != len(c.TPR) {
			return nil, fmt.Errorf("roc %q: curve %q has mismatched lengths", title, c.Label)
		}
		pts := make(plotter.XYs, len(c.FPR))
		for j := range c.FPR {
			pts[j] = plotter.XY{X: c.FPR[j], Y: c.TPR[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s (AUC %.3f)", c.Label, c.AUC), line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}

// ScreeLine plots per-component explained variance ratios of a
// decomposition.
func ScreeLine(title string, ratios []float64) (*plot.Plot, error) {
	if len(ratios) == 0 {
		return nil, fmt.Errorf("scree %q: no components", title)
	}
	pts := make(plotter.XYs, len(ratios))
	for i, r := range ratios {
		pts[i] = plotter.XY{X: float64(i + 1), Y: r}
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "component"
	p.Y.Label.Text = "explained variance ratio"
	line, pointsPlot, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)
	pointsPlot.GlyphStyle.Color = plotutil.Color(0)
	p.Add(line, pointsPlot)
	p.Y.Min = 0
	return p, nil
}

// ImportanceBar draws a horizontal list of features as a bar chart of
// their importances, largest first.
func ImportanceBar(title string, names []string, importances []float64) (*plot.Plot, error) {
	if len(names) != len(importances) || len(names) == 0 {
		return nil, fmt.Errorf("importance bar %q: empty or mismatched inputs", title)
	}
	idx := make([]int, len(names))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return importances[idx[a]] > importances[idx[b]] })

	ordered := make([]float64, len(idx))
	labels := make([]string, len(idx))
	for i, j := range idx {
		ordered[i] = importances[j]
		labels[i] = names[j]
	}
	return CountBar(title, labels, ordered, false)
}
