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

package explain

import (
	"fmt"
	"math"
	"sort"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/model"
)

// pdGridPoints is the resolution of a partial dependence curve.
const pdGridPoints = 20

// selectImportant picks the features whose model-based importance is
// at least the mean importance, best first, capped at limit.
func selectImportant(importances []float64, limit int) []int {
	if len(importances) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range importances {
		mean += v
	}
	mean /= float64(len(importances))

	idx := []int{}
	for j, v := range importances {
		if v >= mean {
			idx = append(idx, j)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool { return importances[idx[a]] > importances[idx[b]] })
	if limit > 0 && len(idx) > limit {
		idx = idx[:limit]
	}
	return idx
}

// partialDependence evaluates the mean predicted probability per class
// over an even grid of one feature's observed range, holding every
// other feature at its observed values.
func partialDependence(prob probModel, X [][]float64, feature int) (grid []float64, curves [][]float64, err error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range X {
		v := row[feature]
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if !(hi > lo) {
		return nil, nil, fmt.Errorf("feature %d has no value range", feature)
	}

	work := make([][]float64, len(X))
	for i, row := range X {
		work[i] = append([]float64(nil), row...)
	}

	nClasses := len(prob.Classes())
	grid = make([]float64, pdGridPoints)
	curves = make([][]float64, nClasses)
	for ci := range curves {
		curves[ci] = make([]float64, pdGridPoints)
	}
	for g := 0; g < pdGridPoints; g++ {
		v := lo + (hi-lo)*float64(g)/float64(pdGridPoints-1)
		grid[g] = v
		for i := range work {
			work[i][feature] = v
		}
		proba := prob.PredictProba(work)
		if proba == nil {
			return nil, nil, fmt.Errorf("estimator has no class probabilities")
		}
		for _, row := range proba {
			for ci := range curves {
				curves[ci][g] += row[ci]
			}
		}
		for ci := range curves {
			curves[ci][g] /= float64(len(work))
		}
	}
	return grid, curves, nil
}

// partialDependenceFigure renders one panel per selected feature, a
// curve per class. Selection uses the final estimator's importances;
// prediction goes through the full wrapper so preprocessing applies. A
// feature whose dependence cannot be computed is skipped with a
// warning.
func partialDependenceFigure(est model.Estimator, final model.Estimator, names []string, opts Options) *figure.Figure {
	prob, ok := est.(probModel)
	if !ok {
		skipPanel("partial dependence", fmt.Errorf("estimator has no class probabilities"))
		return nil
	}
	importances := modelImportances(final, len(names))
	if len(importances) != len(names) {
		skipPanel("partial dependence", fmt.Errorf("no usable feature importances"))
		return nil
	}
	limit := opts.PDFeatures
	if limit <= 0 {
		limit = defaultPDFeatures
	}
	selected := selectImportant(importances, limit)
	if len(selected) == 0 {
		return nil
	}

	classes := prob.Classes()
	fig := figure.New("partial dependence")
	for _, j := range selected {
		grid, curves, err := partialDependence(prob, opts.XVal, j)
		if err != nil {
			skipPanel("partial dependence "+names[j], err)
			continue
		}
		p, err := pdPanel(names[j], grid, curves, classes)
		if err != nil {
			skipPanel("partial dependence "+names[j], err)
			continue
		}
		fig.Add(p)
	}
	if fig.Empty() {
		return nil
	}
	return fig
}

func pdPanel(name string, grid []float64, curves [][]float64, classes []string) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = "partial dependence: " + name
	p.X.Label.Text = name
	p.Y.Label.Text = "mean predicted probability"
	for ci, curve := range curves {
		pts := make(plotter.XYs, len(grid))
		for g := range grid {
			pts[g] = plotter.XY{X: grid[g], Y: curve[g]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(ci)
		p.Add(line)
		if ci < len(classes) {
			p.Legend.Add(classes[ci], line)
		}
	}
	p.Legend.Top = true
	return p, nil
}
