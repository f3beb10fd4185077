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

package plot

import (
	"fmt"
	"math"
	"sort"

	gplot "gonum.org/v1/plot"

	"github.com/glimpse-ml/glimpse/pkg/dataset"
	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/preprocess"
	"github.com/glimpse-ml/glimpse/pkg/rank"
	"github.com/glimpse-ml/glimpse/pkg/stats"
)

// regressionFigures emits, in order: the target distribution, the
// top continuous features against the target, and the top categorical
// features as box plots ordered by ascending median target.
func regressionFigures(t *dataset.Table, target string, types preprocess.Types, cfg *config) ([]*figure.Figure, error) {
	y, err := t.Floats(target)
	if err != nil {
		return nil, err
	}
	figs := []*figure.Figure{}

	distFig := figure.New("target distribution")
	if p, err := distPanel(target, y, cfg); err != nil {
		skipPanel("target distribution", err)
	} else {
		distFig.Add(p)
		figs = append(figs, distFig)
	}

	if fig, err := continuousVsTarget(t, target, types, y, cfg); err != nil {
		return nil, err
	} else if fig != nil {
		figs = append(figs, fig)
	}

	if fig, err := categoricalVsTarget(t, target, types, y, cfg); err != nil {
		return nil, err
	} else if fig != nil {
		figs = append(figs, fig)
	}
	return figs, nil
}

func distPanel(name string, vals []float64, cfg *config) (*gplot.Plot, error) {
	if cfg.dist == DistKDE {
		return figure.KDELine(name, vals)
	}
	return figure.Histogram(name, vals, cfg.bins)
}

func continuousVsTarget(t *dataset.Table, target string, types preprocess.Types, y []float64, cfg *config) (*figure.Figure, error) {
	names := featureNames(t, types, preprocess.Continuous, target)
	if len(names) == 0 {
		return nil, nil
	}
	columns, err := imputedColumns(t, names, cfg.policy)
	if err != nil {
		return nil, err
	}
	scores, err := rank.ScoresRegression(columns, y, rank.Continuous, cfg.policy)
	if err != nil {
		return nil, err
	}
	order := rank.TopK(scores, rank.ShowTop(len(names)))
	writeRanking(cfg.summary, fmt.Sprintf("continuous features vs %s (F regression)", target), names, scores, order)

	inlier := make([]bool, len(y))
	for i := range inlier {
		inlier[i] = !math.IsNaN(y[i])
	}
	if cfg.dropOutliers {
		inlier = stats.FindInliers(y)
	}

	fig := figure.New("continuous features vs " + target)
	alpha, size := ResolveAlpha(len(y)), ResolveSize(len(y))
	for _, j := range order {
		xs, ys := []float64{}, []float64{}
		raw, err := t.Floats(names[j])
		if err != nil {
			return nil, err
		}
		for i := range y {
			if inlier[i] && !math.IsNaN(raw[i]) {
				xs = append(xs, raw[i])
				ys = append(ys, y[i])
			}
		}
		p, err := figure.ContinuousScatter(names[j], names[j], target, xs, ys, alpha, size)
		if err != nil {
			skipPanel(names[j], err)
			continue
		}
		fig.Add(p)
	}
	if fig.Empty() {
		return nil, nil
	}
	return fig, nil
}

func categoricalVsTarget(t *dataset.Table, target string, types preprocess.Types, y []float64, cfg *config) (*figure.Figure, error) {
	names := featureNames(t, types, preprocess.Categorical, target)
	if len(names) == 0 {
		return nil, nil
	}
	pruned := make([][]string, len(names))
	columns := make([][]float64, len(names))
	for j, name := range names {
		levels, err := prunedCategories(t, name, cfg.categoryCap)
		if err != nil {
			return nil, err
		}
		pruned[j] = levels
		columns[j], _ = stats.OrdinalEncode(levels)
	}
	scores, err := rank.ScoresRegression(columns, y, rank.Categorical, cfg.policy)
	if err != nil {
		return nil, err
	}
	order := rank.TopK(scores, rank.ShowTop(len(names)))
	writeRanking(cfg.summary, fmt.Sprintf("categorical features vs %s (mutual information)", target), names, scores, order)

	fig := figure.New("categorical features vs " + target)
	for _, j := range order {
		groups := groupByLevel(pruned[j], y)
		// ascending median target makes level ordering comparable
		// across panels
		sort.SliceStable(groups, func(a, b int) bool {
			return stats.Median(groups[a].Values) < stats.Median(groups[b].Values)
		})
		p, err := figure.BoxPlot(names[j]+" vs "+target, groups)
		if err != nil {
			skipPanel(names[j], err)
			continue
		}
		fig.Add(p)
	}
	if fig.Empty() {
		return nil, nil
	}
	return fig, nil
}

func groupByLevel(levels []string, y []float64) []figure.Group {
	byLevel := map[string][]float64{}
	for i, level := range levels {
		if !math.IsNaN(y[i]) {
			byLevel[level] = append(byLevel[level], y[i])
		}
	}
	groups := []figure.Group{}
	for _, level := range sortedLevels(levels) {
		if vals := byLevel[level]; len(vals) > 0 {
			groups = append(groups, figure.Group{Label: level, Values: vals})
		}
	}
	return groups
}
