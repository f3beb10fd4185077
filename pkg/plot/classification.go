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

	gplot "gonum.org/v1/plot"

	"github.com/glimpse-ml/glimpse/pkg/dataset"
	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/interact"
	"github.com/glimpse-ml/glimpse/pkg/log"
	"github.com/glimpse-ml/glimpse/pkg/model"
	"github.com/glimpse-ml/glimpse/pkg/preprocess"
	"github.com/glimpse-ml/glimpse/pkg/projection"
	"github.com/glimpse-ml/glimpse/pkg/rank"
	"github.com/glimpse-ml/glimpse/pkg/stats"
)

// pairplotMax is the continuous-feature count up to which the
// classification branch plots every feature pair instead of searching
// for the best-separating ones.
const pairplotMax = 5

// maxPairSearchDims bounds the candidate set of the quadratic
// interaction search.
const maxPairSearchDims = 5

// classificationFigures emits, in order: class counts, per-class
// feature distributions, pairwise scatter of the best-separating
// feature pairs, PCA projections with a scree line, LDA projections
// (three or more classes; a discriminant histogram for two), and
// categorical features against the class.
func classificationFigures(t *dataset.Table, target string, types preprocess.Types, cfg *config) ([]*figure.Figure, error) {
	y, err := t.Strings(target)
	if err != nil {
		return nil, err
	}
	classes := sortedLevels(y)
	if len(classes) < 2 {
		return nil, fmt.Errorf("plot: target %q has a single class", target)
	}
	figs := []*figure.Figure{}

	if fig := classCountsFigure(target, y, classes); fig != nil {
		figs = append(figs, fig)
	}

	contNames := featureNames(t, types, preprocess.Continuous, target)
	var columns [][]float64
	var scores []float64
	if len(contNames) > 0 {
		if columns, err = imputedColumns(t, contNames, cfg.policy); err != nil {
			return nil, err
		}
		if scores, err = rank.ScoresClassification(columns, y, rank.Continuous, cfg.policy); err != nil {
			return nil, err
		}
		order := rank.TopK(scores, rank.ShowTop(len(contNames)))
		writeRanking(cfg.summary, fmt.Sprintf("continuous features vs %s (ANOVA F)", target), contNames, scores, order)

		if fig := classDistFigure(t, contNames, order, y, cfg); fig != nil {
			figs = append(figs, fig)
		}
	}

	if len(contNames) >= 2 {
		if fig, err := pairFigure(contNames, columns, scores, y, cfg); err != nil {
			return nil, err
		} else if fig != nil {
			figs = append(figs, fig)
		}
		figs = append(figs, projectionFigures(columns, contNames, y, classes, cfg)...)
	}

	if fig, err := categoricalVsClass(t, target, types, y, classes, cfg); err != nil {
		return nil, err
	} else if fig != nil {
		figs = append(figs, fig)
	}
	return figs, nil
}

func classCountsFigure(target string, y, classes []string) *figure.Figure {
	counts := make([]float64, len(classes))
	index := map[string]int{}
	for i, c := range classes {
		index[c] = i
	}
	for _, label := range y {
		counts[index[label]]++
	}
	p, err := figure.CountBar("class distribution of "+target, classes, counts, false)
	if err != nil {
		skipPanel("class distribution", err)
		return nil
	}
	fig := figure.New("class distribution")
	fig.Add(p)
	return fig
}

// classDistFigure draws the class-conditional distribution of each top
// continuous feature, as overlaid histograms or density lines.
func classDistFigure(t *dataset.Table, names []string, order []int, y []string, cfg *config) *figure.Figure {
	fig := figure.New("feature distributions by class")
	for _, j := range order {
		raw, err := t.Floats(names[j])
		if err != nil {
			skipPanel(names[j], err)
			continue
		}
		byClass := map[string][]float64{}
		for i, label := range y {
			byClass[label] = append(byClass[label], raw[i])
		}
		var p *gplot.Plot
		if cfg.dist == DistKDE {
			p, err = figure.ClassKDE(names[j], byClass)
		} else {
			p, err = figure.ClassHistogram(names[j], byClass, cfg.bins, 0.5)
		}
		if err != nil {
			skipPanel(names[j], err)
			continue
		}
		fig.Add(p)
	}
	if fig.Empty() {
		return nil
	}
	return fig
}

// pairFigure scatters the best-separating feature pairs. With at most
// pairplotMax continuous features every pair is drawn; past that the
// candidates are the top features by univariate score and the pairs
// come from the cross-validated interaction search.
func pairFigure(names []string, columns [][]float64, scores []float64, y []string, cfg *config) (*figure.Figure, error) {
	candidates := rank.TopK(scores, maxPairSearchDims)
	var pairs []interact.Pair
	if len(names) <= pairplotMax {
		candidates = make([]int, len(names))
		for i := range candidates {
			candidates[i] = i
		}
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				pairs = append(pairs, interact.Pair{I: i, J: j})
			}
		}
	} else {
		rows := rowsFor(columns, candidates)
		found, err := interact.ScatterPairs(rows, y, cfg.topPairs, interact.Config{
			Folds: cfg.folds,
			Seed:  cfg.seed,
		})
		if err != nil {
			return nil, err
		}
		pairs = found
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	fig := figure.New("pairwise feature separation")
	alpha, size := ResolveAlpha(len(y)), ResolveSize(len(y))
	for _, pair := range pairs {
		xi, xj := candidates[pair.I], candidates[pair.J]
		title := names[xi] + " vs " + names[xj]
		p, err := figure.DiscreteScatter(title, names[xi], names[xj], columns[xi], columns[xj], y, alpha, size)
		if err != nil {
			skipPanel(title, err)
			continue
		}
		fig.Add(p)
	}
	if fig.Empty() {
		return nil, nil
	}
	return fig, nil
}

// projectionFigures renders the PCA view (best-separating component
// pairs plus the explained-variance scree) and the LDA view. Both are
// best-effort: a decomposition failure skips its figure with a warning
// rather than failing the call.
func projectionFigures(columns [][]float64, names []string, y, classes []string, cfg *config) []*figure.Figure {
	all := make([]int, len(columns))
	for i := range all {
		all[i] = i
	}
	rows := stats.Scale(rowsFor(columns, all))
	figs := []*figure.Figure{}
	alpha, size := ResolveAlpha(len(y)), ResolveSize(len(y))

	nComp := len(names)
	if nComp > maxPairSearchDims {
		nComp = maxPairSearchDims
	}
	pca := &projection.PCA{NComponents: nComp}
	comps, err := pca.FitTransform(rows)
	if err != nil {
		skipPanel("pca", err)
	} else {
		fig := figure.New("pca projections")
		pairs := []interact.Pair{{I: 0, J: 1}}
		if nComp > 2 {
			found, err := interact.ScatterPairs(comps, y, cfg.topPairs, interact.Config{
				Folds: cfg.folds,
				Seed:  cfg.seed,
			})
			if err != nil {
				skipPanel("pca pair search", err)
			} else if len(found) > 0 {
				pairs = found
			}
		}
		for _, pair := range pairs {
			xi := componentColumn(comps, pair.I)
			xj := componentColumn(comps, pair.J)
			title := fmt.Sprintf("PC%d vs PC%d", pair.I+1, pair.J+1)
			p, err := figure.DiscreteScatter(title, fmt.Sprintf("PC%d", pair.I+1), fmt.Sprintf("PC%d", pair.J+1), xi, xj, y, alpha, size)
			if err != nil {
				skipPanel(title, err)
				continue
			}
			fig.Add(p)
		}
		if p, err := figure.ScreeLine("pca explained variance", pca.ExplainedVarianceRatio()); err != nil {
			skipPanel("pca scree", err)
		} else {
			fig.Add(p)
		}
		if !fig.Empty() {
			figs = append(figs, fig)
		}
	}

	if fig := ldaFigure(rows, y, classes, alpha, size); fig != nil {
		figs = append(figs, fig)
	}
	return figs
}

// ldaFigure projects onto the linear discriminants: a scatter of the
// first two for three or more classes, a per-class histogram of the
// single discriminant for binary targets.
func ldaFigure(rows [][]float64, y, classes []string, alpha, size float64) *figure.Figure {
	nComp := len(classes) - 1
	if nComp > 2 {
		nComp = 2
	}
	lda := &projection.LDA{NComponents: nComp}
	proj, err := lda.FitTransform(rows, y)
	if err != nil {
		skipPanel("lda", err)
		return nil
	}
	recall := model.RecallMacro(y, lda.Predict(rows))
	log.WithFields(log.Fields{"macro_recall": fmt.Sprintf("%.3f", recall)}).Info("lda training separation")

	fig := figure.New("lda projections")
	if nComp >= 2 {
		p, err := figure.DiscreteScatter("LD1 vs LD2", "LD1", "LD2",
			componentColumn(proj, 0), componentColumn(proj, 1), y, alpha, size)
		if err != nil {
			skipPanel("lda scatter", err)
			return nil
		}
		fig.Add(p)
	} else {
		byClass := map[string][]float64{}
		for i, label := range y {
			byClass[label] = append(byClass[label], proj[i][0])
		}
		p, err := figure.ClassHistogram("LD1 by class", byClass, 0, 0.5)
		if err != nil {
			skipPanel("lda discriminant", err)
			return nil
		}
		fig.Add(p)
	}
	return fig
}

func componentColumn(rows [][]float64, j int) []float64 {
	out := make([]float64, len(rows))
	for i := range rows {
		out[i] = rows[i][j]
	}
	return out
}

// categoricalVsClass renders each top categorical feature against the
// class: a mosaic when the resolved kind says so, grouped or stacked
// bars otherwise.
func categoricalVsClass(t *dataset.Table, target string, types preprocess.Types, y, classes []string, cfg *config) (*figure.Figure, error) {
	names := featureNames(t, types, preprocess.Categorical, target)
	if len(names) == 0 {
		return nil, nil
	}
	kind := ResolveCatKind(cfg.catKind, len(classes))

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
	scores, err := rank.ScoresClassification(columns, y, rank.Categorical, cfg.policy)
	if err != nil {
		return nil, err
	}
	order := rank.TopK(scores, rank.ShowTop(len(names)))
	writeRanking(cfg.summary, fmt.Sprintf("categorical features vs %s (mutual information)", target), names, scores, order)

	fig := figure.New("categorical features vs " + target)
	for _, j := range order {
		title := names[j] + " vs " + target
		var p *gplot.Plot
		if kind == CatMosaic {
			p, err = figure.Mosaic(title, pruned[j], y)
		} else {
			levels := sortedLevels(pruned[j])
			counts := levelClassCounts(pruned[j], y, levels, classes)
			p, err = figure.GroupedCountBar(title, levels, classes, counts, kind == CatProportion)
		}
		if err != nil {
			skipPanel(title, err)
			continue
		}
		fig.Add(p)
	}
	if fig.Empty() {
		return nil, nil
	}
	return fig, nil
}

func levelClassCounts(levels, y, levelOrder, classes []string) [][]float64 {
	levelIdx := map[string]int{}
	for i, l := range levelOrder {
		levelIdx[l] = i
	}
	classIdx := map[string]int{}
	for i, c := range classes {
		classIdx[c] = i
	}
	counts := make([][]float64, len(classes))
	for ci := range counts {
		counts[ci] = make([]float64, len(levelOrder))
	}
	for i := range levels {
		counts[classIdx[y[i]]][levelIdx[levels[i]]]++
	}
	return counts
}
