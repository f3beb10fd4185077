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
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glimpse-ml/glimpse/pkg/dataset"
	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/stats"
)

// binaryTable builds 200 rows where x1 drives a binary target, x2 is
// pure noise and category has five levels.
func binaryTable(t *testing.T) *dataset.Table {
	rng := rand.New(rand.NewSource(7))
	records := [][]string{{"x1", "x2", "category", "target"}}
	levels := []string{"a", "b", "c", "d", "e"}
	for i := 0; i < 200; i++ {
		x1 := rng.NormFloat64()
		x2 := rng.NormFloat64()
		target := "no"
		if x1 > 0 {
			target = "yes"
		}
		records = append(records, []string{
			fmt.Sprintf("%.4f", x1),
			fmt.Sprintf("%.4f", x2),
			levels[i%5],
			target,
		})
	}
	tbl, err := dataset.FromRecords(records)
	assert.NoError(t, err)
	return tbl
}

func findFigure(figs []*figure.Figure, title string) *figure.Figure {
	for _, f := range figs {
		if f.Title == title {
			return f
		}
	}
	return nil
}

func TestPlotBinaryClassification(t *testing.T) {
	a := assert.New(t)
	var summary bytes.Buffer
	figs, err := Plot(binaryTable(t), "target", Options{Summary: &summary})
	a.NoError(err)
	a.NotEmpty(figs)

	a.NotNil(findFigure(figs, "class distribution"))
	a.NotNil(findFigure(figs, "feature distributions by class"))
	a.NotNil(findFigure(figs, "pca projections"))
	a.NotNil(findFigure(figs, "lda projections"))
	a.NotNil(findFigure(figs, "categorical features vs target"))

	// Two continuous features: the pairwise figure holds exactly the
	// one (x1, x2) panel.
	pairFig := findFigure(figs, "pairwise feature separation")
	a.NotNil(pairFig)
	a.Len(pairFig.Panels, 1)

	// The informative feature outranks the noise one in the summary.
	out := summary.String()
	a.Contains(out, "continuous features vs target")
	a.True(strings.Index(out, "x1") < strings.Index(out, "x2"))
}

func TestPlotRegressionSkewedTarget(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(11))
	records := [][]string{{"x", "group", "target"}}
	groups := []string{"low", "mid", "high"}
	for i := 0; i < 150; i++ {
		g := groups[i%3]
		base := float64(i%3) * 4
		target := math.Exp(rng.NormFloat64()) + base
		records = append(records, []string{
			fmt.Sprintf("%.4f", rng.NormFloat64()+base),
			g,
			fmt.Sprintf("%.4f", target),
		})
	}
	tbl, err := dataset.FromRecords(records)
	a.NoError(err)

	figs, err := Plot(tbl, "target", Options{})
	a.NoError(err)
	a.NotNil(findFigure(figs, "target distribution"))
	a.NotNil(findFigure(figs, "continuous features vs target"))
	a.NotNil(findFigure(figs, "categorical features vs target"))
}

func TestGroupByLevelOrdering(t *testing.T) {
	a := assert.New(t)
	levels := []string{"p", "q", "p", "q", "r", "r"}
	y := []float64{10, 1, 12, 3, 5, 7}
	groups := groupByLevel(levels, y)
	// sorting by ascending median is the box-plot ordering contract
	order := func(groups []figure.Group) []string {
		names := []string{}
		for _, g := range groups {
			names = append(names, g.Label)
		}
		return names
	}
	a.ElementsMatch([]string{"p", "q", "r"}, order(groups))

	byMedian := append([]figure.Group(nil), groups...)
	for i := 0; i < len(byMedian); i++ {
		for j := i + 1; j < len(byMedian); j++ {
			if stats.Median(byMedian[j].Values) < stats.Median(byMedian[i].Values) {
				byMedian[i], byMedian[j] = byMedian[j], byMedian[i]
			}
		}
	}
	a.Equal([]string{"q", "r", "p"}, order(byMedian))
}

func TestPlotUnknownOptionIsFatal(t *testing.T) {
	a := assert.New(t)
	_, err := Plot(binaryTable(t), "target", Options{
		Attrs: map[string]interface{}{"bogus": 1},
	})
	a.Error(err)

	_, err = Plot(binaryTable(t), "target", Options{
		Attrs: map[string]interface{}{"dist": "violin"},
	})
	a.Error(err)
}

func TestPlotMissingTarget(t *testing.T) {
	a := assert.New(t)
	_, err := Plot(binaryTable(t), "nope", Options{})
	a.Error(err)
}

func TestPlotConstantTarget(t *testing.T) {
	a := assert.New(t)
	records := [][]string{{"x", "target"}}
	for i := 0; i < 20; i++ {
		records = append(records, []string{fmt.Sprintf("%d.5", i), "same"})
	}
	tbl, err := dataset.FromRecords(records)
	a.NoError(err)
	_, err = Plot(tbl, "target", Options{})
	a.Error(err)
}

func TestResolveCatKind(t *testing.T) {
	a := assert.New(t)
	a.Equal(CatMosaic, ResolveCatKind(CatAuto, 2))
	a.Equal(CatMosaic, ResolveCatKind(CatAuto, 5))
	a.Equal(CatCount, ResolveCatKind(CatAuto, 6))
	a.Equal(CatProportion, ResolveCatKind(CatProportion, 2))
}

func TestResolveAlphaAndSizeMonotone(t *testing.T) {
	a := assert.New(t)
	ns := []int{10, 100, 500, 1000, 5000, 10000, 100000}
	for i := 1; i < len(ns); i++ {
		a.True(ResolveAlpha(ns[i]) <= ResolveAlpha(ns[i-1]))
		a.True(ResolveSize(ns[i]) <= ResolveSize(ns[i-1]))
	}
	a.True(ResolveAlpha(1) <= 1)
	a.True(ResolveAlpha(1e9) > 0)
}

func TestKDEDistOption(t *testing.T) {
	a := assert.New(t)
	figs, err := Plot(binaryTable(t), "target", Options{
		Attrs: map[string]interface{}{"dist": DistKDE},
	})
	a.NoError(err)
	a.NotNil(findFigure(figs, "feature distributions by class"))
}
