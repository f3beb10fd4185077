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
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/model"
)

func blobs(rng *rand.Rand, perClass int, centers [][]float64) ([][]float64, []string) {
	X := [][]float64{}
	y := []string{}
	labels := []string{"alpha", "beta", "gamma", "delta"}
	for ci, center := range centers {
		for i := 0; i < perClass; i++ {
			row := make([]float64, len(center))
			for j, c := range center {
				row[j] = c + rng.NormFloat64()*0.3
			}
			X = append(X, row)
			y = append(y, labels[ci])
		}
	}
	return X, y
}

func fittedScaler(t *testing.T, X [][]float64) *model.StandardScaler {
	s := &model.StandardScaler{}
	assert.NoError(t, s.Fit(X))
	return s
}

func TestProbe(t *testing.T) {
	a := assert.New(t)
	a.Equal(Tree, Probe(&model.DecisionTree{}))
	a.Equal(Linear, Probe(&model.LogisticRegression{}))
	a.Equal(Ensemble, Probe(&model.BaggedTrees{}))
}

func TestUnwrapRejectsDeepPipelines(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(3))
	X, y := blobs(rng, 20, [][]float64{{0, 0}, {4, 4}})
	tree := &model.DecisionTree{}
	a.NoError(tree.Fit(X, y))

	scaler := fittedScaler(t, X)
	deep := &model.Pipeline{
		Steps: []model.NamedTransformer{
			{Name: "scale", Transformer: scaler},
			{Name: "scale again", Transformer: scaler},
		},
		Final: tree,
	}
	_, err := Unwrap(deep)
	a.Error(err)

	ok := &model.Pipeline{
		Steps: []model.NamedTransformer{{Name: "scale", Transformer: scaler}},
		Final: tree,
	}
	u, err := Unwrap(ok)
	a.NoError(err)
	a.Equal(tree, u.Final)
	a.Len(u.Steps, 1)
}

func TestExplainRequiresFeatureNames(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(4))
	X, y := blobs(rng, 20, [][]float64{{0, 0}, {4, 4}})
	tree := &model.DecisionTree{}
	a.NoError(tree.Fit(X, y))

	_, err := Explain(tree, Options{})
	a.Error(err)

	figs, err := Explain(tree, Options{FeatureNames: []string{"a", "b"}})
	a.NoError(err)
	a.NotEmpty(figs)
}

func findFigure(figs []*figure.Figure, title string) *figure.Figure {
	for _, f := range figs {
		if f.Title == title {
			return f
		}
	}
	return nil
}

func TestExplainThreeClassLinear(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(5))
	X, y := blobs(rng, 30, [][]float64{{0, 0}, {5, 0}, {0, 5}})
	lr := &model.LogisticRegression{}
	a.NoError(lr.Fit(X, y))

	wrapped := &model.Pipeline{
		Steps: []model.NamedTransformer{{Name: "scale", Transformer: fittedScaler(t, X)}},
		Final: lr,
	}
	figs, err := Explain(wrapped, Options{FeatureNames: []string{"f1", "f2"}})
	a.NoError(err)

	coef := findFigure(figs, "coefficients")
	a.NotNil(coef)
	// exactly one panel per class, in Classes() order
	a.Len(coef.Panels, 3)
	for i, class := range lr.Classes() {
		a.Equal("coefficients: "+class, coef.Panels[i].Title.Text)
	}
}

func TestCoefPanel(t *testing.T) {
	a := assert.New(t)

	p, err := coefPanel("coefficients", []string{"f1", "f2", "f3"}, []float64{1.5, -0.7, 0.2})
	a.NoError(err)
	a.Equal("coefficients", p.Title.Text)

	_, err = coefPanel("coefficients", []string{"f1"}, []float64{1, 2})
	a.Error(err)
	_, err = coefPanel("coefficients", nil, nil)
	a.Error(err)
}

func TestExplainBinaryLinearSinglePanel(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(9))
	X, y := blobs(rng, 30, [][]float64{{0, 0}, {5, 5}})
	lr := &model.LogisticRegression{}
	a.NoError(lr.Fit(X, y))

	figs, err := Explain(lr, Options{FeatureNames: []string{"f1", "f2"}})
	a.NoError(err)

	coef := findFigure(figs, "coefficients")
	a.NotNil(coef)
	a.Len(coef.Panels, 1)
	a.Equal("coefficients", coef.Panels[0].Title.Text)
}

func TestExplainTreeFigure(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(6))
	X, y := blobs(rng, 30, [][]float64{{0, 0}, {4, 4}})
	tree := &model.DecisionTree{MaxDepth: 3}
	a.NoError(tree.Fit(X, y))

	figs, err := Explain(tree, Options{FeatureNames: []string{"a", "b"}})
	a.NoError(err)
	fig := findFigure(figs, "decision tree")
	a.NotNil(fig)
	a.Len(fig.Panels, 2) // diagram + importances
}

func TestExplainWithValidation(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(7))
	X, y := blobs(rng, 40, [][]float64{{0, 0}, {4, 4}})
	XVal, yVal := blobs(rng, 15, [][]float64{{0, 0}, {4, 4}})

	sc := &model.SimpleClassifier{Seed: 1, FeatureNames: []string{"a", "b"}}
	a.NoError(sc.Fit(X, y))

	var summary bytes.Buffer
	figs, err := Explain(sc, Options{XVal: XVal, YVal: yVal, Summary: &summary})
	a.NoError(err)

	out := summary.String()
	a.Contains(out, "classification report")
	a.Contains(out, "confusion matrix")
	a.NotNil(findFigure(figs, "roc curves"))
	a.NotNil(findFigure(figs, "partial dependence"))
}

func TestSelectImportant(t *testing.T) {
	a := assert.New(t)
	imp := []float64{0.5, 0.05, 0.3, 0.1, 0.05}
	// mean = 0.2; only 0.5 and 0.3 clear it, best first
	a.Equal([]int{0, 2}, selectImportant(imp, 10))
	a.Equal([]int{0}, selectImportant(imp, 1))
	a.Empty(selectImportant(nil, 10))
}

func TestPartialDependenceConstantFeature(t *testing.T) {
	a := assert.New(t)
	rng := rand.New(rand.NewSource(8))
	X, y := blobs(rng, 20, [][]float64{{0, 0}, {4, 4}})
	for i := range X {
		X[i][1] = 1 // constant column
	}
	tree := &model.DecisionTree{}
	a.NoError(tree.Fit(X, y))

	_, _, err := partialDependence(tree, X, 1)
	a.Error(err)

	grid, curves, err := partialDependence(tree, X, 0)
	a.NoError(err)
	a.Len(grid, pdGridPoints)
	a.Len(curves, 2)
	for _, curve := range curves {
		a.Len(curve, pdGridPoints)
	}
}
