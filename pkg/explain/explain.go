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

// Package explain renders what a fitted estimator learned: the model
// structure (tree diagram, coefficients or aggregate importances,
// chosen by a capability probe) and, when validation data is supplied,
// evaluation panels (classification report, confusion matrix, ROC
// curves, partial dependence).
//
// Wrappers are unwrapped by a fixed-depth visitor: wrapper, then a
// pipeline of exactly one preprocessing step, then the final
// estimator. Deeper nesting is a structural mismatch and fails loudly.
package explain

import (
	"fmt"
	"io"
	"math"

	"github.com/glimpse-ml/glimpse/pkg/figure"
	"github.com/glimpse-ml/glimpse/pkg/log"
	"github.com/glimpse-ml/glimpse/pkg/model"
)

// Capability tags what kind of explanation an estimator supports.
type Capability int

const (
	// Unknown estimators get evaluation panels only.
	Unknown Capability = iota
	// Linear estimators expose per-class coefficients.
	Linear
	// Tree estimators expose a single decision tree.
	Tree
	// Ensemble estimators expose aggregate feature importances.
	Ensemble
)

func (c Capability) String() string {
	switch c {
	case Linear:
		return "linear"
	case Tree:
		return "tree"
	case Ensemble:
		return "ensemble"
	default:
		return "unknown"
	}
}

type linearModel interface {
	Coef() [][]float64
	Classes() []string
}

type treeModel interface {
	Root() *model.TreeNode
	FeatureImportances() []float64
	Depth() int
	Leaves() int
	Classes() []string
}

type importanceModel interface {
	FeatureImportances() []float64
}

type probModel interface {
	PredictProba(X [][]float64) [][]float64
	Classes() []string
}

// Probe classifies an estimator by the explanation interfaces it
// implements. A single tree is probed before the generic importance
// interface so ensembles do not shadow it.
func Probe(est model.Estimator) Capability {
	if _, ok := est.(treeModel); ok {
		return Tree
	}
	if _, ok := est.(linearModel); ok {
		return Linear
	}
	if _, ok := est.(importanceModel); ok {
		return Ensemble
	}
	return Unknown
}

// Unwrapped is the result of descending through wrapper layers.
type Unwrapped struct {
	// Final is the innermost concrete estimator.
	Final model.Estimator
	// FeatureNames were recorded by the wrapper, nil when absent.
	FeatureNames []string
	// Steps are the pipeline's preprocessing steps, at most one.
	Steps []model.NamedTransformer
}

// Unwrap descends wrapper then pipeline then final estimator. A
// pipeline must hold exactly one preprocessing step; any further
// wrapper nesting is an error.
func Unwrap(est model.Estimator) (*Unwrapped, error) {
	if est == nil {
		return nil, fmt.Errorf("explain: nil estimator")
	}
	out := &Unwrapped{}
	if sc, ok := est.(*model.SimpleClassifier); ok {
		out.FeatureNames = sc.FeatureNames
		est = sc.Inner()
		if est == nil {
			return nil, fmt.Errorf("explain: wrapper holds no fitted estimator")
		}
	}
	if p, ok := est.(*model.Pipeline); ok {
		if len(p.Steps) != 1 {
			return nil, fmt.Errorf("explain: pipeline has %d preprocessing steps, want exactly 1", len(p.Steps))
		}
		out.Steps = p.Steps
		est = p.Final
	}
	switch est.(type) {
	case *model.SimpleClassifier, *model.Pipeline:
		return nil, fmt.Errorf("explain: unexpected estimator nesting")
	case nil:
		return nil, fmt.Errorf("explain: pipeline holds no final estimator")
	}
	out.Final = est
	return out, nil
}

// maxDiagramDepth caps how deep the rendered tree diagram goes.
const maxDiagramDepth = 5

// defaultPDFeatures caps how many features get partial dependence
// panels.
const defaultPDFeatures = 10

// Options configures an Explain call.
type Options struct {
	// FeatureNames overrides names recorded by the estimator wrapper.
	// Explain fails when neither source provides them.
	FeatureNames []string
	// XVal and YVal are held-out validation data; when present the
	// evaluation panels are produced.
	XVal [][]float64
	YVal []string
	// Summary receives the console report tables; nil skips them.
	Summary io.Writer
	// PDFeatures caps the partial dependence panels, default 10.
	PDFeatures int
}

// Explain renders the explanation figures for a fitted estimator.
func Explain(est model.Estimator, opts Options) ([]*figure.Figure, error) {
	u, err := Unwrap(est)
	if err != nil {
		return nil, err
	}
	names := opts.FeatureNames
	if names == nil {
		names = u.FeatureNames
		for _, s := range u.Steps {
			if names == nil {
				break
			}
			if names, err = s.Transformer.FeatureNames(names); err != nil {
				return nil, fmt.Errorf("explain: mapping feature names through %q: %v", s.Name, err)
			}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("explain: feature names neither supplied nor recorded by the estimator")
	}

	figs := []*figure.Figure{}
	hasVal := len(opts.XVal) > 0
	if hasVal && len(opts.XVal) != len(opts.YVal) {
		return nil, fmt.Errorf("explain: %d validation rows but %d labels", len(opts.XVal), len(opts.YVal))
	}

	if hasVal {
		yPred := est.Predict(opts.XVal)
		if opts.Summary != nil {
			if err := writeEvaluation(opts.Summary, opts.YVal, yPred); err != nil {
				return nil, err
			}
		}
		if fig := rocFigure(est, opts.XVal, opts.YVal); fig != nil {
			figs = append(figs, fig)
		}
	}

	capability := Probe(u.Final)
	log.WithFields(log.Fields{"capability": capability.String()}).Info("explaining estimator")
	switch capability {
	case Tree:
		if fig := treeFigure(u.Final.(treeModel), names); fig != nil {
			figs = append(figs, fig)
		}
	case Linear:
		if fig, err := coefFigure(u.Final.(linearModel), names); err != nil {
			return nil, err
		} else if fig != nil {
			figs = append(figs, fig)
		}
	case Ensemble:
		if fig := importanceFigure("ensemble feature importances", u.Final.(importanceModel).FeatureImportances(), names); fig != nil {
			figs = append(figs, fig)
		}
	default:
		log.WithFields(log.Fields{"estimator": fmt.Sprintf("%T", u.Final)}).Warnf("no structural explanation for this estimator")
	}

	if hasVal {
		if fig := partialDependenceFigure(est, u.Final, names, opts); fig != nil {
			figs = append(figs, fig)
		}
	}
	return figs, nil
}

// treeFigure renders the depth-capped diagram and the impurity
// importances of a single decision tree.
func treeFigure(tm treeModel, names []string) *figure.Figure {
	log.WithFields(log.Fields{
		"depth":  tm.Depth(),
		"leaves": tm.Leaves(),
	}).Info("decision tree structure")

	fig := figure.New("decision tree")
	if p, err := treeDiagram("decision tree", tm.Root(), names, tm.Classes(), maxDiagramDepth); err != nil {
		skipPanel("tree diagram", err)
	} else {
		fig.Add(p)
	}
	if p, err := figure.ImportanceBar("impurity importances", names, tm.FeatureImportances()); err != nil {
		skipPanel("tree importances", err)
	} else {
		fig.Add(p)
	}
	if fig.Empty() {
		return nil
	}
	return fig
}

// coefFigure renders coefficient bars: one panel for binary models,
// one per class in Classes() order otherwise.
func coefFigure(lm linearModel, names []string) (*figure.Figure, error) {
	rows := lm.Coef()
	if len(rows) == 0 {
		return nil, fmt.Errorf("explain: linear model has no coefficients")
	}
	fig := figure.New("coefficients")
	if len(rows) == 1 {
		p, err := coefPanel("coefficients", names, rows[0])
		if err != nil {
			return nil, err
		}
		fig.Add(p)
		return fig, nil
	}

	classes := lm.Classes()
	if len(classes) != len(rows) {
		return nil, fmt.Errorf("explain: %d coefficient rows for %d classes", len(rows), len(classes))
	}
	for i, class := range classes {
		p, err := coefPanel("coefficients: "+class, names, rows[i])
		if err != nil {
			return nil, err
		}
		fig.Add(p)
	}
	return fig, nil
}

func importanceFigure(title string, importances []float64, names []string) *figure.Figure {
	p, err := figure.ImportanceBar(title, names, importances)
	if err != nil {
		skipPanel(title, err)
		return nil
	}
	fig := figure.New(title)
	fig.Add(p)
	return fig
}

// modelImportances derives a per-feature importance vector usable for
// feature selection, whatever the capability.
func modelImportances(est model.Estimator, nFeatures int) []float64 {
	switch m := est.(type) {
	case treeModel:
		return m.FeatureImportances()
	case linearModel:
		rows := m.Coef()
		if len(rows) == 0 || len(rows[0]) != nFeatures {
			return nil
		}
		out := make([]float64, nFeatures)
		for _, row := range rows {
			for j, c := range row {
				out[j] += math.Abs(c)
			}
		}
		for j := range out {
			out[j] /= float64(len(rows))
		}
		return out
	case importanceModel:
		return m.FeatureImportances()
	default:
		return nil
	}
}

func skipPanel(name string, err error) {
	log.WithFields(log.Fields{"panel": name, "error": err}).Warnf("panel skipped")
}
