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

package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Estimator is a fitted classifier the explainer can work with.
type Estimator interface {
	Predict(X [][]float64) []string
	Classes() []string
}

// Transformer is one preprocessing step in a Pipeline.
type Transformer interface {
	Transform(X [][]float64) [][]float64
	// FeatureNames maps input feature names to the names of the
	// transformed output columns.
	FeatureNames(in []string) ([]string, error)
}

// StandardScaler standardizes columns to zero mean and unit variance
// using statistics captured at Fit time.
type StandardScaler struct {
	mean []float64
	std  []float64
}

// Fit captures per-column mean and standard deviation.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("scaler: empty input")
	}
	p := len(X[0])
	s.mean = make([]float64, p)
	s.std = make([]float64, p)
	col := make([]float64, len(X))
	for j := 0; j < p; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		m, sd := stat.MeanStdDev(col, nil)
		if sd == 0 || math.IsNaN(sd) {
			sd = 1
		}
		s.mean[j], s.std[j] = m, sd
	}
	return nil
}

// Transform applies the captured standardization.
func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = (v - s.mean[j]) / s.std[j]
		}
		out[i] = r
	}
	return out
}

// FeatureNames is the identity: scaling keeps columns.
func (s *StandardScaler) FeatureNames(in []string) ([]string, error) {
	return in, nil
}

// NamedTransformer pairs a Transformer with its step name.
type NamedTransformer struct {
	Name        string
	Transformer Transformer
}

// Pipeline chains preprocessing steps with a final estimator. The
// explainer only supports exactly one preprocessing step; deeper
// pipelines are a structural mismatch it fails loudly on.
type Pipeline struct {
	Steps []NamedTransformer
	Final Estimator
}

// Predict runs the input through all steps and the final estimator.
func (p *Pipeline) Predict(X [][]float64) []string {
	for _, s := range p.Steps {
		X = s.Transformer.Transform(X)
	}
	return p.Final.Predict(X)
}

// Classes returns the final estimator's classes.
func (p *Pipeline) Classes() []string { return p.Final.Classes() }

// PredictProba runs the input through all steps and returns the final
// estimator's class probabilities, or nil when the final estimator
// cannot produce them.
func (p *Pipeline) PredictProba(X [][]float64) [][]float64 {
	for _, s := range p.Steps {
		X = s.Transformer.Transform(X)
	}
	if prob, ok := p.Final.(ProbClassifier); ok {
		return prob.PredictProba(X)
	}
	return nil
}

// SimpleClassifier fits a few baseline models (shallow tree, logistic
// regression, bagged trees) on scaled inputs, keeps the one with the
// best cross-validated macro recall and wraps it in a Pipeline.
type SimpleClassifier struct {
	Folds int   // default 5
	Seed  int64 // fold assignment seed

	FeatureNames []string
	BestName     string
	BestScore    float64
	est          *Pipeline
}

// Inner returns the fitted pipeline. The explainer descends through it.
func (s *SimpleClassifier) Inner() Estimator { return s.est }

// Predict proxies to the fitted pipeline.
func (s *SimpleClassifier) Predict(X [][]float64) []string { return s.est.Predict(X) }

// Classes proxies to the fitted pipeline.
func (s *SimpleClassifier) Classes() []string { return s.est.Classes() }

// PredictProba proxies to the fitted pipeline.
func (s *SimpleClassifier) PredictProba(X [][]float64) [][]float64 {
	return s.est.PredictProba(X)
}

// Fit scales X, cross-validates the candidate models and refits the
// winner on the full data.
func (s *SimpleClassifier) Fit(X [][]float64, y []string) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("simple classifier: need matching non-empty X and y")
	}
	if s.Folds < 2 {
		s.Folds = 5
	}
	scaler := &StandardScaler{}
	if err := scaler.Fit(X); err != nil {
		return err
	}
	scaled := scaler.Transform(X)

	candidates := []struct {
		name    string
		factory func() Classifier
	}{
		{"decision tree", func() Classifier { return &DecisionTree{MaxDepth: 5} }},
		{"logistic regression", func() Classifier { return &LogisticRegression{} }},
		{"bagged trees", func() Classifier { return &BaggedTrees{Seed: s.Seed} }},
	}

	s.BestScore = math.Inf(-1)
	var bestFactory func() Classifier
	for _, c := range candidates {
		score, err := CrossValMacroRecall(scaled, y, s.Folds, s.Seed, c.factory)
		if err != nil {
			return err
		}
		if score > s.BestScore {
			s.BestScore = score
			s.BestName = c.name
			bestFactory = c.factory
		}
	}

	final := bestFactory()
	if err := final.Fit(scaled, y); err != nil {
		return err
	}
	s.est = &Pipeline{
		Steps: []NamedTransformer{{Name: "standard scaler", Transformer: scaler}},
		Final: final,
	}
	return nil
}
