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
	"math/rand"
)

// Classifier is the minimal estimator contract accepted by
// cross-validation and the interaction search.
type Classifier interface {
	Fit(X [][]float64, y []string) error
	Predict(X [][]float64) []string
	Classes() []string
}

// ProbClassifier additionally exposes per-class probabilities, as
// needed by ROC curves and partial dependence.
type ProbClassifier interface {
	Classifier
	PredictProba(X [][]float64) [][]float64
}

// StratifiedKFold assigns samples to k folds keeping per-class
// proportions. Fold assignment is deterministic for a given seed: the
// only randomness in the toolkit is this documented shuffle.
func StratifiedKFold(y []string, k int, seed int64) [][]int {
	if k < 2 {
		k = 2
	}
	rng := rand.New(rand.NewSource(seed))
	byClass := map[string][]int{}
	order := []string{}
	for i, label := range y {
		if _, ok := byClass[label]; !ok {
			order = append(order, label)
		}
		byClass[label] = append(byClass[label], i)
	}
	folds := make([][]int, k)
	for _, label := range order {
		idx := byClass[label]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		for pos, i := range idx {
			f := pos % k
			folds[f] = append(folds[f], i)
		}
	}
	return folds
}

// CrossValMacroRecall fits a fresh classifier from factory on each
// training split and returns the mean macro-average recall over the k
// held-out folds. Macro averaging keeps majority classes from
// dominating the score.
func CrossValMacroRecall(X [][]float64, y []string, k int, seed int64, factory func() Classifier) (float64, error) {
	if len(X) != len(y) || len(X) == 0 {
		return 0, fmt.Errorf("crossval: need matching non-empty X and y")
	}
	folds := StratifiedKFold(y, k, seed)

	var total float64
	scored := 0
	for _, test := range folds {
		if len(test) == 0 {
			continue
		}
		inTest := make(map[int]bool, len(test))
		for _, i := range test {
			inTest[i] = true
		}
		trainX := make([][]float64, 0, len(X)-len(test))
		trainY := make([]string, 0, len(y)-len(test))
		testX := make([][]float64, 0, len(test))
		testY := make([]string, 0, len(test))
		for i := range X {
			if inTest[i] {
				testX = append(testX, X[i])
				testY = append(testY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}
		if len(trainX) == 0 {
			continue
		}
		clf := factory()
		if err := clf.Fit(trainX, trainY); err != nil {
			return 0, err
		}
		total += RecallMacro(testY, clf.Predict(testX))
		scored++
	}
	if scored == 0 {
		return 0, fmt.Errorf("crossval: no scorable folds")
	}
	return total / float64(scored), nil
}
