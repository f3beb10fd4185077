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
	"sort"
)

// LogisticRegression is a multinomial (softmax) linear classifier
// trained by full-batch gradient descent.
type LogisticRegression struct {
	LearningRate float64 // default 0.1
	Epochs       int     // default 300
	L2           float64 // ridge penalty, default 1e-4

	classes []string
	weights [][]float64 // nClasses x nFeatures
	bias    []float64   // nClasses
}

// Classes returns the class labels in sorted order.
func (l *LogisticRegression) Classes() []string { return l.classes }

// Fit trains the classifier on X (row-major samples) and labels y.
func (l *LogisticRegression) Fit(X [][]float64, y []string) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("logreg: need matching non-empty X and y")
	}
	if l.LearningRate <= 0 {
		l.LearningRate = 0.1
	}
	if l.Epochs <= 0 {
		l.Epochs = 300
	}
	if l.L2 <= 0 {
		l.L2 = 1e-4
	}

	seen := map[string]bool{}
	l.classes = l.classes[:0]
	for _, label := range y {
		if !seen[label] {
			seen[label] = true
			l.classes = append(l.classes, label)
		}
	}
	sort.Strings(l.classes)
	k := len(l.classes)
	if k < 2 {
		return fmt.Errorf("logreg: need at least 2 classes, got %d", k)
	}
	classIdx := make(map[string]int, k)
	for i, c := range l.classes {
		classIdx[c] = i
	}

	n, p := len(X), len(X[0])
	l.weights = make([][]float64, k)
	for c := range l.weights {
		l.weights[c] = make([]float64, p)
	}
	l.bias = make([]float64, k)

	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, p)
	}
	gradB := make([]float64, k)

	for epoch := 0; epoch < l.Epochs; epoch++ {
		for c := 0; c < k; c++ {
			for j := 0; j < p; j++ {
				gradW[c][j] = l.L2 * l.weights[c][j]
			}
			gradB[c] = 0
		}
		for i, row := range X {
			probs := l.softmax(row)
			for c := 0; c < k; c++ {
				diff := probs[c]
				if classIdx[y[i]] == c {
					diff -= 1
				}
				for j, v := range row {
					gradW[c][j] += diff * v / float64(n)
				}
				gradB[c] += diff / float64(n)
			}
		}
		for c := 0; c < k; c++ {
			for j := 0; j < p; j++ {
				l.weights[c][j] -= l.LearningRate * gradW[c][j]
			}
			l.bias[c] -= l.LearningRate * gradB[c]
		}
	}
	return nil
}

func (l *LogisticRegression) softmax(row []float64) []float64 {
	k := len(l.classes)
	logits := make([]float64, k)
	maxLogit := math.Inf(-1)
	for c := 0; c < k; c++ {
		s := l.bias[c]
		for j, v := range row {
			s += l.weights[c][j] * v
		}
		logits[c] = s
		if s > maxLogit {
			maxLogit = s
		}
	}
	var sum float64
	for c := range logits {
		logits[c] = math.Exp(logits[c] - maxLogit)
		sum += logits[c]
	}
	for c := range logits {
		logits[c] /= sum
	}
	return logits
}

// PredictProba returns softmax probabilities aligned with Classes().
func (l *LogisticRegression) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = l.softmax(row)
	}
	return out
}

// Predict returns the most probable class per sample.
func (l *LogisticRegression) Predict(X [][]float64) []string {
	out := make([]string, len(X))
	for i, row := range X {
		probs := l.softmax(row)
		best, bestP := 0, -1.0
		for c, pb := range probs {
			if pb > bestP {
				best, bestP = c, pb
			}
		}
		out[i] = l.classes[best]
	}
	return out
}

// Coef returns the fitted coefficients. Multiclass models return one
// row per class in Classes() order; binary models collapse to a single
// row (positive minus negative class weights).
func (l *LogisticRegression) Coef() [][]float64 {
	if len(l.classes) == 2 {
		row := make([]float64, len(l.weights[0]))
		for j := range row {
			row[j] = l.weights[1][j] - l.weights[0][j]
		}
		return [][]float64{row}
	}
	out := make([][]float64, len(l.weights))
	for c, w := range l.weights {
		out[c] = append([]float64(nil), w...)
	}
	return out
}
