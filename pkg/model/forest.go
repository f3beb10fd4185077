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
	"sort"
)

// BaggedTrees is an ensemble of decision trees fitted on bootstrap
// samples. Prediction averages the per-tree class frequencies.
type BaggedTrees struct {
	NTrees   int   // default 25
	MaxDepth int   // default 8
	Seed     int64 // bootstrap sampling seed

	trees       []*DecisionTree
	classes     []string
	importances []float64
}

// Classes returns the class labels in sorted order.
func (b *BaggedTrees) Classes() []string { return b.classes }

// Fit grows NTrees trees on bootstrap resamples of (X, y).
func (b *BaggedTrees) Fit(X [][]float64, y []string) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("forest: need matching non-empty X and y")
	}
	if b.NTrees <= 0 {
		b.NTrees = 25
	}
	if b.MaxDepth <= 0 {
		b.MaxDepth = 8
	}
	rng := rand.New(rand.NewSource(b.Seed))
	n := len(X)

	seen := map[string]bool{}
	b.classes = b.classes[:0]
	for _, label := range y {
		if !seen[label] {
			seen[label] = true
			b.classes = append(b.classes, label)
		}
	}
	sort.Strings(b.classes)

	b.trees = make([]*DecisionTree, 0, b.NTrees)
	b.importances = make([]float64, len(X[0]))
	for k := 0; k < b.NTrees; k++ {
		bx := make([][]float64, n)
		by := make([]string, n)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			bx[i] = X[j]
			by[i] = y[j]
		}
		tree := &DecisionTree{MaxDepth: b.MaxDepth}
		if err := tree.Fit(bx, by); err != nil {
			return err
		}
		b.trees = append(b.trees, tree)
		for f, imp := range tree.FeatureImportances() {
			b.importances[f] += imp / float64(b.NTrees)
		}
	}
	return nil
}

// PredictProba averages per-tree class frequencies, aligned with
// Classes(). Trees that saw fewer classes in their bootstrap contribute
// zeros for the unseen ones.
func (b *BaggedTrees) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range out {
		out[i] = make([]float64, len(b.classes))
	}
	pos := make(map[string]int, len(b.classes))
	for ci, c := range b.classes {
		pos[c] = ci
	}
	for _, tree := range b.trees {
		probs := tree.PredictProba(X)
		for i, p := range probs {
			for tc, v := range p {
				out[i][pos[tree.classes[tc]]] += v / float64(len(b.trees))
			}
		}
	}
	return out
}

// Predict returns the class with the highest averaged frequency.
func (b *BaggedTrees) Predict(X [][]float64) []string {
	probs := b.PredictProba(X)
	out := make([]string, len(X))
	for i, p := range probs {
		best, bestP := 0, -1.0
		for ci, v := range p {
			if v > bestP {
				best, bestP = ci, v
			}
		}
		out[i] = b.classes[best]
	}
	return out
}

// FeatureImportances returns mean per-tree impurity-decrease importances.
func (b *BaggedTrees) FeatureImportances() []float64 { return b.importances }
