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

// Package model provides the simple estimators the toolkit trains
// itself: a CART decision tree, a bagged tree ensemble, a softmax
// linear classifier, plus cross-validation, metrics and the
// pipeline/wrapper types the explainer unwraps.
package model

import (
	"fmt"
	"math"
	"sort"
)

// TreeNode is one node of a fitted decision tree. Leaves have no
// children; internal nodes split on Feature at Threshold (left: <=).
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Impurity  float64
	Samples   int
	Counts    []float64 // per-class sample counts, aligned with Classes()
}

// IsLeaf reports whether the node has no children.
func (n *TreeNode) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// DecisionTree is a depth-capped CART classifier with Gini impurity.
// The zero value is usable; Fit applies defaults.
type DecisionTree struct {
	MaxDepth int // default 5
	MinLeaf  int // default 1

	root        *TreeNode
	classes     []string
	classIndex  map[string]int
	importances []float64
}

// Classes returns the class labels in sorted order.
func (t *DecisionTree) Classes() []string { return t.classes }

// Root returns the fitted tree root.
func (t *DecisionTree) Root() *TreeNode { return t.root }

// Fit grows the tree on X (row-major samples) and labels y.
func (t *DecisionTree) Fit(X [][]float64, y []string) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("tree: need matching non-empty X and y")
	}
	if t.MaxDepth <= 0 {
		t.MaxDepth = 5
	}
	if t.MinLeaf <= 0 {
		t.MinLeaf = 1
	}

	seen := map[string]bool{}
	t.classes = t.classes[:0]
	for _, label := range y {
		if !seen[label] {
			seen[label] = true
			t.classes = append(t.classes, label)
		}
	}
	sort.Strings(t.classes)
	t.classIndex = make(map[string]int, len(t.classes))
	for i, c := range t.classes {
		t.classIndex[c] = i
	}

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	t.importances = make([]float64, len(X[0]))
	t.root = t.grow(X, y, idx, 0)
	t.normalizeImportances()
	return nil
}

func (t *DecisionTree) counts(y []string, idx []int) []float64 {
	c := make([]float64, len(t.classes))
	for _, i := range idx {
		c[t.classIndex[y[i]]]++
	}
	return c
}

func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

func (t *DecisionTree) grow(X [][]float64, y []string, idx []int, depth int) *TreeNode {
	counts := t.counts(y, idx)
	n := float64(len(idx))
	node := &TreeNode{
		Impurity: gini(counts, n),
		Samples:  len(idx),
		Counts:   counts,
		Feature:  -1,
	}
	if depth >= t.MaxDepth || node.Impurity == 0 || len(idx) < 2*t.MinLeaf {
		return node
	}

	bestGain := 0.0
	bestFeature, bestPos := -1, -1
	var bestOrder []int

	order := make([]int, len(idx))
	for f := 0; f < len(X[0]); f++ {
		copy(order, idx)
		sort.SliceStable(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		left := make([]float64, len(t.classes))
		right := append([]float64(nil), counts...)
		for pos := 1; pos < len(order); pos++ {
			ci := t.classIndex[y[order[pos-1]]]
			left[ci]++
			right[ci]--
			if X[order[pos]][f] == X[order[pos-1]][f] {
				continue // not a valid cut point
			}
			nl, nr := float64(pos), n-float64(pos)
			if int(nl) < t.MinLeaf || int(nr) < t.MinLeaf {
				continue
			}
			gain := node.Impurity - (nl/n)*gini(left, nl) - (nr/n)*gini(right, nr)
			if gain > bestGain+1e-12 {
				bestGain = gain
				bestFeature = f
				bestPos = pos
				bestOrder = append(bestOrder[:0], order...)
			}
		}
	}
	if bestFeature < 0 {
		return node
	}

	node.Feature = bestFeature
	node.Threshold = (X[bestOrder[bestPos-1]][bestFeature] + X[bestOrder[bestPos]][bestFeature]) / 2
	t.importances[bestFeature] += n * bestGain

	node.Left = t.grow(X, y, bestOrder[:bestPos], depth+1)
	node.Right = t.grow(X, y, bestOrder[bestPos:], depth+1)
	return node
}

func (t *DecisionTree) normalizeImportances() {
	var total float64
	for _, v := range t.importances {
		total += v
	}
	if total == 0 {
		return
	}
	for i := range t.importances {
		t.importances[i] /= total
	}
}

func (t *DecisionTree) leafFor(row []float64) *TreeNode {
	node := t.root
	for !node.IsLeaf() {
		if row[node.Feature] <= node.Threshold || math.IsNaN(row[node.Feature]) {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node
}

// Predict returns the majority class of the leaf each sample lands in.
func (t *DecisionTree) Predict(X [][]float64) []string {
	out := make([]string, len(X))
	for i, row := range X {
		leaf := t.leafFor(row)
		best, bestCount := 0, -1.0
		for ci, c := range leaf.Counts {
			if c > bestCount {
				best, bestCount = ci, c
			}
		}
		out[i] = t.classes[best]
	}
	return out
}

// PredictProba returns leaf class frequencies per sample, aligned with
// Classes().
func (t *DecisionTree) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		leaf := t.leafFor(row)
		p := make([]float64, len(leaf.Counts))
		for ci, c := range leaf.Counts {
			p[ci] = c / float64(leaf.Samples)
		}
		out[i] = p
	}
	return out
}

// FeatureImportances returns normalized impurity-decrease importances.
func (t *DecisionTree) FeatureImportances() []float64 { return t.importances }

// Depth returns the depth of the fitted tree; a lone root has depth 0.
func (t *DecisionTree) Depth() int { return nodeDepth(t.root) }

func nodeDepth(n *TreeNode) int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	l, r := nodeDepth(n.Left), nodeDepth(n.Right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// Leaves returns the leaf count of the fitted tree.
func (t *DecisionTree) Leaves() int { return leafCount(t.root) }

func leafCount(n *TreeNode) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return leafCount(n.Left) + leafCount(n.Right)
}
