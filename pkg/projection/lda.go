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

package projection

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ridge regularizes the within-class scatter so its inverse exists for
// near-collinear features.
const ridge = 1e-6

// LDA finds at most nClasses-1 directions maximizing between-class over
// within-class scatter. Prediction assigns the nearest class centroid
// in the projected space.
type LDA struct {
	NComponents int

	classes   []string
	scalings  *mat.Dense  // p x k
	centroids [][]float64 // projected class means, aligned with classes
}

// Fit solves the generalized eigenproblem Sw^-1 Sb for the top
// discriminant directions.
func (l *LDA) Fit(X [][]float64, y []string) error {
	n := len(X)
	if n == 0 || len(y) != n {
		return fmt.Errorf("lda: need matching non-empty X and y")
	}
	d := len(X[0])

	byClass := map[string][]int{}
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	l.classes = make([]string, 0, len(byClass))
	for label := range byClass {
		l.classes = append(l.classes, label)
	}
	sort.Strings(l.classes)
	if len(l.classes) < 2 {
		return fmt.Errorf("lda: need at least 2 classes, got %d", len(l.classes))
	}

	k := l.NComponents
	if k <= 0 || k > len(l.classes)-1 {
		k = len(l.classes) - 1
	}
	if k > d {
		k = d
	}
	l.NComponents = k

	grand := make([]float64, d)
	for _, row := range X {
		for j, v := range row {
			grand[j] += v
		}
	}
	for j := range grand {
		grand[j] /= float64(n)
	}

	sw := mat.NewDense(d, d, nil)
	sb := mat.NewDense(d, d, nil)
	classMeans := make([][]float64, len(l.classes))
	for ci, label := range l.classes {
		idx := byClass[label]
		m := make([]float64, d)
		for _, i := range idx {
			for j, v := range X[i] {
				m[j] += v
			}
		}
		for j := range m {
			m[j] /= float64(len(idx))
		}
		classMeans[ci] = m
		for _, i := range idx {
			for a := 0; a < d; a++ {
				da := X[i][a] - m[a]
				for b := 0; b < d; b++ {
					sw.Set(a, b, sw.At(a, b)+da*(X[i][b]-m[b]))
				}
			}
		}
		nc := float64(len(idx))
		for a := 0; a < d; a++ {
			da := m[a] - grand[a]
			for b := 0; b < d; b++ {
				sb.Set(a, b, sb.At(a, b)+nc*da*(m[b]-grand[b]))
			}
		}
	}
	for a := 0; a < d; a++ {
		sw.Set(a, a, sw.At(a, a)+ridge)
	}

	var swInv mat.Dense
	if err := swInv.Inverse(sw); err != nil {
		return fmt.Errorf("lda: within-class scatter is singular: %v", err)
	}
	var m mat.Dense
	m.Mul(&swInv, sb)

	var eig mat.Eigen
	if ok := eig.Factorize(&m, mat.EigenRight); !ok {
		return fmt.Errorf("lda: eigen factorization failed")
	}
	vals := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return real(vals[order[a]]) > real(vals[order[b]])
	})

	l.scalings = mat.NewDense(d, k, nil)
	for c := 0; c < k; c++ {
		col := order[c]
		for j := 0; j < d; j++ {
			l.scalings.Set(j, c, real(vecs.At(j, col)))
		}
	}

	l.centroids = make([][]float64, len(l.classes))
	for ci, m := range classMeans {
		l.centroids[ci] = l.project(m)
	}
	return nil
}

func (l *LDA) project(row []float64) []float64 {
	out := make([]float64, l.NComponents)
	for c := 0; c < l.NComponents; c++ {
		var s float64
		for j, v := range row {
			s += v * l.scalings.At(j, c)
		}
		out[c] = s
	}
	return out
}

// Transform projects X onto the discriminant directions.
func (l *LDA) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = l.project(row)
	}
	return out
}

// FitTransform fits the projection and returns the transformed data.
func (l *LDA) FitTransform(X [][]float64, y []string) ([][]float64, error) {
	if err := l.Fit(X, y); err != nil {
		return nil, err
	}
	return l.Transform(X), nil
}

// Predict assigns each sample to the class with the nearest projected
// centroid.
func (l *LDA) Predict(X [][]float64) []string {
	out := make([]string, len(X))
	for i, row := range X {
		proj := l.project(row)
		best, bestDist := 0, math.Inf(1)
		for ci, cen := range l.centroids {
			var dist float64
			for c := range cen {
				d := proj[c] - cen[c]
				dist += d * d
			}
			if dist < bestDist {
				best, bestDist = ci, dist
			}
		}
		out[i] = l.classes[best]
	}
	return out
}

// Classes returns the class labels in sorted order.
func (l *LDA) Classes() []string { return l.classes }
