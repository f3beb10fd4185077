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

// Package interact searches pairs of dimensions for those where the
// classes separate well in a 2D scatter. The separability proxy is the
// cross-validated macro recall of a shallow decision tree fitted on the
// two-column projection.
//
// The search is exhaustive and quadratic, so callers must bound the
// candidate matrix: either the top features by univariate score or a
// handful of projection axes.
package interact

import (
	"fmt"
	"sort"

	"github.com/glimpse-ml/glimpse/pkg/model"
)

// Pair is one scored (i, j) dimension pair; i and j index columns of
// the matrix passed to ScatterPairs.
type Pair struct {
	I, J  int
	Score float64
}

// Config bounds the separability scoring.
type Config struct {
	Folds    int   // cross-validation folds, default 5
	MaxDepth int   // tree depth cap, default 5
	Seed     int64 // fold assignment seed
}

func (c *Config) defaults() {
	if c.Folds < 2 {
		c.Folds = 5
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 5
	}
}

// ScatterPairs scores every pair of columns of the row-major matrix X
// and returns the howMany best-separating ones, scores non-increasing,
// ties broken by discovery order. Fewer than 2 usable columns yield an
// empty result and no error.
func ScatterPairs(X [][]float64, y []string, howMany int, cfg Config) ([]Pair, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("interact: need matching non-empty X and y")
	}
	dims := len(X[0])
	if dims < 2 || howMany <= 0 {
		return nil, nil
	}
	cfg.defaults()

	pairs := []Pair{}
	proj := make([][]float64, len(X))
	for i := 0; i < dims; i++ {
		for j := i + 1; j < dims; j++ {
			for r, row := range X {
				proj[r] = []float64{row[i], row[j]}
			}
			score, err := model.CrossValMacroRecall(proj, y, cfg.Folds, cfg.Seed, func() model.Classifier {
				return &model.DecisionTree{MaxDepth: cfg.MaxDepth}
			})
			if err != nil {
				return nil, fmt.Errorf("interact: scoring pair (%d, %d): %v", i, j, err)
			}
			pairs = append(pairs, Pair{I: i, J: j, Score: score})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].Score > pairs[b].Score })
	if howMany > len(pairs) {
		howMany = len(pairs)
	}
	return pairs[:howMany], nil
}
