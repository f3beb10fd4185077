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

// Package rank scores candidate features against the target with the
// statistically appropriate univariate test and truncates to the most
// relevant ones.
package rank

import (
	"fmt"
	"sort"

	"github.com/glimpse-ml/glimpse/pkg/stats"
)

// Kind selects which univariate test family applies to a feature.
type Kind int

const (
	// Continuous features are scored with F statistics.
	Continuous Kind = iota
	// Categorical features are ordinal-encoded and scored with
	// mutual information.
	Categorical
)

// ImputePolicy selects the fill value for missing continuous cells
// before scoring.
type ImputePolicy int

const (
	// ImputeMean fills missing values with the column mean.
	ImputeMean ImputePolicy = iota
	// ImputeMedian fills missing values with the column median.
	ImputeMedian
)

func imputeColumn(x []float64, policy ImputePolicy) []float64 {
	if policy == ImputeMedian {
		return stats.ImputeMedian(x)
	}
	return stats.ImputeMean(x)
}

// targetBins is how many quantile bins a continuous target is
// discretized into for mutual information scoring.
const targetBins = 10

// ScoresRegression computes one relevance score per feature column of
// X against a continuous target. Columns of X are features; X[j] is
// the j-th feature's values. Scores align with the input column order.
func ScoresRegression(columns [][]float64, y []float64, kind Kind, policy ImputePolicy) ([]float64, error) {
	if len(columns) == 0 {
		return nil, nil
	}
	scores := make([]float64, len(columns))
	for j, col := range columns {
		if len(col) != len(y) {
			return nil, fmt.Errorf("rank: feature %d has %d rows, target has %d", j, len(col), len(y))
		}
		switch kind {
		case Continuous:
			scores[j] = stats.FRegression(imputeColumn(col, policy), y)
		case Categorical:
			// columns already hold stable ordinal codes
			scores[j] = stats.MutualInfoRegression(col, y, targetBins)
		default:
			return nil, fmt.Errorf("rank: unknown feature kind %d", kind)
		}
	}
	return scores, nil
}

// ScoresClassification computes one relevance score per feature column
// of X against class labels. Scores align with the input column order.
func ScoresClassification(columns [][]float64, y []string, kind Kind, policy ImputePolicy) ([]float64, error) {
	if len(columns) == 0 {
		return nil, nil
	}
	scores := make([]float64, len(columns))
	for j, col := range columns {
		if len(col) != len(y) {
			return nil, fmt.Errorf("rank: feature %d has %d rows, target has %d", j, len(col), len(y))
		}
		switch kind {
		case Continuous:
			scores[j] = stats.FClassif(imputeColumn(col, policy), y)
		case Categorical:
			scores[j] = stats.MutualInfoClassif(col, y)
		default:
			return nil, fmt.Errorf("rank: unknown feature kind %d", kind)
		}
	}
	return scores, nil
}

// TopK returns the indices of the k highest scores in descending score
// order. Ties keep the original column order (stable sort). k is
// clamped to the number of scores.
func TopK(scores []float64, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	if k > len(idx) {
		k = len(idx)
	}
	if k < 0 {
		k = 0
	}
	return idx[:k]
}

// ShowTop decides how many top features to show for nFeatures
// candidates: all of them when there are at most 10, half (rounded up)
// when between 10 and 20, and 10 past that. The result never exceeds
// 10.
func ShowTop(nFeatures int) int {
	switch {
	case nFeatures <= 0:
		return 0
	case nFeatures <= 10:
		return nFeatures
	case nFeatures < 20:
		return (nFeatures + 1) / 2
	default:
		return 10
	}
}
