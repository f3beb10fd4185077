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

// Package stats provides the univariate statistical primitives used by
// the feature ranker: F tests, discrete mutual information, imputation,
// scaling and stable ordinal encoding.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// dropNaN returns the non-NaN values of x.
func dropNaN(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean returns the mean of the non-NaN values of x, or NaN if none exist.
func Mean(x []float64) float64 {
	vals := dropNaN(x)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// Median returns the median of the non-NaN values of x, or NaN if none exist.
func Median(x []float64) float64 {
	vals := dropNaN(x)
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	return stat.Quantile(0.5, stat.Empirical, vals, nil)
}

// ImputeMean replaces NaN values in x with the column mean.
// The input slice is not modified.
func ImputeMean(x []float64) []float64 {
	return impute(x, Mean(x))
}

// ImputeMedian replaces NaN values in x with the column median.
// The input slice is not modified.
func ImputeMedian(x []float64) []float64 {
	return impute(x, Median(x))
}

func impute(x []float64, fill float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if math.IsNaN(v) {
			out[i] = fill
		} else {
			out[i] = v
		}
	}
	return out
}

// Scale standardizes each column of the row-major matrix X to zero mean
// and unit variance. Constant columns become all zeros.
func Scale(X [][]float64) [][]float64 {
	if len(X) == 0 {
		return nil
	}
	n, p := len(X), len(X[0])
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, p)
	}
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			col[i] = X[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		for i := 0; i < n; i++ {
			out[i][j] = (col[i] - mean) / std
		}
	}
	return out
}

// OrdinalEncode maps category values to float codes using a stable
// first-appearance category-to-code mapping. Never one-hot: the tests
// the codes feed want one column per feature.
func OrdinalEncode(values []string) ([]float64, map[string]int) {
	codes := map[string]int{}
	out := make([]float64, len(values))
	for i, v := range values {
		c, ok := codes[v]
		if !ok {
			c = len(codes)
			codes[v] = c
		}
		out[i] = float64(c)
	}
	return out, codes
}

// FindInliers returns a mask of the values of x falling within
// [Q1 - 1.5 IQR, Q3 + 1.5 IQR]. NaN values are outliers.
func FindInliers(x []float64) []bool {
	vals := dropNaN(x)
	mask := make([]bool, len(x))
	if len(vals) == 0 {
		return mask
	}
	sort.Float64s(vals)
	q1 := stat.Quantile(0.25, stat.Empirical, vals, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, vals, nil)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr
	for i, v := range x {
		mask[i] = !math.IsNaN(v) && v >= lo && v <= hi
	}
	return mask
}
