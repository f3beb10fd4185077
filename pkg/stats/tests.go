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

package stats

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// FRegression returns the univariate F statistic of the linear
// association between a continuous feature x and a continuous target y:
// F = r^2 / (1 - r^2) * (n - 2). Degenerate inputs score 0.
func FRegression(x, y []float64) float64 {
	if len(x) < 3 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	r2 := r * r
	if r2 >= 1 {
		return math.Inf(1)
	}
	return r2 / (1 - r2) * float64(len(x)-2)
}

// FClassif returns the one-way ANOVA F statistic between a continuous
// feature x and class labels y: explained over unexplained variance
// ratio. Degenerate inputs score 0.
func FClassif(x []float64, y []string) float64 {
	n := len(x)
	if n < 3 || len(y) != n {
		return 0
	}
	groups := map[string][]float64{}
	for i, label := range y {
		groups[label] = append(groups[label], x[i])
	}
	k := len(groups)
	if k < 2 || n <= k {
		return 0
	}

	grand := stat.Mean(x, nil)
	var ssb, ssw float64
	for _, g := range groups {
		m := stat.Mean(g, nil)
		d := m - grand
		ssb += float64(len(g)) * d * d
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}
	if ssw == 0 {
		return math.Inf(1)
	}
	return (ssb / float64(k-1)) / (ssw / float64(n-k))
}

// MutualInfoClassif returns the mutual information (in nats) between a
// discrete feature given as ordinal codes and class labels y.
func MutualInfoClassif(codes []float64, y []string) float64 {
	xs := make([]string, len(codes))
	for i, c := range codes {
		xs[i] = discreteKey(c)
	}
	return discreteMI(xs, y)
}

// MutualInfoRegression returns the mutual information (in nats) between
// a discrete feature given as ordinal codes and a continuous target y.
// The target is discretized into at most bins quantile bins first.
func MutualInfoRegression(codes []float64, y []float64, bins int) float64 {
	if bins < 2 {
		bins = 10
	}
	xs := make([]string, len(codes))
	for i, c := range codes {
		xs[i] = discreteKey(c)
	}
	return discreteMI(xs, quantileBins(y, bins))
}

// discreteMI computes MI over the empirical joint distribution of two
// discrete variables.
func discreteMI(x, y []string) float64 {
	n := len(x)
	if n == 0 || len(y) != n {
		return 0
	}
	joint := map[[2]string]float64{}
	px := map[string]float64{}
	py := map[string]float64{}
	for i := 0; i < n; i++ {
		joint[[2]string{x[i], y[i]}]++
		px[x[i]]++
		py[y[i]]++
	}
	nf := float64(n)
	var mi float64
	for k, c := range joint {
		pxy := c / nf
		mi += pxy * math.Log(pxy/((px[k[0]]/nf)*(py[k[1]]/nf)))
	}
	if mi < 0 { // rounding
		mi = 0
	}
	return mi
}

// quantileBins assigns each value of y to one of at most bins
// equal-frequency bins, labeled by bin index.
func quantileBins(y []float64, bins int) []string {
	sorted := append([]float64(nil), y...)
	sort.Float64s(sorted)
	edges := make([]float64, 0, bins-1)
	for b := 1; b < bins; b++ {
		edges = append(edges, stat.Quantile(float64(b)/float64(bins), stat.Empirical, sorted, nil))
	}
	out := make([]string, len(y))
	for i, v := range y {
		b := sort.SearchFloat64s(edges, v)
		out[i] = discreteKey(float64(b))
	}
	return out
}

func discreteKey(c float64) string {
	if math.IsNaN(c) {
		return "nan"
	}
	return strconv.Itoa(int(c))
}
