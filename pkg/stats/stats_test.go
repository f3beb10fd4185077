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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImpute(t *testing.T) {
	a := assert.New(t)

	x := []float64{1, math.NaN(), 3}
	a.Equal([]float64{1, 2, 3}, ImputeMean(x))
	a.Equal([]float64{1, 1, 1, 5}, ImputeMedian([]float64{1, math.NaN(), 1, 5}))
	// input untouched
	a.True(math.IsNaN(x[1]))
}

func TestOrdinalEncodeStable(t *testing.T) {
	a := assert.New(t)

	codes, mapping := OrdinalEncode([]string{"b", "a", "b", "c", "a"})
	a.Equal([]float64{0, 1, 0, 2, 1}, codes)
	a.Equal(map[string]int{"b": 0, "a": 1, "c": 2}, mapping)

	// idempotent over repeated invocation
	codes2, _ := OrdinalEncode([]string{"b", "a", "b", "c", "a"})
	a.Equal(codes, codes2)
}

func TestFRegressionRanksInformativeFeature(t *testing.T) {
	a := assert.New(t)

	rng := rand.New(rand.NewSource(7))
	n := 200
	x1 := make([]float64, n) // informative
	x2 := make([]float64, n) // noise
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = rng.NormFloat64()
		x2[i] = rng.NormFloat64()
		y[i] = 3*x1[i] + 0.1*rng.NormFloat64()
	}
	a.Greater(FRegression(x1, y), FRegression(x2, y))
	a.GreaterOrEqual(FRegression(x2, y), 0.0)
}

func TestFClassifSeparatedGroups(t *testing.T) {
	a := assert.New(t)

	x := []float64{0.1, 0.2, 0.15, 5.1, 5.2, 5.05}
	y := []string{"a", "a", "a", "b", "b", "b"}
	a.Greater(FClassif(x, y), 100.0)

	// single class has no between-group variance
	a.Equal(0.0, FClassif(x, []string{"a", "a", "a", "a", "a", "a"}))
}

func TestMutualInfoClassif(t *testing.T) {
	a := assert.New(t)

	// perfectly informative codes
	codes := []float64{0, 0, 1, 1, 2, 2}
	y := []string{"u", "u", "v", "v", "w", "w"}
	informative := MutualInfoClassif(codes, y)

	// uninformative constant codes
	flat := MutualInfoClassif([]float64{0, 0, 0, 0, 0, 0}, y)
	a.Greater(informative, flat)
	a.InDelta(0, flat, 1e-12)
}

func TestMutualInfoRegressionLength(t *testing.T) {
	a := assert.New(t)

	rng := rand.New(rand.NewSource(3))
	n := 120
	codes := make([]float64, n)
	y := make([]float64, n)
	for i := range codes {
		codes[i] = float64(i % 4)
		y[i] = codes[i]*2 + rng.NormFloat64()*0.05
	}
	mi := MutualInfoRegression(codes, y, 10)
	a.Greater(mi, 0.0)

	shuffled := make([]float64, n)
	perm := rng.Perm(n)
	for i, p := range perm {
		shuffled[i] = y[p]
	}
	a.Greater(mi, MutualInfoRegression(codes, shuffled, 10))
}

func TestFindInliers(t *testing.T) {
	a := assert.New(t)

	x := []float64{1, 2, 3, 2, 1, 3, 2, 1000, math.NaN()}
	mask := FindInliers(x)
	a.Len(mask, len(x))
	a.True(mask[0])
	a.False(mask[7]) // extreme outlier
	a.False(mask[8]) // NaN
}

func TestScale(t *testing.T) {
	a := assert.New(t)

	X := [][]float64{{1, 5}, {2, 5}, {3, 5}}
	s := Scale(X)
	a.InDelta(0, s[0][0]+s[1][0]+s[2][0], 1e-12)
	// constant column maps to zeros, not NaN
	a.Equal(0.0, s[0][1])
}
