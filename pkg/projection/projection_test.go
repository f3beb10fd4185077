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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blobs(rng *rand.Rand, n int, centers [][]float64, spread float64) ([][]float64, []string) {
	labels := []string{"a", "b", "c"}
	X := make([][]float64, 0, n)
	y := make([]string, 0, n)
	for i := 0; i < n; i++ {
		c := i % len(centers)
		row := make([]float64, len(centers[c]))
		for j := range row {
			row[j] = centers[c][j] + rng.NormFloat64()*spread
		}
		X = append(X, row)
		y = append(y, labels[c])
	}
	return X, y
}

func TestPCAExplainedVariance(t *testing.T) {
	a := assert.New(t)

	rng := rand.New(rand.NewSource(11))
	n := 300
	X := make([][]float64, n)
	for i := range X {
		base := rng.NormFloat64() * 10
		X[i] = []float64{base, base + rng.NormFloat64()*0.01, rng.NormFloat64() * 0.01}
	}

	p := &PCA{NComponents: 3}
	proj, err := p.FitTransform(X)
	require.NoError(t, err)

	a.Len(proj, n)
	a.Len(proj[0], 3)

	ratios := p.ExplainedVarianceRatio()
	var sum float64
	for i, r := range ratios {
		sum += r
		if i > 0 {
			a.LessOrEqual(r, ratios[i-1])
		}
	}
	a.InDelta(1, sum, 1e-9)
	// nearly all variance lives on the first direction
	a.Greater(ratios[0], 0.99)
}

func TestPCATooFewSamples(t *testing.T) {
	p := &PCA{NComponents: 2}
	assert.Error(t, p.Fit([][]float64{{1, 2}}))
}

func TestLDASeparatesBlobs(t *testing.T) {
	a := assert.New(t)

	rng := rand.New(rand.NewSource(5))
	centers := [][]float64{{0, 0, 0}, {8, 0, 0}, {0, 8, 0}}
	X, y := blobs(rng, 300, centers, 0.5)

	l := &LDA{}
	proj, err := l.FitTransform(X, y)
	require.NoError(t, err)

	// three classes admit at most two discriminants
	a.Equal(2, l.NComponents)
	a.Len(proj[0], 2)
	a.Equal([]string{"a", "b", "c"}, l.Classes())

	pred := l.Predict(X)
	correct := 0
	for i := range pred {
		if pred[i] == y[i] {
			correct++
		}
	}
	a.Greater(float64(correct)/float64(len(pred)), 0.95)
}

func TestLDASingleClassFails(t *testing.T) {
	l := &LDA{}
	err := l.Fit([][]float64{{1, 2}, {3, 4}}, []string{"a", "a"})
	assert.Error(t, err)
}
