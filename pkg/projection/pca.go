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

// Package projection provides the dimensionality reductions used for
// classification scatter panels: PCA and linear discriminant analysis.
package projection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PCA projects data onto its top principal components via thin SVD of
// the column-centered data matrix.
type PCA struct {
	NComponents int

	mean       []float64
	components *mat.Dense // p x k, columns are component directions
	explained  []float64  // variance ratio per kept component
}

// Fit computes the top NComponents principal directions of X.
func (p *PCA) Fit(X [][]float64) error {
	n := len(X)
	if n < 2 {
		return fmt.Errorf("pca needs at least 2 samples, got %d", n)
	}
	d := len(X[0])
	k := p.NComponents
	if k <= 0 || k > d {
		k = d
	}
	if k > n {
		k = n
	}
	p.NComponents = k

	p.mean = make([]float64, d)
	for _, row := range X {
		for j, v := range row {
			p.mean[j] += v
		}
	}
	for j := range p.mean {
		p.mean[j] /= float64(n)
	}

	centered := mat.NewDense(n, d, nil)
	for i, row := range X {
		for j, v := range row {
			centered.Set(i, j, v-p.mean[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return fmt.Errorf("pca: svd factorization failed")
	}
	var v mat.Dense
	svd.VTo(&v)
	singular := svd.Values(nil)

	var total float64
	variances := make([]float64, len(singular))
	for i, s := range singular {
		variances[i] = s * s / float64(n-1)
		total += variances[i]
	}
	p.explained = make([]float64, k)
	for i := 0; i < k; i++ {
		if total > 0 {
			p.explained[i] = variances[i] / total
		}
	}
	p.components = mat.NewDense(d, k, nil)
	for j := 0; j < d; j++ {
		for c := 0; c < k; c++ {
			p.components.Set(j, c, v.At(j, c))
		}
	}
	return nil
}

// Transform projects X onto the fitted components, returning an
// [nSamples][NComponents] matrix.
func (p *PCA) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	k := p.NComponents
	for i, row := range X {
		proj := make([]float64, k)
		for c := 0; c < k; c++ {
			var s float64
			for j, v := range row {
				s += (v - p.mean[j]) * p.components.At(j, c)
			}
			proj[c] = s
		}
		out[i] = proj
	}
	return out
}

// FitTransform fits the projection and returns the transformed data.
func (p *PCA) FitTransform(X [][]float64) ([][]float64, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X), nil
}

// ExplainedVarianceRatio returns the fraction of total variance carried
// by each kept component, in component order.
func (p *PCA) ExplainedVarianceRatio() []float64 { return p.explained }
