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

package figure

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyGrid(t *testing.T) {
	a := assert.New(t)
	cases := []struct{ n, rows, cols int }{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{9, 3, 3},
		{10, 3, 4},
	}
	for _, c := range cases {
		rows, cols := PrettyGrid(c.n)
		a.Equal(c.rows, rows, "n=%d", c.n)
		a.Equal(c.cols, cols, "n=%d", c.n)
		a.True(rows*cols >= c.n)
	}
}

func TestSaveWritesPNG(t *testing.T) {
	a := assert.New(t)
	f := New("demo")
	for i := 0; i < 3; i++ {
		p, err := Histogram("h", []float64{1, 2, 2, 3, 3, 3, 4, 5}, 4)
		a.NoError(err)
		f.Add(p)
	}
	path := filepath.Join(t.TempDir(), "demo.png")
	a.NoError(f.Save(path))

	data, err := os.ReadFile(path)
	a.NoError(err)
	a.True(len(data) > 8)
	a.Equal(byte(0x89), data[0])
	a.Equal([]byte("PNG"), data[1:4])
}

func TestSaveEmptyFigure(t *testing.T) {
	a := assert.New(t)
	err := New("empty").Save(filepath.Join(t.TempDir(), "x.png"))
	a.Error(err)
}

func TestAddIgnoresNil(t *testing.T) {
	a := assert.New(t)
	f := New("x")
	f.Add(nil)
	a.True(f.Empty())
}

func TestHistogramRejectsAllNaN(t *testing.T) {
	a := assert.New(t)
	_, err := Histogram("h", []float64{math.NaN(), math.NaN()}, 10)
	a.Error(err)
}

func TestClassHistogram(t *testing.T) {
	a := assert.New(t)
	p, err := ClassHistogram("f0 by class", map[string][]float64{
		"yes": {1, 1.5, 2, 2.5, 3},
		"no":  {4, 4.5, 5, 5.5, 6},
	}, 10, 0.5)
	a.NoError(err)
	a.NotNil(p)
}

func TestBoxPlotOrderPreserved(t *testing.T) {
	a := assert.New(t)
	p, err := BoxPlot("by level", []Group{
		{Label: "low", Values: []float64{1, 2, 3}},
		{Label: "high", Values: []float64{7, 8, 9}},
	})
	a.NoError(err)
	a.NotNil(p)
}

func TestDiscreteScatterSkipsNaN(t *testing.T) {
	a := assert.New(t)
	p, err := DiscreteScatter("x vs y", "x", "y",
		[]float64{1, math.NaN(), 3},
		[]float64{2, 5, 6},
		[]string{"a", "a", "b"}, 0.8, 2)
	a.NoError(err)
	a.NotNil(p)

	_, err = DiscreteScatter("bad", "x", "y",
		[]float64{math.NaN()}, []float64{1}, []string{"a"}, 0.8, 2)
	a.Error(err)
}

func TestMosaic(t *testing.T) {
	a := assert.New(t)
	x := []string{"u", "u", "u", "v", "v", "v", "v", "v"}
	y := []string{"p", "p", "q", "q", "q", "q", "p", "q"}
	p, err := Mosaic("u vs v", x, y)
	a.NoError(err)
	a.NotNil(p)

	_, err = Mosaic("bad", []string{"a"}, []string{"b", "c"})
	a.Error(err)
}

func TestROCCurve(t *testing.T) {
	a := assert.New(t)
	p, err := ROCCurve("roc", []ROC{
		{Label: "yes", FPR: []float64{0, 0.2, 1}, TPR: []float64{0, 0.9, 1}, AUC: 0.85},
	})
	a.NoError(err)
	a.NotNil(p)
}

func TestKDELine(t *testing.T) {
	a := assert.New(t)
	p, err := KDELine("density", []float64{1, 2, 2, 3, 3, 3, 4, 10})
	a.NoError(err)
	a.NotNil(p)

	_, err = KDELine("flat", []float64{5, 5, 5})
	a.Error(err)
}
