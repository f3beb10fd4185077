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

package explain

import (
	"fmt"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// coefPanel renders one bar per coefficient, keeping the sign and the
// feature order so positive and negative contributions read side by
// side.
func coefPanel(title string, names []string, coefs []float64) (*gplot.Plot, error) {
	if len(names) != len(coefs) {
		return nil, fmt.Errorf("explain: %d names but %d coefficients", len(names), len(coefs))
	}
	if len(coefs) == 0 {
		return nil, fmt.Errorf("explain: no coefficients for %q", title)
	}
	p := gplot.New()
	p.Title.Text = title
	p.Y.Label.Text = "coefficient"
	bars, err := plotter.NewBarChart(plotter.Values(coefs), vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)

	zero, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: float64(len(coefs)) - 0.5, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.Color = plotutil.Color(1)
	zero.Dashes = plotutil.Dashes(1)
	p.Add(zero)
	return p, nil
}
