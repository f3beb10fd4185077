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

// Package figure assembles gonum plots into multi-panel figures and
// renders them to PNG files.
package figure

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// panelSize is the edge length of one panel in the rendered grid.
const panelSize = 4 * vg.Inch

// Figure is an ordered collection of panels laid out on a grid when
// saved. Rows and Cols are derived from the panel count unless set.
type Figure struct {
	Title  string
	Panels []*plot.Plot
	Rows   int
	Cols   int
}

// New returns an empty figure with the given title.
func New(title string) *Figure {
	return &Figure{Title: title}
}

// Add appends a panel. Nil panels are ignored so callers can skip
// columns without bookkeeping.
func (f *Figure) Add(p *plot.Plot) {
	if p != nil {
		f.Panels = append(f.Panels, p)
	}
}

// Empty reports whether the figure has no panels.
func (f *Figure) Empty() bool { return len(f.Panels) == 0 }

// PrettyGrid picks a near-square layout for n panels, wider than tall.
func PrettyGrid(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return rows, cols
}

// Save lays the panels out on the grid, aligns their axes and writes
// the figure to path as a PNG.
func (f *Figure) Save(path string) error {
	if len(f.Panels) == 0 {
		return fmt.Errorf("figure %q has no panels", f.Title)
	}
	rows, cols := f.Rows, f.Cols
	if rows <= 0 || cols <= 0 {
		rows, cols = PrettyGrid(len(f.Panels))
	}

	grid := make([][]*plot.Plot, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]*plot.Plot, cols)
		for c := 0; c < cols; c++ {
			if i := r*cols + c; i < len(f.Panels) {
				grid[r][c] = f.Panels[i]
			}
		}
	}

	img := vgimg.New(vg.Length(cols)*panelSize, vg.Length(rows)*panelSize)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(grid, tiles, dc)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid[r][c] != nil {
				grid[r][c].Draw(canvases[r][c])
			}
		}
	}

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return nil
}
