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

package tablewriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestASCIIWriter(t *testing.T) {
	a := assert.New(t)
	var buf bytes.Buffer

	table := NewASCIIWriter(&buf, 1024)
	table.SetHeader([]string{"feature", "score"})
	table.AppendRow([]string{"x1", "12.31"})
	table.AppendFloats("x2", []float64{0.5012}, 2)
	a.NoError(table.Flush())

	out := buf.String()
	a.Contains(out, "FEATURE")
	a.Contains(out, "x1")
	a.Contains(out, "12.31")
	a.Contains(out, "0.50")
}

func TestASCIIWriterBufFlush(t *testing.T) {
	a := assert.New(t)
	var buf bytes.Buffer

	table := NewASCIIWriter(&buf, 2)
	table.SetHeader([]string{"c"})
	table.AppendRow([]string{"1"})
	table.AppendRow([]string{"2"})
	// buffer reached bufSize, rows already rendered
	a.Contains(buf.String(), "1")
	table.AppendRow([]string{"3"})
	a.NoError(table.Flush())
	a.Contains(buf.String(), "3")
}
