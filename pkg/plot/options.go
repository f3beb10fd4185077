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

package plot

import (
	"io"

	"github.com/glimpse-ml/glimpse/pkg/attribute"
	"github.com/glimpse-ml/glimpse/pkg/preprocess"
	"github.com/glimpse-ml/glimpse/pkg/rank"
)

// Univariate distribution panel kinds.
const (
	DistHist = "hist"
	DistKDE  = "kde"
)

// Categorical-vs-class panel kinds.
const (
	CatAuto       = "auto"
	CatCount      = "count"
	CatProportion = "proportion"
	CatMosaic     = "mosaic"
)

// mosaicMaxClasses is the class cardinality up to which CatAuto picks
// a mosaic panel; past it, grouped counts stay readable and mosaics
// do not.
const mosaicMaxClasses = 5

// attributeDictionary declares every plot option with its default and
// checker. Unknown names and out-of-range values are configuration
// errors and fail the whole call.
var attributeDictionary = attribute.Dictionary{}.
	String("dist", DistHist, `univariate distribution panel kind, "hist" or "kde"`,
		attribute.StringChoicesChecker(DistHist, DistKDE)).
	String("cat_kind", CatAuto, `categorical-vs-class panel kind, one of "auto", "count", "proportion", "mosaic"`,
		attribute.StringChoicesChecker(CatAuto, CatCount, CatProportion, CatMosaic)).
	String("impute", "mean", `missing-value policy for continuous features, "mean" or "median"`,
		attribute.StringChoicesChecker("mean", "median")).
	Bool("drop_outliers", true, "exclude rows whose regression target falls outside the IQR inlier range from scatter panels", nil).
	Int("bins", 30, "histogram bin count", attribute.IntLowerBoundChecker(1, true)).
	Int("top_pairs", 3, "how many best-separating feature or projection pairs to plot", attribute.IntLowerBoundChecker(1, true)).
	Int("category_cap", preprocess.DefaultCategoryCap, "most frequent categorical levels kept per column before grouping the rest as other", attribute.IntLowerBoundChecker(1, true)).
	Int("folds", 5, "cross-validation folds for the interaction search", attribute.IntLowerBoundChecker(2, true)).
	Int("seed", 1, "fold-assignment seed; the only randomness in a plot call", nil)

// OptionsDoc returns the documentation of every supported attribute.
func OptionsDoc() string { return attributeDictionary.Doc() }

// ResolveCatKind turns the "auto" categorical panel kind into a
// concrete one from the class cardinality: mosaic while the classes
// stay readable, grouped counts past that. Non-auto kinds pass
// through.
func ResolveCatKind(kind string, classCount int) string {
	if kind != CatAuto {
		return kind
	}
	if classCount <= mosaicMaxClasses {
		return CatMosaic
	}
	return CatCount
}

// Options configures a Plot call. Attrs is validated against the
// option dictionary; Summary, when non-nil, receives console ranking
// tables.
type Options struct {
	Attrs   map[string]interface{}
	Summary io.Writer
}

type config struct {
	dist         string
	catKind      string
	policy       rank.ImputePolicy
	dropOutliers bool
	bins         int
	topPairs     int
	categoryCap  int
	folds        int
	seed         int64
	summary      io.Writer
}

func resolve(opts Options) (*config, error) {
	attrs := map[string]interface{}{}
	for k, v := range opts.Attrs {
		attrs[k] = v
	}
	attributeDictionary.ExportDefaults(attrs)
	if err := attributeDictionary.Validate(attrs); err != nil {
		return nil, err
	}
	cfg := &config{
		dist:         attrs["dist"].(string),
		catKind:      attrs["cat_kind"].(string),
		dropOutliers: attrs["drop_outliers"].(bool),
		bins:         attrs["bins"].(int),
		topPairs:     attrs["top_pairs"].(int),
		categoryCap:  attrs["category_cap"].(int),
		folds:        attrs["folds"].(int),
		seed:         int64(attrs["seed"].(int)),
		summary:      opts.Summary,
	}
	if attrs["impute"].(string) == "median" {
		cfg.policy = rank.ImputeMedian
	}
	return cfg, nil
}

// ResolveAlpha maps sample count to scatter point opacity. It is a
// pure function so the policy is testable.
func ResolveAlpha(n int) float64 {
	switch {
	case n <= 100:
		return 0.9
	case n <= 1000:
		return 0.6
	case n <= 10000:
		return 0.3
	default:
		return 0.1
	}
}

// ResolveSize maps sample count to scatter glyph radius in points.
func ResolveSize(n int) float64 {
	switch {
	case n <= 100:
		return 3
	case n <= 1000:
		return 2.5
	case n <= 10000:
		return 2
	default:
		return 1.5
	}
}
