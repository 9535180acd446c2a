// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"math"

	"github.com/samber/lo"
	"github.com/tabula3d/tabula3d/tabular"
	"gonum.org/v1/gonum/floats"
)

// Scale maps data values linearly onto scene heights in [0, MaxHeight].
type Scale struct {
	Min       float64
	Max       float64
	MaxHeight float64
}

// ComputeScale returns the scale covering the global minimum and
// maximum over all series. Empty input gives a degenerate scale.
func ComputeScale(series []tabular.Series, maxHeight float64) Scale {
	all := lo.FlatMap(series, func(s tabular.Series, _ int) []float64 { return s.Values })
	if len(all) == 0 {
		return Scale{MaxHeight: maxHeight}
	}
	return Scale{Min: floats.Min(all), Max: floats.Max(all), MaxHeight: maxHeight}
}

// Degenerate returns whether all values are equal, or the range
// has no finite extent to map onto.
func (sc Scale) Degenerate() bool {
	return !(sc.Max > sc.Min) || math.IsInf(sc.Max, 0) || math.IsInf(sc.Min, 0)
}

// Normalize returns the scene height for a value. A degenerate scale
// returns half of MaxHeight so the data stays visible.
func (sc Scale) Normalize(v float64) float64 {
	if sc.Degenerate() {
		return sc.MaxHeight / 2
	}
	d := sc.Max - sc.Min
	if math.IsInf(d, 0) {
		// finite extremes more than MaxFloat64 apart
		return (v/2 - sc.Min/2) / (sc.Max/2 - sc.Min/2) * sc.MaxHeight
	}
	return (v - sc.Min) / d * sc.MaxHeight
}

// Fraction returns the height of a value as a fraction of MaxHeight.
func (sc Scale) Fraction(v float64) float64 {
	if sc.MaxHeight == 0 {
		return 0
	}
	return sc.Normalize(v) / sc.MaxHeight
}
