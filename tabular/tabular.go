// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabular normalizes loosely shaped tabular input (records,
// rows, bare numbers, or any of those wrapped in an object) into
// category labels plus numeric series. [Normalize] never fails:
// input it cannot make sense of yields a fixed fallback series.
package tabular

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// MaxPoints is the number of points per series used to build geometry.
const MaxPoints = 8

// DefaultField is the record field used for values when no
// y field is selected.
const DefaultField = "value"

// AxisSelection names the record fields to plot.
// The fields may not exist in the data.
type AxisSelection struct {

	// X is the field holding the category label.
	X string `json:"x" yaml:"x" toml:"x"`

	// Y are the fields holding the values, one series each.
	Y []string `json:"y" yaml:"y" toml:"y"`

	// Z is an optional depth field.
	Z string `json:"z,omitempty" yaml:"z,omitempty" toml:"z,omitempty"`
}

// ParseAxisSelection converts the collaborator form
// {x: string, y: string | string[], z?: string} into an [AxisSelection].
// Fields that are missing or of the wrong type are left empty.
func ParseAxisSelection(v any) AxisSelection {
	switch a := v.(type) {
	case AxisSelection:
		return a
	case *AxisSelection:
		if a != nil {
			return *a
		}
		return AxisSelection{}
	}
	rec, ok := asRecord(v)
	if !ok {
		return AxisSelection{}
	}
	var as AxisSelection
	as.X, _ = rec["x"].(string)
	as.Z, _ = rec["z"].(string)
	switch y := rec["y"].(type) {
	case string:
		if y != "" {
			as.Y = []string{y}
		}
	case []string:
		as.Y = slices.Clone(y)
	default:
		if ys, ok := asSlice(y); ok {
			for _, e := range ys {
				if s, ok := e.(string); ok && s != "" {
					as.Y = append(as.Y, s)
				}
			}
		}
	}
	return as
}

// Series is one named sequence of values plotted against the labels.
type Series struct {
	Label  string    `json:"label" yaml:"label"`
	Values []float64 `json:"values" yaml:"values"`
}

// Shapes are the input shapes [Normalize] recognizes.
type Shapes int32

const (
	// Fallback means the input was not recognized or was empty.
	Fallback Shapes = iota

	// Records is an array of objects.
	Records

	// Rows is an array of arrays.
	Rows

	// Scalars is an array of scalar values.
	Scalars

	// Wrapped is an object holding one of the array shapes.
	Wrapped
)

var shapeNames = [...]string{"fallback", "records", "rows", "scalars", "wrapped"}

func (sh Shapes) String() string {
	if sh >= 0 && int(sh) < len(shapeNames) {
		return shapeNames[sh]
	}
	return fmt.Sprintf("Shapes(%d)", int32(sh))
}

// MarshalText implements [encoding.TextMarshaler].
func (sh Shapes) MarshalText() ([]byte, error) {
	return []byte(sh.String()), nil
}

// Data is normalized tabular data. Every series has exactly
// one value per label.
type Data struct {
	Labels []string `json:"labels" yaml:"labels"`
	Series []Series `json:"series" yaml:"series"`

	// Fallback is set when the fixed fallback series was used.
	Fallback bool `json:"fallback" yaml:"fallback"`

	// Shape is the input shape that was recognized.
	Shape Shapes `json:"shape" yaml:"shape"`
}

// Len returns the number of points (labels).
func (d Data) Len() int {
	return len(d.Labels)
}

// Capped returns a copy with at most n points per series.
func (d Data) Capped(n int) Data {
	n = max(0, min(n, len(d.Labels)))
	cd := d
	cd.Labels = slices.Clone(d.Labels[:n])
	cd.Series = lo.Map(d.Series, func(s Series, _ int) Series {
		return Series{Label: s.Label, Values: slices.Clone(s.Values[:min(n, len(s.Values))])}
	})
	return cd
}

// FallbackData returns the fixed five point series used
// when the input cannot be normalized.
func FallbackData() Data {
	return Data{
		Labels:   []string{"A", "B", "C", "D", "E"},
		Series:   []Series{{Label: DefaultField, Values: []float64{30, 45, 25, 60, 15}}},
		Fallback: true,
		Shape:    Fallback,
	}
}
