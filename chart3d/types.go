// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart3d turns normalized tabular data into a lit, framed
// 3D chart scene. Each [ChartType] has a [Builder] strategy; the
// [Manager] owns the scene and rebuilds it from scratch whenever the
// data, chart type or theme changes.
package chart3d

import (
	"fmt"
	"strings"

	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/tabular"
)

// ChartType is the closed set of 3D chart kinds.
type ChartType int32

const (
	Column ChartType = iota
	Bar
	Scatter
	Line
	Surface
	Heatmap
	Waterfall
	Bubble

	// ChartTypesN is the number of chart types.
	ChartTypesN
)

var chartTypeNames = [...]string{"column", "bar", "scatter", "line", "surface", "heatmap", "waterfall", "bubble"}

func (ct ChartType) String() string {
	if ct >= 0 && ct < ChartTypesN {
		return chartTypeNames[ct]
	}
	return fmt.Sprintf("ChartType(%d)", int32(ct))
}

// MarshalText implements [encoding.TextMarshaler].
func (ct ChartType) MarshalText() ([]byte, error) {
	return []byte(ct.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using
// [ParseChartType], so it never fails.
func (ct *ChartType) UnmarshalText(text []byte) error {
	*ct = ParseChartType(string(text))
	return nil
}

// ChartTypes returns all the chart types.
func ChartTypes() []ChartType {
	cts := make([]ChartType, ChartTypesN)
	for i := range cts {
		cts[i] = ChartType(i)
	}
	return cts
}

// exactTypes maps canonical names to chart types.
var exactTypes = map[string]ChartType{
	"column":    Column,
	"bar":       Bar,
	"scatter":   Scatter,
	"line":      Line,
	"surface":   Surface,
	"heatmap":   Heatmap,
	"waterfall": Waterfall,
	"bubble":    Bubble,
}

// typeAliases is checked in order for a substring of an unknown
// type name, so names like "stacked-bar" find the nearest strategy.
var typeAliases = []struct {
	sub string
	ct  ChartType
}{
	{"bar", Bar},
	{"column", Column},
	{"col", Column},
	{"scatter", Scatter},
	{"point", Scatter},
	{"line", Line},
	{"area", Line},
	{"surface", Surface},
	{"mesh", Surface},
	{"heat", Heatmap},
	{"waterfall", Waterfall},
	{"cascade", Waterfall},
	{"bubble", Bubble},
}

// ParseChartType returns the chart type for a name. The name is lower
// cased and any "3d-", "3d_" or "3d" prefix is removed; it is then
// looked up exactly, then by substring alias. Anything else is [Column].
func ParseChartType(name string) ChartType {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range []string{"3d-", "3d_", "3d"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = rest
			break
		}
	}
	if ct, ok := exactTypes[s]; ok {
		return ct
	}
	for _, al := range typeAliases {
		if strings.Contains(s, al.sub) {
			return al.ct
		}
	}
	return Column
}

// ChartSpec is what to draw: immutable for one rebuild.
type ChartSpec struct {
	Type  ChartType             `json:"type" yaml:"type" toml:"type"`
	Axes  tabular.AxisSelection `json:"axes" yaml:"axes" toml:"axes"`
	Theme colors.Themes         `json:"theme" yaml:"theme" toml:"theme"`
}

// ErrBuild is wrapped by every error from building a chart scene.
var ErrBuild = errors.New("chart3d: scene construction failed")
