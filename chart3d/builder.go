// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"fmt"
	"image/color"

	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/tabular"
	"github.com/tabula3d/tabula3d/xyz"
)

// BuildContext has everything a [Builder] needs to populate a scene.
type BuildContext struct {

	// Scene is the scene being built.
	Scene *xyz.Scene

	// Data is the normalized data, already capped.
	Data tabular.Data

	// XField and YFields are the selected axis fields.
	XField  string
	YFields []string

	// Scale maps values to heights.
	Scale Scale

	// Theme selects the palette and scene style.
	Theme colors.Themes

	// Settings are the visual constants.
	Settings *Settings

	// Objects collects the solids made.
	Objects *SceneObjects
}

// Builder is the geometry strategy for one chart type.
type Builder interface {

	// Build adds the chart primitives to bc.Objects. It is called
	// once per rebuild, after the previous objects were disposed.
	Build(bc *BuildContext) error
}

// BuilderFunc is a function that implements [Builder].
type BuilderFunc func(bc *BuildContext) error

func (fn BuilderFunc) Build(bc *BuildContext) error { return fn(bc) }

// Builders is the strategy table.
var Builders = map[ChartType]Builder{
	Column:    BuilderFunc(buildColumn),
	Bar:       BuilderFunc(buildBar),
	Scatter:   BuilderFunc(buildScatter),
	Line:      BuilderFunc(buildLine),
	Surface:   BuilderFunc(buildSurface),
	Heatmap:   BuilderFunc(buildHeatmap),
	Waterfall: BuilderFunc(buildWaterfall),
	Bubble:    BuilderFunc(buildBubble),
}

// BuilderFor returns the builder for a chart type, falling back to
// the column builder.
func BuilderFor(ct ChartType) Builder {
	if b, ok := Builders[ct]; ok {
		return b
	}
	return Builders[Column]
}

// NumSeries returns the number of series.
func (bc *BuildContext) NumSeries() int {
	return len(bc.Data.Series)
}

// Color returns the palette color of a series.
func (bc *BuildContext) Color(series int) color.RGBA {
	return colors.ColorFor(bc.Theme, series)
}

// Height returns the scene height of a value.
func (bc *BuildContext) Height(v float64) float32 {
	return float32(bc.Scale.Normalize(v))
}

// BarHeight returns the height of a value, at least MinBarHeight.
func (bc *BuildContext) BarHeight(v float64) float32 {
	return max(bc.Height(v), bc.Settings.MinBarHeight)
}

// PointX returns the x position of point i of n, centered on 0.
func (bc *BuildContext) PointX(i, n int) float32 {
	return centered(i, n, bc.Settings.Spacing)
}

// SeriesZ returns the z position of a series, centered on 0.
func (bc *BuildContext) SeriesZ(series int) float32 {
	return centered(series, bc.NumSeries(), bc.Settings.SeriesSpacing)
}

// Label returns the category label of point i.
func (bc *BuildContext) Label(i int) string {
	if i < len(bc.Data.Labels) {
		return bc.Data.Labels[i]
	}
	return ""
}

// AddSolid adds a solid with the given mesh, color and tag.
func (bc *BuildContext) AddSolid(ms *xyz.Mesh, clr color.RGBA, tag xyz.Tag) *xyz.Solid {
	sld := xyz.NewSolid(nil, ms.Name, ms).SetColor(clr).SetTag(tag)
	if clr.A < 255 {
		sld.Material.CullBack = false
	}
	bc.Objects.Add(sld)
	return sld
}

// pointTag returns the tag of point i of a series.
func (bc *BuildContext) pointTag(series, i int) xyz.Tag {
	return xyz.Tag{Series: series, Point: i, Role: xyz.RolePoint, Label: bc.Label(i)}
}

// meshName returns a mesh name for a primitive of a point.
func meshName(kind string, series, i int) string {
	return fmt.Sprintf("%s-%d-%d", kind, series, i)
}

// centered returns the offset of slot i of n with the given step,
// so that the n slots are centered on 0.
func centered(i, n int, step float32) float32 {
	return (float32(i) - float32(n-1)/2) * step
}
