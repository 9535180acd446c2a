// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package echarts exports chart data as a standalone interactive
// HTML page using the echarts-gl 3D charts, for sharing a chart
// without a GPU.
package echarts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/tabula3d/tabula3d/chart3d"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/tabular"
)

// DefaultAssetsHost is where the page loads the echarts scripts from.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Options are the page options for [Export].
type Options struct {

	// Title is the page and chart title.
	Title string

	// Width and Height are CSS sizes of the chart.
	Width  string
	Height string

	// AssetsHost overrides [DefaultAssetsHost].
	AssetsHost string

	// PointCap is the maximum number of points per series;
	// 0 means [tabular.MaxPoints].
	PointCap int
}

func (o *Options) defaults() {
	if o.Width == "" {
		o.Width = "900px"
	}
	if o.Height == "" {
		o.Height = "600px"
	}
	if o.AssetsHost == "" {
		o.AssetsHost = DefaultAssetsHost
	}
	if o.PointCap <= 0 {
		o.PointCap = tabular.MaxPoints
	}
}

// Export writes an HTML page drawing the data as the chart type of
// spec. Column, bar, heatmap and waterfall charts are bar3D charts,
// scatter and bubble are scatter3D, line is line3D and surface is a
// surface over the point and series indexes.
func Export(w io.Writer, data tabular.Data, spec chart3d.ChartSpec, o Options) error {
	o.defaults()
	data = data.Capped(o.PointCap)
	global := globalOptions(data, spec, o)
	var err error
	switch spec.Type {
	case chart3d.Scatter, chart3d.Bubble:
		c := charts.NewScatter3D()
		c.SetGlobalOptions(global...)
		for s, sr := range data.Series {
			c.AddSeries(sr.Label, categoryData(data, s), seriesColor(spec.Theme, s))
		}
		err = c.Render(w)
	case chart3d.Line:
		c := charts.NewLine3D()
		c.SetGlobalOptions(global...)
		for s, sr := range data.Series {
			c.AddSeries(sr.Label, categoryData(data, s), seriesColor(spec.Theme, s))
		}
		err = c.Render(w)
	case chart3d.Surface:
		c := charts.NewSurface3D()
		c.SetGlobalOptions(global...)
		c.AddSeries("surface", surfaceData(data), seriesColor(spec.Theme, 0))
		err = c.Render(w)
	default:
		c := charts.NewBar3D()
		c.SetGlobalOptions(global...)
		for s, sr := range data.Series {
			c.AddSeries(sr.Label, categoryData(data, s), seriesColor(spec.Theme, s))
		}
		err = c.Render(w)
	}
	if err != nil {
		return fmt.Errorf("echarts: rendering %v chart: %w", spec.Type, err)
	}
	return nil
}

func globalOptions(data tabular.Data, spec chart3d.ChartSpec, o Options) []charts.GlobalOpts {
	theme := types.ThemeWesteros
	if spec.Theme.IsDark() {
		theme = "dark"
	}
	axis := "category"
	if spec.Type == chart3d.Surface {
		axis = "value"
	}
	sc := chart3d.ComputeScale(data.Series, 1)
	gopts := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			AssetsHost: o.AssetsHost,
			Theme:      theme,
			Width:      o.Width,
			Height:     o.Height,
			PageTitle:  o.Title,
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: spec.Type.String()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: axisName(spec.Axes.X, "category"), Type: axis}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "series", Type: axis}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "value", Type: "value"}),
	}
	if spec.Type == chart3d.Heatmap && !sc.Degenerate() {
		palette := colors.Palette(spec.Theme)
		hex := make([]string, len(palette))
		for i, c := range palette {
			hex[i] = colors.AsHex(c)
		}
		gopts = append(gopts, charts.WithVisualMapOpts(opts.VisualMap{
			Min:     float32(sc.Min),
			Max:     float32(sc.Max),
			InRange: &opts.VisualMapInRange{Color: hex},
		}))
	}
	return gopts
}

func axisName(field, def string) string {
	if field == "" {
		return def
	}
	return field
}

func seriesColor(theme colors.Themes, s int) charts.SeriesOpts {
	return charts.WithItemStyleOpts(opts.ItemStyle{Color: colors.AsHex(colors.ColorFor(theme, s))})
}

// categoryData returns the points of series s as (label, series, value).
// The category axes collect their names from the data.
func categoryData(data tabular.Data, s int) []opts.Chart3DData {
	sr := data.Series[s]
	pts := make([]opts.Chart3DData, len(sr.Values))
	for i, v := range sr.Values {
		label := fmt.Sprintf("#%d", i+1)
		if i < len(data.Labels) && data.Labels[i] != "" {
			label = data.Labels[i]
		}
		pts[i] = opts.Chart3DData{Value: []any{label, sr.Label, v}}
	}
	return pts
}

// surfaceData returns every point as (point index, series index, value).
func surfaceData(data tabular.Data) []opts.Chart3DData {
	var pts []opts.Chart3DData
	for s, sr := range data.Series {
		for i, v := range sr.Values {
			pts = append(pts, opts.Chart3DData{Value: []any{i, s, v}})
		}
	}
	return pts
}
