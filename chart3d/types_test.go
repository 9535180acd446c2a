// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/math32"
	"github.com/tabula3d/tabula3d/tabular"
)

func TestParseChartType(t *testing.T) {
	tests := map[string]ChartType{
		"column":        Column,
		"3d-bar":        Bar,
		"3D_Scatter":    Scatter,
		"3dline":        Line,
		" Surface ":     Surface,
		"heatmap":       Heatmap,
		"3d-waterfall":  Waterfall,
		"bubble":        Bubble,
		"stacked-bar":   Bar,
		"columns":       Column,
		"point-cloud":   Scatter,
		"area":          Line,
		"mesh":          Surface,
		"heat-grid":     Heatmap,
		"cascade":       Waterfall,
		"bubbles":       Bubble,
		"pie":           Column,
		"":              Column,
		"3d-donut":      Column,
		"horizontalbar": Bar,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseChartType(in), "%q", in)
	}
	for _, ct := range ChartTypes() {
		assert.Equal(t, ct, ParseChartType(ct.String()))
		assert.Equal(t, ct, ParseChartType("3d-"+ct.String()))
	}
}

func TestChartSpecTOML(t *testing.T) {
	var spec ChartSpec
	err := toml.NewDecoder(strings.NewReader(`
type = "3d-bubble"
theme = "dark"
[axes]
x = "month"
y = ["sales", "cost"]
`)).Decode(&spec)
	require.NoError(t, err)
	assert.Equal(t, ChartSpec{
		Type:  Bubble,
		Theme: colors.Dark,
		Axes:  tabular.AxisSelection{X: "month", Y: []string{"sales", "cost"}},
	}, spec)

	b, err := toml.Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(b), "bubble")
	assert.Contains(t, string(b), "dark")
}

func TestScale(t *testing.T) {
	sc := ComputeScale([]tabular.Series{{Values: []float64{5, 5, 5}}}, 2.5)
	assert.True(t, sc.Degenerate())
	assert.Equal(t, 1.25, sc.Normalize(5))
	assert.Equal(t, 0.5, sc.Fraction(5))

	sc = ComputeScale(nil, 2.5)
	assert.Equal(t, 1.25, sc.Normalize(0))

	sc = ComputeScale([]tabular.Series{{Values: []float64{10, -5}}, {Values: []float64{7}}}, 3)
	assert.Equal(t, -5.0, sc.Min)
	assert.Equal(t, 10.0, sc.Max)
	assert.Equal(t, 0.0, sc.Normalize(-5))
	assert.Equal(t, 3.0, sc.Normalize(10))
	assert.InDelta(t, 2.4, sc.Normalize(7), 1e-9)
}

func TestScaleHugeRange(t *testing.T) {
	sc := ComputeScale([]tabular.Series{{Values: []float64{1e308, -1e308, 0}}}, 2.5)
	assert.False(t, sc.Degenerate())
	assert.Equal(t, 0.0, sc.Normalize(-1e308))
	assert.Equal(t, 2.5, sc.Normalize(1e308))
	assert.InDelta(t, 1.25, sc.Normalize(0), 1e-9)
	assert.InDelta(t, 0.5, sc.Fraction(0), 1e-9)

	sc = ComputeScale([]tabular.Series{{Values: []float64{math.Inf(1), 3}}}, 2.5)
	assert.True(t, sc.Degenerate())
	assert.Equal(t, 1.25, sc.Normalize(3))
	assert.Equal(t, 1.25, sc.Normalize(math.Inf(1)))
}

func TestSettings(t *testing.T) {
	st, err := DecodeSettings(strings.NewReader("MaxHeight = 4.0\nPointCap = 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, st.MaxHeight)
	assert.Equal(t, 5, st.PointCap)
	assert.Equal(t, float32(0.8), st.Spacing)

	_, err = DecodeSettings(strings.NewReader("PointCap = 0\n"))
	assert.Error(t, err)
	_, err = DecodeSettings(strings.NewReader("PointCap = 'x'\n"))
	assert.Error(t, err)

	cp := st.Clone()
	cp.MaxHeight = 1
	assert.Equal(t, 4.0, st.MaxHeight)
	assert.NoError(t, DefaultSettings().Validate())
}

func TestSettingsDefaults(t *testing.T) {
	st := DefaultSettings()
	assert.Equal(t, 2.5, st.MaxHeight)
	assert.Equal(t, 8, st.PointCap)
	assert.Equal(t, float32(0.05), st.MinBarHeight)
	assert.Equal(t, uint8(204), st.BubbleAlpha)
	assert.Equal(t, 0.3, st.HeatmapShade)
	assert.Equal(t, math32.Vec3(4, 4, 6), st.CameraPos)
	assert.True(t, st.AutoRotate)

	st.MaxHeight = 1
	st.Defaults()
	assert.Equal(t, 2.5, st.MaxHeight)

	st.HeatmapShade = 2
	assert.ErrorContains(t, st.Validate(), "HeatmapShade")
}

func TestOpenSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.toml")
	require.NoError(t, os.WriteFile(path, []byte("HeatmapShade = 0.0\nCameraFOV = 60.0\n"), 0o644))
	st, err := OpenSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.HeatmapShade)
	assert.Equal(t, float32(60), st.CameraFOV)
	assert.Equal(t, 8, st.PointCap)

	require.NoError(t, os.WriteFile(path, []byte("SphereSegments = 2\n"), 0o644))
	_, err = OpenSettings(path)
	assert.ErrorContains(t, err, path)
	_, err = OpenSettings(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
