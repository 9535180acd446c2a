// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/chart3d"
	"github.com/tabula3d/tabula3d/colors"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
	assert.Equal(t, image.Pt(640, 480), c.Size())
	assert.Equal(t, 8, c.Chart.PointCap)
	assert.Equal(t, chart3d.Column, c.ChartSpec().Type)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabula3d.toml")
	err := os.WriteFile(path, []byte(`
data = "sales.csv"
type = "3d-waterfall"
theme = "dark"
x = "month"
y = ["sales", "cost"]
fps = 60

[chart]
MaxHeight = 3.0
AutoRotate = false
`), 0o644)
	require.NoError(t, err)

	c, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "sales.csv", c.Data)
	assert.Equal(t, colors.Dark, c.Theme)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, 60, c.Frames)
	assert.Equal(t, 3.0, c.Chart.MaxHeight)
	assert.False(t, c.Chart.AutoRotate)
	assert.Equal(t, 8, c.Chart.PointCap)
	assert.Equal(t, chart3d.ChartSpec{
		Type:  chart3d.Waterfall,
		Theme: colors.Dark,
		Axes:  c.Axes(),
	}, c.ChartSpec())
	assert.Equal(t, []string{"sales", "cost"}, c.Axes().Y)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(`theme = "purple"`))
	assert.Error(t, err)
	_, err = Decode(strings.NewReader(`backend = "vulkan"`))
	assert.ErrorContains(t, err, "vulkan")
	_, err = Decode(strings.NewReader("width = 0\n[chart]\nPointCap = 0\n"))
	assert.ErrorContains(t, err, "size")
	assert.ErrorContains(t, err, "PointCap")
	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	c := Default()
	c.Y = []string{"a"}
	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestDefaultTags(t *testing.T) {
	c := Default()
	assert.Equal(t, "column", c.Type)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, 60, c.Frames)
	assert.Equal(t, "offscreen", c.Backend)
	assert.Equal(t, 2.5, c.Chart.MaxHeight)
	assert.Equal(t, float32(75), c.Chart.CameraFOV)
	assert.True(t, c.Chart.AutoRotate)
	assert.Equal(t, *chart3d.DefaultSettings(), c.Chart)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.toml")
	require.NoError(t, os.WriteFile(path, []byte("MaxHeight = 4.0\nPointCap = 5\n"), 0o644))

	c := Default()
	c.Chart.AutoRotate = false
	require.NoError(t, c.LoadSettings())
	assert.False(t, c.Chart.AutoRotate)

	c.Settings = path
	require.NoError(t, c.LoadSettings())
	assert.Equal(t, 4.0, c.Chart.MaxHeight)
	assert.Equal(t, 5, c.Chart.PointCap)
	assert.True(t, c.Chart.AutoRotate)

	require.NoError(t, os.WriteFile(path, []byte("PointCap = 0\n"), 0o644))
	assert.ErrorContains(t, c.LoadSettings(), "PointCap")
	c.Settings = filepath.Join(dir, "missing.toml")
	assert.Error(t, c.LoadSettings())
}
