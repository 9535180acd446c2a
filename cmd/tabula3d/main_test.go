// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/config"
	"gopkg.in/yaml.v3"
)

const salesCSV = "category,value,cost\nA,30,10\nB,45,12\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--quiet"))
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalize(t *testing.T) {
	path := writeFile(t, "sales.csv", salesCSV)
	out, err := run(t, "normalize", "-y", "value", "-y", "cost", path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, []any{"A", "B"}, got["labels"])
	assert.Equal(t, "records", got["shape"])
	assert.Len(t, got["series"], 2)

	out, err = run(t, "normalize", "--table", "-y", "value", "-y", "cost", path)
	require.NoError(t, err)
	assert.Contains(t, out, "label")
	assert.Contains(t, out, "cost")
	assert.Regexp(t, `B\s*\|\s*45\s*\|\s*12`, out)
}

func TestRender(t *testing.T) {
	path := writeFile(t, "sales.csv", salesCSV)
	out, err := run(t, "render", "--type", "3d-bar", "--theme", "dark", path)
	require.NoError(t, err)
	var sm summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sm))
	assert.Equal(t, "bar", sm.Chart)
	assert.Equal(t, "dark", sm.Theme)
	assert.Equal(t, "ready", sm.Status)
	assert.Equal(t, 60, sm.Frames)
	assert.Equal(t, 2, sm.Points)
	assert.Equal(t, 2, sm.Roles["point"])
	assert.InDelta(t, 640.0/480, sm.Camera.Aspect, 1e-5)
	require.NotNil(t, sm.Live)
	assert.Equal(t, 0, *sm.Live)
}

func TestRenderFallback(t *testing.T) {
	cfg := writeFile(t, "tabula3d.toml", "type = 'bubble'\nframes = 5\n")
	out, err := run(t, "render", "--config", cfg)
	require.NoError(t, err)
	var sm summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sm))
	assert.Equal(t, "bubble", sm.Chart)
	assert.True(t, sm.Fallback)
	assert.Equal(t, 5, sm.Points)
	assert.Equal(t, 5, sm.Frames)
}

func TestRenderSettings(t *testing.T) {
	settings := writeFile(t, "chart.toml", "CameraFOV = 50.0\nPointCap = 1\n")
	path := writeFile(t, "sales.csv", salesCSV)
	out, err := run(t, "render", "--settings", settings, path)
	require.NoError(t, err)
	var sm summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &sm))
	assert.Equal(t, float32(50), sm.Camera.FOV)
	assert.Equal(t, 1, sm.Points)
}

func TestRenderMountFailure(t *testing.T) {
	a := &app{cfg: config.Default()}
	a.cfg.Backend = "webgpu"
	sm, err := a.render(nil)
	if err == nil {
		t.Skip("webgpu available")
	}
	assert.Equal(t, "error", sm.Status)
	assert.Equal(t, 0, sm.Frames)
	assert.NotEmpty(t, sm.Error)
}

func TestExport(t *testing.T) {
	path := writeFile(t, "sales.yaml", "- {category: A, value: 30}\n- {category: B, value: 45}\n")
	html := filepath.Join(t.TempDir(), "chart.html")
	_, err := run(t, "export", "-t", "scatter", "-o", html, "--title", "Quarterly", path)
	require.NoError(t, err)
	b, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(b), "scatter3D")
	assert.Contains(t, string(b), "Quarterly")
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "sales.json", `[{"category": "A", "value": 30}]`)
	_, err := run(t, "watch", "--duration", "100ms", path)
	assert.NoError(t, err)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "render", "--theme", "purple")
	assert.Error(t, err)
	_, err = run(t, "render", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01"
	_, err = run(t, "render", writeFile(t, "data.txt", png))
	assert.ErrorContains(t, err, "unsupported data file type image/png")
	_, err = run(t, "render", "--settings", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	_, err = run(t, "render", "--backend", "vulkan")
	assert.ErrorContains(t, err, "vulkan")
}
