// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package echarts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/chart3d"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/tabular"
)

func TestExport(t *testing.T) {
	data := tabular.Normalize([]any{
		map[string]any{"month": "Jan", "sales": 10.0, "cost": 4.0},
		map[string]any{"month": "Feb", "sales": 25.0, "cost": 9.0},
	}, tabular.AxisSelection{X: "month", Y: []string{"sales", "cost"}})

	tests := map[chart3d.ChartType]string{
		chart3d.Column:  "bar3D",
		chart3d.Heatmap: "bar3D",
		chart3d.Scatter: "scatter3D",
		chart3d.Line:    "line3D",
		chart3d.Surface: "surface",
	}
	for ct, kind := range tests {
		t.Run(ct.String(), func(t *testing.T) {
			var buf bytes.Buffer
			spec := chart3d.ChartSpec{Type: ct, Axes: tabular.AxisSelection{X: "month"}, Theme: colors.Dark}
			require.NoError(t, Export(&buf, data, spec, Options{Title: "Sales"}))
			html := buf.String()
			assert.Contains(t, html, "Sales")
			assert.Contains(t, html, kind)
			assert.Contains(t, html, "echarts-gl")
			if ct != chart3d.Surface {
				assert.Contains(t, html, "Feb")
				assert.Contains(t, html, "cost")
			}
		})
	}
}

func TestExportCapsPoints(t *testing.T) {
	vals := make([]any, 20)
	for i := range vals {
		vals[i] = float64(1000 + i)
	}
	var buf bytes.Buffer
	err := Export(&buf, tabular.Normalize(vals, tabular.AxisSelection{}), chart3d.ChartSpec{}, Options{PointCap: 3})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Item 3")
	assert.NotContains(t, buf.String(), "Item 4")
}
