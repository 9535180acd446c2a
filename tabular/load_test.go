// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecode(t *testing.T) {
	raw, err := Decode(strings.NewReader(`[{"category":"A","value":30},{"category":"B","value":45}]`), JSON)
	require.NoError(t, err)
	d := Normalize(raw, AxisSelection{})
	assert.Equal(t, []string{"A", "B"}, d.Labels)
	assert.Equal(t, []float64{30, 45}, d.Series[0].Values)

	raw, err = Decode(strings.NewReader("data:\n  - {name: x, value: 2}\n  - {name: y, value: 3}\n"), YAML)
	require.NoError(t, err)
	d = Normalize(raw, AxisSelection{})
	assert.Equal(t, Wrapped, d.Shape)
	assert.Equal(t, []float64{2, 3}, d.Series[0].Values)

	raw, err = Decode(strings.NewReader("month,sales\nJan,10\nFeb,12.5\n"), CSV)
	require.NoError(t, err)
	d = Normalize(raw, AxisSelection{X: "month", Y: []string{"sales"}})
	assert.Equal(t, []string{"Jan", "Feb"}, d.Labels)
	assert.Equal(t, []float64{10, 12.5}, d.Series[0].Values)

	raw, err = Decode(strings.NewReader(""), JSON)
	require.NoError(t, err)
	assert.True(t, Normalize(raw, AxisSelection{}).Fallback)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yml")
	require.NoError(t, os.WriteFile(path, []byte("- 1\n- 2\n"), 0o644))
	raw, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, Normalize(raw, AxisSelection{}).Series[0].Values)

	_, err = LoadFile(filepath.Join(dir, "data.txt"))
	assert.Error(t, err)
	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "region")
	f.SetCellValue(sheet, "B1", "units")
	f.SetCellValue(sheet, "A2", "North")
	f.SetCellValue(sheet, "B2", 100)
	f.SetCellValue(sheet, "A3", "South")
	f.SetCellValue(sheet, "B3", 200.5)
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))

	raw, err := LoadFile(path)
	require.NoError(t, err)
	d := Normalize(raw, AxisSelection{X: "region", Y: []string{"units"}})
	assert.Equal(t, []string{"North", "South"}, d.Labels)
	assert.Equal(t, []float64{100, 200.5}, d.Series[0].Values)

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)
	ft, err := Sniff(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, XLSX, ft)
	path = filepath.Join(t.TempDir(), "export.dat")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	raw, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, Normalize(raw, AxisSelection{X: "region"}).Labels)
}

func TestSniff(t *testing.T) {
	tests := []struct {
		head string
		want Formats
	}{
		{`  [{"a": 1}]`, JSON},
		{`{"data": []}`, JSON},
		{"month,sales\nJan,10\n", CSV},
		{"- 1\n- 2\n", YAML},
		{"data:\n  - {a: 1, b: 2}\n", YAML},
	}
	for _, tt := range tests {
		ft, err := Sniff([]byte(tt.head))
		require.NoError(t, err, tt.head)
		assert.Equal(t, tt.want, ft, tt.head)
	}

	_, err := Sniff([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "sales.txt")
	require.NoError(t, os.WriteFile(path, []byte("month,sales\nJan,10\n"), 0o644))
	raw, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, Normalize(raw, AxisSelection{X: "month"}).Series[0].Values)
}
