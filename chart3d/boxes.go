// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"math"

	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/math32"
	"github.com/tabula3d/tabula3d/xyz"
)

// buildColumn makes one upright box per point, standing on the floor,
// with points along X and series along Z.
func buildColumn(bc *BuildContext) error {
	st := bc.Settings
	for s, sr := range bc.Data.Series {
		z := bc.SeriesZ(s)
		for i, v := range sr.Values {
			h := bc.BarHeight(v)
			ms := xyz.NewBox(meshName("column", s, i), st.BoxSize, h, st.BoxSize)
			bc.AddSolid(ms, bc.Color(s), bc.pointTag(s, i)).SetPos(bc.PointX(i, len(sr.Values)), h/2, z)
		}
	}
	return nil
}

// buildBar makes one horizontal box per point, growing along X from a
// common baseline, with points stacked up along Y and series along Z.
func buildBar(bc *BuildContext) error {
	st := bc.Settings
	base := -float32(bc.Scale.MaxHeight) / 2
	for s, sr := range bc.Data.Series {
		z := bc.SeriesZ(s)
		for i, v := range sr.Values {
			w := bc.BarHeight(v)
			y := st.BoxSize/2 + float32(i)*st.Spacing
			ms := xyz.NewBox(meshName("bar", s, i), w, st.BoxSize, st.BoxSize)
			bc.AddSolid(ms, bc.Color(s), bc.pointTag(s, i)).SetPos(base+w/2, y, z)
		}
	}
	return nil
}

// buildHeatmap lays each series out on the smallest square grid that
// holds its points. Cell height encodes the value and cell color is
// the palette bucket of the normalized height, shaded within the bucket.
func buildHeatmap(bc *BuildContext) error {
	st := bc.Settings
	sides := make([]int, bc.NumSeries())
	var total float32
	for s, sr := range bc.Data.Series {
		sides[s] = int(math.Ceil(math.Sqrt(float64(len(sr.Values)))))
		total += float32(sides[s]) * st.HeatmapSpacing
	}
	zoff := -total / 2
	for s, sr := range bc.Data.Series {
		side := sides[s]
		depth := float32(side) * st.HeatmapSpacing
		for i, v := range sr.Values {
			row, col := i/side, i%side
			h := bc.BarHeight(v)
			x := centered(col, side, st.HeatmapSpacing)
			z := zoff + depth/2 + centered(row, side, st.HeatmapSpacing)
			clr := colors.BucketShade(bc.Theme, float32(bc.Scale.Fraction(v)), st.HeatmapShade)
			ms := xyz.NewBox(meshName("heat", s, i), st.HeatmapCell, h, st.HeatmapCell)
			bc.AddSolid(ms, clr, bc.pointTag(s, i)).SetPos(x, h/2, z)
		}
		zoff += depth
	}
	return nil
}

// buildWaterfall draws each series as floating bars whose levels are the
// running sum of the deltas between consecutive heights. Rising bars
// use the second palette color and falling bars the fourth. A quad
// joins adjacent bars, and a final total bar closes the sequence.
func buildWaterfall(bc *BuildContext) error {
	st := bc.Settings
	w := st.WaterfallWidth
	up := colors.ColorFor(bc.Theme, 1)
	down := colors.ColorFor(bc.Theme, 3)
	for s, sr := range bc.Data.Series {
		n := len(sr.Values)
		if n == 0 {
			continue
		}
		z := bc.SeriesZ(s)
		cum := make([]float32, n)
		prev := float32(0)
		for i, v := range sr.Values {
			h := bc.Height(v)
			if i == 0 {
				cum[i] = h
			} else {
				cum[i] = cum[i-1] + (h - prev)
			}
			prev = h
		}
		slots := n + 1
		for i := range n {
			lo, hi := float32(0), cum[i]
			clr := bc.Color(s)
			if i > 0 {
				lo = cum[i-1]
				if hi >= lo {
					clr = up
				} else {
					clr = down
				}
			}
			bot, top := min(lo, hi), max(lo, hi)
			h := max(top-bot, st.MinBarHeight)
			x := bc.PointX(i, slots)
			ms := xyz.NewBox(meshName("waterfall", s, i), w, h, w)
			bc.AddSolid(ms, clr, bc.pointTag(s, i)).SetPos(x, bot+h/2, z)
			if i+1 < n {
				nx := bc.PointX(i+1, slots)
				a := math32.Vec3(x+w/2, cum[i], z)
				b := math32.Vec3(nx-w/2, cum[i], z)
				c := math32.Vec3(nx-w/2, cum[i+1], z)
				d := math32.Vec3(x+w/2, cum[i+1], z)
				qclr := colors.WithAlpha(bc.Color(s), st.ConnectorAlpha)
				bc.AddSolid(xyz.NewQuad(meshName("delta", s, i), a, b, c, d), qclr,
					xyz.Tag{Series: s, Point: i, Role: xyz.RoleConnector, Label: bc.Label(i)})
			}
		}
		last := cum[n-1]
		h := max(last, st.MinBarHeight)
		ms := xyz.NewBox(meshName("total", s, n), w, h, w)
		bc.AddSolid(ms, bc.Color(s), xyz.Tag{Series: s, Point: -1, Role: xyz.RoleTotal, Label: "Total"}).
			SetPos(bc.PointX(n, slots), h/2, z)
	}
	return nil
}
