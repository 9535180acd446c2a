// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/math32"
	"github.com/tabula3d/tabula3d/xyz"
)

// buildScatter makes one sphere per point at (x, height, series z).
func buildScatter(bc *BuildContext) error {
	st := bc.Settings
	for s, sr := range bc.Data.Series {
		z := bc.SeriesZ(s)
		for i, v := range sr.Values {
			ms := xyz.NewSphere(meshName("scatter", s, i), st.ScatterRadius, st.SphereSegments, st.SphereSegments/2)
			bc.AddSolid(ms, bc.Color(s), bc.pointTag(s, i)).SetPos(bc.PointX(i, len(sr.Values)), bc.Height(v), z)
		}
	}
	return nil
}

// buildLine places spheres as for scatter and joins the points of
// each series with a polyline.
func buildLine(bc *BuildContext) error {
	st := bc.Settings
	for s, sr := range bc.Data.Series {
		z := bc.SeriesZ(s)
		pts := make([]math32.Vector3, len(sr.Values))
		for i, v := range sr.Values {
			pts[i] = math32.Vec3(bc.PointX(i, len(sr.Values)), bc.Height(v), z)
			ms := xyz.NewSphere(meshName("line", s, i), st.LineRadius, st.SphereSegments, st.SphereSegments/2)
			bc.AddSolid(ms, bc.Color(s), bc.pointTag(s, i)).Pose.Pos = pts[i]
		}
		if len(pts) > 1 {
			bc.AddSolid(xyz.NewLines(meshName("polyline", s, 0), pts...), bc.Color(s),
				xyz.Tag{Series: s, Point: -1, Role: xyz.RoleConnector, Label: sr.Label})
		}
	}
	return nil
}

// buildBubble makes spheres whose radius grows with the value, lifted
// by BubbleLift times their height.
func buildBubble(bc *BuildContext) error {
	st := bc.Settings
	for s, sr := range bc.Data.Series {
		z := bc.SeriesZ(s)
		clr := colors.WithAlpha(bc.Color(s), st.BubbleAlpha)
		for i, v := range sr.Values {
			r := st.BubbleMinRadius + float32(bc.Scale.Fraction(v))*st.BubbleRadiusRange
			ms := xyz.NewSphere(meshName("bubble", s, i), r, st.SphereSegments, st.SphereSegments/2)
			bc.AddSolid(ms, clr, bc.pointTag(s, i)).SetPos(bc.PointX(i, len(sr.Values)), st.BubbleLift*bc.Height(v), z)
		}
	}
	return nil
}
