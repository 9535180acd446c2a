// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/xyz"
)

// addStage adds the ground grid and the semi-transparent floor that
// every chart stands on, colored for the theme.
func addStage(bc *BuildContext) {
	st := bc.Settings
	style := colors.StyleFor(bc.Theme)
	tag := xyz.Tag{Series: -1, Point: -1, Role: xyz.RoleGrid}
	lines, center := xyz.GridLines(st.GridSize, st.GridDivisions)
	if len(lines) > 0 {
		bc.AddSolid(xyz.NewLineSegments("grid", lines...), style.Grid, tag)
	}
	if len(center) > 0 {
		bc.AddSolid(xyz.NewLineSegments("grid-center", center...), style.GridCenter, tag)
	}
	floor := xyz.NewPlane("floor", st.FloorSize, st.FloorSize, 1, 1)
	tag.Role = xyz.RoleFloor
	bc.AddSolid(floor, style.Floor, tag).SetPos(0, -0.01, 0)
}
