// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Style has the non-series colors used to stage a chart scene
// in a given theme.
type Style struct {

	// Background is the clear color of the scene.
	Background color.RGBA

	// Grid is the color of the ground grid lines.
	Grid color.RGBA

	// GridCenter is the color of the two center lines of the grid.
	GridCenter color.RGBA

	// Floor is the color of the floor plane, with its opacity
	// in the alpha channel.
	Floor color.RGBA
}

// StyleFor returns the [Style] for the given theme.
func StyleFor(theme Themes) Style {
	if theme.IsDark() {
		return Style{
			Background: FromRGB(0x11, 0x18, 0x27),
			Grid:       colornames.Darkslategray,
			GridCenter: colornames.Dimgray,
			Floor:      WithAlpha(FromRGB(0x1f, 0x29, 0x37), 0x66),
		}
	}
	return Style{
		Background: colornames.White,
		Grid:       colornames.Gainsboro,
		GridCenter: colornames.Darkgray,
		Floor:      WithAlpha(colornames.Whitesmoke, 0x66),
	}
}
