// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// FromRGB makes a new opaque RGBA color from the given
// RGB uint8 values.
func FromRGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// WithAlpha returns the given color with the given alpha value.
// The RGB values are treated as not alpha-premultiplied.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// AsHex returns the color as a "#rrggbb" hex string, dropping alpha.
func AsHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lighten returns the color blended toward white in the Lab color
// space by the given amount in [0, 1], preserving alpha.
func Lighten(c color.RGBA, amount float64) color.RGBA {
	if amount <= 0 {
		return c
	}
	cf, _ := colorful.MakeColor(FromRGB(c.R, c.G, c.B))
	r, g, b := cf.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, amount).Clamped().RGB255()
	return color.RGBA{r, g, b, c.A}
}
