// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
)

// PaletteSize is the number of colors in each theme palette.
// Series indexes wrap around with this period.
const PaletteSize = 6

// blue, emerald, amber, red, violet, cyan
var lightPalette = [PaletteSize]color.RGBA{
	{0x3b, 0x82, 0xf6, 0xff},
	{0x10, 0xb9, 0x81, 0xff},
	{0xf5, 0x9e, 0x0b, 0xff},
	{0xef, 0x44, 0x44, 0xff},
	{0x8b, 0x5c, 0xf6, 0xff},
	{0x06, 0xb6, 0xd4, 0xff},
}

// same hues, lighter tones for dark backgrounds
var darkPalette = [PaletteSize]color.RGBA{
	{0x60, 0xa5, 0xfa, 0xff},
	{0x34, 0xd3, 0x99, 0xff},
	{0xfb, 0xbf, 0x24, 0xff},
	{0xf8, 0x71, 0x71, 0xff},
	{0xa7, 0x8b, 0xfa, 0xff},
	{0x22, 0xd3, 0xee, 0xff},
}

// Palette returns a copy of the palette for the given theme.
func Palette(theme Themes) []color.RGBA {
	p := lightPalette
	if theme.IsDark() {
		p = darkPalette
	}
	return p[:]
}

// ColorFor returns the color for the given series index in the
// given theme. Indexes wrap around every [PaletteSize] colors,
// and negative indexes count back from the end, so the result
// is a pure function of its arguments.
func ColorFor(theme Themes, idx int) color.RGBA {
	i := idx % PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	if theme.IsDark() {
		return darkPalette[i]
	}
	return lightPalette[i]
}

// Bucket returns the palette color for a value t in [0, 1],
// dividing the range into [PaletteSize] equal buckets.
// Values outside the range are clamped to the first or last bucket.
func Bucket(theme Themes, t float32) color.RGBA {
	b := int(t * PaletteSize)
	if b < 0 {
		b = 0
	}
	if b >= PaletteSize {
		b = PaletteSize - 1
	}
	return ColorFor(theme, b)
}

// BucketShade returns the [Bucket] color for t, lightened toward white
// by up to amount for values low in their bucket, so that cells in the
// same bucket still differ.
func BucketShade(theme Themes, t float32, amount float64) color.RGBA {
	t = min(max(t, 0), 1)
	pos := t * PaletteSize
	b := min(int(pos), PaletteSize-1)
	frac := min(pos-float32(b), 1)
	return Lighten(Bucket(theme, t), amount*float64(1-frac))
}
