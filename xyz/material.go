// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/gpu"
)

// Material describes the material properties of a surface
// (Phong lighting parameters). Main color is used for both ambient
// and diffuse color, and its alpha component is used for opacity.
// The Emissive color is only for glowing objects.
type Material struct {

	// Color is the main color of the surface. Alpha below 255 makes
	// the surface transparent, which is rendered after opaque surfaces.
	Color color.RGBA

	// Emissive is the color the surface emits independent of lighting.
	Emissive color.RGBA

	// Shiny is the specular shininess exponent.
	Shiny float32

	// Reflective is the specular reflectiveness factor.
	Reflective float32

	// Bright is an overall multiplier on the final computed color.
	Bright float32

	// CullBack indicates to cull the back-facing surfaces.
	CullBack bool

	uniform gpu.Buffer
}

// Defaults sets default surface parameters.
func (mt *Material) Defaults() {
	mt.Color = colors.FromRGB(128, 128, 128)
	mt.Emissive = color.RGBA{}
	mt.Shiny = 30
	mt.Reflective = 1
	mt.Bright = 1
	mt.CullBack = true
}

// SetColor sets the color, dropping any uploaded uniform buffer
// so that the next upload uses the new color.
func (mt *Material) SetColor(clr color.RGBA) *Material {
	mt.Color = clr
	mt.Release()
	return mt
}

// IsTransparent returns whether the color has alpha < 255.
func (mt *Material) IsTransparent() bool {
	return mt.Color.A < 255
}

// Upload makes the uniform buffer on the given device if
// it has not been made yet.
func (mt *Material) Upload(dev gpu.Device, label string) error {
	if mt.uniform != nil {
		return nil
	}
	ub, err := dev.NewBuffer(label, gpu.UniformBuffer, mt.uniformBytes())
	if err != nil {
		return err
	}
	mt.uniform = ub
	return nil
}

// Release frees the uniform buffer, if any.
func (mt *Material) Release() {
	if mt.uniform != nil {
		mt.uniform.Release()
		mt.uniform = nil
	}
}

// uniformBytes packs two vec4 colors and a vec4 of
// shiny, reflective, bright and cull flag.
func (mt *Material) uniformBytes() []byte {
	b := make([]byte, 0, 12*4)
	for _, c := range []color.RGBA{mt.Color, mt.Emissive} {
		b = appendFloat32(b, float32(c.R)/255)
		b = appendFloat32(b, float32(c.G)/255)
		b = appendFloat32(b, float32(c.B)/255)
		b = appendFloat32(b, float32(c.A)/255)
	}
	cull := float32(0)
	if mt.CullBack {
		cull = 1
	}
	b = appendFloat32(b, mt.Shiny)
	b = appendFloat32(b, mt.Reflective)
	b = appendFloat32(b, mt.Bright)
	return appendFloat32(b, cull)
}
