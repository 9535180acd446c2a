// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"github.com/tabula3d/tabula3d/math32"
)

// Solid represents an individual 3D solid element.
// It has its own transform and material, and owns the mesh
// defining its shape.
type Solid struct {
	NodeBase

	// Mesh is the shape of the solid.
	Mesh *Mesh

	// Material contains the material properties of the surface.
	Material Material
}

// NewSolid returns a new solid with the given mesh, added to parent
// if it is non-nil.
func NewSolid(parent *Group, name string, ms *Mesh) *Solid {
	sld := &Solid{Mesh: ms}
	sld.Name = name
	sld.Pose.Defaults()
	sld.Material.Defaults()
	if parent != nil {
		parent.Add(sld)
	}
	return sld
}

// SetPos sets the [Pose.Pos] position of the solid.
func (sld *Solid) SetPos(x, y, z float32) *Solid {
	sld.Pose.Pos.Set(x, y, z)
	return sld
}

// SetAxisRotation sets the [Pose.Quat] rotation of the solid,
// from local axis and angle in degrees.
func (sld *Solid) SetAxisRotation(x, y, z, angle float32) *Solid {
	sld.Pose.SetAxisRotation(x, y, z, angle)
	return sld
}

// SetColor sets the [Material.Color].
func (sld *Solid) SetColor(clr color.RGBA) *Solid {
	sld.Material.SetColor(clr)
	return sld
}

// SetTag sets the [NodeBase.Tag].
func (sld *Solid) SetTag(tag Tag) *Solid {
	sld.Tag = tag
	return sld
}

// WorldBBox returns the mesh bounding box in world coordinates.
func (sld *Solid) WorldBBox() math32.Box3 {
	return sld.Mesh.BBox.MulMatrix4(&sld.Pose.WorldMatrix)
}

// Dispose releases the mesh and material GPU buffers.
func (sld *Solid) Dispose() {
	if sld.Mesh != nil {
		sld.Mesh.Release()
	}
	sld.Material.Release()
}

var _ Node = &Solid{}
