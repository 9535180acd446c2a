// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"

	"github.com/tabula3d/tabula3d/base/ordmap"
	"github.com/tabula3d/tabula3d/math32"
)

// Scene is the overall scenegraph, holding the node tree under Root
// together with the camera, lights and background color.
type Scene struct {

	// Name is the name of the scene, used in logging.
	Name string

	// Root is the top-level group of the node tree.
	Root *Group

	// Camera determines the view onto the scene.
	Camera Camera

	// Background is the clear color.
	Background color.RGBA

	// Lights are all the lights used in the scene.
	Lights ordmap.Map[string, Light]
}

// NewScene returns a new empty scene.
func NewScene(name string) *Scene {
	sc := &Scene{Name: name}
	sc.Defaults()
	return sc
}

// Defaults sets default scene params (camera, bg = white).
func (sc *Scene) Defaults() {
	sc.Root = NewGroup(nil, "root")
	sc.Camera.Defaults()
	sc.Background = color.RGBA{255, 255, 255, 255}
}

// SetSize sets the camera aspect ratio from the output size.
func (sc *Scene) SetSize(sz image.Point) {
	sc.Camera.SetSize(sz)
}

// Update updates the world matrices of all nodes and the camera matrices.
func (sc *Scene) Update() {
	sc.Root.UpdateWorldMatrix(nil)
	sc.Camera.UpdateMatrix()
}

// Solids returns all the solids in the scene.
func (sc *Scene) Solids() []*Solid {
	return sc.Root.Solids()
}

// BBox returns the world bounding box of all solids, updating
// world matrices first.
func (sc *Scene) BBox() math32.Box3 {
	sc.Root.UpdateWorldMatrix(nil)
	return sc.Root.BBox()
}

// Dispose releases every mesh and material GPU buffer and removes all
// nodes. The camera and lights are kept, so the scene can be rebuilt.
func (sc *Scene) Dispose() {
	sc.Root.Dispose()
}
