// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "github.com/tabula3d/tabula3d/math32"

// OrbitControls moves a [Camera] around its target, either from user
// input or by rotating automatically. [OrbitControls.Update] must be
// called once per frame.
type OrbitControls struct {

	// Camera is the camera being controlled.
	Camera *Camera

	// AutoRotate rotates the camera around the target every frame.
	AutoRotate bool

	// AutoRotateSpeed is the auto rotation speed, where 2 is one full
	// turn every 30 seconds at 60 frames per second.
	AutoRotateSpeed float32

	// EnableZoom allows [OrbitControls.Zoom] to move the camera.
	EnableZoom bool

	// EnableDamping makes user rotations decay over several frames
	// instead of applying all at once.
	EnableDamping bool

	// DampingFactor is the fraction of the pending rotation
	// applied each frame when damping is enabled.
	DampingFactor float32

	// pending user rotation in degrees
	deltaX, deltaY float32
}

// NewOrbitControls returns controls for the given camera.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:          cam,
		AutoRotateSpeed: 2,
		EnableZoom:      true,
		DampingFactor:   0.05,
	}
}

// AutoRotateStep returns the auto rotation per frame in degrees.
func (oc *OrbitControls) AutoRotateStep() float32 {
	return 360.0 / (60 * 60) * oc.AutoRotateSpeed
}

// Rotate queues a user rotation in degrees.
func (oc *OrbitControls) Rotate(delX, delY float32) {
	oc.deltaX += delX
	oc.deltaY += delY
}

// Zoom zooms the camera by the given fraction of its distance.
// It does nothing and returns false when zoom is disabled.
func (oc *OrbitControls) Zoom(zoomPct float32) bool {
	if !oc.EnableZoom {
		return false
	}
	oc.Camera.Zoom(zoomPct)
	return true
}

// Update applies auto rotation and pending user rotation for one frame.
func (oc *OrbitControls) Update() {
	dx, dy := oc.deltaX, oc.deltaY
	if oc.EnableDamping {
		dx *= oc.DampingFactor
		dy *= oc.DampingFactor
	}
	oc.deltaX -= dx
	oc.deltaY -= dy
	if math32.Abs(oc.deltaX) < 1e-4 {
		oc.deltaX = 0
	}
	if math32.Abs(oc.deltaY) < 1e-4 {
		oc.deltaY = 0
	}
	if oc.AutoRotate {
		dx += oc.AutoRotateStep()
	}
	if dx == 0 && dy == 0 {
		return
	}
	oc.Camera.Orbit(dx, dy)
}
