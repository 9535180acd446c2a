// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"

	"github.com/tabula3d/tabula3d/math32"
)

// Camera defines the properties of a perspective camera.
type Camera struct {

	// Pose is the position of the camera; orientation comes from
	// Target and UpDir.
	Pose Pose

	// Target is where the camera is pointing.
	Target math32.Vector3

	// UpDir is which way is up for the camera.
	UpDir math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the aspect ratio (width/height).
	Aspect float32

	// Near is the near plane distance.
	Near float32

	// Far is the far plane distance.
	Far float32

	// ViewMatrix transforms world to camera coordinates.
	ViewMatrix math32.Matrix4

	// ProjectionMatrix is the perspective transform.
	ProjectionMatrix math32.Matrix4
}

func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.DefaultPose()
}

// DefaultPose resets the camera pose to look at the origin
// from (0, 0, 10), with up Y axis.
func (cm *Camera) DefaultPose() {
	cm.Pose.Defaults()
	cm.Pose.Pos.Set(0, 0, 10)
	cm.LookAtOrigin()
}

// SetSize sets the aspect ratio from a pixel size, ignoring empty sizes.
func (cm *Camera) SetSize(sz image.Point) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	cm.Aspect = float32(sz.X) / float32(sz.Y)
	cm.UpdateMatrix()
}

// UpdateMatrix updates the view and projection matrices.
func (cm *Camera) UpdateMatrix() {
	cm.ViewMatrix.SetLookAt(cm.Pose.Pos, cm.Target, cm.UpDir)
	cm.ProjectionMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
}

// LookAt points the camera at given target location, using given up
// direction, and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	if upDir.IsNil() {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	cm.UpdateMatrix()
}

// LookAtOrigin points the camera at the origin with Y axis pointing up.
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// ViewVector is the vector from the target to the camera position.
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Pose.Pos.Sub(cm.Target)
}

// Distance is the distance from the camera to its target.
func (cm *Camera) Distance() float32 {
	return cm.ViewVector().Length()
}

// Orbit moves the camera along the given 2D axes in degrees
// (delX = left/right, delY = up/down), keeping the same distance from
// the Target and rotating the Up direction to keep looking at it.
func (cm *Camera) Orbit(delX, delY float32) {
	ctdir := cm.ViewVector()
	if ctdir.IsNil() {
		ctdir.Set(0, 0, 1)
	}
	dir := ctdir.Normal()

	up := cm.UpDir
	right := up.Cross(dir).Normal()

	// delX rotates around the up vector
	dxq := math32.NewQuatAxisAngle(up, math32.DegToRad(delX))
	dx := ctdir.MulQuat(dxq).Sub(ctdir)
	pos := cm.Pose.Pos.Add(dx)
	if delY != 0 && !right.IsNil() {
		// delY rotates around the right vector
		dyq := math32.NewQuatAxisAngle(right, math32.DegToRad(delY))
		dy := ctdir.MulQuat(dyq).Sub(ctdir)
		pos = pos.Add(dy)
		cm.UpDir = cm.UpDir.MulQuat(dyq)
	}
	cm.Pose.Pos = pos
	cm.LookAt(cm.Target, cm.UpDir)
}

// Zoom moves the camera toward (negative) or away from (positive)
// the target by the given fraction of the current distance.
func (cm *Camera) Zoom(zoomPct float32) {
	ctaxis := cm.ViewVector()
	if ctaxis.IsNil() {
		ctaxis.Set(0, 0, 1)
	}
	cm.Pose.Pos.SetAdd(ctaxis.MulScalar(zoomPct))
	cm.UpdateMatrix()
}
