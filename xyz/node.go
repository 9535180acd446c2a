// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is a small 3D scenegraph: groups and solids posed in a
// tree, meshes and materials that are uploaded lazily to a [gpu.Device],
// a light rig, and a perspective camera with orbit controls.
//
// Every GPU resource created for a scene is released by [Scene.Dispose],
// so a scene can be rebuilt any number of times without growing GPU memory.
package xyz

import (
	"fmt"

	"github.com/tabula3d/tabula3d/math32"
)

// Node is a node in the scenegraph.
type Node interface {

	// AsNodeBase returns the [NodeBase] of this node.
	AsNodeBase() *NodeBase

	// Dispose releases all GPU resources held by the node
	// and any nodes beneath it.
	Dispose()
}

// NodeBase is the part shared by all nodes.
type NodeBase struct {

	// Name is the name of the node, used in logging.
	Name string

	// Pose is the position, rotation and scale of the node
	// relative to its parent.
	Pose Pose

	// Tag records what the node represents in a chart.
	Tag Tag

	// Invisible nodes are skipped when rendering.
	Invisible bool
}

func (nb *NodeBase) AsNodeBase() *NodeBase { return nb }

// Roles are the parts a chart scene is made of.
type Roles int32

const (
	// RoleNone is an untagged node.
	RoleNone Roles = iota

	// RolePoint is the primitive for one data point.
	RolePoint

	// RoleConnector joins consecutive points (line segments, waterfall quads).
	RoleConnector

	// RoleTotal is a summary primitive, such as the closing waterfall bar.
	RoleTotal

	// RoleSurface is a mesh driven by a whole series.
	RoleSurface

	// RoleGrid is the ground grid.
	RoleGrid

	// RoleFloor is the floor plane.
	RoleFloor
)

var roleNames = [...]string{"none", "point", "connector", "total", "surface", "grid", "floor"}

func (r Roles) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Roles(%d)", int32(r))
}

// Tag identifies the data a node was built from.
type Tag struct {

	// Series is the index of the series, or -1.
	Series int

	// Point is the index of the point within the series, or -1.
	Point int

	// Role is what the node is for.
	Role Roles

	// Label is the category label of the point, if any.
	Label string
}

// Pose contains the full specification of the position and orientation
// of a node, with the transform matrices computed from it.
type Pose struct {
	Pos   math32.Vector3
	Scale math32.Vector3
	Quat  math32.Quat

	// Matrix is the local transform computed by [Pose.UpdateMatrix].
	Matrix math32.Matrix4

	// WorldMatrix is the transform including all parents.
	WorldMatrix math32.Matrix4
}

// Defaults sets an identity pose.
func (ps *Pose) Defaults() {
	ps.Scale.Set(1, 1, 1)
	ps.Quat.SetIdentity()
	ps.Matrix.SetIdentity()
	ps.WorldMatrix.SetIdentity()
}

// UpdateMatrix computes the local transform matrix.
func (ps *Pose) UpdateMatrix() {
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// UpdateWorldMatrix computes the local and world matrices
// given the parent world matrix, which may be nil for the root.
func (ps *Pose) UpdateWorldMatrix(parent *math32.Matrix4) {
	ps.UpdateMatrix()
	if parent == nil {
		ps.WorldMatrix = ps.Matrix
		return
	}
	ps.WorldMatrix.MulMatrices(parent, &ps.Matrix)
}

// SetAxisRotation sets the rotation from a local axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle))
}
