// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/tabula3d/tabula3d/math32"
)

// Group collects nodes in a scene but has no mesh or material of
// its own. Its transform applies to all nodes under it.
type Group struct {
	NodeBase

	// Children are the nodes directly under the group.
	Children []Node
}

// NewGroup returns a new group added to the given parent, which may be nil.
func NewGroup(parent *Group, name string) *Group {
	gp := &Group{}
	gp.Name = name
	gp.Pose.Defaults()
	if parent != nil {
		parent.Add(gp)
	}
	return gp
}

// Add adds a child node.
func (gp *Group) Add(n Node) {
	gp.Children = append(gp.Children, n)
}

// SetPos sets the [Pose.Pos] position of the group.
func (gp *Group) SetPos(x, y, z float32) *Group {
	gp.Pose.Pos.Set(x, y, z)
	return gp
}

// Dispose releases every solid under the group and removes all children.
func (gp *Group) Dispose() {
	for _, kid := range gp.Children {
		kid.Dispose()
	}
	gp.Children = nil
}

// WalkSolids calls fn on every solid under the group, depth first,
// stopping as soon as fn returns false. It returns false if stopped.
func (gp *Group) WalkSolids(fn func(sld *Solid) bool) bool {
	for _, kid := range gp.Children {
		switch k := kid.(type) {
		case *Solid:
			if !fn(k) {
				return false
			}
		case *Group:
			if !k.WalkSolids(fn) {
				return false
			}
		}
	}
	return true
}

// Solids returns all the solids under the group.
func (gp *Group) Solids() []*Solid {
	var sl []*Solid
	gp.WalkSolids(func(sld *Solid) bool {
		sl = append(sl, sld)
		return true
	})
	return sl
}

// UpdateWorldMatrix updates the world matrices of the group and
// everything under it.
func (gp *Group) UpdateWorldMatrix(parent *math32.Matrix4) {
	gp.Pose.UpdateWorldMatrix(parent)
	for _, kid := range gp.Children {
		switch k := kid.(type) {
		case *Group:
			k.UpdateWorldMatrix(&gp.Pose.WorldMatrix)
		default:
			k.AsNodeBase().Pose.UpdateWorldMatrix(&gp.Pose.WorldMatrix)
		}
	}
}

// BBox returns the world bounding box of all solids under the group.
// World matrices must be current; see [Group.UpdateWorldMatrix].
func (gp *Group) BBox() math32.Box3 {
	bb := math32.B3Empty()
	gp.WalkSolids(func(sld *Solid) bool {
		if sld.Mesh != nil {
			bb.ExpandByBox(sld.WorldBBox())
		}
		return true
	})
	return bb
}

var _ Node = &Group{}
