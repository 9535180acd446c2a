// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"github.com/tabula3d/tabula3d/base/ordmap"
	"github.com/tabula3d/tabula3d/xyz"
)

// SceneObjects is the set of solids made by one rebuild, all held
// under one group of the scene. It is disposed as a whole and never
// patched in place.
type SceneObjects struct {

	// Group holds all the solids.
	Group *xyz.Group

	// Solids are the solids in the order they were made.
	Solids []*xyz.Solid

	// consumed counts points per series that drive a shared
	// mesh instead of having a solid of their own.
	consumed map[int]int
}

func newSceneObjects(gp *xyz.Group) *SceneObjects {
	return &SceneObjects{Group: gp, consumed: map[int]int{}}
}

// Add adds a solid to the group.
func (so *SceneObjects) Add(sld *xyz.Solid) {
	so.Group.Add(sld)
	so.Solids = append(so.Solids, sld)
}

// Consume records that n points of a series were drawn into a
// shared mesh.
func (so *SceneObjects) Consume(series, n int) {
	so.consumed[series] += n
}

// Len returns the number of solids.
func (so *SceneObjects) Len() int {
	return len(so.Solids)
}

// Count returns the number of solids with the given role.
func (so *SceneObjects) Count(role xyz.Roles) int {
	n := 0
	for _, sld := range so.Solids {
		if sld.Tag.Role == role {
			n++
		}
	}
	return n
}

// Points returns the number of points drawn for a series, either as
// their own [xyz.RolePoint] solids or consumed by a shared mesh.
func (so *SceneObjects) Points(series int) int {
	n := so.consumed[series]
	for _, sld := range so.Solids {
		if sld.Tag.Role == xyz.RolePoint && sld.Tag.Series == series {
			n++
		}
	}
	return n
}

// Roles returns the solid count per role, in order of first appearance.
func (so *SceneObjects) Roles() *ordmap.Map[xyz.Roles, int] {
	om := ordmap.New[xyz.Roles, int]()
	for _, sld := range so.Solids {
		om.Add(sld.Tag.Role, om.ValueByKey(sld.Tag.Role)+1)
	}
	return om
}

// Dispose releases all GPU resources of the solids.
func (so *SceneObjects) Dispose() {
	so.Group.Dispose()
	so.Solids = nil
	clear(so.consumed)
}
