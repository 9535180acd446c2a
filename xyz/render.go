// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"slices"

	"github.com/tabula3d/tabula3d/gpu"
)

// Upload makes GPU buffers on the device for every visible mesh and
// material that does not have them yet.
func (sc *Scene) Upload(dev gpu.Device) error {
	var err error
	sc.Root.WalkSolids(func(sld *Solid) bool {
		if sld.Invisible || sld.Mesh == nil {
			return true
		}
		if err = sld.Mesh.Upload(dev); err != nil {
			err = fmt.Errorf("xyz.Scene: %s: solid %q: %w", sc.Name, sld.Name, err)
			return false
		}
		if err = sld.Material.Upload(dev, sld.Name); err != nil {
			err = fmt.Errorf("xyz.Scene: %s: material of %q: %w", sc.Name, sld.Name, err)
			return false
		}
		return true
	})
	return err
}

// Frame returns the frame to render the scene as it is now.
// Solids that are not uploaded are skipped, and transparent
// solids are drawn after opaque ones.
func (sc *Scene) Frame() *gpu.Frame {
	fr := &gpu.Frame{
		View:       sc.Camera.ViewMatrix,
		Projection: sc.Camera.ProjectionMatrix,
		Eye:        sc.Camera.Pose.Pos,
		Clear:      sc.Background,
		Lights:     sc.frameLights(),
	}
	sc.Root.WalkSolids(func(sld *Solid) bool {
		ms := sld.Mesh
		if sld.Invisible || ms == nil || !ms.Uploaded() || sld.Material.uniform == nil {
			return true
		}
		fr.Draws = append(fr.Draws, gpu.Draw{
			Vertex:      ms.vertex,
			Index:       ms.index,
			Uniform:     sld.Material.uniform,
			NumIndex:    ms.NumIndex(),
			Primitive:   ms.Primitive,
			Model:       sld.Pose.WorldMatrix,
			Transparent: sld.Material.IsTransparent(),
			CullBack:    sld.Material.CullBack,
		})
		return true
	})
	slices.SortStableFunc(fr.Draws, func(a, b gpu.Draw) int {
		switch {
		case a.Transparent == b.Transparent:
			return 0
		case a.Transparent:
			return 1
		}
		return -1
	})
	return fr
}

// Render updates the scene, uploads anything new, and renders
// one frame into the context.
func (sc *Scene) Render(ctx gpu.Context) error {
	sc.Update()
	if err := sc.Upload(ctx.Device()); err != nil {
		return err
	}
	return ctx.Render(sc.Frame())
}
