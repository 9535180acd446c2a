// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/math32"
)

func TestBox(t *testing.T) {
	ms := NewBox("box", 1, 2, 3)
	assert.Equal(t, 24, ms.NumVertex())
	assert.Equal(t, 36, ms.NumIndex())
	assert.Equal(t, math32.Vec3(1, 2, 3), ms.BBox.Size())
	assert.Equal(t, math32.Vector3{}, ms.BBox.Center())
}

func TestSphere(t *testing.T) {
	ms := NewSphere("sphere", 0.5, 8, 6)
	assert.Equal(t, 9*7, ms.NumVertex())
	assert.Equal(t, 3*(2*8*6-2*8), ms.NumIndex())
	for _, p := range ms.Pos {
		assert.InDelta(t, 0.5, p.Length(), 1e-5)
	}
}

func TestPlaneDisplace(t *testing.T) {
	ms := NewPlane("plane", 4, 4, 2, 2)
	assert.Equal(t, 9, ms.NumVertex())
	assert.Equal(t, 2*2*6, ms.NumIndex())
	assert.Equal(t, float32(0), ms.BBox.Size().Y)

	ms.Displace(func(k int, x, z float32) float32 {
		return x
	})
	assert.Equal(t, float32(4), ms.BBox.Size().Y)
	// a plane tilted as y = x has normals along (-1, 1, 0)
	want := math32.Vec3(-1, 1, 0).Normal()
	for _, n := range ms.Norm {
		assert.InDelta(t, want.X, n.X, 1e-5)
		assert.InDelta(t, want.Y, n.Y, 1e-5)
		assert.InDelta(t, 0, n.Z, 1e-5)
	}
}

func TestLines(t *testing.T) {
	ms := NewLines("line", math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 0))
	assert.Equal(t, gpu.Lines, ms.Primitive)
	assert.Equal(t, []uint32{0, 1, 1, 2}, ms.Index)

	lines, center := GridLines(10, 10)
	assert.Len(t, center, 4)
	assert.Len(t, lines, 40)
	seg := NewLineSegments("grid", lines...)
	assert.Equal(t, 40, seg.NumIndex())
	assert.Equal(t, float32(10), seg.BBox.Size().X)
}

func TestQuad(t *testing.T) {
	ms := NewQuad("quad", math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 0), math32.Vec3(0, 1, 0))
	assert.Equal(t, 8, ms.NumVertex())
	assert.Equal(t, 12, ms.NumIndex())
	assert.Equal(t, math32.Vec3(0, 0, 1), ms.Norm[0])
	assert.Equal(t, math32.Vec3(0, 0, -1), ms.Norm[4])
}

func TestSceneUploadDispose(t *testing.T) {
	os := gpu.NewOffscreen()
	ctx, err := os.New(image.Pt(200, 100))
	require.NoError(t, err)

	sc := NewScene("test")
	NewAmbientLight(sc, "ambient", 0.6, DirectSun)
	NewDirLight(sc, "key", 0.8, DirectSun).Pos.Set(10, 10, 5)
	gp := NewGroup(sc.Root, "objects")
	NewSolid(gp, "a", NewBox("a", 1, 1, 1)).SetPos(1, 0, 0).SetColor(color.RGBA{255, 0, 0, 255})
	NewSolid(gp, "b", NewSphere("b", 1, 8, 8)).SetColor(color.RGBA{0, 0, 255, 128})
	NewSolid(sc.Root, "c", NewPlane("c", 2, 2, 1, 1))
	sc.SetSize(ctx.Size())
	assert.Equal(t, float32(2), sc.Camera.Aspect)

	require.NoError(t, sc.Render(ctx))
	// vertex + index + uniform per solid
	assert.Equal(t, 9, ctx.Device().Live())
	require.NoError(t, sc.Render(ctx))
	assert.Equal(t, 9, ctx.Device().Live())

	fr := sc.Frame()
	require.Len(t, fr.Draws, 3)
	assert.True(t, fr.Draws[2].Transparent)
	assert.False(t, fr.Draws[0].Transparent)
	assert.Len(t, fr.Lights, 2)
	assert.Equal(t, float32(1), fr.Draws[0].Model[12])

	bb := sc.BBox()
	assert.InDelta(t, 1.5, bb.Max.X, 1e-5)

	sc.Dispose()
	assert.Equal(t, 0, ctx.Device().Live())
	assert.Empty(t, sc.Solids())
	assert.Equal(t, 2, sc.Lights.Len())
}

func TestSetColorReuploads(t *testing.T) {
	ctx, err := gpu.NewOffscreen().New(image.Pt(10, 10))
	require.NoError(t, err)
	sc := NewScene("recolor")
	sld := NewSolid(sc.Root, "a", NewBox("a", 1, 1, 1))
	require.NoError(t, sc.Render(ctx))
	sld.SetColor(color.RGBA{1, 2, 3, 255})
	assert.Equal(t, 2, ctx.Device().Live())
	require.NoError(t, sc.Render(ctx))
	assert.Equal(t, 3, ctx.Device().Live())
	sc.Dispose()
	assert.Equal(t, 0, ctx.Device().Live())
}

func TestEmptyMeshError(t *testing.T) {
	ctx, err := gpu.NewOffscreen().New(image.Pt(10, 10))
	require.NoError(t, err)
	sc := NewScene("empty")
	NewSolid(sc.Root, "nothing", &Mesh{Name: "nothing"})
	assert.Error(t, sc.Render(ctx))
	assert.Equal(t, 0, ctx.Device().Live())
}

func TestCameraOrbit(t *testing.T) {
	var cm Camera
	cm.Defaults()
	cm.Pose.Pos.Set(4, 4, 6)
	cm.LookAtOrigin()
	d := cm.Distance()
	y := cm.Pose.Pos.Y
	cm.Orbit(90, 0)
	assert.InDelta(t, d, cm.Distance(), 1e-4)
	assert.InDelta(t, y, cm.Pose.Pos.Y, 1e-4)
	assert.NotEqual(t, float32(4), cm.Pose.Pos.X)

	cm.SetSize(image.Pt(800, 400))
	assert.Equal(t, float32(2), cm.Aspect)
	cm.SetSize(image.Pt(0, 400))
	assert.Equal(t, float32(2), cm.Aspect)
}

func TestOrbitControls(t *testing.T) {
	var cm Camera
	cm.Defaults()
	oc := NewOrbitControls(&cm)
	oc.AutoRotate = true
	oc.EnableZoom = false
	oc.EnableDamping = true

	d := cm.Distance()
	assert.False(t, oc.Zoom(0.5))
	assert.Equal(t, d, cm.Distance())

	start := cm.Pose.Pos
	oc.Update()
	assert.NotEqual(t, start, cm.Pose.Pos)
	assert.InDelta(t, d, cm.Distance(), 1e-4)
	assert.InDelta(t, 0.2, oc.AutoRotateStep(), 1e-6)

	oc.Rotate(10, 0)
	oc.Update()
	assert.InDelta(t, 9.5, oc.deltaX, 1e-4)

	oc.EnableZoom = true
	assert.True(t, oc.Zoom(1))
	assert.InDelta(t, 2*d, cm.Distance(), 1e-3)
}
