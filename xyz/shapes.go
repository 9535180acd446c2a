// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/math32"
)

// NewBox returns a box mesh of the given size centered at the origin,
// with separate vertexes per face so that edges stay sharp.
func NewBox(name string, width, height, depth float32) *Mesh {
	ms := &Mesh{Name: name}
	hx, hy, hz := width/2, height/2, depth/2
	v := math32.Vec3
	ms.addQuad(v(hx, -hy, hz), v(hx, -hy, -hz), v(hx, hy, -hz), v(hx, hy, hz), v(1, 0, 0))
	ms.addQuad(v(-hx, -hy, -hz), v(-hx, -hy, hz), v(-hx, hy, hz), v(-hx, hy, -hz), v(-1, 0, 0))
	ms.addQuad(v(-hx, hy, hz), v(hx, hy, hz), v(hx, hy, -hz), v(-hx, hy, -hz), v(0, 1, 0))
	ms.addQuad(v(-hx, -hy, -hz), v(hx, -hy, -hz), v(hx, -hy, hz), v(-hx, -hy, hz), v(0, -1, 0))
	ms.addQuad(v(-hx, -hy, hz), v(hx, -hy, hz), v(hx, hy, hz), v(-hx, hy, hz), v(0, 0, 1))
	ms.addQuad(v(hx, -hy, -hz), v(-hx, -hy, -hz), v(-hx, hy, -hz), v(hx, hy, -hz), v(0, 0, -1))
	ms.ComputeBBox()
	return ms
}

// NewSphere returns a UV sphere mesh of the given radius centered at
// the origin, with the given number of segments around and from pole
// to pole.
func NewSphere(name string, radius float32, widthSegs, heightSegs int) *Mesh {
	widthSegs = max(widthSegs, 3)
	heightSegs = max(heightSegs, 2)
	ms := &Mesh{Name: name}
	for iy := 0; iy <= heightSegs; iy++ {
		theta := math32.Pi * float32(iy) / float32(heightSegs)
		for ix := 0; ix <= widthSegs; ix++ {
			phi := 2 * math32.Pi * float32(ix) / float32(widthSegs)
			n := math32.Vec3(-math32.Cos(phi)*math32.Sin(theta), math32.Cos(theta), math32.Sin(phi)*math32.Sin(theta))
			ms.addVertex(n.MulScalar(radius), n)
		}
	}
	row := uint32(widthSegs + 1)
	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			if iy != 0 {
				ms.Index = append(ms.Index, a, b, d)
			}
			if iy != heightSegs-1 {
				ms.Index = append(ms.Index, b, c, d)
			}
		}
	}
	ms.ComputeBBox()
	return ms
}

// NewPlane returns a plane mesh lying in the XZ plane facing +Y,
// centered at the origin and subdivided into the given number of
// segments along X and Z. Vertexes are ordered by row along Z,
// then along X.
func NewPlane(name string, width, depth float32, segsX, segsZ int) *Mesh {
	segsX = max(segsX, 1)
	segsZ = max(segsZ, 1)
	ms := &Mesh{Name: name}
	up := math32.Vec3(0, 1, 0)
	for iz := 0; iz <= segsZ; iz++ {
		z := -depth/2 + depth*float32(iz)/float32(segsZ)
		for ix := 0; ix <= segsX; ix++ {
			x := -width/2 + width*float32(ix)/float32(segsX)
			ms.addVertex(math32.Vec3(x, 0, z), up)
		}
	}
	row := uint32(segsX + 1)
	for iz := 0; iz < segsZ; iz++ {
		for ix := 0; ix < segsX; ix++ {
			a := uint32(iz)*row + uint32(ix)
			b := a + row
			c := b + 1
			d := a + 1
			ms.Index = append(ms.Index, a, b, d, b, c, d)
		}
	}
	ms.ComputeBBox()
	return ms
}

// Displace sets the height of each vertex of a plane to fn(k, x, z),
// where k is the vertex index, then recomputes normals and bounds.
// It must only be called before the mesh is uploaded.
func (ms *Mesh) Displace(fn func(k int, x, z float32) float32) {
	for k := range ms.Pos {
		p := &ms.Pos[k]
		p.Y = fn(k, p.X, p.Z)
	}
	ms.ComputeNormals()
	ms.ComputeBBox()
}

// NewLines returns a line mesh drawing a polyline through the points.
func NewLines(name string, points ...math32.Vector3) *Mesh {
	ms := &Mesh{Name: name, Primitive: gpu.Lines}
	for i, p := range points {
		ms.addVertex(p, math32.Vector3{})
		if i > 0 {
			ms.Index = append(ms.Index, uint32(i-1), uint32(i))
		}
	}
	ms.ComputeBBox()
	return ms
}

// NewLineSegments returns a line mesh drawing a separate segment
// for each consecutive pair of points.
func NewLineSegments(name string, points ...math32.Vector3) *Mesh {
	ms := &Mesh{Name: name, Primitive: gpu.Lines}
	for i := 0; i+1 < len(points); i += 2 {
		a := ms.addVertex(points[i], math32.Vector3{})
		b := ms.addVertex(points[i+1], math32.Vector3{})
		ms.Index = append(ms.Index, a, b)
	}
	ms.ComputeBBox()
	return ms
}

// GridLines returns the segment end points of a square grid in the XZ
// plane with the given size and number of divisions, split into the
// two lines through the origin and all the others.
func GridLines(size float32, divisions int) (lines, center []math32.Vector3) {
	divisions = max(divisions, 1)
	half := size / 2
	step := size / float32(divisions)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		seg := []math32.Vector3{
			math32.Vec3(-half, 0, k), math32.Vec3(half, 0, k),
			math32.Vec3(k, 0, -half), math32.Vec3(k, 0, half),
		}
		if 2*i == divisions {
			center = append(center, seg...)
		} else {
			lines = append(lines, seg...)
		}
	}
	return
}

// NewQuad returns a double sided quad through the four corners given
// in order around its edge.
func NewQuad(name string, a, b, c, d math32.Vector3) *Mesh {
	ms := &Mesh{Name: name}
	n := b.Sub(a).Cross(d.Sub(a)).Normal()
	ms.addQuad(a, b, c, d, n)
	ms.addQuad(d, c, b, a, n.MulScalar(-1))
	ms.ComputeBBox()
	return ms
}
