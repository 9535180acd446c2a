// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/math32"
)

// Mesh holds indexed geometry: vertex positions and normals plus the
// indexes of triangles or line segments. The GPU buffers for the mesh
// are made on the first [Mesh.Upload] and freed by [Mesh.Release].
type Mesh struct {

	// Name is the name of the mesh, used as the GPU buffer label.
	Name string

	// Primitive is whether Index holds triangles or lines.
	Primitive gpu.Primitives

	// Pos are the vertex positions.
	Pos []math32.Vector3

	// Norm are the vertex normals, one per position.
	Norm []math32.Vector3

	// Index holds the vertex indexes, three per triangle or two per line.
	Index []uint32

	// BBox is the bounding box of Pos, updated by [Mesh.ComputeBBox].
	BBox math32.Box3

	vertex gpu.Buffer
	index  gpu.Buffer
}

// NumVertex returns the number of vertexes.
func (ms *Mesh) NumVertex() int { return len(ms.Pos) }

// NumIndex returns the number of indexes.
func (ms *Mesh) NumIndex() int { return len(ms.Index) }

// addVertex adds a vertex and returns its index.
func (ms *Mesh) addVertex(pos, norm math32.Vector3) uint32 {
	ms.Pos = append(ms.Pos, pos)
	ms.Norm = append(ms.Norm, norm)
	return uint32(len(ms.Pos) - 1)
}

// addQuad adds the quad a, b, c, d (counter clockwise seen from the
// front) as two triangles with the given normal.
func (ms *Mesh) addQuad(a, b, c, d, norm math32.Vector3) {
	ia := ms.addVertex(a, norm)
	ib := ms.addVertex(b, norm)
	ic := ms.addVertex(c, norm)
	id := ms.addVertex(d, norm)
	ms.Index = append(ms.Index, ia, ib, ic, ia, ic, id)
}

// ComputeBBox updates [Mesh.BBox] from the vertex positions.
func (ms *Mesh) ComputeBBox() {
	ms.BBox.SetEmpty()
	for _, p := range ms.Pos {
		ms.BBox.ExpandByPoint(p)
	}
}

// ComputeNormals recomputes vertex normals as the area weighted average
// of the normals of the triangles sharing each vertex. Line meshes
// are left unchanged.
func (ms *Mesh) ComputeNormals() {
	if ms.Primitive != gpu.Triangles {
		return
	}
	norm := make([]math32.Vector3, len(ms.Pos))
	for i := 0; i+2 < len(ms.Index); i += 3 {
		a, b, c := ms.Index[i], ms.Index[i+1], ms.Index[i+2]
		pa, pb, pc := ms.Pos[a], ms.Pos[b], ms.Pos[c]
		fn := pb.Sub(pa).Cross(pc.Sub(pa))
		norm[a].SetAdd(fn)
		norm[b].SetAdd(fn)
		norm[c].SetAdd(fn)
	}
	for i := range norm {
		norm[i] = norm[i].Normal()
	}
	ms.Norm = norm
}

// Uploaded returns whether the mesh currently holds GPU buffers.
func (ms *Mesh) Uploaded() bool {
	return ms.vertex != nil
}

// Upload makes the vertex and index buffers on the given device if
// they have not been made yet.
func (ms *Mesh) Upload(dev gpu.Device) error {
	if ms.vertex != nil {
		return nil
	}
	if len(ms.Pos) == 0 || len(ms.Index) == 0 {
		return fmt.Errorf("xyz.Mesh: %q has no geometry", ms.Name)
	}
	vb, err := dev.NewBuffer(ms.Name, gpu.VertexBuffer, ms.vertexBytes())
	if err != nil {
		return err
	}
	ib, err := dev.NewBuffer(ms.Name, gpu.IndexBuffer, ms.indexBytes())
	if err != nil {
		vb.Release()
		return err
	}
	ms.vertex, ms.index = vb, ib
	return nil
}

// Release frees the GPU buffers of the mesh, if any.
func (ms *Mesh) Release() {
	if ms.vertex != nil {
		ms.vertex.Release()
		ms.vertex = nil
	}
	if ms.index != nil {
		ms.index.Release()
		ms.index = nil
	}
}

// vertexBytes returns interleaved position and normal float32 data.
func (ms *Mesh) vertexBytes() []byte {
	b := make([]byte, 0, len(ms.Pos)*6*4)
	for i, p := range ms.Pos {
		var n math32.Vector3
		if i < len(ms.Norm) {
			n = ms.Norm[i]
		}
		b = appendVector3(b, p)
		b = appendVector3(b, n)
	}
	return b
}

func (ms *Mesh) indexBytes() []byte {
	b := make([]byte, 0, len(ms.Index)*4)
	for _, ix := range ms.Index {
		b = binary.LittleEndian.AppendUint32(b, ix)
	}
	return b
}

func appendFloat32(b []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
}

func appendVector3(b []byte, v math32.Vector3) []byte {
	b = appendFloat32(b, v.X)
	b = appendFloat32(b, v.Y)
	return appendFloat32(b, v.Z)
}
