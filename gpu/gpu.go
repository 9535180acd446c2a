// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the graphics context used to render 3D scenes,
// and the device that owns the GPU buffers backing scene geometry
// and materials. The [Offscreen] backend is a headless implementation
// that tracks every buffer it hands out, and package webgpu provides
// a WebGPU implementation.
package gpu

import (
	"image"
	"image/color"

	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/math32"
)

// ErrNoBackend is returned (wrapped) when a graphics context cannot be
// created, for example when no GPU adapter is available.
var ErrNoBackend = errors.New("gpu: no graphics backend available")

// BufferKinds are the roles a GPU buffer can play.
type BufferKinds int32

const (
	// VertexBuffer holds interleaved vertex data.
	VertexBuffer BufferKinds = iota

	// IndexBuffer holds uint32 triangle or line indexes.
	IndexBuffer

	// UniformBuffer holds material parameters.
	UniformBuffer
)

// String returns the name of the buffer kind.
func (bk BufferKinds) String() string {
	switch bk {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	case UniformBuffer:
		return "uniform"
	}
	return "unknown"
}

// Buffer is a block of GPU memory. It must be released
// exactly once when no longer needed.
type Buffer interface {
	// Size returns the size of the buffer in bytes.
	Size() int

	// Release frees the GPU memory. Additional calls are ignored.
	Release()
}

// Device allocates GPU buffers and keeps count of those still live.
type Device interface {
	// NewBuffer allocates a buffer of the given kind holding data.
	NewBuffer(label string, kind BufferKinds, data []byte) (Buffer, error)

	// Live returns the number of buffers allocated and not yet released.
	Live() int

	// Release releases the device itself. Buffers must be released first;
	// any still live are reported as leaked.
	Release()
}

// Surface is the output surface of a graphics context, which the host
// attaches into its container for display.
type Surface interface {
	// Name is a unique identifier of the surface.
	Name() string

	// Size returns the current size in pixels.
	Size() image.Point
}

// Primitives are the kinds of primitive a [Draw] rasterizes.
type Primitives int32

const (
	// Triangles is an indexed triangle list.
	Triangles Primitives = iota

	// Lines is an indexed line list.
	Lines
)

// Draw is one draw call: an indexed mesh with its material uniforms
// and world transform.
type Draw struct {
	Vertex    Buffer
	Index     Buffer
	Uniform   Buffer
	NumIndex  int
	Primitive Primitives
	Model     math32.Matrix4

	// Transparent draws are submitted after opaque ones.
	Transparent bool

	// CullBack skips back-facing triangles.
	CullBack bool
}

// LightKinds are the kinds of light a [Frame] can carry.
type LightKinds int32

const (
	AmbientLight LightKinds = iota
	DirLight
)

// MaxLights is the most lights a backend must support in one frame.
const MaxLights = 8

// Light is a light in a [Frame], with its color premultiplied by intensity.
type Light struct {
	Kind  LightKinds
	Color math32.Vector3

	// Pos is the direction source for directional lights.
	Pos math32.Vector3
}

// Frame is everything needed to render one frame.
type Frame struct {
	View       math32.Matrix4
	Projection math32.Matrix4

	// Eye is the camera position, for specular lighting.
	Eye    math32.Vector3
	Clear  color.RGBA
	Lights []Light
	Draws  []Draw
}

// Context is a graphics context: a device plus an output surface
// that frames are rendered into.
type Context interface {
	// Device returns the device that owns this context's buffers.
	Device() Device

	// Surface returns the output surface.
	Surface() Surface

	// SetSize resizes the output surface. It is a no-op
	// for an unchanged or empty size.
	SetSize(size image.Point)

	// Size returns the current output size.
	Size() image.Point

	// Render renders the given frame to the surface.
	Render(fr *Frame) error

	// Release releases the surface and the device.
	Release()
}

// Backend creates a graphics context with an output surface
// of the given size.
type Backend func(size image.Point) (Context, error)
