// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package webgpu provides a [gpu.Backend] that renders scenes
// into a WebGPU texture.
package webgpu

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/gpu"
)

// Format is the texture format of the render target.
var Format = wgpu.TextureFormatRGBA8UnormSrgb

// DepthFormat is the texture format of the depth buffer.
var DepthFormat = wgpu.TextureFormatDepth24Plus

// New creates a new WebGPU graphics context rendering into a texture
// of the given size. It has the [gpu.Backend] signature. Any failure
// to get an adapter or device is reported as [gpu.ErrNoBackend].
func New(size image.Point) (gpu.Context, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, fmt.Errorf("%w: webgpu instance", gpu.ErrNoBackend)
	}
	ad, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		inst.Release()
		return nil, fmt.Errorf("%w: webgpu adapter: %w", gpu.ErrNoBackend, err)
	}
	dev, err := ad.RequestDevice(nil)
	if err != nil {
		ad.Release()
		inst.Release()
		return nil, fmt.Errorf("%w: webgpu device: %w", gpu.ErrNoBackend, err)
	}
	ctx := &Context{
		instance: inst,
		adapter:  ad,
		device:   &Device{Device: dev, queue: dev.GetQueue()},
		name:     fmt.Sprintf("webgpu-%p", dev),
	}
	ctx.renderer, err = newRenderer(dev, ctx.device.queue, Format)
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("%w: webgpu pipeline: %w", gpu.ErrNoBackend, err)
	}
	if err := ctx.configTexture(size); err != nil {
		ctx.Release()
		return nil, err
	}
	return ctx, nil
}

// Device is a [gpu.Device] backed by a WebGPU device.
type Device struct {
	Device *wgpu.Device
	queue  *wgpu.Queue
	live   atomic.Int64
}

// usages returns the wgpu buffer usage flags for the kind.
func usages(kind gpu.BufferKinds) wgpu.BufferUsage {
	switch kind {
	case gpu.VertexBuffer:
		return wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	case gpu.IndexBuffer:
		return wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
	}
	return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
}

func (dv *Device) NewBuffer(label string, kind gpu.BufferKinds, data []byte) (gpu.Buffer, error) {
	buf, err := dv.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: data,
		Usage:    usages(kind),
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	dv.live.Add(1)
	return &Buffer{device: dv, buffer: buf, size: len(data)}, nil
}

func (dv *Device) Live() int { return int(dv.live.Load()) }

func (dv *Device) Release() {
	if n := dv.Live(); n > 0 {
		slog.Warn("webgpu.Device: released with live buffers", "live", n)
	}
	if dv.queue != nil {
		dv.queue.Release()
		dv.queue = nil
	}
	if dv.Device != nil {
		dv.Device.Release()
		dv.Device = nil
	}
}

// Buffer is a [gpu.Buffer] holding a WebGPU buffer.
type Buffer struct {
	device *Device
	buffer *wgpu.Buffer
	size   int
}

func (bf *Buffer) Size() int { return bf.size }

func (bf *Buffer) Release() {
	if bf.buffer == nil {
		return
	}
	bf.buffer.Release()
	bf.buffer = nil
	bf.device.live.Add(-1)
}

// Context is a [gpu.Context] that renders into a WebGPU texture.
type Context struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *Device
	renderer *renderer
	name     string

	mu        sync.Mutex
	size      image.Point
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	depth     *wgpu.Texture
	depthView *wgpu.TextureView
}

func (ctx *Context) Device() gpu.Device { return ctx.device }

func (ctx *Context) Surface() gpu.Surface { return ctx }

// Name returns the surface name.
func (ctx *Context) Name() string { return ctx.name }

func (ctx *Context) Size() image.Point {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return ctx.size
}

func (ctx *Context) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || size == ctx.Size() {
		return
	}
	errors.Log(ctx.configTexture(size))
}

// configTexture makes the render target texture for the given size,
// releasing any previous one.
func (ctx *Context) configTexture(size image.Point) error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.releaseTexture()
	t, err := ctx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: ctx.name,
		Size: wgpu.Extent3D{
			Width:              uint32(max(size.X, 1)),
			Height:             uint32(max(size.Y, 1)),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        Format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if errors.Log(err) != nil {
		return err
	}
	view, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		t.Release()
		return err
	}
	ctx.texture = t
	ctx.view = view
	dt, err := ctx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: ctx.name + "-depth",
		Size: wgpu.Extent3D{
			Width:              uint32(max(size.X, 1)),
			Height:             uint32(max(size.Y, 1)),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if errors.Log(err) != nil {
		ctx.releaseTexture()
		return err
	}
	dview, err := dt.CreateView(nil)
	if errors.Log(err) != nil {
		dt.Release()
		ctx.releaseTexture()
		return err
	}
	ctx.depth = dt
	ctx.depthView = dview
	ctx.size = size
	return nil
}

func (ctx *Context) releaseTexture() {
	if ctx.depthView != nil {
		ctx.depthView.Release()
		ctx.depthView = nil
	}
	if ctx.depth != nil {
		ctx.depth.Release()
		ctx.depth = nil
	}
	if ctx.view != nil {
		ctx.view.Release()
		ctx.view = nil
	}
	if ctx.texture != nil {
		ctx.texture.Release()
		ctx.texture = nil
	}
}

// Render draws the frame into the render target: opaque draws
// first, then transparent ones, each lit by the frame lights.
func (ctx *Context) Render(fr *gpu.Frame) error {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.view == nil || ctx.renderer == nil {
		return fmt.Errorf("webgpu.Context: render without a target on %s", ctx.name)
	}
	cmd, err := ctx.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return err
	}
	defer cmd.Release()
	groups, err := ctx.renderer.draw(cmd, ctx.view, ctx.depthView, fr)
	defer func() {
		for _, bg := range groups {
			bg.Release()
		}
	}()
	if errors.Log(err) != nil {
		return err
	}
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return err
	}
	defer cmdBuffer.Release()
	ctx.device.queue.Submit(cmdBuffer)
	return nil
}

func (ctx *Context) Release() {
	ctx.mu.Lock()
	ctx.releaseTexture()
	if ctx.renderer != nil {
		ctx.renderer.release()
		ctx.renderer = nil
	}
	ctx.mu.Unlock()
	if ctx.device != nil {
		ctx.device.Release()
	}
	if ctx.adapter != nil {
		ctx.adapter.Release()
		ctx.adapter = nil
	}
	if ctx.instance != nil {
		ctx.instance.Release()
		ctx.instance = nil
	}
}
