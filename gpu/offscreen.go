// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Offscreen is a headless [Backend] that keeps buffers in host memory.
// It keeps track of every context it creates so that callers can check
// that all buffers were released, and it can be told to fail context
// creation to exercise the no-GPU path.
type Offscreen struct {

	// Fail makes [Offscreen.New] return [ErrNoBackend].
	Fail bool

	mu       sync.Mutex
	contexts []*OffscreenContext
	nextID   int
}

// NewOffscreen returns a new offscreen backend.
func NewOffscreen() *Offscreen {
	return &Offscreen{}
}

// New creates a new [OffscreenContext]. It has the [Backend] signature.
func (ob *Offscreen) New(size image.Point) (Context, error) {
	if ob.Fail {
		return nil, fmt.Errorf("%w: offscreen backend disabled", ErrNoBackend)
	}
	ob.mu.Lock()
	defer ob.mu.Unlock()
	ob.nextID++
	ctx := &OffscreenContext{
		surface: &offscreenSurface{name: fmt.Sprintf("offscreen-%d", ob.nextID), size: size},
		device:  &OffscreenDevice{},
	}
	ob.contexts = append(ob.contexts, ctx)
	return ctx, nil
}

// Contexts returns all the contexts created so far, including released ones.
func (ob *Offscreen) Contexts() []*OffscreenContext {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	return append([]*OffscreenContext(nil), ob.contexts...)
}

// Live returns the total number of live buffers over all contexts.
func (ob *Offscreen) Live() int {
	n := 0
	for _, ctx := range ob.Contexts() {
		n += ctx.device.Live()
	}
	return n
}

// OffscreenContext is the [Context] made by [Offscreen].
type OffscreenContext struct {
	surface  *offscreenSurface
	device   *OffscreenDevice
	frames   atomic.Int64
	draws    atomic.Int64
	released atomic.Bool
}

func (ctx *OffscreenContext) Device() Device { return ctx.device }

func (ctx *OffscreenContext) Surface() Surface { return ctx.surface }

// OffscreenDevice returns the concrete device of this context.
func (ctx *OffscreenContext) OffscreenDevice() *OffscreenDevice { return ctx.device }

func (ctx *OffscreenContext) SetSize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	ctx.surface.mu.Lock()
	ctx.surface.size = size
	ctx.surface.mu.Unlock()
}

func (ctx *OffscreenContext) Size() image.Point { return ctx.surface.Size() }

// Render validates the frame and counts it. Every draw must reference
// live buffers, which catches use-after-dispose bugs in tests.
func (ctx *OffscreenContext) Render(fr *Frame) error {
	if ctx.released.Load() {
		return fmt.Errorf("gpu.OffscreenContext: render after release of %s", ctx.surface.name)
	}
	for i := range fr.Draws {
		dr := &fr.Draws[i]
		for _, b := range []Buffer{dr.Vertex, dr.Index, dr.Uniform} {
			hb, ok := b.(*hostBuffer)
			if !ok || hb.released.Load() {
				return fmt.Errorf("gpu.OffscreenContext: draw %d uses a released or foreign buffer", i)
			}
		}
	}
	ctx.frames.Add(1)
	ctx.draws.Add(int64(len(fr.Draws)))
	return nil
}

// Frames returns the number of frames rendered.
func (ctx *OffscreenContext) Frames() int { return int(ctx.frames.Load()) }

// Draws returns the total number of draw calls rendered.
func (ctx *OffscreenContext) Draws() int { return int(ctx.draws.Load()) }

// Released returns whether [OffscreenContext.Release] has been called.
func (ctx *OffscreenContext) Released() bool { return ctx.released.Load() }

func (ctx *OffscreenContext) Release() {
	if ctx.released.Swap(true) {
		return
	}
	ctx.device.Release()
}

type offscreenSurface struct {
	name string
	mu   sync.Mutex
	size image.Point
}

func (sf *offscreenSurface) Name() string { return sf.name }

func (sf *offscreenSurface) Size() image.Point {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.size
}

// OffscreenDevice is a [Device] keeping buffers in host memory.
type OffscreenDevice struct {
	live      atomic.Int64
	allocated atomic.Int64
}

func (dv *OffscreenDevice) NewBuffer(label string, kind BufferKinds, data []byte) (Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("gpu.OffscreenDevice: empty %s buffer %q", kind, label)
	}
	dv.live.Add(1)
	dv.allocated.Add(1)
	return &hostBuffer{device: dv, data: append([]byte(nil), data...)}, nil
}

func (dv *OffscreenDevice) Live() int { return int(dv.live.Load()) }

// Allocated returns the total number of buffers ever allocated.
func (dv *OffscreenDevice) Allocated() int { return int(dv.allocated.Load()) }

// Release reports leaked buffers. Host memory is reclaimed by the
// garbage collector, so nothing else needs freeing.
func (dv *OffscreenDevice) Release() {
	if n := dv.Live(); n > 0 {
		slog.Warn("gpu.OffscreenDevice: released with live buffers", "live", n)
	}
}

type hostBuffer struct {
	device   *OffscreenDevice
	data     []byte
	released atomic.Bool
}

func (hb *hostBuffer) Size() int { return len(hb.data) }

func (hb *hostBuffer) Release() {
	if hb.released.Swap(true) {
		return
	}
	hb.data = nil
	hb.device.live.Add(-1)
}
