// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"image"
	"sync"

	"github.com/tabula3d/tabula3d/base/ordmap"
	"github.com/tabula3d/tabula3d/gpu"
)

// Container is the host element a [View] is mounted into.
type Container interface {

	// Size returns the current size in pixels.
	Size() image.Point

	// Attach adds the output surface of a graphics context.
	Attach(sf gpu.Surface)

	// Detach removes a surface added by Attach.
	Detach(sf gpu.Surface)

	// OnResize registers fn to be called after the size changes,
	// returning a function that removes it.
	OnResize(fn func()) (remove func())
}

// Headless is a [Container] without a window, for the command line
// and tests. It is safe for concurrent use.
type Headless struct {
	mu        sync.Mutex
	size      image.Point
	surfaces  []gpu.Surface
	listeners *ordmap.Map[int, func()]
	nextID    int
}

// NewHeadless returns a headless container of the given size.
func NewHeadless(size image.Point) *Headless {
	return &Headless{size: size, listeners: ordmap.New[int, func()]()}
}

func (hc *Headless) Size() image.Point {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return hc.size
}

// SetSize sets the size and calls the resize listeners.
func (hc *Headless) SetSize(size image.Point) {
	hc.mu.Lock()
	hc.size = size
	fns := hc.listeners.Values()
	hc.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (hc *Headless) Attach(sf gpu.Surface) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.surfaces = append(hc.surfaces, sf)
}

func (hc *Headless) Detach(sf gpu.Surface) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	for i, s := range hc.surfaces {
		if s == sf {
			hc.surfaces = append(hc.surfaces[:i], hc.surfaces[i+1:]...)
			return
		}
	}
}

// Surfaces returns the attached surfaces.
func (hc *Headless) Surfaces() []gpu.Surface {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return append([]gpu.Surface(nil), hc.surfaces...)
}

func (hc *Headless) OnResize(fn func()) func() {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.nextID++
	id := hc.nextID
	hc.listeners.Add(id, fn)
	return func() {
		hc.mu.Lock()
		defer hc.mu.Unlock()
		hc.listeners.DeleteKey(id)
	}
}

// Listeners returns the number of resize listeners.
func (hc *Headless) Listeners() int {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return hc.listeners.Len()
}
