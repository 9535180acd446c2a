// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyzview mounts a chart scene into a host container and
// drives its render loop: one frame callback at a time, each frame
// scheduling the next until the view is unmounted or fails.
package xyzview

import (
	"context"
	"sync"
	"time"

	"github.com/tabula3d/tabula3d/base/ordmap"
)

// FrameID identifies a requested frame callback.
type FrameID uint64

// Scheduler runs frame callbacks, each one once, at the next frame.
type Scheduler interface {

	// RequestFrame schedules fn for the next frame and returns an id
	// that can be passed to CancelFrame.
	RequestFrame(fn func(now time.Time)) FrameID

	// CancelFrame cancels a pending frame callback. Unknown or
	// already run ids are ignored.
	CancelFrame(id FrameID)
}

// frameQueue is the pending callbacks shared by the schedulers.
type frameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending *ordmap.Map[FrameID, func(time.Time)]
}

func (fq *frameQueue) request(fn func(time.Time)) FrameID {
	fq.mu.Lock()
	defer fq.mu.Unlock()
	if fq.pending == nil {
		fq.pending = ordmap.New[FrameID, func(time.Time)]()
	}
	fq.next++
	fq.pending.Add(fq.next, fn)
	return fq.next
}

func (fq *frameQueue) cancel(id FrameID) {
	fq.mu.Lock()
	defer fq.mu.Unlock()
	if fq.pending != nil {
		fq.pending.DeleteKey(id)
	}
}

// take removes and returns all pending callbacks in request order.
func (fq *frameQueue) take() []func(time.Time) {
	fq.mu.Lock()
	defer fq.mu.Unlock()
	if fq.pending == nil || fq.pending.Len() == 0 {
		return nil
	}
	fns := fq.pending.Values()
	fq.pending.Reset()
	return fns
}

func (fq *frameQueue) len() int {
	fq.mu.Lock()
	defer fq.mu.Unlock()
	if fq.pending == nil {
		return 0
	}
	return fq.pending.Len()
}

// run runs the callbacks pending at the start of the frame.
// Callbacks they request run at the following frame.
func (fq *frameQueue) run(now time.Time) int {
	fns := fq.take()
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// ManualScheduler runs frames only when [ManualScheduler.Step] is
// called, for tests and hosts that own their own frame clock.
type ManualScheduler struct {
	frameQueue
	now time.Time
}

// NewManualScheduler returns a new manual scheduler whose clock
// starts at the given time.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (ms *ManualScheduler) RequestFrame(fn func(time.Time)) FrameID { return ms.request(fn) }

func (ms *ManualScheduler) CancelFrame(id FrameID) { ms.cancel(id) }

// Pending returns the number of pending frame callbacks.
func (ms *ManualScheduler) Pending() int { return ms.len() }

// Step advances the clock by dt and runs one frame, returning the
// number of callbacks run.
func (ms *ManualScheduler) Step(dt time.Duration) int {
	ms.mu.Lock()
	ms.now = ms.now.Add(dt)
	now := ms.now
	ms.mu.Unlock()
	return ms.run(now)
}

// TickerScheduler runs frames at a fixed rate on a single goroutine,
// started by [TickerScheduler.Run].
type TickerScheduler struct {
	frameQueue

	// Interval is the time between frames.
	Interval time.Duration
}

// NewTickerScheduler returns a scheduler running fps frames per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	fps = max(fps, 1)
	return &TickerScheduler{Interval: time.Second / time.Duration(fps)}
}

func (ts *TickerScheduler) RequestFrame(fn func(time.Time)) FrameID { return ts.request(fn) }

func (ts *TickerScheduler) CancelFrame(id FrameID) { ts.cancel(id) }

// Run runs frames until the context is done, returning its error.
// All callbacks run on the calling goroutine.
func (ts *TickerScheduler) Run(ctx context.Context) error {
	tick := time.NewTicker(ts.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-tick.C:
			ts.run(now)
		}
	}
}
