// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"sync"
	"time"
)

// Loop is a self scheduling frame loop: each frame runs the frame
// function and then requests the next frame, until it is stopped or
// the frame function returns an error. It is the only place frames
// are requested.
type Loop struct {

	// OnError is called, from the frame, with the error that
	// stopped the loop.
	OnError func(err error)

	sched   Scheduler
	frame   func(now time.Time) error
	mu      sync.Mutex
	id      FrameID
	gen     uint64
	running bool
	frames  int
	err     error
}

// NewLoop returns a stopped loop running frame on the scheduler.
func NewLoop(sched Scheduler, frame func(now time.Time) error) *Loop {
	return &Loop{sched: sched, frame: frame}
}

// Start starts the loop if it is not running, clearing any error.
func (lp *Loop) Start() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.running {
		return
	}
	lp.running = true
	lp.err = nil
	lp.gen++
	lp.request()
}

// Stop cancels the pending frame. No frame runs after Stop
// returns, except one already in progress on another goroutine,
// which does not schedule a next frame.
func (lp *Loop) Stop() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if !lp.running {
		return
	}
	lp.running = false
	lp.sched.CancelFrame(lp.id)
	lp.id = 0
}

// Running returns whether the loop is running.
func (lp *Loop) Running() bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.running
}

// Frames returns the number of frames run.
func (lp *Loop) Frames() int {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.frames
}

// Err returns the error that stopped the loop, if any.
func (lp *Loop) Err() error {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.err
}

// request must be called with the lock held.
func (lp *Loop) request() {
	gen := lp.gen
	lp.id = lp.sched.RequestFrame(func(now time.Time) { lp.tick(gen, now) })
}

func (lp *Loop) tick(gen uint64, now time.Time) {
	lp.mu.Lock()
	if !lp.running || gen != lp.gen {
		lp.mu.Unlock()
		return
	}
	lp.mu.Unlock()

	err := lp.frame(now)

	lp.mu.Lock()
	lp.frames++
	if !lp.running || gen != lp.gen {
		lp.mu.Unlock()
		return
	}
	if err != nil {
		lp.running = false
		lp.err = err
		lp.id = 0
		onError := lp.OnError
		lp.mu.Unlock()
		if onError != nil {
			onError(err)
		}
		return
	}
	lp.request()
	lp.mu.Unlock()
}
