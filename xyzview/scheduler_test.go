// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/base/errors"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualScheduler(t *testing.T) {
	ms := NewManualScheduler(epoch)
	var got []int
	var times []time.Time
	ms.RequestFrame(func(now time.Time) { got = append(got, 1); times = append(times, now) })
	id := ms.RequestFrame(func(time.Time) { got = append(got, 2) })
	ms.RequestFrame(func(time.Time) {
		got = append(got, 3)
		ms.RequestFrame(func(time.Time) { got = append(got, 4) })
	})
	ms.CancelFrame(id)
	ms.CancelFrame(12345)
	assert.Equal(t, 2, ms.Pending())

	assert.Equal(t, 2, ms.Step(16*time.Millisecond))
	assert.Equal(t, []int{1, 3}, got)
	assert.Equal(t, []time.Time{epoch.Add(16 * time.Millisecond)}, times)

	assert.Equal(t, 1, ms.Step(16*time.Millisecond))
	assert.Equal(t, []int{1, 3, 4}, got)
	assert.Equal(t, 0, ms.Step(16*time.Millisecond))
}

func TestLoop(t *testing.T) {
	ms := NewManualScheduler(epoch)
	n := 0
	lp := NewLoop(ms, func(time.Time) error { n++; return nil })
	assert.Equal(t, 0, ms.Pending())
	lp.Start()
	lp.Start()
	assert.Equal(t, 1, ms.Pending())
	for range 5 {
		ms.Step(time.Millisecond)
	}
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, lp.Frames())

	lp.Stop()
	assert.False(t, lp.Running())
	assert.Equal(t, 0, ms.Pending())
	ms.Step(time.Millisecond)
	assert.Equal(t, 5, n)

	lp.Start()
	ms.Step(time.Millisecond)
	assert.Equal(t, 6, n)
}

func TestLoopStopsOnError(t *testing.T) {
	ms := NewManualScheduler(epoch)
	boom := errors.New("boom")
	var failed error
	n := 0
	lp := NewLoop(ms, func(time.Time) error {
		n++
		if n == 3 {
			return boom
		}
		return nil
	})
	lp.OnError = func(err error) { failed = err }
	lp.Start()
	for range 10 {
		ms.Step(time.Millisecond)
	}
	assert.Equal(t, 3, n)
	assert.False(t, lp.Running())
	assert.ErrorIs(t, lp.Err(), boom)
	assert.ErrorIs(t, failed, boom)
	assert.Equal(t, 0, ms.Pending())
}

func TestLoopStopInsideFrame(t *testing.T) {
	ms := NewManualScheduler(epoch)
	var lp *Loop
	lp = NewLoop(ms, func(time.Time) error { lp.Stop(); return nil })
	lp.Start()
	ms.Step(time.Millisecond)
	assert.False(t, lp.Running())
	assert.Equal(t, 0, ms.Pending())
	assert.NoError(t, lp.Err())
}

func TestTickerScheduler(t *testing.T) {
	ts := NewTickerScheduler(200)
	assert.Equal(t, 5*time.Millisecond, ts.Interval)
	lp := NewLoop(ts, func(time.Time) error { return nil })
	lp.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- ts.Run(ctx) }()
	require.Eventually(t, func() bool { return lp.Frames() >= 3 }, 2*time.Second, 5*time.Millisecond)
	lp.Stop()
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
