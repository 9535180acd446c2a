// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"image"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/chart3d"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/gpu"
)

var testProps = Props{
	Data: []any{
		map[string]any{"category": "A", "value": 30.0},
		map[string]any{"category": "B", "value": 45.0},
	},
	ChartType: "column",
	Theme:     colors.Light,
}

type fixture struct {
	off   *gpu.Offscreen
	sched *ManualScheduler
	cont  *Headless
	view  *View
}

func newFixture(props Props) *fixture {
	f := &fixture{
		off:   gpu.NewOffscreen(),
		sched: NewManualScheduler(epoch),
		cont:  NewHeadless(image.Pt(640, 480)),
	}
	f.view = NewView(f.off.New, f.sched, props)
	return f
}

func (f *fixture) step(n int) {
	for range n {
		f.sched.Step(16 * time.Millisecond)
	}
}

func TestViewMount(t *testing.T) {
	f := newFixture(testProps)
	var statuses []Status
	f.view.OnStatus(func(s Status) { statuses = append(statuses, s) })

	require.NoError(t, f.view.Mount(f.cont))
	assert.Equal(t, []Status{Loading, Ready}, statuses)
	assert.Equal(t, Ready, f.view.Status())
	assert.Empty(t, f.view.Fallback())
	assert.NotEqual(t, uuid.Nil, f.view.ID())
	assert.Len(t, f.cont.Surfaces(), 1)
	assert.Equal(t, 1, f.cont.Listeners())

	f.step(3)
	ctx := f.off.Contexts()[0]
	assert.Equal(t, 3, ctx.Frames())
	assert.Equal(t, image.Pt(640, 480), ctx.Size())
	assert.Positive(t, f.off.Live())
}

func TestViewUnmountReleasesAll(t *testing.T) {
	f := newFixture(testProps)
	for range 3 {
		require.NoError(t, f.view.Mount(f.cont))
		f.step(2)
		f.view.Unmount()
		assert.Equal(t, 0, f.off.Live())
		assert.Empty(t, f.cont.Surfaces())
		assert.Equal(t, 0, f.cont.Listeners())
		assert.Equal(t, 0, f.sched.Pending())
		assert.False(t, f.view.Mounted())
	}
	for _, ctx := range f.off.Contexts() {
		assert.True(t, ctx.Released())
		assert.Equal(t, 2, ctx.Frames())
	}
	f.step(2)
	f.view.Unmount()
}

func TestViewUnmountStatus(t *testing.T) {
	f := newFixture(testProps)
	assert.Equal(t, Unmounted, f.view.Status())
	var statuses []Status
	f.view.OnStatus(func(s Status) { statuses = append(statuses, s) })

	require.NoError(t, f.view.Mount(f.cont))
	f.view.Unmount()
	assert.Equal(t, Unmounted, f.view.Status())
	assert.Equal(t, "unmounted", f.view.Status().String())
	assert.Equal(t, []Status{Loading, Ready, Unmounted}, statuses)
	assert.NoError(t, f.view.Err())
	assert.Empty(t, f.view.Fallback())

	f.view.Unmount()
	assert.Len(t, statuses, 3)

	f.off.Fail = true
	assert.Error(t, f.view.Mount(f.cont))
	f.view.Unmount()
	assert.Equal(t, []Status{Loading, Ready, Unmounted, Loading, Error, Unmounted}, statuses)
	assert.NoError(t, f.view.Err())
}

func TestViewAutoRotate(t *testing.T) {
	f := newFixture(testProps)
	require.NoError(t, f.view.Mount(f.cont))
	cam := &f.view.Manager().Scene.Camera
	start := cam.Pose.Pos
	f.step(30)
	moved := cam.Pose.Pos
	assert.NotEqual(t, start, moved)
	assert.InDelta(t, start.Y, moved.Y, 1e-4)
	assert.InDelta(t, start.Length(), moved.Length(), 1e-3)
}

func TestViewResize(t *testing.T) {
	f := newFixture(testProps)
	require.NoError(t, f.view.Mount(f.cont))
	m := f.view.Manager()
	objs := m.Objects()

	f.cont.SetSize(image.Pt(1000, 500))
	assert.Equal(t, float32(2), m.Scene.Camera.Aspect)
	assert.Equal(t, image.Pt(1000, 500), f.view.Context().Size())
	assert.Equal(t, 1, m.Stats().Rebuilds)
	assert.Same(t, objs, m.Objects())

	f.cont.SetSize(image.Pt(1000, 500))
	assert.Equal(t, float32(2), m.Scene.Camera.Aspect)
	f.step(1)
	assert.Equal(t, Ready, f.view.Status())
}

func TestViewSetProps(t *testing.T) {
	f := newFixture(testProps)
	require.NoError(t, f.view.SetProps(testProps))
	assert.False(t, f.view.Mounted())

	require.NoError(t, f.view.Mount(f.cont))
	id := f.view.ID()
	p := testProps
	p.ChartType = "3d-scatter"
	p.Theme = colors.Dark
	require.NoError(t, f.view.SetProps(p))
	assert.NotEqual(t, id, f.view.ID())
	assert.Equal(t, chart3d.Scatter, f.view.Manager().Spec().Type)
	assert.Len(t, f.off.Contexts(), 2)
	assert.True(t, f.off.Contexts()[0].Released())
	assert.Len(t, f.cont.Surfaces(), 1)
	f.step(1)
	assert.Equal(t, 1, f.off.Contexts()[1].Frames())
}

func TestViewContextFailure(t *testing.T) {
	f := newFixture(testProps)
	f.off.Fail = true
	var statuses []Status
	f.view.OnStatus(func(s Status) { statuses = append(statuses, s) })

	err := f.view.Mount(f.cont)
	assert.ErrorIs(t, err, gpu.ErrNoBackend)
	assert.Equal(t, Error, f.view.Status())
	assert.Equal(t, FallbackText, f.view.Fallback())
	assert.Equal(t, []Status{Loading, Error}, statuses)
	assert.Nil(t, f.view.Manager())
	assert.Equal(t, 0, f.sched.Pending())
	assert.Equal(t, 0, f.cont.Listeners())

	f.off.Fail = false
	require.NoError(t, f.view.SetProps(testProps))
	assert.Equal(t, Ready, f.view.Status())
}

func TestViewBackendPanic(t *testing.T) {
	v := NewView(func(image.Point) (gpu.Context, error) { panic("no adapter") }, NewManualScheduler(epoch), testProps)
	assert.NotPanics(t, func() {
		assert.Error(t, v.Mount(NewHeadless(image.Pt(10, 10))))
	})
	assert.Equal(t, Error, v.Status())
	assert.ErrorContains(t, v.Err(), "no adapter")
}

func TestViewBuildFailure(t *testing.T) {
	orig := chart3d.Builders[chart3d.Surface]
	t.Cleanup(func() { chart3d.Builders[chart3d.Surface] = orig })
	chart3d.Builders[chart3d.Surface] = chart3d.BuilderFunc(func(*chart3d.BuildContext) error {
		panic("malformed series")
	})
	f := newFixture(Props{Data: []any{1.0}, ChartType: "surface"})
	err := f.view.Mount(f.cont)
	assert.ErrorIs(t, err, chart3d.ErrBuild)
	assert.Equal(t, Error, f.view.Status())
	assert.Equal(t, 0, f.off.Live())
	assert.Empty(t, f.cont.Surfaces())
	assert.True(t, f.off.Contexts()[0].Released())
	f.step(2)
	assert.Equal(t, 0, f.off.Contexts()[0].Frames())
}

func TestViewNoBackend(t *testing.T) {
	v := NewView(nil, NewManualScheduler(epoch), testProps)
	assert.ErrorIs(t, v.Mount(NewHeadless(image.Pt(10, 10))), gpu.ErrNoBackend)
	assert.Equal(t, FallbackText, v.Fallback())
}
