// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzview

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/chart3d"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/tabular"
)

// Status is the state shown by a [View].
type Status int32

const (
	// Unmounted is the status of a view that is not mounted,
	// before the first mount and after unmounting.
	Unmounted Status = iota

	// Loading is shown while the scene is being set up.
	Loading

	// Ready is shown once the scene is rendering.
	Ready

	// Error is shown when there is no scene to render;
	// the host shows [FallbackText] instead.
	Error
)

func (s Status) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FallbackText is shown in place of the scene in the [Error] status.
const FallbackText = "3D preview not available"

// Props are the inputs of a [View]. Any change rebuilds the scene.
type Props struct {

	// Data is the raw tabular input.
	Data any

	// Axes selects the fields to plot.
	Axes tabular.AxisSelection

	// ChartType names the chart type; see [chart3d.ParseChartType].
	ChartType string

	// Theme is the color theme.
	Theme colors.Themes
}

// View mounts a chart scene into a [Container] and keeps it
// rendering with a frame [Loop] until it is unmounted. Errors never
// escape a View: they set the [Error] status and stop rendering.
// It is safe for concurrent use.
type View struct {

	// Backend creates the graphics context on mount.
	Backend gpu.Backend

	// Scheduler runs the frame loop.
	Scheduler Scheduler

	// Settings are used for every rebuild; nil is the defaults.
	Settings *chart3d.Settings

	mu        sync.Mutex
	props     Props
	container Container
	ctx       gpu.Context
	manager   *chart3d.Manager
	loop      *Loop
	unresize  func()
	id        uuid.UUID
	status    Status
	err       error
	onStatus  []func(Status)
	notices   []Status
}

// NewView returns an unmounted view.
func NewView(backend gpu.Backend, sched Scheduler, props Props) *View {
	return &View{Backend: backend, Scheduler: sched, props: props}
}

// OnStatus registers fn to be called on every status change,
// outside of the view lock.
func (v *View) OnStatus(fn func(Status)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onStatus = append(v.onStatus, fn)
}

// Status returns the current status.
func (v *View) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Err returns the error behind the [Error] status.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Fallback returns [FallbackText] in the [Error] status, else "".
func (v *View) Fallback() string {
	if v.Status() == Error {
		return FallbackText
	}
	return ""
}

// ID returns the id of the current mount, or the zero id when the
// view is not mounted.
func (v *View) ID() uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.id
}

// Mounted returns whether the view is mounted.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.container != nil
}

// Manager returns the scene manager of the current mount, or nil.
func (v *View) Manager() *chart3d.Manager {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.manager
}

// Context returns the graphics context of the current mount, or nil.
func (v *View) Context() gpu.Context {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctx
}

// Loop returns the frame loop of the current mount, or nil.
func (v *View) Loop() *Loop {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loop
}

// Props returns the current props.
func (v *View) Props() Props {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.props
}

// Mount mounts the view into the container: it creates a graphics
// context of the container size, builds the scene and starts the
// frame loop. An existing mount is torn down first. The returned
// error is also recorded as the [Error] status.
func (v *View) Mount(c Container) error {
	defer v.notify()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.teardown()
	v.container = c
	return v.mount()
}

// Unmount stops the frame loop, releases every GPU resource of the
// mount and sets the [Unmounted] status. It does nothing if the view
// is not mounted.
func (v *View) Unmount() {
	defer v.notify()
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.container == nil {
		return
	}
	v.teardown()
	v.container = nil
	v.setStatus(Unmounted, nil)
}

// SetProps sets new props, remounting a mounted view so that the
// scene is rebuilt from scratch.
func (v *View) SetProps(p Props) error {
	defer v.notify()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.props = p
	if v.container == nil {
		return nil
	}
	v.teardown()
	return v.mount()
}

// Resize updates the output size and camera aspect ratio from the
// current container size, without rebuilding the scene.
func (v *View) Resize() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ctx == nil || v.container == nil {
		return
	}
	sz := v.container.Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	v.ctx.SetSize(sz)
	v.manager.SetSize(sz)
}

// mount must be called with the lock held, after teardown.
func (v *View) mount() (err error) {
	v.id = uuid.New()
	v.setStatus(Loading, nil)
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recover(r)
		}
		if err != nil {
			v.teardown()
			v.setStatus(Error, err)
			slog.Error("xyzview: mount failed", "err", err)
		}
	}()
	size := v.container.Size()
	if v.Backend == nil {
		return fmt.Errorf("xyzview: %w: no backend set", gpu.ErrNoBackend)
	}
	ctx, err := v.Backend(size)
	if err != nil {
		return fmt.Errorf("xyzview: creating graphics context: %w", err)
	}
	v.ctx = ctx
	v.container.Attach(ctx.Surface())
	v.manager = chart3d.NewManager(v.Settings)
	v.manager.SetSize(size)
	p := v.props
	if err := v.manager.Rebuild(p.Data, p.Axes, p.ChartType, p.Theme); err != nil {
		return err
	}
	v.unresize = v.container.OnResize(v.Resize)
	v.loop = NewLoop(v.Scheduler, v.frame(ctx, v.manager))
	v.loop.OnError = v.loopFailed
	v.loop.Start()
	v.setStatus(Ready, nil)
	slog.Debug("xyzview: mounted", "id", v.id, "surface", ctx.Surface().Name(), "size", size, "chart", v.manager.Spec().Type)
	return nil
}

// frame returns the per frame function of one mount, which does
// nothing once that mount is torn down.
func (v *View) frame(ctx gpu.Context, m *chart3d.Manager) func(time.Time) error {
	return func(time.Time) (err error) {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.ctx != ctx {
			return nil
		}
		defer func() {
			if r := recover(); r != nil {
				err = errors.Recover(r)
			}
		}()
		return m.Tick(ctx)
	}
}

func (v *View) loopFailed(err error) {
	defer v.notify()
	v.mu.Lock()
	defer v.mu.Unlock()
	slog.Error("xyzview: render failed", "id", v.id, "err", err)
	v.teardown()
	v.setStatus(Error, err)
}

// teardown must be called with the lock held. It releases the mount
// in reverse order of creation, leaving the container set.
func (v *View) teardown() {
	if v.loop != nil {
		v.loop.Stop()
		v.loop = nil
	}
	if v.unresize != nil {
		v.unresize()
		v.unresize = nil
	}
	if v.manager != nil {
		v.manager.Dispose()
	}
	if v.ctx != nil {
		if v.container != nil {
			v.container.Detach(v.ctx.Surface())
		}
		v.ctx.Release()
		slog.Debug("xyzview: unmounted", "id", v.id)
		v.ctx = nil
	}
	v.manager = nil
	v.id = uuid.Nil
}

// setStatus must be called with the lock held.
func (v *View) setStatus(s Status, err error) {
	v.err = err
	v.status = s
	v.notices = append(v.notices, s)
}

// notify calls the status listeners for the queued changes.
func (v *View) notify() {
	v.mu.Lock()
	notices := v.notices
	v.notices = nil
	fns := append([]func(Status){}, v.onStatus...)
	v.mu.Unlock()
	for _, s := range notices {
		for _, fn := range fns {
			fn(s)
		}
	}
}
