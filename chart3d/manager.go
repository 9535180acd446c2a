// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/tabular"
	"github.com/tabula3d/tabula3d/xyz"
)

// Manager owns one chart scene: the scenegraph with its camera, orbit
// controls and light rig (ambient plus two directional lights), and
// the one set of [SceneObjects] from the last rebuild. Every rebuild
// disposes the previous objects before making new ones.
//
// A Manager is not safe for concurrent use.
type Manager struct {

	// Scene is the scene being managed.
	Scene *xyz.Scene

	// Controls auto-rotate the camera; zoom is disabled so the
	// framing of the preview stays stable.
	Controls *xyz.OrbitControls

	// Settings are the visual constants. A snapshot is taken for
	// each rebuild, so changes apply from the next rebuild.
	Settings *Settings

	spec     ChartSpec
	data     tabular.Data
	objects  *SceneObjects
	rebuilds int
	err      error
}

// Stats summarizes the current state of a [Manager].
type Stats struct {

	// Rebuilds is the number of rebuilds so far.
	Rebuilds int

	// Type is the chart type of the last rebuild.
	Type ChartType

	// Objects is the number of solids in the scene.
	Objects int

	// Points is the number of data points drawn over all series.
	Points int

	// Fallback is whether the fallback data is being shown.
	Fallback bool

	// Err is the error of the last rebuild, if any.
	Err error
}

// NewManager returns a new manager with an empty scene.
// Nil settings use [DefaultSettings].
func NewManager(st *Settings) *Manager {
	if st == nil {
		st = DefaultSettings()
	}
	m := &Manager{Settings: st, Scene: xyz.NewScene("chart3d")}
	m.configCamera()
	xyz.NewAmbientLight(m.Scene, "ambient", 0.6, xyz.DirectSun)
	xyz.NewDirLight(m.Scene, "key", 0.8, xyz.DirectSun).Pos.Set(10, 10, 5)
	xyz.NewDirLight(m.Scene, "fill", 0.3, xyz.DirectSun).Pos.Set(-10, -10, -5)
	return m
}

func (m *Manager) configCamera() {
	st := m.Settings
	cam := &m.Scene.Camera
	cam.FOV = st.CameraFOV
	cam.Near = 0.1
	cam.Far = 1000
	cam.Pose.Pos = st.CameraPos
	cam.LookAtOrigin()
	oc := xyz.NewOrbitControls(cam)
	oc.AutoRotate = st.AutoRotate
	oc.AutoRotateSpeed = st.AutoRotateSpeed
	oc.EnableZoom = false
	oc.EnableDamping = true
	oc.DampingFactor = st.DampingFactor
	m.Controls = oc
}

// Rebuild normalizes the raw data and rebuilds the scene for the named
// chart type and theme. On error the scene is left empty.
func (m *Manager) Rebuild(raw any, axes tabular.AxisSelection, chartType string, theme colors.Themes) error {
	data := tabular.Normalize(raw, axes)
	return m.RebuildData(data, ChartSpec{Type: ParseChartType(chartType), Axes: axes, Theme: theme})
}

// RebuildData rebuilds the scene from normalized data. The previous
// objects are disposed first. Errors and panics from the builder are
// returned wrapping [ErrBuild], with the scene left empty.
func (m *Manager) RebuildData(data tabular.Data, spec ChartSpec) error {
	m.disposeObjects()
	m.rebuilds++
	m.spec, m.data = spec, data
	st := m.Settings.Clone()
	if err := st.Validate(); err != nil {
		m.err = errors.Log(fmt.Errorf("%w: %w", ErrBuild, err))
		return m.err
	}
	m.Scene.Background = colors.StyleFor(spec.Theme).Background
	capped := data.Capped(st.PointCap)
	objs := newSceneObjects(xyz.NewGroup(m.Scene.Root, "chart"))
	bc := &BuildContext{
		Scene:    m.Scene,
		Data:     capped,
		XField:   spec.Axes.X,
		YFields:  spec.Axes.Y,
		Scale:    ComputeScale(capped.Series, st.MaxHeight),
		Theme:    spec.Theme,
		Settings: st,
		Objects:  objs,
	}
	if err := build(BuilderFor(spec.Type), bc); err != nil {
		m.Scene.Dispose()
		m.err = errors.Log(fmt.Errorf("%w: %v chart: %w", ErrBuild, spec.Type, err))
		return m.err
	}
	m.objects = objs
	m.err = nil
	slog.Debug("chart3d: rebuilt scene", "chart", spec.Type, "theme", spec.Theme, "series", len(capped.Series), "points", capped.Len(), "objects", objs.Len())
	return nil
}

// build runs the builder and adds the stage, turning a panic
// into an error.
func build(b Builder, bc *BuildContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recover(r)
		}
	}()
	if err := b.Build(bc); err != nil {
		return err
	}
	addStage(bc)
	return nil
}

func (m *Manager) disposeObjects() {
	m.Scene.Dispose()
	m.objects = nil
}

// Spec returns the chart spec of the last rebuild.
func (m *Manager) Spec() ChartSpec { return m.spec }

// Data returns the normalized data of the last rebuild, uncapped.
func (m *Manager) Data() tabular.Data { return m.data }

// Objects returns the current scene objects, or nil if the last
// rebuild failed or there has been none.
func (m *Manager) Objects() *SceneObjects { return m.objects }

// Err returns the error of the last rebuild.
func (m *Manager) Err() error { return m.err }

// Stats returns a summary of the current state.
func (m *Manager) Stats() Stats {
	s := Stats{Rebuilds: m.rebuilds, Type: m.spec.Type, Fallback: m.data.Fallback, Err: m.err}
	if m.objects != nil {
		s.Objects = m.objects.Len()
		for i := range m.data.Series {
			s.Points += m.objects.Points(i)
		}
	}
	return s
}

// SetSize updates the camera aspect ratio for a new output size.
// It does not rebuild the scene.
func (m *Manager) SetSize(sz image.Point) {
	m.Scene.SetSize(sz)
}

// Tick advances the orbit controls by one frame and renders the
// scene into the context.
func (m *Manager) Tick(ctx gpu.Context) error {
	m.Controls.Update()
	return m.Scene.Render(ctx)
}

// Dispose releases all GPU resources of the scene.
func (m *Manager) Dispose() {
	m.disposeObjects()
}
