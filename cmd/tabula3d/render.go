// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tabula3d/tabula3d/xyzview"
	"gopkg.in/yaml.v3"
)

// summary describes a rendered scene.
type summary struct {
	Chart    string         `yaml:"chart"`
	Theme    string         `yaml:"theme"`
	Status   string         `yaml:"status"`
	Message  string         `yaml:"message,omitempty"`
	Error    string         `yaml:"error,omitempty"`
	Frames   int            `yaml:"frames"`
	Objects  int            `yaml:"objects"`
	Points   int            `yaml:"points"`
	Fallback bool           `yaml:"fallbackData"`
	Roles    map[string]int `yaml:"roles,omitempty"`
	Camera   cameraSummary  `yaml:"camera"`

	// Live is the number of GPU buffers left after unmounting,
	// known only for the offscreen backend.
	Live *int `yaml:"liveBuffers,omitempty"`
}

type cameraSummary struct {
	Pos    [3]float32 `yaml:"pos,flow"`
	FOV    float32    `yaml:"fov"`
	Aspect float32    `yaml:"aspect"`
}

func (a *app) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [data-file]",
		Short: "Render frames headless and print a scene summary",
		Long: `render mounts the chart on a headless container, runs the
configured number of frames and prints a YAML summary of the scene.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadData(a.cfg)
			if err != nil {
				return err
			}
			sm, err := a.render(raw)
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if eerr := enc.Encode(sm); eerr != nil {
				return eerr
			}
			if eerr := enc.Close(); eerr != nil {
				return eerr
			}
			return err
		},
	}
}

// render mounts a view of the raw data, runs the frames, unmounts it
// and returns the summary. The error is that of the view, if any.
func (a *app) render(raw any) (*summary, error) {
	cfg := a.cfg
	sched := xyzview.NewManualScheduler(time.Now())
	v := a.newView(raw, sched)
	// a failed mount is reported through v.Err below
	if err := v.Mount(xyzview.NewHeadless(cfg.Size())); err == nil {
		dt := time.Second / time.Duration(cfg.FPS)
		for range cfg.Frames {
			sched.Step(dt)
		}
	}
	sm := &summary{
		Chart:   cfg.ChartSpec().Type.String(),
		Theme:   cfg.Theme.String(),
		Status:  v.Status().String(),
		Message: v.Fallback(),
	}
	if lp := v.Loop(); lp != nil {
		sm.Frames = lp.Frames()
	}
	if m := v.Manager(); m != nil {
		st := m.Stats()
		sm.Objects, sm.Points, sm.Fallback = st.Objects, st.Points, st.Fallback
		if objs := m.Objects(); objs != nil {
			sm.Roles = map[string]int{}
			roles := objs.Roles()
			for _, kv := range roles.Order {
				sm.Roles[kv.Key.String()] = kv.Value
			}
		}
		cam := &m.Scene.Camera
		sm.Camera = cameraSummary{
			Pos:    [3]float32{cam.Pose.Pos.X, cam.Pose.Pos.Y, cam.Pose.Pos.Z},
			FOV:    cam.FOV,
			Aspect: cam.Aspect,
		}
	}
	err := v.Err()
	if err != nil {
		sm.Error = err.Error()
	}
	v.Unmount()
	if a.offscreen != nil {
		live := a.offscreen.Live()
		sm.Live = &live
	}
	if err != nil {
		return sm, fmt.Errorf("render: %w", err)
	}
	return sm, nil
}
