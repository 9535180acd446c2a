// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jpillora/backoff"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/xyzview"
)

func (a *app) watchCmd() *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "watch [data-file]",
		Short: "Keep rendering, rebuilding when the data or config file changes",
		Long: `watch mounts the chart and runs the render loop at the configured
frame rate until interrupted, rebuilding the scene whenever the data
file or the config file is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			if duration > 0 {
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return a.watch(ctx)
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (default: until interrupted)")
	return cmd
}

// watch runs until the context is done.
func (a *app) watch(ctx context.Context) error {
	raw, err := loadData(a.cfg)
	if err != nil {
		return err
	}
	sched := xyzview.NewTickerScheduler(a.cfg.FPS)
	v := a.newView(raw, sched)
	v.OnStatus(func(s xyzview.Status) {
		slog.Info("chart status", "status", s, "fallback", v.Fallback())
	})
	errors.Log(v.Mount(xyzview.NewHeadless(a.cfg.Size())))
	defer v.Unmount()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	dataPath, err := a.cfg.DataPath()
	if err != nil {
		return err
	}
	configPath, err := homedir.Expand(a.configPath)
	if err != nil {
		return err
	}
	watched := map[string]bool{}
	for _, path := range []string{dataPath, configPath} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		// editors often replace files, so watch the directory
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	go sched.Run(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, _ := filepath.Abs(event.Name)
			if !watched[abs] {
				continue
			}
			slog.Info("file changed, rebuilding", "file", event.Name)
			a.reload(ctx, v)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "err", err)
		}
	}
}

// reloadAttempts is how many times a change is reloaded before giving
// up. Editors can fire events while a file is still half written.
const reloadAttempts = 4

// reload rereads the config and data files and rebuilds the view,
// retrying with backoff while the files fail to parse. The last error
// is logged and leaves the view as it was.
func (a *app) reload(ctx context.Context, v *xyzview.View) {
	b := &backoff.Backoff{Min: 50 * time.Millisecond, Max: time.Second, Factor: 2}
	for {
		err := a.reloadOnce(v)
		if err == nil {
			return
		}
		if b.Attempt() >= reloadAttempts-1 {
			errors.Log(err)
			return
		}
		d := b.Duration()
		slog.Debug("reload failed, retrying", "err", err, "in", d)
		select {
		case <-ctx.Done():
			return
		case <-time.After(d):
		}
	}
}

func (a *app) reloadOnce(v *xyzview.View) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	raw, err := loadData(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	v.Settings = &a.cfg.Chart
	return v.SetProps(a.props(raw))
}
