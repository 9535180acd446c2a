// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tabula3d renders tabular data files as 3D chart scenes,
// headless or through WebGPU, and exports them as HTML pages.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tabula3d/tabula3d/base/logx"
	"github.com/tabula3d/tabula3d/config"
	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/gpu/webgpu"
	"github.com/tabula3d/tabula3d/tabular"
	"github.com/tabula3d/tabula3d/xyzview"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app has the state shared by the commands.
type app struct {
	configPath string
	theme      string
	chartType  string
	x          string
	y          []string
	backend    string
	settings   string
	debug      bool
	verbose    bool
	quiet      bool

	// flags are the flags of the command being run.
	flags *pflag.FlagSet

	// data is the data file argument.
	data string

	// cfg is the config after flags are applied.
	cfg *config.Config

	// offscreen is set when the offscreen backend is used.
	offscreen *gpu.Offscreen
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tabula3d",
		Short: "Render tabular data as 3D charts",
		Long: `tabula3d turns JSON, YAML, CSV or XLSX tables into 3D chart scenes:
column, bar, scatter, line, surface, heatmap, waterfall and bubble.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (TOML)")
	pf.StringVar(&a.theme, "theme", "", "color theme: light or dark")
	pf.StringVarP(&a.chartType, "type", "t", "", "chart type, such as column, 3d-bar or scatter")
	pf.StringVarP(&a.x, "x", "x", "", "field with the category labels")
	pf.StringSliceVarP(&a.y, "y", "y", nil, "field with values, one series each (repeatable)")
	pf.StringVar(&a.settings, "settings", "", "chart settings file (TOML)")
	pf.StringVar(&a.backend, "backend", "", "graphics backend: offscreen or webgpu")
	pf.BoolVar(&a.debug, "debug", false, "show debug log messages")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "show info log messages")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "only show error log messages")

	root.AddCommand(a.renderCmd(), a.exportCmd(), a.watchCmd(), a.normalizeCmd())
	return root
}

// setup sets the log level and loads the config. An argument names
// the data file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	logx.UserLevel = logx.LevelFromFlags(a.debug, a.verbose, a.quiet)
	logx.SetDefaultLogger()
	a.flags = cmd.Flags()
	if len(args) > 0 {
		a.data = args[0]
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// loadConfig reads the config file, if any, with the flags that were
// set overriding it.
func (a *app) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Open(a.configPath); err != nil {
			return nil, err
		}
	}
	fl := a.flags
	if fl.Changed("theme") {
		if err := cfg.Theme.UnmarshalText([]byte(a.theme)); err != nil {
			return nil, err
		}
	}
	if fl.Changed("type") {
		cfg.Type = a.chartType
	}
	if fl.Changed("x") {
		cfg.X = a.x
	}
	if fl.Changed("y") {
		cfg.Y = a.y
	}
	if fl.Changed("backend") {
		cfg.Backend = a.backend
	}
	if fl.Changed("settings") {
		cfg.Settings = a.settings
	}
	if a.data != "" {
		cfg.Data = a.data
	}
	if err := cfg.LoadSettings(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// loadData reads the raw data file, or returns nil without a data
// file so that the fallback data is shown.
func loadData(cfg *config.Config) (any, error) {
	if cfg.Data == "" {
		return nil, nil
	}
	path, err := cfg.DataPath()
	if err != nil {
		return nil, err
	}
	return tabular.LoadFile(path)
}

// props returns the view props for raw data.
func (a *app) props(raw any) xyzview.Props {
	return xyzview.Props{
		Data:      raw,
		Axes:      a.cfg.Axes(),
		ChartType: a.cfg.Type,
		Theme:     a.cfg.Theme,
	}
}

// newBackend returns the configured graphics backend.
func (a *app) newBackend() gpu.Backend {
	if a.cfg.Backend == "webgpu" {
		return webgpu.New
	}
	a.offscreen = gpu.NewOffscreen()
	return a.offscreen.New
}

// newView returns an unmounted view of raw data.
func (a *app) newView(raw any, sched xyzview.Scheduler) *xyzview.View {
	v := xyzview.NewView(a.newBackend(), sched, a.props(raw))
	v.Settings = &a.cfg.Chart
	return v
}
