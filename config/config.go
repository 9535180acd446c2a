// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// struct for the tabula3d tool.
package config

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/base/reflectx"
	"github.com/tabula3d/tabula3d/chart3d"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/tabular"
)

// Config is the main config struct that contains all of the
// configuration options for the tabula3d tool. Command line flags
// override the values read from a config file.
type Config struct {

	// Data is the path of the data file: JSON, YAML, CSV or XLSX.
	Data string `toml:"data"`

	// Type is the chart type name.
	Type string `toml:"type" default:"column"`

	// Theme is the color theme, light or dark.
	Theme colors.Themes `toml:"theme"`

	// X is the field with the category labels.
	X string `toml:"x"`

	// Y are the fields with the values, one series each.
	Y []string `toml:"y"`

	// Width and Height are the output size in pixels.
	Width  int `toml:"width" default:"640"`
	Height int `toml:"height" default:"480"`

	// FPS is the frame rate of the render loop.
	FPS int `toml:"fps" default:"30"`

	// Frames is the number of frames rendered by the render command.
	Frames int `toml:"frames" default:"60"`

	// Backend is the graphics backend: offscreen or webgpu.
	Backend string `toml:"backend" default:"offscreen"`

	// Settings is the path of a TOML file of chart settings that
	// replaces the [chart] table when set.
	Settings string `toml:"settings"`

	// Chart has the visual constants of the chart scene.
	Chart chart3d.Settings `toml:"chart"`
}

// Defaults sets the default values from the default tags.
func (c *Config) Defaults() {
	*c = Config{}
	errors.Log(reflectx.SetFromDefaultTags(c))
}

// Default returns a config with the default values.
func Default() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Decode reads TOML over the default values and validates the result.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	if err := toml.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, c.Validate()
}

// Open reads the config file at path over the default values.
func Open(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Write writes the config as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate returns an error for values that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, not %dx%d", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, not %d", c.FPS))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, not %d", c.Frames))
	}
	switch c.Backend {
	case "offscreen", "webgpu":
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if err := c.Chart.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Axes returns the axis selection.
func (c *Config) Axes() tabular.AxisSelection {
	return tabular.AxisSelection{X: c.X, Y: c.Y}
}

// Size returns the output size.
func (c *Config) Size() image.Point {
	return image.Pt(c.Width, c.Height)
}

// ChartSpec returns the chart spec.
func (c *Config) ChartSpec() chart3d.ChartSpec {
	return chart3d.ChartSpec{Type: chart3d.ParseChartType(c.Type), Axes: c.Axes(), Theme: c.Theme}
}

// DataPath returns [Config.Data] with a leading ~ expanded to the
// home directory.
func (c *Config) DataPath() (string, error) {
	return homedir.Expand(c.Data)
}

// LoadSettings replaces [Config.Chart] with the settings file
// named by [Config.Settings], if any.
func (c *Config) LoadSettings() error {
	if c.Settings == "" {
		return nil
	}
	path, err := homedir.Expand(c.Settings)
	if err != nil {
		return err
	}
	st, err := chart3d.OpenSettings(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Chart = *st
	return nil
}
