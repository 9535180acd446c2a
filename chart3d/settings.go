// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"fmt"
	"io"
	"os"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/base/reflectx"
	"github.com/tabula3d/tabula3d/math32"
)

// Settings has the visual constants used to build chart scenes.
// None of them change what data is drawn, only how it looks.
type Settings struct {

	// MaxHeight is the scene height of the largest value.
	MaxHeight float64 `default:"2.5"`

	// PointCap is the maximum number of points drawn per series.
	PointCap int `default:"8"`

	// Spacing is the distance between consecutive points.
	Spacing float32 `default:"0.8"`

	// SeriesSpacing is the distance between series.
	SeriesSpacing float32 `default:"0.5"`

	// BoxSize is the width and depth of column and bar boxes.
	BoxSize float32 `default:"0.4"`

	// MinBarHeight is the smallest box height drawn, so that the
	// minimum value stays visible.
	MinBarHeight float32 `default:"0.05"`

	// ScatterRadius is the sphere radius for scatter points.
	ScatterRadius float32 `default:"0.12"`

	// LineRadius is the sphere radius for line points.
	LineRadius float32 `default:"0.08"`

	// SphereSegments is the number of segments around spheres.
	SphereSegments int `default:"16"`

	// SurfaceSize is the width and depth of the surface plane.
	SurfaceSize float32 `default:"4"`

	// SurfaceSegments is the number of subdivisions along each side
	// of the surface plane.
	SurfaceSegments int `default:"20"`

	// WaveFreqX and WaveFreqZ are the frequencies of the surface wave
	// sin(x*WaveFreqX) + sin(z*WaveFreqZ).
	WaveFreqX float32 `default:"1.5"`
	WaveFreqZ float32 `default:"2"`

	// WaveAmp scales the surface wave.
	WaveAmp float32 `default:"0.3"`

	// SurfaceDataScale scales the data height added to the wave.
	SurfaceDataScale float32 `default:"0.3"`

	// HeatmapCell is the width and depth of heatmap cells.
	HeatmapCell float32 `default:"0.5"`

	// HeatmapSpacing is the distance between heatmap cells.
	HeatmapSpacing float32 `default:"0.6"`

	// HeatmapShade is how far toward white the lowest value in a
	// heatmap color bucket is lightened, in [0, 1].
	HeatmapShade float64 `default:"0.3"`

	// WaterfallWidth is the width of waterfall bars.
	WaterfallWidth float32 `default:"0.5"`

	// ConnectorAlpha is the opacity of waterfall connectors.
	ConnectorAlpha uint8 `default:"128"`

	// BubbleMinRadius is the radius of the smallest bubble.
	BubbleMinRadius float32 `default:"0.1"`

	// BubbleRadiusRange is added to the radius of the largest bubble.
	BubbleRadiusRange float32 `default:"0.3"`

	// BubbleLift multiplies the height of bubbles.
	BubbleLift float32 `default:"1.5"`

	// BubbleAlpha is the opacity of bubbles.
	BubbleAlpha uint8 `default:"204"`

	// GridSize is the size of the ground grid.
	GridSize float32 `default:"10"`

	// GridDivisions is the number of cells along each side of the grid.
	GridDivisions int `default:"10"`

	// FloorSize is the size of the floor plane.
	FloorSize float32 `default:"10"`

	// CameraPos is the position of the camera, which looks at the origin.
	CameraPos math32.Vector3 `default:"{'X':4,'Y':4,'Z':6}"`

	// CameraFOV is the vertical field of view in degrees.
	CameraFOV float32 `default:"75"`

	// AutoRotate turns on camera auto rotation.
	AutoRotate bool `default:"true"`

	// AutoRotateSpeed is the auto rotation speed; 2 is a full turn
	// every 30 seconds at 60 frames per second.
	AutoRotateSpeed float32 `default:"2"`

	// DampingFactor is the orbit damping factor.
	DampingFactor float32 `default:"0.05"`
}

// Defaults sets the stock values from the default tags.
func (st *Settings) Defaults() {
	*st = Settings{}
	errors.Log(reflectx.SetFromDefaultTags(st))
}

// DefaultSettings returns settings with the stock values.
func DefaultSettings() *Settings {
	st := &Settings{}
	st.Defaults()
	return st
}

// Validate returns an error for settings that cannot produce a scene.
func (st *Settings) Validate() error {
	var errs []error
	if st.MaxHeight <= 0 {
		errs = append(errs, fmt.Errorf("MaxHeight must be positive, not %g", st.MaxHeight))
	}
	if st.PointCap < 1 {
		errs = append(errs, fmt.Errorf("PointCap must be at least 1, not %d", st.PointCap))
	}
	if st.SurfaceSegments < 1 {
		errs = append(errs, fmt.Errorf("SurfaceSegments must be at least 1, not %d", st.SurfaceSegments))
	}
	if st.SphereSegments < 3 {
		errs = append(errs, fmt.Errorf("SphereSegments must be at least 3, not %d", st.SphereSegments))
	}
	if st.HeatmapShade < 0 || st.HeatmapShade > 1 {
		errs = append(errs, fmt.Errorf("HeatmapShade must be in [0, 1], not %g", st.HeatmapShade))
	}
	if st.GridDivisions < 1 {
		errs = append(errs, fmt.Errorf("GridDivisions must be at least 1, not %d", st.GridDivisions))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("chart3d.Settings: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the settings.
func (st *Settings) Clone() *Settings {
	cp := &Settings{}
	if err := copier.CopyWithOption(cp, st, copier.Option{DeepCopy: true}); err != nil {
		*cp = *st
	}
	return cp
}

// DecodeSettings reads TOML settings over the stock values.
func DecodeSettings(r io.Reader) (*Settings, error) {
	st := DefaultSettings()
	if err := toml.NewDecoder(r).Decode(st); err != nil {
		return nil, fmt.Errorf("chart3d.Settings: %w", err)
	}
	return st, st.Validate()
}

// OpenSettings reads TOML settings from a file over the stock values.
func OpenSettings(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := DecodeSettings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}
