// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart3d

import (
	"github.com/tabula3d/tabula3d/math32"
	"github.com/tabula3d/tabula3d/xyz"
)

// buildSurface makes a single subdivided plane whose vertex heights
// are a wave over the plane, sin(x*WaveFreqX) + sin(z*WaveFreqZ),
// plus the scaled data: vertex k adds the mean over series of the
// height of value k, indexed cyclically. Every point of every series
// drives the mesh, so all are recorded as consumed.
func buildSurface(bc *BuildContext) error {
	st := bc.Settings
	ms := xyz.NewPlane("surface", st.SurfaceSize, st.SurfaceSize, st.SurfaceSegments, st.SurfaceSegments)
	ns := bc.NumSeries()
	ms.Displace(func(k int, x, z float32) float32 {
		wave := st.WaveAmp * (math32.Sin(x*st.WaveFreqX) + math32.Sin(z*st.WaveFreqZ))
		data := float32(0)
		for _, sr := range bc.Data.Series {
			if n := len(sr.Values); n > 0 {
				data += bc.Height(sr.Values[k%n])
			}
		}
		if ns > 0 {
			data /= float32(ns)
		}
		return wave + data*st.SurfaceDataScale
	})
	sld := bc.AddSolid(ms, bc.Color(0), xyz.Tag{Series: -1, Point: -1, Role: xyz.RoleSurface})
	sld.Material.CullBack = false
	sld.Material.Shiny = 60
	for s, sr := range bc.Data.Series {
		bc.Objects.Consume(s, len(sr.Values))
	}
	return nil
}
