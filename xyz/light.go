// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/math32"
)

// Light represents a light that illuminates a scene.
// These are stored on the [Scene] object and not within the tree.
type Light interface {

	// AsLightBase returns the [LightBase] for this Light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
type LightBase struct {

	// Name is the name of the light, which matters since lights are accessed by name.
	Name string

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness of the light in normalized 0-1 units.
	// It is multiplied by the color.
	Lumens float32

	// Color is the color of the light at full intensity.
	Color color.RGBA
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// premul returns the color as a vector scaled by lumens.
func (lb *LightBase) premul() math32.Vector3 {
	return math32.NewVector3Color(lb.Color).MulScalar(lb.Lumens)
}

// AmbientLight provides diffuse uniform lighting;
// typically only one of these in a [Scene].
type AmbientLight struct {
	LightBase
}

// NewAmbientLight adds an ambient light to the scene with the given
// name, standard color, and lumens (0-1 normalized).
func NewAmbientLight(sc *Scene, name string, lumens float32, color LightColors) *AmbientLight {
	lt := &AmbientLight{}
	lt.Name = name
	lt.On = true
	lt.Color = LightColorMap[color]
	lt.Lumens = lumens
	sc.AddLight(lt)
	return lt
}

// DirLight is a directional light, which projects light toward the
// origin from its position, with no attenuation, like the Sun.
type DirLight struct {
	LightBase

	// Pos is the position the light shines from toward the origin.
	Pos math32.Vector3
}

// NewDirLight adds a directional light to the scene. By default it is
// located overhead and toward the default camera (0, 1, 1).
func NewDirLight(sc *Scene, name string, lumens float32, color LightColors) *DirLight {
	lt := &DirLight{}
	lt.Name = name
	lt.On = true
	lt.Color = LightColorMap[color]
	lt.Lumens = lumens
	lt.Pos.Set(0, 1, 1)
	sc.AddLight(lt)
	return lt
}

// AddLight adds the given light to the scene, replacing any
// light with the same name.
func (sc *Scene) AddLight(lt Light) {
	sc.Lights.Add(lt.AsLightBase().Name, lt)
}

// frameLights returns the lights that are on, in the order added.
func (sc *Scene) frameLights() []gpu.Light {
	var fl []gpu.Light
	for _, kv := range sc.Lights.Order {
		lb := kv.Value.AsLightBase()
		if !lb.On {
			continue
		}
		switch l := kv.Value.(type) {
		case *AmbientLight:
			fl = append(fl, gpu.Light{Kind: gpu.AmbientLight, Color: lb.premul()})
		case *DirLight:
			fl = append(fl, gpu.Light{Kind: gpu.DirLight, Color: lb.premul(), Pos: l.Pos})
		}
	}
	return fl
}

// LightColors are standard light colors for different light sources.
type LightColors int32

const (
	DirectSun LightColors = iota
	Halogen
	Overcast
	FluorCool
)

// LightColorMap provides a map of named light colors.
var LightColorMap = map[LightColors]color.RGBA{
	DirectSun: {255, 255, 255, 255},
	Halogen:   {255, 241, 224, 255},
	Overcast:  {201, 226, 255, 255},
	FluorCool: {212, 235, 255, 255},
}
