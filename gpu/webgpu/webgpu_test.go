// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"encoding/binary"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/chart3d"
	"github.com/tabula3d/tabula3d/colors"
	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/math32"
	"github.com/tabula3d/tabula3d/tabular"
)

func float32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestSceneBytes(t *testing.T) {
	fr := &gpu.Frame{
		View:       *math32.Identity4(),
		Projection: *math32.Identity4(),
		Eye:        math32.Vec3(4, 4, 6),
		Lights: []gpu.Light{
			{Kind: gpu.AmbientLight, Color: math32.Vec3(0.5, 0.5, 0.5)},
			{Kind: gpu.DirLight, Color: math32.Vec3(1, 1, 1), Pos: math32.Vec3(0, 1, 1)},
		},
	}
	b := sceneBytes(fr)
	require.Len(t, b, sceneSize)
	assert.Equal(t, float32(1), float32At(b, 0))
	assert.Equal(t, float32(1), float32At(b, 64))
	assert.Equal(t, float32(6), float32At(b, 128+8))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(b[144:]))

	// second light: color with kind, then position
	lt := 160 + 32
	assert.Equal(t, float32(1), float32At(b, lt))
	assert.Equal(t, float32(gpu.DirLight), float32At(b, lt+12))
	assert.Equal(t, float32(1), float32At(b, lt+16+8))

	for range 10 {
		fr.Lights = append(fr.Lights, gpu.Light{Kind: gpu.AmbientLight})
	}
	b = sceneBytes(fr)
	require.Len(t, b, sceneSize)
	assert.Equal(t, uint32(gpu.MaxLights), binary.LittleEndian.Uint32(b[144:]))
}

func TestModelBytes(t *testing.T) {
	draws := make([]gpu.Draw, 3)
	for i := range draws {
		draws[i].Model.SetIdentity()
		draws[i].Model[12] = float32(i + 1)
	}
	b := modelBytes(draws)
	require.Len(t, b, 3*modelStride)
	for i := range draws {
		off := i * modelStride
		assert.Equal(t, float32(1), float32At(b, off))
		assert.Equal(t, float32(i+1), float32At(b, off+12*4))
		assert.Equal(t, float32(0), float32At(b, off+modelSize))
	}
	assert.Empty(t, modelBytes(nil))
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, pipelineKey{primitive: gpu.Triangles, cullBack: true},
		keyOf(&gpu.Draw{CullBack: true}))
	assert.Equal(t, pipelineKey{primitive: gpu.Lines, transparent: true},
		keyOf(&gpu.Draw{Primitive: gpu.Lines, CullBack: true, Transparent: true}))
}

func TestShaderSource(t *testing.T) {
	assert.Contains(t, phongShader, "fn vs_main")
	assert.Contains(t, phongShader, "fn fs_main")
	assert.Contains(t, phongShader, "array<Light, 8>")
	assert.Equal(t, 8, gpu.MaxLights)
}

func TestRenderChart(t *testing.T) {
	ctx, err := New(image.Pt(320, 240))
	if errors.Is(err, gpu.ErrNoBackend) {
		t.Skip("no webgpu adapter:", err)
	}
	require.NoError(t, err)
	defer ctx.Release()

	for _, ct := range []string{"column", "line", "bubble"} {
		m := chart3d.NewManager(nil)
		m.SetSize(ctx.Size())
		require.NoError(t, m.Rebuild([]any{3.0, 1.0, 2.0}, tabular.AxisSelection{}, ct, colors.Dark))
		for range 3 {
			require.NoError(t, m.Tick(ctx), ct)
		}
		assert.Positive(t, ctx.Device().Live())
		m.Dispose()
		assert.Equal(t, 0, ctx.Device().Live(), ct)
	}
	ctx.SetSize(image.Pt(640, 480))
	assert.Equal(t, image.Pt(640, 480), ctx.Size())
}
