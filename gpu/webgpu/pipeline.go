// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/tabula3d/tabula3d/base/errors"
	"github.com/tabula3d/tabula3d/gpu"
	"github.com/tabula3d/tabula3d/math32"
)

//go:embed phong.wgsl
var phongShader string

const (
	// sceneSize is the size of the scene uniform: view and projection
	// matrixes, eye, light count, and the lights.
	sceneSize = 2*64 + 2*16 + gpu.MaxLights*32

	// modelSize is the size of one model matrix.
	modelSize = 64

	// modelStride is the offset between model matrixes in the model
	// buffer, which must be a multiple of the uniform offset alignment.
	modelStride = 256

	// vertexStride is the size of one interleaved position and normal.
	vertexStride = 6 * 4
)

// pipelineKey selects a render pipeline for a draw.
type pipelineKey struct {
	primitive   gpu.Primitives
	cullBack    bool
	transparent bool
}

func keyOf(d *gpu.Draw) pipelineKey {
	k := pipelineKey{primitive: d.Primitive, transparent: d.Transparent}
	if d.Primitive == gpu.Triangles {
		k.cullBack = d.CullBack
	}
	return k
}

// renderer draws frames with Phong lighting. Group 0 holds the scene
// uniform, group 1 the model matrix of each draw at a dynamic offset,
// and group 2 the material uniform of each draw.
type renderer struct {
	device  *wgpu.Device
	queue   *wgpu.Queue
	format  wgpu.TextureFormat
	shader  *wgpu.ShaderModule
	groups  [3]*wgpu.BindGroupLayout
	layout  *wgpu.PipelineLayout
	byKey   map[pipelineKey]*wgpu.RenderPipeline
	scene   *wgpu.Buffer
	sceneBG *wgpu.BindGroup

	models    *wgpu.Buffer
	modelsBG  *wgpu.BindGroup
	modelsCap int
}

func uniformLayout(dev *wgpu.Device, label string, dynamic bool, size uint64) (*wgpu.BindGroupLayout, error) {
	return dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: dynamic,
				MinBindingSize:   size,
			},
		}},
	})
}

func newRenderer(dev *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat) (*renderer, error) {
	r := &renderer{device: dev, queue: queue, format: format, byKey: map[pipelineKey]*wgpu.RenderPipeline{}}
	var err error
	r.shader, err = dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "phong",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: phongShader},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	sizes := [3]uint64{sceneSize, modelSize, materialSize}
	for i, name := range []string{"scene", "model", "material"} {
		r.groups[i], err = uniformLayout(dev, name, i == 1, sizes[i])
		if errors.Log(err) != nil {
			r.release()
			return nil, err
		}
	}
	r.layout, err = dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "phong",
		BindGroupLayouts: r.groups[:],
	})
	if errors.Log(err) != nil {
		r.release()
		return nil, err
	}
	r.scene, err = dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "scene",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  sceneSize,
	})
	if errors.Log(err) != nil {
		r.release()
		return nil, err
	}
	r.sceneBG, err = dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "scene",
		Layout:  r.groups[0],
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: r.scene, Size: wgpu.WholeSize}},
	})
	if errors.Log(err) != nil {
		r.release()
		return nil, err
	}
	return r, nil
}

// materialSize is the size of a material uniform: color,
// emissive color, and shiny, reflective, bright and cull.
const materialSize = 3 * 16

// pipeline returns the render pipeline for the key, making it if needed.
func (r *renderer) pipeline(k pipelineKey) (*wgpu.RenderPipeline, error) {
	if pl, ok := r.byKey[k]; ok {
		return pl, nil
	}
	prim := wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}
	if k.primitive == gpu.Lines {
		prim.Topology = wgpu.PrimitiveTopologyLineList
	}
	if k.cullBack {
		prim.CullMode = wgpu.CullModeBack
	}
	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	pl, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("phong-%v", k),
		Layout: r.layout,
		Vertex: wgpu.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: vertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Primitive: prim,
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: !k.transparent,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront:      stencil,
			StencilBack:       stencil,
		},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Fragment: &wgpu.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.format,
				Blend:     &wgpu.BlendStateAlphaBlending,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	r.byKey[k] = pl
	return pl, nil
}

// ensureModels makes sure the model buffer holds at least n matrixes.
func (r *renderer) ensureModels(n int) error {
	if n <= r.modelsCap {
		return nil
	}
	r.releaseModels()
	capacity := max(n, 64)
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "models",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(capacity * modelStride),
	})
	if errors.Log(err) != nil {
		return err
	}
	bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "models",
		Layout:  r.groups[1],
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: buf, Size: modelSize}},
	})
	if errors.Log(err) != nil {
		buf.Release()
		return err
	}
	r.models, r.modelsBG, r.modelsCap = buf, bg, capacity
	return nil
}

// draw records the frame into a render pass on cmd. The returned
// bind groups must be released after the commands are submitted.
func (r *renderer) draw(cmd *wgpu.CommandEncoder, color, depth *wgpu.TextureView, fr *gpu.Frame) ([]*wgpu.BindGroup, error) {
	if err := r.queue.WriteBuffer(r.scene, 0, sceneBytes(fr)); err != nil {
		return nil, err
	}
	if err := r.ensureModels(len(fr.Draws)); err != nil {
		return nil, err
	}
	if len(fr.Draws) > 0 {
		if err := r.queue.WriteBuffer(r.models, 0, modelBytes(fr.Draws)); err != nil {
			return nil, err
		}
	}
	var groups []*wgpu.BindGroup
	type call struct {
		pl         *wgpu.RenderPipeline
		mat        *wgpu.BindGroup
		vert, indx *Buffer
		n          int
	}
	calls := make([]call, 0, len(fr.Draws))
	for i := range fr.Draws {
		d := &fr.Draws[i]
		vb, vok := d.Vertex.(*Buffer)
		ib, iok := d.Index.(*Buffer)
		ub, uok := d.Uniform.(*Buffer)
		if !vok || !iok || !uok || vb.buffer == nil || ib.buffer == nil || ub.buffer == nil {
			return groups, fmt.Errorf("webgpu: draw %d has buffers from another device", i)
		}
		pl, err := r.pipeline(keyOf(d))
		if err != nil {
			return groups, err
		}
		mg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   "material",
			Layout:  r.groups[2],
			Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: ub.buffer, Size: wgpu.WholeSize}},
		})
		if errors.Log(err) != nil {
			return groups, err
		}
		groups = append(groups, mg)
		calls = append(calls, call{pl: pl, mat: mg, vert: vb, indx: ib, n: d.NumIndex})
	}
	cl := fr.Clear
	rp := cmd.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:   color,
			LoadOp: wgpu.LoadOpClear,
			ClearValue: wgpu.Color{
				R: float64(cl.R) / 255,
				G: float64(cl.G) / 255,
				B: float64(cl.B) / 255,
				A: float64(cl.A) / 255,
			},
			StoreOp: wgpu.StoreOpStore,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	defer rp.Release()
	rp.SetBindGroup(0, r.sceneBG, nil)
	for i, c := range calls {
		rp.SetPipeline(c.pl)
		rp.SetBindGroup(1, r.modelsBG, []uint32{uint32(i * modelStride)})
		rp.SetBindGroup(2, c.mat, nil)
		rp.SetVertexBuffer(0, c.vert.buffer, 0, wgpu.WholeSize)
		rp.SetIndexBuffer(c.indx.buffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		rp.DrawIndexed(uint32(c.n), 1, 0, 0, 0)
	}
	return groups, rp.End()
}

func (r *renderer) releaseModels() {
	if r.modelsBG != nil {
		r.modelsBG.Release()
		r.modelsBG = nil
	}
	if r.models != nil {
		r.models.Release()
		r.models = nil
	}
	r.modelsCap = 0
}

func (r *renderer) release() {
	r.releaseModels()
	for k, pl := range r.byKey {
		pl.Release()
		delete(r.byKey, k)
	}
	if r.sceneBG != nil {
		r.sceneBG.Release()
		r.sceneBG = nil
	}
	if r.scene != nil {
		r.scene.Release()
		r.scene = nil
	}
	if r.layout != nil {
		r.layout.Release()
		r.layout = nil
	}
	for i, g := range r.groups {
		if g != nil {
			g.Release()
			r.groups[i] = nil
		}
	}
	if r.shader != nil {
		r.shader.Release()
		r.shader = nil
	}
}

// sceneBytes packs the scene uniform for the frame. Lights past
// [gpu.MaxLights] are dropped.
func sceneBytes(fr *gpu.Frame) []byte {
	b := make([]byte, 0, sceneSize)
	b = appendMatrix(b, &fr.View)
	b = appendMatrix(b, &fr.Projection)
	b = appendVec4(b, fr.Eye, 1)
	n := min(len(fr.Lights), gpu.MaxLights)
	for _, v := range []uint32{uint32(n), 0, 0, 0} {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	for i := range gpu.MaxLights {
		var lt gpu.Light
		if i < n {
			lt = fr.Lights[i]
		}
		b = appendVec4(b, lt.Color, float32(lt.Kind))
		b = appendVec4(b, lt.Pos, 0)
	}
	return b
}

// modelBytes packs the model matrix of each draw at [modelStride].
func modelBytes(draws []gpu.Draw) []byte {
	b := make([]byte, len(draws)*modelStride)
	for i := range draws {
		appendMatrix(b[i*modelStride:i*modelStride], &draws[i].Model)
	}
	return b
}

func appendFloat32(b []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
}

func appendMatrix(b []byte, m *math32.Matrix4) []byte {
	for _, f := range m {
		b = appendFloat32(b, f)
	}
	return b
}

func appendVec4(b []byte, v math32.Vector3, w float32) []byte {
	b = appendFloat32(b, v.X)
	b = appendFloat32(b, v.Y)
	b = appendFloat32(b, v.Z)
	return appendFloat32(b, w)
}
