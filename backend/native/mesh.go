// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/wgpu/hal"
)

// passVertexStride is the byte stride per vertex.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	uv       (vec2<f32>) = 8 bytes (location 1)
const passVertexStride = 16

// Mesh is geometry uploaded to a vertex buffer, paired with a Program.
type Mesh struct {
	ctx     *Context
	program *Program

	vertexBuf   hal.Buffer
	vertexCount uint32

	released bool
}

// NewMesh uploads geometry for drawing with program, which must come from
// this context.
func (c *Context) NewMesh(geometry *render.Geometry, program render.Program) (render.Mesh, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	p, ok := program.(*Program)
	if !ok || p.ctx != c {
		return nil, fmt.Errorf("native: mesh program %T not created by this context", program)
	}

	data := buildPassVertices(geometry)
	buf, err := c.createAndUploadBuffer(p.label+"_vertices", data,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return &Mesh{
		ctx:         c,
		program:     p,
		vertexBuf:   buf,
		vertexCount: uint32(geometry.VertexCount()),
	}, nil
}

// Program returns the program the mesh draws with.
func (m *Mesh) Program() render.Program { return m.program }

// Release destroys the vertex buffer. Safe to call more than once.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	if m.vertexBuf != nil {
		m.ctx.device.DestroyBuffer(m.vertexBuf)
		m.vertexBuf = nil
	}
}

// drawResources are the per-draw objects freed after submission.
type drawResources struct {
	pipeline   hal.RenderPipeline
	bindGroup  hal.BindGroup
	uniformBuf hal.Buffer
}

func (r *drawResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
}

// prepare resolves the textures and uniform values of the mesh's program
// and builds the bind group for one draw into dst.
func (m *Mesh) prepare(dst *Target) (*drawResources, error) {
	p := m.program
	c := m.ctx
	if p.released {
		return nil, fmt.Errorf("native: program %q released", p.label)
	}

	pipeline, err := p.pipeline(dst.format)
	if err != nil {
		return nil, err
	}
	res := &drawResources{pipeline: pipeline}

	entries := make([]gputypes.BindGroupEntry, 0, 2*len(p.textures)+1)
	for i, name := range p.textures {
		src, err := c.sampled(p.uniforms, name, dst)
		if err != nil {
			return nil, err
		}
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: uint32(2 * i), Resource: gputypes.TextureViewBinding{
				TextureView: src.view.NativeHandle(),
			}},
			gputypes.BindGroupEntry{Binding: uint32(2*i + 1), Resource: gputypes.SamplerBinding{
				Sampler: src.sampler.NativeHandle(),
			}},
		)
	}

	if p.block.size > 0 {
		data, err := p.block.pack(p.uniforms)
		if err != nil {
			return nil, err
		}
		res.uniformBuf, err = c.createAndUploadBuffer(p.label+"_uniforms", data,
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		entries = append(entries, gputypes.BindGroupEntry{Binding: p.uniformBinding(), Resource: gputypes.BufferBinding{
			Buffer: res.uniformBuf.NativeHandle(), Offset: 0, Size: uint64(p.block.size),
		}})
	}

	res.bindGroup, err = c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + "_bind",
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		res.destroy(c.device)
		return nil, fmt.Errorf("native: create bind group %q: %w", p.label, err)
	}
	return res, nil
}

// sampled resolves the texture uniform name to an offscreen target of this
// context that is not the draw destination.
func (c *Context) sampled(u render.Uniforms, name string, dst *Target) (*Target, error) {
	tex, ok := u.Texture(name)
	if !ok {
		return nil, fmt.Errorf("native: uniform %q: %w", name, render.ErrNilTarget)
	}
	src, ok := tex.(*Target)
	if !ok || src.ctx != c || src.external {
		return nil, fmt.Errorf("native: uniform %q: %w", name, render.ErrUnsupportedTarget)
	}
	if src.released {
		return nil, fmt.Errorf("native: uniform %q: %w", name, render.ErrReleasedTarget)
	}
	if src == dst {
		return nil, fmt.Errorf("native: uniform %q samples the target being drawn", name)
	}
	return src, nil
}

// buildPassVertices interleaves position and uv. The uv v component is
// flipped from the bottom-left convention of render.Geometry to the
// top-left origin of WebGPU textures.
func buildPassVertices(g *render.Geometry) []byte {
	pos := g.Attributes[render.AttributePosition].Data
	uv := g.Attributes[render.AttributeUV].Data
	n := g.VertexCount()

	buf := make([]byte, n*passVertexStride)
	for i := range n {
		putFloats(buf[i*passVertexStride:], pos[2*i], pos[2*i+1], uv[2*i], 1-uv[2*i+1])
	}
	return buf
}

// passVertexLayout returns the vertex buffer layout for pass pipelines.
func passVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: passVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}

var _ render.Mesh = (*Mesh)(nil)
