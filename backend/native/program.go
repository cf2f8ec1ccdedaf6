// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/postfx/internal/cache"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/wgpu/hal"
)

// Shader entry points of every pass program.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// spirvCache holds compiled modules keyed by WGSL source, so passes sharing
// a shader compile it once.
var spirvCache = cache.New[string, []uint32](64)

// Program is a compiled pass program: one shader module, its bind group
// layout and a render pipeline per destination format.
type Program struct {
	ctx   *Context
	label string

	uniforms render.Uniforms
	textures []string
	block    uniformBlock

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipelines  map[gputypes.TextureFormat]hal.RenderPipeline

	released bool
}

// NewProgram compiles desc.Vertex and desc.Fragment as one WGSL module.
//
// The texture and uniform bindings are derived from desc.Uniforms once;
// later value updates are honoured, later additions are not.
func (c *Context) NewProgram(desc render.ProgramDescriptor) (render.Program, error) {
	label := desc.Label
	if label == "" {
		label = "postfx_program"
	}
	uniforms := desc.Uniforms
	if uniforms == nil {
		uniforms = render.Uniforms{}
	}

	spirv, err := compileShaderToSPIRV(desc.Vertex + "\n" + desc.Fragment)
	if err != nil {
		return nil, fmt.Errorf("native: program %q: %w", label, err)
	}

	p := &Program{
		ctx:       c,
		label:     label,
		uniforms:  uniforms,
		textures:  textureNames(uniforms),
		block:     newUniformBlock(uniforms),
		pipelines: make(map[gputypes.TextureFormat]hal.RenderPipeline),
	}

	shader, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create shader %q: %w", label, err)
	}
	p.shader = shader

	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: p.layoutEntries(),
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("native: create bind group layout %q: %w", label, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("native: create pipeline layout %q: %w", label, err)
	}
	p.pipeLayout = pipeLayout

	slogger().Debug("native: program", "label", label, "textures", p.textures, "uniformBytes", p.block.size)
	return p, nil
}

// Uniforms returns the live uniform table.
func (p *Program) Uniforms() render.Uniforms { return p.uniforms }

// Label returns the debug label.
func (p *Program) Label() string { return p.label }

// uniformBinding is the binding index of the uniform buffer.
func (p *Program) uniformBinding() uint32 {
	return uint32(2 * len(p.textures))
}

// layoutEntries describes bind group 0.
func (p *Program) layoutEntries() []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, 2*len(p.textures)+1)
	for i := range p.textures {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    uint32(2 * i),
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    uint32(2*i + 1),
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	if p.block.size > 0 {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    p.uniformBinding(),
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		})
	}
	return entries
}

// pipeline returns the render pipeline for the destination format,
// creating it on first use.
func (p *Program) pipeline(format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if pl, ok := p.pipelines[format]; ok {
		return pl, nil
	}
	pl, err := p.ctx.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  p.label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    passVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create pipeline %q: %w", p.label, err)
	}
	p.pipelines[format] = pl
	return pl, nil
}

// Release destroys pipelines, layouts and the shader module in reverse
// creation order. Safe to call more than once.
func (p *Program) Release() {
	if p.released {
		return
	}
	p.released = true
	device := p.ctx.device
	for format, pl := range p.pipelines {
		device.DestroyRenderPipeline(pl)
		delete(p.pipelines, format)
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// compileShaderToSPIRV compiles WGSL source to SPIR-V words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	if code, ok := spirvCache.Get(wgslSource); ok {
		return code, nil
	}
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	spirvCache.Set(wgslSource, spirvCode)
	return spirvCode, nil
}

var _ render.Program = (*Program)(nil)
