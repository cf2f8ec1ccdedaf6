// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"github.com/gogpu/postfx/render"
)

// PassConfig describes a pass to add with Post.AddPass.
//
// The zero value is a valid identity pass: default shaders, no extra
// uniforms, input bound to "tMap", enabled.
type PassConfig struct {
	// Vertex and Fragment are WGSL sources. Empty selects DefaultVertex and
	// DefaultFragment.
	Vertex   string
	Fragment string

	// Uniforms are the pass's extra uniforms. The map is copied; the
	// caller's map and its entries are never modified.
	Uniforms render.Uniforms

	// TextureUniform names the uniform the input texture is bound to.
	// Empty selects DefaultTextureUniform.
	TextureUniform string

	// Disabled adds the pass switched off.
	Disabled bool

	// Kernel is the CPU implementation of Fragment for contexts that do not
	// run shader source. When Fragment is the default and Kernel is nil, an
	// identity kernel is used.
	Kernel render.FragmentFunc

	// Label is an optional debug label.
	Label string
}

// withDefaults returns a copy of c with every unset field defaulted.
func (c PassConfig) withDefaults() PassConfig {
	if c.Vertex == "" {
		c.Vertex = DefaultVertex
	}
	if c.Fragment == "" {
		c.Fragment = DefaultFragment
	}
	if c.TextureUniform == "" {
		c.TextureUniform = DefaultTextureUniform
	}
	if c.Kernel == nil && c.Fragment == DefaultFragment {
		c.Kernel = render.IdentityKernel(c.TextureUniform)
	}
	return c
}

// Pass is one full-screen stage of a Post.
//
// A Pass is created by Post.AddPass and lives until Post.Release. Its
// position in the chain never changes; toggling it with SetEnabled only
// includes or skips it.
type Pass struct {
	mesh           render.Mesh
	program        render.Program
	uniforms       render.Uniforms
	textureUniform string
	enabled        bool
	label          string
}

// SetEnabled includes or skips the pass from the next frame on.
func (p *Pass) SetEnabled(enabled bool) { p.enabled = enabled }

// Enabled reports whether the pass runs.
func (p *Pass) Enabled() bool { return p.enabled }

// Uniforms returns the pass's live uniform table, including the input
// texture entry. Changes are picked up on the next draw.
func (p *Pass) Uniforms() render.Uniforms { return p.uniforms }

// SetUniform stores v under name.
func (p *Pass) SetUniform(name string, v render.UniformValue) { p.uniforms.Set(name, v) }

// Mesh returns the pass's full-screen mesh.
func (p *Pass) Mesh() render.Mesh { return p.mesh }

// Program returns the pass's program.
func (p *Pass) Program() render.Program { return p.program }

// TextureUniform returns the name of the input texture uniform.
func (p *Pass) TextureUniform() string { return p.textureUniform }

// Label returns the debug label.
func (p *Pass) Label() string { return p.label }

// bindInput points the input uniform at the chain's current read texture.
func (p *Pass) bindInput(chain *SwapChain) {
	p.uniforms.Set(p.textureUniform, render.TextureUniform{Source: chain.ReadTexture})
}

func (p *Pass) release() {
	p.mesh.Release()
	p.program.Release()
}
