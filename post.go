// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"fmt"

	"github.com/gogpu/postfx/render"
)

// Post is a post-processing pipeline: a scene render followed by an ordered
// chain of full-screen passes over a two-target SwapChain.
//
// Post is NOT safe for concurrent use. Drive it from the render goroutine.
type Post struct {
	ctx      render.Context
	opts     options
	dims     Dimensions
	chain    *SwapChain
	passes   []*Pass
	released bool
}

// New creates a pipeline on ctx and allocates its swap chain.
//
// Without size options the swap chain follows the context's surface size
// and device-pixel-ratio.
func New(ctx render.Context, opts ...Option) (*Post, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.geometry == nil {
		o.geometry = render.FullscreenTriangle()
	}

	p := &Post{ctx: ctx, opts: o}
	p.dims.apply(o.size)
	w, h := p.pixelSize(p.dims)
	chain, err := NewSwapChain(ctx, o.targetOptions(w, h))
	if err != nil {
		return nil, err
	}
	p.chain = chain
	p.dims.PixelWidth, p.dims.PixelHeight = w, h

	trackContext(p, ctx)
	Logger().Debug("postfx: created", "width", w, "height", h)
	return p, nil
}

// AddPass appends a pass to the chain and returns its handle.
//
// Defaults are applied to cfg, its uniforms are copied and the input
// texture uniform is added to the copy, bound to the swap chain's read
// target. Context errors are returned wrapped.
func (p *Post) AddPass(cfg PassConfig) (*Pass, error) {
	if p.released {
		return nil, ErrReleased
	}
	cfg = cfg.withDefaults()

	uniforms := cfg.Uniforms.Clone()
	uniforms.Set(cfg.TextureUniform, render.TextureUniform{Source: p.chain.ReadTexture})

	program, err := p.ctx.NewProgram(render.ProgramDescriptor{
		Vertex:   cfg.Vertex,
		Fragment: cfg.Fragment,
		Uniforms: uniforms,
		Kernel:   cfg.Kernel,
		Label:    cfg.Label,
	})
	if err != nil {
		return nil, fmt.Errorf("postfx: pass %d program: %w", len(p.passes), err)
	}
	mesh, err := p.ctx.NewMesh(p.opts.geometry, program)
	if err != nil {
		program.Release()
		return nil, fmt.Errorf("postfx: pass %d mesh: %w", len(p.passes), err)
	}

	pass := &Pass{
		mesh:           mesh,
		program:        program,
		uniforms:       uniforms,
		textureUniform: cfg.TextureUniform,
		enabled:        !cfg.Disabled,
		label:          cfg.Label,
	}
	p.passes = append(p.passes, pass)
	Logger().Debug("postfx: pass added", "index", len(p.passes)-1, "label", cfg.Label, "enabled", pass.enabled)
	return pass, nil
}

// Resize updates the logical size and ratio and reallocates the swap chain
// at the resulting pixel size. See Size for the merge rules.
//
// The swap chain is reallocated on every call, even if the size did not
// change. If allocation fails the previous state is kept.
func (p *Post) Resize(size Size) error {
	if p.released {
		return ErrReleased
	}
	dims := p.dims
	dims.apply(size)
	w, h := p.pixelSize(dims)
	if err := p.chain.Resize(w, h); err != nil {
		return err
	}
	dims.PixelWidth, dims.PixelHeight = w, h
	p.dims = dims
	Logger().Debug("postfx: resized", "width", w, "height", h, "dpr", dims.DPR)
	return nil
}

func (p *Post) pixelSize(d Dimensions) (width, height int) {
	sw, sh := p.ctx.PixelSize()
	return d.effective(sw, sh, p.ctx.DPR())
}

// RenderOption configures a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	target      render.Target
	update      bool
	sort        bool
	frustumCull bool
}

// WithTarget sets the final target. Without it the last draw goes to the
// context's default surface.
func WithTarget(t render.Target) RenderOption {
	return func(o *renderOptions) { o.target = t }
}

// WithoutUpdate disables scene-graph updates for the scene draw.
func WithoutUpdate() RenderOption {
	return func(o *renderOptions) { o.update = false }
}

// WithoutSort disables draw sorting for the scene draw.
func WithoutSort() RenderOption {
	return func(o *renderOptions) { o.sort = false }
}

// WithoutFrustumCull disables frustum culling for the scene draw.
func WithoutFrustumCull() RenderOption {
	return func(o *renderOptions) { o.frustumCull = false }
}

// Render draws one frame.
//
// With no enabled passes the scene is drawn straight to the final target.
// Otherwise the scene is drawn into the swap chain and each enabled pass,
// in registration order, reads the previous output; the last one writes
// the final target. The swap chain is swapped after every draw. The first
// error stops the frame and is returned wrapped.
func (p *Post) Render(scene, camera any, opts ...RenderOption) error {
	if p.released {
		return ErrReleased
	}
	ro := renderOptions{update: true, sort: true, frustumCull: true}
	for _, opt := range opts {
		opt(&ro)
	}

	active := p.activePasses()
	sceneReq := render.Request{
		Scene:       scene,
		Camera:      camera,
		Target:      ro.target,
		Update:      ro.update,
		Sort:        ro.sort,
		FrustumCull: ro.frustumCull,
		Clear:       true,
	}
	if len(active) == 0 {
		if err := p.ctx.Render(sceneReq); err != nil {
			return fmt.Errorf("postfx: render scene: %w", err)
		}
		return nil
	}

	sceneReq.Target = p.chain.Write()
	if err := p.ctx.Render(sceneReq); err != nil {
		return fmt.Errorf("postfx: render scene: %w", err)
	}
	p.chain.Swap()

	last := len(active) - 1
	for i, pass := range active {
		pass.bindInput(p.chain)
		target := p.chain.Write()
		if i == last {
			target = ro.target
		}
		// A pass mesh has no scene graph to update, sort or cull.
		err := p.ctx.Render(render.Request{Scene: pass.mesh, Target: target})
		if err != nil {
			return fmt.Errorf("postfx: render pass %d %q: %w", i, pass.label, err)
		}
		p.chain.Swap()
	}
	return nil
}

// activePasses returns the enabled passes in registration order.
func (p *Post) activePasses() []*Pass {
	active := make([]*Pass, 0, len(p.passes))
	for _, pass := range p.passes {
		if pass.enabled {
			active = append(active, pass)
		}
	}
	return active
}

// Passes returns the registered passes in execution order.
func (p *Post) Passes() []*Pass {
	return append([]*Pass(nil), p.passes...)
}

// Dimensions returns the current sizing state.
func (p *Post) Dimensions() Dimensions {
	return p.dims
}

// SwapChain returns the pipeline's swap chain.
func (p *Post) SwapChain() *SwapChain {
	return p.chain
}

// Release frees every pass's mesh and program and the swap chain. Later
// calls to AddPass, Resize and Render return ErrReleased. Release is
// idempotent.
func (p *Post) Release() {
	if p.released {
		return
	}
	p.released = true
	for _, pass := range p.passes {
		pass.release()
	}
	p.chain.Release()
	untrackContext(p)
	Logger().Debug("postfx: released", "passes", len(p.passes))
}
