// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"errors"
	"log/slog"
	"math"

	"github.com/gogpu/postfx/render"
)

// fakeTarget is a target that records its lifecycle.
type fakeTarget struct {
	id       int
	opts     render.TargetOptions
	released int
}

func (t *fakeTarget) Width() int              { return t.opts.Width }
func (t *fakeTarget) Height() int             { return t.opts.Height }
func (t *fakeTarget) Texture() render.Texture { return t }
func (t *fakeTarget) Release()                { t.released++ }

type fakeProgram struct {
	desc     render.ProgramDescriptor
	released int
}

func (p *fakeProgram) Uniforms() render.Uniforms { return p.desc.Uniforms }
func (p *fakeProgram) Release()                  { p.released++ }

type fakeMesh struct {
	geometry *render.Geometry
	program  *fakeProgram
	released int
}

func (m *fakeMesh) Program() render.Program { return m.program }
func (m *fakeMesh) Release()                { m.released++ }

// submission is one recorded Render call. inputs holds the textures the
// mesh's uniforms resolved to at submission time.
type submission struct {
	req    render.Request
	inputs map[string]render.Texture
}

// fakeContext records every call made by a Post.
type fakeContext struct {
	width, height int // surface size in device pixels
	dpr           float64

	targets     []*fakeTarget
	submissions []submission
	logger      *slog.Logger

	failTargetAfter int // fail NewTarget once this many targets exist; 0 never
	failRenderAt    int // fail the n-th Render (1-based); 0 never
	programErr      error
	meshErr         error
}

var errFake = errors.New("fake: injected failure")

func newFakeContext(width, height int) *fakeContext {
	return &fakeContext{width: width, height: height}
}

func (c *fakeContext) Render(req render.Request) error {
	sub := submission{req: req}
	if m, ok := req.Scene.(*fakeMesh); ok {
		sub.inputs = map[string]render.Texture{}
		for name := range m.program.desc.Uniforms {
			if tex, ok := m.program.desc.Uniforms.Texture(name); ok {
				sub.inputs[name] = tex
			}
		}
	}
	c.submissions = append(c.submissions, sub)
	if c.failRenderAt == len(c.submissions) {
		return errFake
	}
	return nil
}

func (c *fakeContext) NewTarget(opts render.TargetOptions) (render.Target, error) {
	if c.failTargetAfter > 0 && len(c.targets) >= c.failTargetAfter {
		return nil, errFake
	}
	t := &fakeTarget{id: len(c.targets), opts: opts}
	c.targets = append(c.targets, t)
	return t, nil
}

func (c *fakeContext) NewProgram(desc render.ProgramDescriptor) (render.Program, error) {
	if c.programErr != nil {
		return nil, c.programErr
	}
	return &fakeProgram{desc: desc}, nil
}

func (c *fakeContext) NewMesh(g *render.Geometry, p render.Program) (render.Mesh, error) {
	if c.meshErr != nil {
		return nil, c.meshErr
	}
	return &fakeMesh{geometry: g, program: p.(*fakeProgram)}, nil
}

func (c *fakeContext) PixelSize() (int, int)    { return c.width, c.height }
func (c *fakeContext) DPR() float64             { return c.dpr }
func (c *fakeContext) SetLogger(l *slog.Logger) { c.logger = l }

func (c *fakeContext) Size() (int, int) {
	if c.dpr <= 0 {
		return c.width, c.height
	}
	return int(math.Round(float64(c.width) / c.dpr)), int(math.Round(float64(c.height) / c.dpr))
}

// meshOf returns the fake mesh of a pass.
func meshOf(p *Pass) *fakeMesh { return p.Mesh().(*fakeMesh) }
