// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"fmt"

	"github.com/gogpu/postfx/render"
)

// SwapChain is a pair of offscreen targets with swappable read and write
// roles.
//
// The chain owns both targets. Every reallocation releases the previous
// pair, and Release frees the current one.
type SwapChain struct {
	ctx   render.Context
	opts  render.TargetOptions
	read  render.Target
	write render.Target
}

// NewSwapChain allocates two targets with identical options.
func NewSwapChain(ctx render.Context, opts render.TargetOptions) (*SwapChain, error) {
	s := &SwapChain{ctx: ctx, opts: opts}
	read, write, err := s.allocate(opts)
	if err != nil {
		return nil, err
	}
	s.read, s.write = read, write
	return s, nil
}

// Read returns the target holding the most recent output.
func (s *SwapChain) Read() render.Target { return s.read }

// Write returns the target the next submission draws into.
func (s *SwapChain) Write() render.Target { return s.write }

// Options returns the options both targets were allocated with.
func (s *SwapChain) Options() render.TargetOptions { return s.opts }

// Swap exchanges the read and write roles. No pixels move.
func (s *SwapChain) Swap() {
	s.read, s.write = s.write, s.read
}

// ReadTexture returns the current read target's texture, or nil once the
// chain is released. Pass input uniforms hold this method as their accessor.
func (s *SwapChain) ReadTexture() render.Texture {
	if s.read == nil {
		return nil
	}
	return s.read.Texture()
}

// Resize replaces both targets with fresh ones of the new size. Wrap, filter
// and format are unchanged. On failure the previous pair stays installed.
func (s *SwapChain) Resize(width, height int) error {
	opts := s.opts
	opts.Width, opts.Height = width, height

	read, write, err := s.allocate(opts)
	if err != nil {
		return err
	}
	s.Release()
	s.opts = opts
	s.read, s.write = read, write
	return nil
}

// Release frees both targets. Safe to call more than once.
func (s *SwapChain) Release() {
	if s.read != nil {
		s.read.Release()
		s.read = nil
	}
	if s.write != nil {
		s.write.Release()
		s.write = nil
	}
}

func (s *SwapChain) allocate(opts render.TargetOptions) (read, write render.Target, err error) {
	label := opts.Label
	opts.Label = label + " read"
	read, err = s.ctx.NewTarget(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("postfx: allocate read target %dx%d: %w", opts.Width, opts.Height, err)
	}
	opts.Label = label + " write"
	write, err = s.ctx.NewTarget(opts)
	if err != nil {
		read.Release()
		return nil, nil, fmt.Errorf("postfx: allocate write target %dx%d: %w", opts.Width, opts.Height, err)
	}
	return read, write, nil
}
