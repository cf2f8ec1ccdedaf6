// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/postfx/render"
)

// Option configures a Post during creation.
//
// Example:
//
//	// Defaults: surface size, clamp-to-edge, linear filtering
//	post, _ := postfx.New(ctx)
//
//	// Fixed 512x512 at 2x density with nearest filtering
//	post, _ := postfx.New(ctx,
//	    postfx.WithWidth(512),
//	    postfx.WithDPR(2),
//	    postfx.WithFilter(gputypes.FilterModeNearest, gputypes.FilterModeNearest),
//	)
type Option func(*options)

// options holds the resolved configuration of a Post. It is built once in
// New and never mutated afterwards.
type options struct {
	size     Size
	wrapS    gputypes.AddressMode
	wrapT    gputypes.AddressMode
	minFil   gputypes.FilterMode
	magFil   gputypes.FilterMode
	format   gputypes.TextureFormat
	geometry *render.Geometry
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		wrapS:  gputypes.AddressModeClampToEdge,
		wrapT:  gputypes.AddressModeClampToEdge,
		minFil: gputypes.FilterModeLinear,
		magFil: gputypes.FilterModeLinear,
		format: gputypes.TextureFormatRGBA8Unorm,
	}
}

// targetOptions returns the swap chain target options at the given size.
func (o *options) targetOptions(width, height int) render.TargetOptions {
	return render.TargetOptions{
		Width:     width,
		Height:    height,
		WrapS:     o.wrapS,
		WrapT:     o.wrapT,
		MinFilter: o.minFil,
		MagFilter: o.magFil,
		Format:    o.format,
		Label:     "postfx",
	}
}

// WithSize sets the initial logical size. A zero height means "same as width".
func WithSize(width, height int) Option {
	return func(o *options) {
		o.size.Width = width
		o.size.Height = height
	}
}

// WithWidth sets a square initial logical size.
func WithWidth(width int) Option {
	return WithSize(width, 0)
}

// WithDPR sets the initial device-pixel-ratio. Without it the context's
// ratio is used.
func WithDPR(dpr float64) Option {
	return func(o *options) {
		o.size.DPR = dpr
	}
}

// WithWrap sets the address modes of the swap chain targets.
func WithWrap(s, t gputypes.AddressMode) Option {
	return func(o *options) {
		o.wrapS = s
		o.wrapT = t
	}
}

// WithFilter sets the minification and magnification filters of the swap
// chain targets.
func WithFilter(minFilter, magFilter gputypes.FilterMode) Option {
	return func(o *options) {
		o.minFil = minFilter
		o.magFil = magFilter
	}
}

// WithFormat sets the texture format of the swap chain targets.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithGeometry replaces the full-screen triangle shared by every pass mesh.
func WithGeometry(g *render.Geometry) Option {
	return func(o *options) {
		o.geometry = g
	}
}
