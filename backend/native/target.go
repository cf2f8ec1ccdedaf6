// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/wgpu/hal"
)

// Target is a GPU render target. Offscreen targets own a texture, its
// view and a sampler configured from the target options; the surface
// target wraps an externally owned view and cannot be sampled.
//
// Target implements both render.Target and render.Texture.
type Target struct {
	ctx *Context

	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	width  int
	height int
	format gputypes.TextureFormat

	external bool
	released bool
}

// NewTarget allocates an offscreen target usable as a render attachment
// and as a sampled texture.
func (c *Context) NewTarget(opts render.TargetOptions) (render.Target, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, opts.Width, opts.Height)
	}
	format := opts.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	label := opts.Label
	if label == "" {
		label = "postfx_target"
	}

	t := &Target{ctx: c, width: opts.Width, height: opts.Height, format: format}

	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(opts.Width), Height: uint32(opts.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture %q: %w", label, err)
	}
	t.texture = tex

	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("native: create view %q: %w", label, err)
	}
	t.view = view

	sampler, err := c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: opts.WrapS,
		AddressModeV: opts.WrapT,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    opts.MagFilter,
		MinFilter:    opts.MinFilter,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("native: create sampler %q: %w", label, err)
	}
	t.sampler = sampler

	slogger().Debug("native: target", "label", label, "width", opts.Width, "height", opts.Height, "format", format)
	return t, nil
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Format returns the color format.
func (t *Target) Format() gputypes.TextureFormat { return t.format }

// Texture returns the target itself as the sampleable texture.
func (t *Target) Texture() render.Texture { return t }

// View returns the color attachment view.
func (t *Target) View() hal.TextureView { return t.view }

// Released reports whether Release was called.
func (t *Target) Released() bool { return t.released }

// Release destroys the sampler, view and texture. The view of a surface
// target is owned by the host and left alone. Safe to call more than once.
func (t *Target) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.external {
		return
	}
	device := t.ctx.device
	if t.sampler != nil {
		device.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

var (
	_ render.Target  = (*Target)(nil)
	_ render.Texture = (*Target)(nil)
)
