// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// A PixmapTarget is its own texture: passing it to a pass as input samples
// the same pixels that were rendered into it. The sampler state (wrap and
// filter modes) comes from the TargetOptions it was created with.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	ctx.Render(render.Request{Scene: img, Target: target, Clear: true})
//	out := target.Image()
type PixmapTarget struct {
	img      *image.RGBA
	opts     TargetOptions
	released bool
}

// NewPixmapTarget creates a target with default sampler state.
func NewPixmapTarget(width, height int) *PixmapTarget {
	t, _ := NewPixmapTargetWithOptions(DefaultTargetOptions(width, height))
	return t
}

// NewPixmapTargetWithOptions creates a target from opts.
// Only RGBA8Unorm (or an undefined format) can be stored on the CPU.
func NewPixmapTargetWithOptions(opts TargetOptions) (*PixmapTarget, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid target size %dx%d", opts.Width, opts.Height)
	}
	switch opts.Format {
	case gputypes.TextureFormatUndefined:
		opts.Format = gputypes.TextureFormatRGBA8Unorm
	case gputypes.TextureFormatRGBA8Unorm:
	default:
		return nil, fmt.Errorf("render: pixmap target cannot store format %v", opts.Format)
	}
	return &PixmapTarget{
		img:  image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		opts: opts,
	}, nil
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	opts := DefaultTargetOptions(img.Bounds().Dx(), img.Bounds().Dy())
	return &PixmapTarget{img: img, opts: opts}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Texture returns the target itself.
func (t *PixmapTarget) Texture() Texture {
	return t
}

// Options returns the options the target was created with.
func (t *PixmapTarget) Options() TargetOptions {
	return t.opts
}

// Release marks the target as released. Rendering into or sampling from a
// released target is an error. Release is idempotent.
func (t *PixmapTarget) Release() {
	t.released = true
}

// Released reports whether Release has been called.
func (t *PixmapTarget) Released() bool {
	return t.released
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	pix := t.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = rgba.R, rgba.G, rgba.B, rgba.A
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// SetPixel sets a single pixel at the given coordinates.
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// texel returns pixel (x, y) as normalized RGBA. Row 0 is the top row.
func (t *PixmapTarget) texel(x, y int) Vec4 {
	i := t.img.PixOffset(x, y)
	p := t.img.Pix[i : i+4 : i+4]
	return Vec4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

// store writes a normalized RGBA color to pixel (x, y).
func (t *PixmapTarget) store(x, y int, c Vec4) {
	c = c.Clamp01()
	i := t.img.PixOffset(x, y)
	p := t.img.Pix[i : i+4 : i+4]
	p[0] = toByte(c.X)
	p[1] = toByte(c.Y)
	p[2] = toByte(c.Z)
	p[3] = toByte(c.W)
}

//nolint:gosec // G115: input is clamped to [0,1]
func toByte(v float32) uint8 {
	return uint8(v*255 + 0.5)
}

var (
	_ Target  = (*PixmapTarget)(nil)
	_ Texture = (*PixmapTarget)(nil)
)
