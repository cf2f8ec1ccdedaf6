// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import "math"

// Size is a resize request. A zero field means "not supplied".
//
// When Width is set and Height is not, the height defaults to the width.
type Size struct {
	Width  int
	Height int
	DPR    float64
}

// Dimensions is the sizing state of a Post.
type Dimensions struct {
	// Width and Height are the stored logical size. Zero means the
	// context's surface size is used.
	Width, Height int

	// DPR is the stored device-pixel-ratio. Zero means the context's ratio
	// is used.
	DPR float64

	// PixelWidth and PixelHeight are the allocated swap chain size.
	PixelWidth, PixelHeight int
}

// apply merges a request into the stored logical state.
func (d *Dimensions) apply(s Size) {
	if s.DPR > 0 {
		d.DPR = s.DPR
	}
	if s.Width > 0 {
		d.Width = s.Width
		d.Height = s.Height
		if s.Height <= 0 {
			d.Height = s.Width
		}
	}
}

// effective converts the stored state into pixel dimensions. Anything never
// set falls back to the host surface, given in device pixels with its ratio.
// A surface fallback is rescaled by stored/surface ratio and rounded once.
func (d *Dimensions) effective(surfacePixW, surfacePixH int, surfaceDPR float64) (width, height int) {
	if surfaceDPR <= 0 {
		surfaceDPR = 1
	}
	dpr := d.DPR
	if dpr <= 0 {
		dpr = surfaceDPR
	}
	if d.Width <= 0 || d.Height <= 0 {
		ratio := dpr / surfaceDPR
		return scale(float64(surfacePixW), ratio), scale(float64(surfacePixH), ratio)
	}
	return scale(float64(d.Width), dpr), scale(float64(d.Height), dpr)
}

// scale rounds v × factor half away from zero, with a minimum of one pixel.
func scale(v, factor float64) int {
	return max(int(math.Round(v*factor)), 1)
}
