// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
)

// Sample reads the target at uv using its wrap and filter modes.
//
// uv follows the GL convention: (0,0) is the bottom-left corner and (1,1)
// the top-right, so v = 1 addresses row 0 of the image. Magnification
// filtering is used for every lookup since the CPU path has no mipmaps.
func (t *PixmapTarget) Sample(uv Vec2) Vec4 {
	w, h := t.Width(), t.Height()
	if w == 0 || h == 0 {
		return Vec4{}
	}
	x := uv.X * float32(w)
	y := (1 - uv.Y) * float32(h)

	if t.opts.MagFilter != gputypes.FilterModeLinear {
		ix := wrapIndex(int(math32.Floor(x)), w, t.opts.WrapS)
		iy := wrapIndex(int(math32.Floor(y)), h, t.opts.WrapT)
		return t.texel(ix, iy)
	}

	x -= 0.5
	y -= 0.5
	fx, fy := math32.Floor(x), math32.Floor(y)
	tx, ty := x-fx, y-fy
	x0 := wrapIndex(int(fx), w, t.opts.WrapS)
	x1 := wrapIndex(int(fx)+1, w, t.opts.WrapS)
	y0 := wrapIndex(int(fy), h, t.opts.WrapT)
	y1 := wrapIndex(int(fy)+1, h, t.opts.WrapT)

	top := t.texel(x0, y0).Lerp(t.texel(x1, y0), tx)
	bottom := t.texel(x0, y1).Lerp(t.texel(x1, y1), tx)
	return top.Lerp(bottom, ty)
}

// wrapIndex maps texel index i into [0, n) according to mode.
func wrapIndex(i, n int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case gputypes.AddressModeMirrorRepeat:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default:
		return min(max(i, 0), n-1)
	}
}
