// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
)

// runChain renders src through the given passes on a software context and
// returns the surface.
func runChain(t *testing.T, src *image.RGBA, cfgs ...postfx.PassConfig) *render.PixmapTarget {
	t.Helper()
	b := src.Bounds()
	ctx := render.NewSoftwareContext(b.Dx(), b.Dy())
	post, err := postfx.New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(post.Release)
	for _, cfg := range cfgs {
		if _, err := post.AddPass(cfg); err != nil {
			t.Fatalf("AddPass(%s): %v", cfg.Label, err)
		}
	}
	if err := post.Render(src, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return ctx.Surface()
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func nearRGBA(a, b color.RGBA) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestIdentity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7) //nolint:gosec // G115: wraps intentionally
	}
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}

	out := runChain(t, src, Identity(), Identity())
	for i, b := range out.Image().Pix {
		if b != src.Pix[i] {
			t.Fatalf("byte %d = %d, want %d", i, b, src.Pix[i])
		}
	}
}

func TestEffects(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	tests := []struct {
		name string
		cfg  postfx.PassConfig
		want color.RGBA
	}{
		{"grayscale full", Grayscale(1), color.RGBA{R: 118, G: 118, B: 118, A: 255}},
		{"grayscale none", Grayscale(0), base},
		{"invert full", Invert(1), color.RGBA{R: 55, G: 155, B: 205, A: 255}},
		{"invert none", Invert(0), base},
		{"tint", ColorGrade(render.Vec3{X: 0.5, Y: 1, Z: 0}, 0), color.RGBA{R: 100, G: 100, B: 0, A: 255}},
		{"exposure", ColorGrade(render.Vec3{X: 1, Y: 1, Z: 1}, 1), color.RGBA{R: 255, G: 200, B: 100, A: 255}},
		{"blur solid", Blur(render.Vec2{X: 1}, 2), base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runChain(t, solid(8, 8, base), tt.cfg)
			got := out.GetPixel(3, 4)
			if !nearRGBA(got, tt.want) {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlurSpreadsAlongDirection(t *testing.T) {
	src := solid(9, 9, color.RGBA{A: 255})
	src.SetRGBA(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := runChain(t, src, Blur(render.Vec2{X: 1}, 1))

	center := out.GetPixel(4, 4)
	left, right := out.GetPixel(3, 4), out.GetPixel(5, 4)
	above := out.GetPixel(4, 3)

	if center.R == 255 || center.R == 0 {
		t.Errorf("center = %v, want partially blurred", center)
	}
	if left.R == 0 || !near(left.R, right.R) {
		t.Errorf("horizontal neighbours %v / %v, want equal and lit", left, right)
	}
	if above.R != 0 {
		t.Errorf("vertical neighbour = %v, want untouched by horizontal blur", above)
	}
}

func TestChainOrderMatters(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	// invert then darken differs from darken then invert.
	a := runChain(t, solid(2, 2, base), Invert(1), ColorGrade(render.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, 0)).GetPixel(0, 0)
	b := runChain(t, solid(2, 2, base), ColorGrade(render.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, 0), Invert(1)).GetPixel(0, 0)

	if !nearRGBA(a, color.RGBA{R: 28, G: 78, B: 103, A: 255}) {
		t.Errorf("invert→grade = %v", a)
	}
	if !nearRGBA(b, color.RGBA{R: 155, G: 205, B: 230, A: 255}) {
		t.Errorf("grade→invert = %v", b)
	}
}
