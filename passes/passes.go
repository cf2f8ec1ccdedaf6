// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import (
	_ "embed"

	"github.com/chewxy/math32"
	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
)

var (
	//go:embed shaders/grayscale.wgsl
	grayscaleWGSL string

	//go:embed shaders/invert.wgsl
	invertWGSL string

	//go:embed shaders/blur.wgsl
	blurWGSL string

	//go:embed shaders/colorgrade.wgsl
	colorGradeWGSL string
)

const input = postfx.DefaultTextureUniform

// Rec. 709 luma weights.
var luma = render.Vec3{X: 0.2126, Y: 0.7152, Z: 0.0722}

// Identity copies the input unchanged.
func Identity() postfx.PassConfig {
	return postfx.PassConfig{Label: "identity"}
}

// Grayscale mixes the input towards its luma. amount 0 is a copy, 1 is
// fully gray.
func Grayscale(amount float32) postfx.PassConfig {
	return postfx.PassConfig{
		Fragment: grayscaleWGSL,
		Uniforms: render.Uniforms{"uAmount": {Value: render.Float(amount)}},
		Kernel:   grayscaleKernel,
		Label:    "grayscale",
	}
}

func grayscaleKernel(f *render.FragmentContext) render.Vec4 {
	c := f.Sample(input, f.UV)
	y := c.RGB().Dot(luma)
	return c.WithRGB(c.RGB().Lerp(render.Vec3{X: y, Y: y, Z: y}, f.Float("uAmount")))
}

// Invert mixes the input towards its negative. Alpha is kept.
func Invert(amount float32) postfx.PassConfig {
	return postfx.PassConfig{
		Fragment: invertWGSL,
		Uniforms: render.Uniforms{"uAmount": {Value: render.Float(amount)}},
		Kernel:   invertKernel,
		Label:    "invert",
	}
}

func invertKernel(f *render.FragmentContext) render.Vec4 {
	c := f.Sample(input, f.UV)
	neg := render.Vec3{X: 1, Y: 1, Z: 1}.Sub(c.RGB())
	return c.WithRGB(c.RGB().Lerp(neg, f.Float("uAmount")))
}

// Blur weights, center first.
var blurWeights = [5]float32{0.2270270270, 0.1945945946, 0.1216216216, 0.0540540541, 0.0162162162}

// Blur is one direction of a separable 9-tap Gaussian. direction is
// usually (1,0) or (0,1); radius scales the tap spacing in texels.
func Blur(direction render.Vec2, radius float32) postfx.PassConfig {
	return postfx.PassConfig{
		Fragment: blurWGSL,
		Uniforms: render.Uniforms{
			"uDirection": {Value: direction},
			"uRadius":    {Value: render.Float(radius)},
		},
		Kernel: blurKernel,
		Label:  "blur",
	}
}

func blurKernel(f *render.FragmentContext) render.Vec4 {
	texel := f.TexelSize(input)
	dir := f.Vec2("uDirection")
	r := f.Float("uRadius")
	step := render.Vec2{X: dir.X * r * texel.X, Y: dir.Y * r * texel.Y}

	sum := f.Sample(input, f.UV).Scale(blurWeights[0])
	for i := 1; i < len(blurWeights); i++ {
		off := step.Scale(float32(i))
		sum = sum.Add(f.Sample(input, f.UV.Add(off)).Scale(blurWeights[i]))
		sum = sum.Add(f.Sample(input, f.UV.Sub(off)).Scale(blurWeights[i]))
	}
	return sum
}

// ColorGrade multiplies the input by tint and by 2^exposure.
func ColorGrade(tint render.Vec3, exposure float32) postfx.PassConfig {
	return postfx.PassConfig{
		Fragment: colorGradeWGSL,
		Uniforms: render.Uniforms{
			"uTint":     {Value: tint},
			"uExposure": {Value: render.Float(exposure)},
		},
		Kernel: colorGradeKernel,
		Label:  "colorgrade",
	}
}

func colorGradeKernel(f *render.FragmentContext) render.Vec4 {
	c := f.Sample(input, f.UV)
	rgb := c.RGB().Mul(f.Vec3("uTint")).Scale(math32.Exp2(f.Float("uExposure")))
	return c.WithRGB(rgb)
}
