// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/chewxy/math32"
)

func approx3(a, b Vec3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps && math32.Abs(a.Y-b.Y) <= eps && math32.Abs(a.Z-b.Z) <= eps
}

func TestVec3_MulAndScale(t *testing.T) {
	tests := []struct {
		name   string
		got    Vec3
		expect Vec3
	}{
		{"mul component-wise", Vec3{1, 2, 3}.Mul(Vec3{4, 5, 6}), Vec3{4, 10, 18}},
		{"mul by ones", Vec3{1, 2, 3}.Mul(Vec3{1, 1, 1}), Vec3{1, 2, 3}},
		{"scale", Vec3{1, 2, 3}.Scale(2), Vec3{2, 4, 6}},
		{"scale by zero", Vec3{1, 2, 3}.Scale(0), Vec3{}},
		{"mul by uniform vector equals scale", Vec3{1, 2, 3}.Mul(Vec3{2, 2, 2}), Vec3{1, 2, 3}.Scale(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx3(tt.got, tt.expect, 1e-6) {
				t.Errorf("got %v, want %v", tt.got, tt.expect)
			}
		})
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}

	if got := a.Add(b); got != (Vec3{1, 1, 0}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec3{1, -1, 0}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot = %v, want 0", got)
	}
	if got := a.Cross(b); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross = %v, want (0,0,1)", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); math32.Abs(got-5) > 1e-6 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := (Vec3{0, 0, 2}).Normalize(); !approx3(got, Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("Normalize = %v", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := a.Lerp(b, 0.5); !approx3(got, Vec3{0.5, 0.5, 0}, 1e-6) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestVec4_Clamp01(t *testing.T) {
	got := Vec4{-1, 0.5, 2, 1}.Clamp01()
	if got != (Vec4{0, 0.5, 1, 1}) {
		t.Errorf("Clamp01 = %v", got)
	}
}

func TestVec4_RGB(t *testing.T) {
	c := Vec4{0.1, 0.2, 0.3, 0.4}
	if c.RGB() != (Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("RGB = %v", c.RGB())
	}
	if got := c.WithRGB(Vec3{1, 1, 1}); got != (Vec4{1, 1, 1, 0.4}) {
		t.Errorf("WithRGB = %v", got)
	}
}

func TestVec2_Length(t *testing.T) {
	if got := (Vec2{3, 4}).Length(); math32.Abs(got-5) > 1e-6 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := (Vec2{1, 2}).Add(Vec2{1, 1}).Sub(Vec2{2, 3}).Scale(3); got != (Vec2{}) {
		t.Errorf("Add/Sub/Scale = %v, want zero", got)
	}
}
