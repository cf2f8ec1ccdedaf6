// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package passes provides built-in post-processing effects.
//
// Each effect is a postfx.PassConfig carrying WGSL for GPU contexts and an
// equivalent CPU kernel for render.SoftwareContext, so the same chain runs
// on either. Effects read the input from "tMap".
//
//	post.AddPass(passes.Blur(render.Vec2{X: 1}, 2))
//	post.AddPass(passes.Blur(render.Vec2{Y: 1}, 2))
//	post.AddPass(passes.ColorGrade(render.Vec3{X: 1, Y: 0.9, Z: 0.8}, 0.5))
//
// Lookup resolves effects by name for presets:
//
//	preset.Build(post, passes.Lookup)
package passes
