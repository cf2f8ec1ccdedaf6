// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements render.Context on the gogpu/wgpu HAL.
//
// The host application owns the device. A Context is built from a
// render.DeviceHandle that also exposes HalDevice() and HalQueue(), or
// directly from a hal.Device and hal.Queue:
//
//	ctx, err := native.New(provider, native.WithSurfaceView(view, w, h, format))
//	post, err := postfx.New(ctx)
//
// Pass shaders are WGSL. Vertex and fragment sources are concatenated and
// compiled to SPIR-V with gogpu/naga. Entry points are vs_main and fs_main.
//
// # Bind group layout
//
// Every program uses bind group 0. Texture uniforms, sorted by name, take
// two bindings each: the texture_2d<f32> at 2i and its sampler at 2i+1.
// The remaining uniforms are packed, sorted by name, into one uniform
// buffer at the next binding using WGSL uniform address space alignment.
// With the single tMap input of a typical pass this gives:
//
//	@group(0) @binding(0) var tMap: texture_2d<f32>;
//	@group(0) @binding(1) var tMapSampler: sampler;
//	@group(0) @binding(2) var<uniform> params: Params;
//
// # Vertex layout
//
// Geometry is interleaved as position (location 0) then uv (location 1),
// both vec2<f32>. The uv attribute uses a bottom-left origin; its v
// component is flipped on upload to match WebGPU texture coordinates.
//
// # Submission
//
// Each Render call records one render pass, submits it and polls the queue
// until the submission completes, then frees the per-draw bind group and
// uniform buffer.
//
// # Scenes
//
// The context draws only its own meshes. A nil scene with Request.Clear set
// clears the destination; any other scene fails with
// render.ErrUnsupportedScene. On this backend the scene step of
// postfx.Post.Render therefore clears the swap chain's write target, so
// hosts either render their scene into a target and feed it to the first
// pass through a texture uniform, or wrap the context with one whose
// Render draws their scene type before delegating.
package native
