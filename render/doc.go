// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the render context a post-processing pipeline is
// driven by, and provides a CPU implementation of it.
//
// # Key Principle
//
// The pipeline RECEIVES a Context from the host application, it does NOT
// create devices or compile shaders itself. Everything it allocates goes
// through the Context: offscreen targets, programs and meshes.
//
// # Core Interfaces
//
//   - Context: submits draw requests and creates targets, programs, meshes
//   - Target: a render destination whose color buffer is a Texture
//   - Program: shader source plus a live uniform table
//   - Mesh: geometry paired with a program
//
// # Uniforms
//
// Uniform values form a closed set: Float, Vec2, Vec3, Vec4 and
// TextureUniform. A TextureUniform holds an accessor rather than a
// texture, so it resolves to whatever the accessor returns at draw time.
//
// # Implementations
//
//   - SoftwareContext: CPU rasteriser running FragmentFunc kernels over
//     PixmapTargets
//   - backend/native: GPU context on gogpu/wgpu HAL
//
// # Texture Coordinates
//
// uv has its origin at the bottom-left corner. FullscreenTriangle maps uv
// (0,0) to the bottom-left pixel and (1,1) to the top-right pixel on every
// backend.
package render
