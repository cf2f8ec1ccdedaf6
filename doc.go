// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package postfx provides a multi-pass, image-space post-processing
// pipeline for real-time renderers.
//
// # Overview
//
// A Post renders a scene into an offscreen target and then runs an ordered
// chain of full-screen shader passes over it. Each pass reads the previous
// pass's output and the last enabled pass writes to the final target. Only
// two offscreen targets are ever allocated, whatever the chain length: they
// form a ping-pong SwapChain whose read and write roles flip after every
// submission.
//
// # Quick Start
//
//	ctx := render.NewSoftwareContext(640, 480)
//
//	post, err := postfx.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer post.Release()
//
//	// Identity pass: default shaders copy the input unchanged.
//	post.AddPass(postfx.PassConfig{})
//
//	// Custom pass with a uniform.
//	post.AddPass(postfx.PassConfig{
//	    Fragment: grayscaleWGSL,
//	    Uniforms: render.Uniforms{"uAmount": {Value: render.Float(1)}},
//	    Kernel:   grayscaleKernel,
//	})
//
//	post.Render(scene, camera)
//
// # Render Context
//
// Post never creates devices or compiles shaders. Everything goes through a
// render.Context supplied by the host: render.SoftwareContext for CPU
// rendering, or the GPU context in backend/native.
//
// # Sizing
//
// Resize takes logical dimensions and a device-pixel-ratio. When only a
// width is given the height defaults to the same value. The targets are
// allocated at the logical size times the ratio, rounded to whole pixels.
//
// # Input Binding
//
// Every pass has one texture uniform (default "tMap") that is bound to the
// swap chain's current read target. The binding is an accessor evaluated at
// draw time and is also refreshed before every pass, so passes keep working
// across resizes.
//
// # Logging
//
// The package is silent by default. Use SetLogger to route diagnostics to a
// slog.Logger.
package postfx
