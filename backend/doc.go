// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend is a registry of render.Context implementations.
//
// The software backend is registered on import. GPU backends register
// themselves from init() functions, so importing them is enough:
//
//	import _ "github.com/gogpu/postfx/backend/native"
//
// # Backend Selection
//
// Use Default to open the best backend that accepts the configuration, or
// Open to request one by name:
//
//	ctx, name, err := backend.Default(backend.Config{
//	    Width: 1280, Height: 720, DPR: 2, Device: provider,
//	})
//
//	ctx, err := backend.Open(backend.BackendSoftware, backend.Config{Width: 640, Height: 480})
//
// Default tries native first and falls back to software when no device
// handle is given or the handle does not expose HAL types.
package backend
