// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"github.com/gogpu/postfx/backend"
	"github.com/gogpu/postfx/render"
)

// init registers the native backend on package import.
func init() {
	backend.Register(backend.BackendNative, open)
}

// open builds a Context from a backend configuration. The surface size
// is taken from cfg; a surface view is attached later with SetSurfaceView.
func open(cfg backend.Config) (render.Context, error) {
	if cfg.Device == nil {
		return nil, backend.ErrNoDevice
	}
	return New(cfg.Device, WithSurfaceSize(cfg.Width, cfg.Height), WithDPR(cfg.DPR))
}
