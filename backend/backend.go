// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/postfx/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered, or when no registered backend can open a context.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoDevice is returned by GPU backends when Config.Device is nil.
	ErrNoDevice = errors.New("backend: no device handle")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU reference backend.
	BackendSoftware = "software"
	// BackendNative is the name of the Pure Go GPU backend (gogpu/wgpu HAL).
	BackendNative = "native"
)

// Config describes the render context a backend should open.
type Config struct {
	// Width and Height are the default surface size in device pixels.
	Width  int
	Height int

	// DPR is the device-pixel-ratio. Zero means 1.
	DPR float64

	// Device is the host GPU device. Ignored by the software backend.
	Device render.DeviceHandle
}

// Factory opens a render context for a configuration.
type Factory func(cfg Config) (render.Context, error)

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, openSoftware)
}

func openSoftware(cfg Config) (render.Context, error) {
	return render.NewSoftwareContext(cfg.Width, cfg.Height, render.WithDevicePixelRatio(cfg.DPR)), nil
}
