// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned when a context is built without a HAL device
	// or queue.
	ErrNilDevice = errors.New("native: nil HAL device or queue")

	// ErrNoHAL is returned by New when the device handle does not expose
	// HAL types.
	ErrNoHAL = errors.New("native: device provider does not expose HAL types")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("native: invalid dimensions")

	// ErrUniformKind is returned when a uniform changes kind after the
	// program was built.
	ErrUniformKind = errors.New("native: uniform changed kind")

	// ErrGPUTimeout is returned when a submission does not complete in time.
	ErrGPUTimeout = errors.New("native: timed out waiting for GPU")
)
