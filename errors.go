// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import "errors"

var (
	// ErrNilContext is returned by New when no render context is given.
	ErrNilContext = errors.New("postfx: nil render context")

	// ErrReleased is returned by operations on a released pipeline.
	ErrReleased = errors.New("postfx: pipeline has been released")
)
