// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	_ "embed"
)

// DefaultVertex is the WGSL vertex stage used when a pass gives none.
// It passes uv through and places position on the z = 0 plane. It also
// declares the VertexOutput struct the default fragment stage consumes.
//
//go:embed shaders/identity_vert.wgsl
var DefaultVertex string

// DefaultFragment is the WGSL fragment stage used when a pass gives none.
// It samples the input texture at uv, copying the input unchanged.
//
//go:embed shaders/identity_frag.wgsl
var DefaultFragment string

// DefaultTextureUniform is the uniform the input texture is bound to.
const DefaultTextureUniform = "tMap"
