// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Errors returned by Context implementations.
var (
	// ErrNilTarget is returned when an operation requires a target and none
	// is available (no explicit target and no default surface).
	ErrNilTarget = errors.New("render: nil target")

	// ErrUnsupportedScene is returned by Context.Render when the scene value
	// is of a type the context cannot draw.
	ErrUnsupportedScene = errors.New("render: unsupported scene type")

	// ErrNoKernel is returned by contexts that cannot execute shader source
	// when a program carries custom shader source but no CPU kernel.
	ErrNoKernel = errors.New("render: program has no CPU kernel")

	// ErrUnsupportedTarget is returned when a target or texture was not
	// created by the context it is used with.
	ErrUnsupportedTarget = errors.New("render: target not created by this context")

	// ErrReleasedTarget is returned when a released target is used.
	ErrReleasedTarget = errors.New("render: target has been released")

	// ErrInvalidGeometry is returned by NewMesh when the geometry lacks the
	// position or uv attribute.
	ErrInvalidGeometry = errors.New("render: geometry needs 2-component position and uv attributes")
)

// Request describes a single draw submission.
//
// Scene is either a scene graph understood by the host context or a Mesh
// built by the same context. Camera is passed through untouched; it is nil
// for full-screen pass meshes.
type Request struct {
	Scene  any
	Camera any

	// Target is the destination. Nil selects the context's default surface.
	Target Target

	Update      bool
	Sort        bool
	FrustumCull bool

	// Clear clears the destination before drawing.
	Clear bool
}

// Context is the render context a post-processing pipeline is driven by.
//
// The host application owns the GPU device (or CPU surface) and supplies a
// Context; the pipeline only allocates targets, programs and meshes through
// it and submits requests in program order.
//
// Contexts are NOT thread-safe. Use one goroutine per context.
type Context interface {
	// Render submits one draw request. Failures are returned unmodified
	// enough for errors.Is to match the sentinel errors above.
	Render(req Request) error

	// NewTarget allocates an offscreen render target.
	NewTarget(opts TargetOptions) (Target, error)

	// NewProgram builds a shader program from source and uniforms.
	NewProgram(desc ProgramDescriptor) (Program, error)

	// NewMesh pairs geometry with a program.
	NewMesh(geometry *Geometry, program Program) (Mesh, error)

	// Size returns the default surface size in logical pixels, before the
	// device-pixel-ratio is applied.
	Size() (width, height int)

	// PixelSize returns the default surface size in device pixels.
	PixelSize() (width, height int)

	// DPR returns the host device-pixel-ratio. Zero means unknown.
	DPR() float64
}

// TargetOptions configures an offscreen render target.
type TargetOptions struct {
	Width  int
	Height int

	WrapS gputypes.AddressMode
	WrapT gputypes.AddressMode

	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode

	Format gputypes.TextureFormat

	// Label is an optional debug label.
	Label string
}

// DefaultTargetOptions returns clamp-to-edge, linear-filtered RGBA8 options
// of the given size.
func DefaultTargetOptions(width, height int) TargetOptions {
	return TargetOptions{
		Width:     width,
		Height:    height,
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeClampToEdge,
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeLinear,
		Format:    gputypes.TextureFormatRGBA8Unorm,
	}
}

// Target is a destination for draw submissions that also exposes its color
// buffer as a sampleable texture.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Texture returns the sampleable color texture. The handle is only
	// valid until Release.
	Texture() Texture

	// Release frees the resources held by the target. Safe to call more
	// than once.
	Release()
}

// Texture is an opaque, sampleable texture handle owned by a Target.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int
}

// ProgramDescriptor describes a shader program.
type ProgramDescriptor struct {
	// Vertex and Fragment hold WGSL source for the two stages.
	Vertex   string
	Fragment string

	// Uniforms is the program's uniform table. The program keeps the map;
	// updates to its entries are visible on the next draw.
	Uniforms Uniforms

	// Kernel is an optional CPU implementation of the fragment stage for
	// contexts that do not execute shader source.
	Kernel FragmentFunc

	// Label is an optional debug label.
	Label string
}

// Program is a compiled shader program.
type Program interface {
	// Uniforms returns the live uniform table.
	Uniforms() Uniforms

	// Release frees the program's resources.
	Release()
}

// Mesh is a draw unit pairing geometry with a program.
type Mesh interface {
	// Program returns the program the mesh draws with.
	Program() Program

	// Release frees the mesh's resources. It does not release the program.
	Release()
}

// SceneDrawer is a scene that draws itself into a CPU target. The software
// context accepts it as a Request.Scene.
type SceneDrawer interface {
	DrawTo(target *PixmapTarget, camera any) error
}
