// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// FragmentFunc is a CPU implementation of a fragment stage. It is called
// once per covered pixel and returns a straight-alpha RGBA color in [0,1].
type FragmentFunc func(f *FragmentContext) Vec4

// IdentityKernel returns a kernel that copies the texture bound to the
// named uniform. It is the CPU counterpart of the default pass shaders.
func IdentityKernel(textureUniform string) FragmentFunc {
	return func(f *FragmentContext) Vec4 {
		return f.Sample(textureUniform, f.UV)
	}
}

// FragmentContext is the per-pixel input of a FragmentFunc.
type FragmentContext struct {
	// UV is the interpolated texture coordinate, bottom-left origin.
	UV Vec2

	// FragCoord is the pixel center in target pixels, top-left origin.
	FragCoord Vec2

	// Resolution is the target size in pixels.
	Resolution Vec2

	uniforms Uniforms
	textures map[string]*PixmapTarget
}

// Sample reads the texture bound to the named uniform at uv.
// Returns transparent black if no texture is bound.
func (f *FragmentContext) Sample(name string, uv Vec2) Vec4 {
	tex, ok := f.textures[name]
	if !ok {
		return Vec4{}
	}
	return tex.Sample(uv)
}

// TexelSize returns the size of one texel of the named texture in uv units.
func (f *FragmentContext) TexelSize(name string) Vec2 {
	tex, ok := f.textures[name]
	if !ok {
		return Vec2{}
	}
	return Vec2{1 / float32(tex.Width()), 1 / float32(tex.Height())}
}

// Float returns the named Float uniform, or 0.
func (f *FragmentContext) Float(name string) float32 {
	v, _ := f.uniforms.Get(name)
	x, _ := v.(Float)
	return float32(x)
}

// Vec2 returns the named Vec2 uniform, or the zero vector.
func (f *FragmentContext) Vec2(name string) Vec2 {
	v, _ := f.uniforms.Get(name)
	x, _ := v.(Vec2)
	return x
}

// Vec3 returns the named Vec3 uniform, or the zero vector.
func (f *FragmentContext) Vec3(name string) Vec3 {
	v, _ := f.uniforms.Get(name)
	x, _ := v.(Vec3)
	return x
}

// Vec4 returns the named Vec4 uniform, or the zero vector.
func (f *FragmentContext) Vec4(name string) Vec4 {
	v, _ := f.uniforms.Get(name)
	x, _ := v.(Vec4)
	return x
}

// SoftwareContext is a CPU implementation of Context.
//
// Targets are PixmapTargets. Meshes are rasterised one triangle at a time
// with barycentric interpolation at pixel centers, and each covered pixel
// runs the program's FragmentFunc. Shader source is carried but never
// executed, so programs need a Kernel.
//
// Accepted scenes:
//   - a Mesh created by this context
//   - an image.Image or *PixmapTarget, scaled to fill the target
//   - a SceneDrawer
//   - nil, which only honours Request.Clear
//
// Example:
//
//	ctx := render.NewSoftwareContext(640, 480)
//	post, _ := postfx.New(ctx)
//	post.AddPass(postfx.PassConfig{Fragment: src, Kernel: kernel})
//	post.Render(img, nil)
//	out := ctx.Surface().Image()
type SoftwareContext struct {
	surface *PixmapTarget
	dpr     float64
	logger  *slog.Logger
}

// SoftwareOption configures a SoftwareContext.
type SoftwareOption func(*SoftwareContext)

// WithDevicePixelRatio sets the ratio reported by DPR.
func WithDevicePixelRatio(dpr float64) SoftwareOption {
	return func(c *SoftwareContext) {
		if dpr > 0 {
			c.dpr = dpr
		}
	}
}

// WithSurface replaces the default surface.
func WithSurface(surface *PixmapTarget) SoftwareOption {
	return func(c *SoftwareContext) {
		if surface != nil {
			c.surface = surface
		}
	}
}

// NewSoftwareContext creates a context whose default surface is a
// width×height pixmap. Sizes below one pixel are raised to one.
func NewSoftwareContext(width, height int, opts ...SoftwareOption) *SoftwareContext {
	c := &SoftwareContext{
		surface: NewPixmapTarget(max(width, 1), max(height, 1)),
		dpr:     1,
		logger:  slog.New(nopHandler{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLogger sets the logger used for diagnostics. Nil disables logging.
func (c *SoftwareContext) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	c.logger = l
}

// Surface returns the default surface.
func (c *SoftwareContext) Surface() *PixmapTarget {
	return c.surface
}

// Size returns the logical surface size: the surface's pixel size divided
// by the device-pixel-ratio.
func (c *SoftwareContext) Size() (width, height int) {
	w := int(math.Round(float64(c.surface.Width()) / c.dpr))
	h := int(math.Round(float64(c.surface.Height()) / c.dpr))
	return max(w, 1), max(h, 1)
}

// PixelSize returns the surface's size in device pixels.
func (c *SoftwareContext) PixelSize() (width, height int) {
	return c.surface.Width(), c.surface.Height()
}

// DPR returns the configured device-pixel-ratio.
func (c *SoftwareContext) DPR() float64 {
	return c.dpr
}

// NewTarget allocates a PixmapTarget.
func (c *SoftwareContext) NewTarget(opts TargetOptions) (Target, error) {
	t, err := NewPixmapTargetWithOptions(opts)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("render: software target", "label", opts.Label, "width", opts.Width, "height", opts.Height)
	return t, nil
}

// softwareProgram is a Program holding a CPU kernel.
type softwareProgram struct {
	desc     ProgramDescriptor
	released bool
}

func (p *softwareProgram) Uniforms() Uniforms { return p.desc.Uniforms }
func (p *softwareProgram) Release()           { p.released = true }

// NewProgram wraps desc.Kernel. Returns ErrNoKernel when the descriptor
// has none.
func (c *SoftwareContext) NewProgram(desc ProgramDescriptor) (Program, error) {
	if desc.Kernel == nil {
		return nil, fmt.Errorf("render: program %q: %w", desc.Label, ErrNoKernel)
	}
	if desc.Uniforms == nil {
		desc.Uniforms = Uniforms{}
	}
	return &softwareProgram{desc: desc}, nil
}

// softwareMesh is a Mesh of flattened triangle data.
type softwareMesh struct {
	pos      []float32
	uv       []float32
	program  *softwareProgram
	released bool
}

func (m *softwareMesh) Program() Program { return m.program }
func (m *softwareMesh) Release()         { m.released = true }

// NewMesh validates the geometry and pairs it with a program from this
// context.
func (c *SoftwareContext) NewMesh(geometry *Geometry, program Program) (Mesh, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	p, ok := program.(*softwareProgram)
	if !ok {
		return nil, fmt.Errorf("render: software context cannot use program %T", program)
	}
	return &softwareMesh{
		pos:     append([]float32(nil), geometry.Attributes[AttributePosition].Data...),
		uv:      append([]float32(nil), geometry.Attributes[AttributeUV].Data...),
		program: p,
	}, nil
}

// Render executes one request.
func (c *SoftwareContext) Render(req Request) error {
	dst, err := c.resolveTarget(req.Target)
	if err != nil {
		return err
	}
	if req.Clear {
		clear(dst.img.Pix)
	}

	switch scene := req.Scene.(type) {
	case nil:
		return nil
	case *softwareMesh:
		return c.drawMesh(scene, dst)
	case Mesh:
		return fmt.Errorf("render: mesh %T: %w", scene, ErrUnsupportedScene)
	case *PixmapTarget:
		if scene.released {
			return ErrReleasedTarget
		}
		c.drawImage(dst, scene.img, req.Clear)
		return nil
	case SceneDrawer:
		return scene.DrawTo(dst, req.Camera)
	case image.Image:
		c.drawImage(dst, scene, req.Clear)
		return nil
	default:
		return fmt.Errorf("render: scene %T: %w", req.Scene, ErrUnsupportedScene)
	}
}

func (c *SoftwareContext) resolveTarget(t Target) (*PixmapTarget, error) {
	if t == nil {
		if c.surface == nil {
			return nil, ErrNilTarget
		}
		return c.surface, nil
	}
	dst, ok := t.(*PixmapTarget)
	if !ok {
		return nil, fmt.Errorf("render: %T: %w", t, ErrUnsupportedTarget)
	}
	if dst.released {
		return nil, ErrReleasedTarget
	}
	return dst, nil
}

// drawImage scales src over the whole target.
func (c *SoftwareContext) drawImage(dst *PixmapTarget, src image.Image, replace bool) {
	op := draw.Over
	if replace {
		op = draw.Src
	}
	var scaler draw.Scaler = draw.BiLinear
	if dst.opts.MagFilter != gputypes.FilterModeLinear {
		scaler = draw.NearestNeighbor
	}
	if src.Bounds().Size() == dst.img.Bounds().Size() {
		draw.Draw(dst.img, dst.img.Bounds(), src, src.Bounds().Min, op)
		return
	}
	scaler.Scale(dst.img, dst.img.Bounds(), src, src.Bounds(), op, nil)
}

// drawMesh rasterises every triangle of m into dst.
func (c *SoftwareContext) drawMesh(m *softwareMesh, dst *PixmapTarget) error {
	if m.released || m.program.released {
		return fmt.Errorf("render: draw of released mesh %q", m.program.desc.Label)
	}
	textures, err := resolveTextures(m.program.desc.Uniforms)
	if err != nil {
		return err
	}
	for name, tex := range textures {
		if tex == dst {
			return fmt.Errorf("render: uniform %q samples the target being drawn", name)
		}
	}

	fc := &FragmentContext{
		Resolution: Vec2{float32(dst.Width()), float32(dst.Height())},
		uniforms:   m.program.desc.Uniforms,
		textures:   textures,
	}
	for i := 0; i+6 <= len(m.pos); i += 6 {
		c.rasterize(dst, m.pos[i:i+6], m.uv[i:i+6], m.program.desc.Kernel, fc)
	}
	return nil
}

// resolveTextures evaluates every texture uniform once per draw.
func resolveTextures(u Uniforms) (map[string]*PixmapTarget, error) {
	out := make(map[string]*PixmapTarget)
	for name, slot := range u {
		if slot == nil {
			continue
		}
		tu, ok := slot.Value.(TextureUniform)
		if !ok {
			continue
		}
		tex := tu.Texture()
		if tex == nil {
			continue
		}
		pt, ok := tex.(*PixmapTarget)
		if !ok {
			return nil, fmt.Errorf("render: uniform %q: texture %T: %w", name, tex, ErrUnsupportedTarget)
		}
		if pt.released {
			return nil, fmt.Errorf("render: uniform %q: %w", name, ErrReleasedTarget)
		}
		out[name] = pt
	}
	return out, nil
}

// rasterize fills one clip-space triangle. Pixel (px, py) has its center at
// ndc ((px+0.5)/w*2-1, 1-(py+0.5)/h*2); pixels whose centers lie inside or
// on an edge are shaded.
func (c *SoftwareContext) rasterize(dst *PixmapTarget, pos, uv []float32, kernel FragmentFunc, fc *FragmentContext) {
	w, h := dst.Width(), dst.Height()
	fw, fh := float64(w), float64(h)

	// Vertices in pixel space.
	var sx, sy [3]float64
	for k := range 3 {
		sx[k] = (float64(pos[2*k]) + 1) / 2 * fw
		sy[k] = (1 - float64(pos[2*k+1])) / 2 * fh
	}
	area := edge(sx[0], sy[0], sx[1], sy[1], sx[2], sy[2])
	if area == 0 {
		return
	}

	x0 := max(0, int(math.Floor(min(sx[0], sx[1], sx[2]))))
	x1 := min(w-1, int(math.Ceil(max(sx[0], sx[1], sx[2]))))
	y0 := max(0, int(math.Floor(min(sy[0], sy[1], sy[2]))))
	y1 := min(h-1, int(math.Ceil(max(sy[0], sy[1], sy[2]))))

	const eps = 1e-9
	for py := y0; py <= y1; py++ {
		cy := float64(py) + 0.5
		for px := x0; px <= x1; px++ {
			cx := float64(px) + 0.5
			b0 := edge(sx[1], sy[1], sx[2], sy[2], cx, cy) / area
			b1 := edge(sx[2], sy[2], sx[0], sy[0], cx, cy) / area
			b2 := 1 - b0 - b1
			if b0 < -eps || b1 < -eps || b2 < -eps {
				continue
			}
			fc.UV = Vec2{
				float32(b0*float64(uv[0]) + b1*float64(uv[2]) + b2*float64(uv[4])),
				float32(b0*float64(uv[1]) + b1*float64(uv[3]) + b2*float64(uv[5])),
			}
			fc.FragCoord = Vec2{float32(cx), float32(cy)}
			dst.store(px, py, kernel(fc))
		}
	}
}

// edge is twice the signed area of triangle (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// nopHandler discards every record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

var (
	_ Context = (*SoftwareContext)(nil)
	_ Program = (*softwareProgram)(nil)
	_ Mesh    = (*softwareMesh)(nil)
)
