// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/wgpu/hal"
)

// submitTimeout bounds the wait for a single submission; pollInterval is the
// delay between completion checks.
const (
	submitTimeout = 5 * time.Second
	pollInterval  = 100 * time.Microsecond
)

// Context is a render.Context backed by a HAL device.
//
// Context is NOT thread-safe.
type Context struct {
	device hal.Device
	queue  hal.Queue

	surface *Target
	width   int
	height  int
	dpr     float64
}

// Option configures a Context.
type Option func(*Context)

// WithSurfaceSize sets the surface size in device pixels reported through
// Size when no surface view is configured.
func WithSurfaceSize(width, height int) Option {
	return func(c *Context) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithDPR sets the device-pixel-ratio reported by DPR.
func WithDPR(dpr float64) Option {
	return func(c *Context) {
		if dpr > 0 {
			c.dpr = dpr
		}
	}
}

// WithSurfaceView sets the default destination to an externally owned
// texture view, typically the current swapchain image.
func WithSurfaceView(view hal.TextureView, width, height int, format gputypes.TextureFormat) Option {
	return func(c *Context) {
		c.SetSurfaceView(view, width, height, format)
	}
}

// New creates a Context from a host device handle. The handle must expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func New(handle render.DeviceHandle, opts ...Option) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewContext(device, queue, opts...)
}

// NewContext creates a Context on an existing device and queue.
func NewContext(device hal.Device, queue hal.Queue, opts ...Option) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	c := &Context{
		device: device,
		queue:  queue,
		width:  1,
		height: 1,
		dpr:    1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetLogger sets the logger for the native backend. Nil disables logging.
func (c *Context) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// SetSurfaceView replaces the default destination. Call it once per frame
// when the host acquires a new swapchain image. A nil view removes the
// surface, after which Render without an explicit target fails with
// render.ErrNilTarget.
func (c *Context) SetSurfaceView(view hal.TextureView, width, height int, format gputypes.TextureFormat) {
	if view == nil {
		c.surface = nil
		return
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	c.surface = &Target{
		ctx:      c,
		view:     view,
		width:    width,
		height:   height,
		format:   format,
		external: true,
	}
	c.width, c.height = width, height
}

// Surface returns the default destination, or nil.
func (c *Context) Surface() *Target {
	return c.surface
}

// Size returns the surface size in logical pixels.
func (c *Context) Size() (width, height int) {
	w := int(math.Round(float64(c.width) / c.dpr))
	h := int(math.Round(float64(c.height) / c.dpr))
	return max(w, 1), max(h, 1)
}

// PixelSize returns the surface size in device pixels.
func (c *Context) PixelSize() (width, height int) {
	return max(c.width, 1), max(c.height, 1)
}

// DPR returns the configured device-pixel-ratio.
func (c *Context) DPR() float64 {
	return c.dpr
}

// Render records and submits one request.
//
// Scene must be nil or a Mesh created by this context. A nil scene only
// applies Request.Clear.
func (c *Context) Render(req render.Request) error {
	dst, err := c.destination(req.Target)
	if err != nil {
		return err
	}

	switch scene := req.Scene.(type) {
	case nil:
		if !req.Clear {
			return nil
		}
		return c.submit(dst, nil, req.Clear)
	case *Mesh:
		if scene.ctx != c {
			return render.ErrUnsupportedScene
		}
		if scene.released {
			return fmt.Errorf("native: render: mesh %q released", scene.program.label)
		}
		return c.submit(dst, scene, req.Clear)
	default:
		return fmt.Errorf("native: render %T: %w", req.Scene, render.ErrUnsupportedScene)
	}
}

// destination resolves the request target.
func (c *Context) destination(t render.Target) (*Target, error) {
	if t == nil {
		if c.surface == nil {
			return nil, render.ErrNilTarget
		}
		return c.surface, nil
	}
	dst, ok := t.(*Target)
	if !ok || dst.ctx != c {
		return nil, render.ErrUnsupportedTarget
	}
	if dst.released {
		return nil, render.ErrReleasedTarget
	}
	return dst, nil
}

// submit encodes one render pass into dst, drawing mesh if non-nil, then
// submits and waits for completion.
func (c *Context) submit(dst *Target, mesh *Mesh, clear bool) error {
	var draw *drawResources
	if mesh != nil {
		var err error
		draw, err = mesh.prepare(dst)
		if err != nil {
			return err
		}
		defer draw.destroy(c.device)
	}

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "postfx_encoder",
	})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("postfx_pass"); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpLoad
	if clear {
		loadOp = gputypes.LoadOpClear
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "postfx_render_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       dst.view,
				LoadOp:     loadOp,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
	})
	if draw != nil {
		rp.SetPipeline(draw.pipeline)
		rp.SetBindGroup(0, draw.bindGroup, nil)
		rp.SetVertexBuffer(0, mesh.vertexBuf, 0)
		rp.Draw(mesh.vertexCount, 1, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmdBuf)

	index, err := c.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	return c.waitSubmission(index)
}

// waitSubmission blocks until the queue reports index as completed.
func (c *Context) waitSubmission(index uint64) error {
	deadline := time.Now().Add(submitTimeout)
	for c.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return ErrGPUTimeout
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (c *Context) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create %s: %w", label, err)
	}
	if err := c.queue.WriteBuffer(buf, 0, data); err != nil {
		c.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("native: upload %s: %w", label, err)
	}
	return buf, nil
}

var _ render.Context = (*Context)(nil)
