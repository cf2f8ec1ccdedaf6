// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/postfx/render"
)

func TestContextSetLogger(t *testing.T) {
	c, cleanup := newTestContext(t)
	defer cleanup()
	t.Cleanup(func() { setLogger(nil) })

	if slogger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger should be silent")
	}

	var buf bytes.Buffer
	c.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	tgt, err := c.NewTarget(render.TargetOptions{
		Width:  8,
		Height: 8,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Label:  "logged",
	})
	if err != nil {
		t.Fatal(err)
	}
	tgt.Release()
	if !strings.Contains(buf.String(), "native: target") || !strings.Contains(buf.String(), "logged") {
		t.Errorf("target allocation not logged: %q", buf.String())
	}

	c.SetLogger(nil)
	if slogger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
