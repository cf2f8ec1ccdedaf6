// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/postfx/render"
)

func TestSwapChainSwapIsInvolution(t *testing.T) {
	ctx := newFakeContext(4, 4)
	s, err := NewSwapChain(ctx, render.DefaultTargetOptions(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	read, write := s.Read(), s.Write()
	if read == write {
		t.Fatal("read and write are the same target")
	}

	s.Swap()
	if s.Read() != write || s.Write() != read {
		t.Error("Swap did not exchange roles")
	}
	s.Swap()
	if s.Read() != read || s.Write() != write {
		t.Error("two swaps did not restore the original assignment")
	}
	if len(ctx.targets) != 2 {
		t.Errorf("Swap allocated targets: %d", len(ctx.targets))
	}
}

func TestSwapChainResizeReleasesPrevious(t *testing.T) {
	ctx := newFakeContext(4, 4)
	opts := render.DefaultTargetOptions(4, 4)
	opts.WrapS = gputypes.AddressModeRepeat
	opts.MagFilter = gputypes.FilterModeNearest
	s, err := NewSwapChain(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	for round := 1; round <= 3; round++ {
		if err := s.Resize(10*round, 5*round); err != nil {
			t.Fatal(err)
		}
		live := 0
		for _, tgt := range ctx.targets {
			if tgt.released == 0 {
				live++
			}
			if tgt.released > 1 {
				t.Errorf("target %d released %d times", tgt.id, tgt.released)
			}
		}
		if live != 2 {
			t.Errorf("round %d: %d live targets, want 2", round, live)
		}
	}

	got := s.Read().(*fakeTarget).opts
	if got.Width != 30 || got.Height != 15 {
		t.Errorf("size = %dx%d, want 30x15", got.Width, got.Height)
	}
	if got.WrapS != gputypes.AddressModeRepeat || got.MagFilter != gputypes.FilterModeNearest {
		t.Error("resize changed sampler configuration")
	}
}

func TestSwapChainResizeFailureKeepsPair(t *testing.T) {
	ctx := newFakeContext(4, 4)
	s, err := NewSwapChain(ctx, render.DefaultTargetOptions(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	read, write := s.Read(), s.Write()
	ctx.failTargetAfter = 3 // the new write target fails

	if err := s.Resize(8, 8); !errors.Is(err, errFake) {
		t.Fatalf("Resize = %v, want errFake", err)
	}
	if s.Read() != read || s.Write() != write {
		t.Error("failed resize replaced the pair")
	}
	if ctx.targets[2].released != 1 {
		t.Error("partially allocated target leaked")
	}
	if ctx.targets[0].released != 0 || ctx.targets[1].released != 0 {
		t.Error("failed resize released the installed pair")
	}
}

func TestSwapChainRelease(t *testing.T) {
	ctx := newFakeContext(4, 4)
	s, err := NewSwapChain(ctx, render.DefaultTargetOptions(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	s.Release()
	s.Release()
	for _, tgt := range ctx.targets {
		if tgt.released != 1 {
			t.Errorf("target %d released %d times, want 1", tgt.id, tgt.released)
		}
	}
	if s.ReadTexture() != nil {
		t.Error("ReadTexture after Release should be nil")
	}
}

func TestNewSwapChainFailure(t *testing.T) {
	ctx := newFakeContext(4, 4)
	ctx.failTargetAfter = 1
	if _, err := NewSwapChain(ctx, render.DefaultTargetOptions(4, 4)); !errors.Is(err, errFake) {
		t.Fatalf("err = %v, want errFake", err)
	}
	if ctx.targets[0].released != 1 {
		t.Error("read target leaked after write allocation failed")
	}
}
