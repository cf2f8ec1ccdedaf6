// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestPNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := range 4 {
		for x := range 6 {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readTestPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRunEffects(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, in, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-in", in, "-out", out, "-effects", "invert"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v (stderr: %s)", err, stderr.String())
	}

	img := readTestPNG(t, out)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Fatalf("output size = %dx%d, want 6x4", b.Dx(), b.Dy())
	}
	r, g, b, a := img.At(3, 2).RGBA()
	got := [4]uint32{r >> 8, g >> 8, b >> 8, a >> 8}
	want := [4]uint32{55, 155, 205, 255}
	for i := range got {
		if d := int(got[i]) - int(want[i]); d < -1 || d > 1 {
			t.Errorf("pixel = %v, want %v", got, want)
			break
		}
	}
}

func TestRunPreset(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	preset := filepath.Join(dir, "chain.toml")
	writeTestPNG(t, in, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src := `
[[pass]]
effect = "identity"

[[pass]]
effect = "grayscale"
disabled = true
`
	if err := os.WriteFile(preset, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-in", in, "-out", out, "-preset", preset}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	r, g, b, _ := readTestPNG(t, out).At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}

func TestRunList(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-list"}, &stdout, &stderr); err != nil {
		t.Fatalf("run -list failed: %v", err)
	}
	for _, name := range []string{"blur", "colorgrade", "grayscale", "identity", "invert"} {
		if !strings.Contains(stdout.String(), name+"\n") {
			t.Errorf("list output missing %q: %q", name, stdout.String())
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeTestPNG(t, in, color.RGBA{A: 255})

	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", []string{"-out", filepath.Join(dir, "x.png")}},
		{"missing input file", []string{"-in", filepath.Join(dir, "nope.png")}},
		{"unknown effect", []string{"-in", in, "-out", filepath.Join(dir, "y.png"), "-effects", "sepia"}},
		{"unknown backend", []string{"-in", in, "-out", filepath.Join(dir, "z.png"), "-backend", "vulkan"}},
		{"missing preset", []string{"-in", in, "-preset", filepath.Join(dir, "nope.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tt.args, &stdout, &stderr); err == nil {
				t.Error("expected error")
			}
		})
	}
}
