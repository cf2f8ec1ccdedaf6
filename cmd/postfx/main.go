// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command postfx runs a post-processing chain over a PNG image on the CPU.
//
// Usage:
//
//	postfx -in photo.png -out graded.png -preset film.toml
//	postfx -in photo.png -effects grayscale,invert
//	postfx -list
//
// The chain comes from a TOML preset (see postfx.Preset) or from a comma
// separated list of effect names with default parameters.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/backend"
	"github.com/gogpu/postfx/passes"
	"github.com/gogpu/postfx/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "postfx: %v\n", err)
		os.Exit(1)
	}
}

// config holds the parsed command line.
type config struct {
	in      string
	out     string
	preset  string
	effects string
	backend string
	dpr     float64
	verbose bool
	list    bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("postfx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.in, "in", "", "input PNG file")
	fs.StringVar(&cfg.out, "out", "out.png", "output PNG file")
	fs.StringVar(&cfg.preset, "preset", "", "TOML preset file")
	fs.StringVar(&cfg.effects, "effects", "", "comma separated effect names (ignored with -preset)")
	fs.StringVar(&cfg.backend, "backend", backend.BackendSoftware, "render backend with a CPU surface")
	fs.Float64Var(&cfg.dpr, "dpr", 1, "device-pixel-ratio of the input image")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.BoolVar(&cfg.list, "list", false, "list available effects and exit")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if !cfg.list && cfg.in == "" {
		return cfg, errors.New("-in is required")
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if cfg.list {
		for _, name := range passes.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	postfx.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer postfx.SetLogger(nil)

	img, err := readPNG(cfg.in)
	if err != nil {
		return err
	}

	preset, err := loadChain(cfg)
	if err != nil {
		return err
	}
	opts, err := preset.Options()
	if err != nil {
		return err
	}

	b := img.Bounds()
	rc, err := backend.Open(cfg.backend, backend.Config{Width: b.Dx(), Height: b.Dy(), DPR: cfg.dpr})
	if err != nil {
		return err
	}
	ctx, ok := rc.(*render.SoftwareContext)
	if !ok {
		return fmt.Errorf("backend %q has no CPU surface", cfg.backend)
	}
	post, err := postfx.New(ctx, opts...)
	if err != nil {
		return err
	}
	defer post.Release()

	if _, err := preset.Build(post, passes.Lookup); err != nil {
		return err
	}
	if err := post.Render(img, nil); err != nil {
		return err
	}

	d := post.Dimensions()
	postfx.Logger().Info("postfx: rendered",
		"in", cfg.in, "out", cfg.out, "passes", len(post.Passes()),
		"width", d.PixelWidth, "height", d.PixelHeight)
	return writePNG(cfg.out, ctx.Surface().Image())
}

// loadChain returns the preset file, or a preset built from -effects.
func loadChain(cfg config) (*postfx.Preset, error) {
	if cfg.preset != "" {
		return postfx.LoadPreset(cfg.preset)
	}
	p := &postfx.Preset{}
	for _, name := range strings.Split(cfg.effects, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p.Passes = append(p.Passes, postfx.PassPreset{Effect: name})
	}
	return p, nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
