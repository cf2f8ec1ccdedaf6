// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
)

var (
	// ErrUnknownEffect is returned by Lookup for an unregistered name.
	ErrUnknownEffect = errors.New("passes: unknown effect")

	// ErrBadParam is returned by Lookup for an unknown or mistyped
	// parameter.
	ErrBadParam = errors.New("passes: bad effect parameter")
)

// effect builds a pass from decoded parameters.
type effect struct {
	params []string
	build  func(p params) (postfx.PassConfig, error)
}

var effects = map[string]effect{
	"identity": {
		build: func(params) (postfx.PassConfig, error) { return Identity(), nil },
	},
	"grayscale": {
		params: []string{"amount"},
		build: func(p params) (postfx.PassConfig, error) {
			amount, err := p.float("amount", 1)
			return Grayscale(amount), err
		},
	},
	"invert": {
		params: []string{"amount"},
		build: func(p params) (postfx.PassConfig, error) {
			amount, err := p.float("amount", 1)
			return Invert(amount), err
		},
	},
	"blur": {
		params: []string{"direction", "radius"},
		build: func(p params) (postfx.PassConfig, error) {
			dir, err := p.vec2("direction", render.Vec2{X: 1})
			if err != nil {
				return postfx.PassConfig{}, err
			}
			radius, err := p.float("radius", 1)
			return Blur(dir, radius), err
		},
	},
	"colorgrade": {
		params: []string{"exposure", "tint"},
		build: func(p params) (postfx.PassConfig, error) {
			tint, err := p.vec3("tint", render.Vec3{X: 1, Y: 1, Z: 1})
			if err != nil {
				return postfx.PassConfig{}, err
			}
			exposure, err := p.float("exposure", 0)
			return ColorGrade(tint, exposure), err
		},
	},
}

// Names returns the registered effect names in lexical order.
func Names() []string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup builds the named effect. params holds TOML-decoded values:
// numbers for scalars and arrays of numbers for vectors. Missing
// parameters take the effect's default. Lookup satisfies
// postfx.EffectLookup.
//
// Parameters:
//
//	grayscale, invert   amount (default 1)
//	blur                direction [x, y] (default [1, 0]), radius (default 1)
//	colorgrade          tint [r, g, b] (default [1, 1, 1]), exposure (default 0)
func Lookup(name string, raw map[string]any) (postfx.PassConfig, error) {
	e, ok := effects[name]
	if !ok {
		return postfx.PassConfig{}, fmt.Errorf("%w %q", ErrUnknownEffect, name)
	}
	for key := range raw {
		if !slices.Contains(e.params, key) {
			return postfx.PassConfig{}, fmt.Errorf("%w: %s has no parameter %q", ErrBadParam, name, key)
		}
	}
	cfg, err := e.build(params(raw))
	if err != nil {
		return postfx.PassConfig{}, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

var _ postfx.EffectLookup = Lookup

// params reads typed values out of a decoded parameter table.
type params map[string]any

func (p params) float(key string, def float32) (float32, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	f, ok := number(v)
	if !ok {
		return def, fmt.Errorf("%w: %q must be a number, got %T", ErrBadParam, key, v)
	}
	return f, nil
}

func (p params) vector(key string, n int) ([]float32, bool, error) {
	v, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	list, ok := v.([]any)
	if !ok || len(list) != n {
		return nil, true, fmt.Errorf("%w: %q must be an array of %d numbers", ErrBadParam, key, n)
	}
	out := make([]float32, n)
	for i, item := range list {
		f, ok := number(item)
		if !ok {
			return nil, true, fmt.Errorf("%w: %q[%d] must be a number, got %T", ErrBadParam, key, i, item)
		}
		out[i] = f
	}
	return out, true, nil
}

func (p params) vec2(key string, def render.Vec2) (render.Vec2, error) {
	c, ok, err := p.vector(key, 2)
	if err != nil || !ok {
		return def, err
	}
	return render.Vec2{X: c[0], Y: c[1]}, nil
}

func (p params) vec3(key string, def render.Vec3) (render.Vec3, error) {
	c, ok, err := p.vector(key, 3)
	if err != nil || !ok {
		return def, err
	}
	return render.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// number converts the numeric types a TOML decoder produces.
func number(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int64:
		return float32(n), true
	case int:
		return float32(n), true
	default:
		return 0, false
	}
}
