// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
)

// Preset is a pipeline described in TOML.
//
// Example:
//
//	[pipeline]
//	width = 512
//	dpr = 2
//	filter = "nearest"
//
//	[[pass]]
//	effect = "blur"
//	params = { direction = [1.0, 0.0], radius = 2.0 }
//
//	[[pass]]
//	effect = "grayscale"
//	disabled = true
type Preset struct {
	Pipeline PipelineSettings `toml:"pipeline"`
	Passes   []PassPreset     `toml:"pass"`
}

// PipelineSettings maps to the Post options.
type PipelineSettings struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	DPR    float64 `toml:"dpr"`

	// Filter is "linear" (default) or "nearest".
	Filter string `toml:"filter"`

	// Wrap is "clamp" (default), "repeat" or "mirror".
	Wrap string `toml:"wrap"`
}

// PassPreset names an effect and its parameters.
type PassPreset struct {
	Effect   string         `toml:"effect"`
	Label    string         `toml:"label"`
	Disabled bool           `toml:"disabled"`
	Params   map[string]any `toml:"params"`
}

// EffectLookup resolves an effect name and its parameters to a pass.
// The passes package provides one.
type EffectLookup func(effect string, params map[string]any) (PassConfig, error)

// LoadPreset reads a preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("postfx: load preset: %w", err)
	}
	return ParsePreset(bytes.NewReader(data))
}

// ParsePreset decodes a preset. Unknown keys are an error.
func ParsePreset(r io.Reader) (*Preset, error) {
	var p Preset
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&p); err != nil {
		return nil, fmt.Errorf("postfx: parse preset: %w", err)
	}
	for i, pass := range p.Passes {
		if pass.Effect == "" {
			return nil, fmt.Errorf("postfx: parse preset: pass %d has no effect", i)
		}
	}
	if _, err := p.Pipeline.filter(); err != nil {
		return nil, err
	}
	if _, err := p.Pipeline.wrap(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Options converts the pipeline settings to options for New.
func (p *Preset) Options() ([]Option, error) {
	filter, err := p.Pipeline.filter()
	if err != nil {
		return nil, err
	}
	wrap, err := p.Pipeline.wrap()
	if err != nil {
		return nil, err
	}
	return []Option{
		WithSize(p.Pipeline.Width, p.Pipeline.Height),
		WithDPR(p.Pipeline.DPR),
		WithFilter(filter, filter),
		WithWrap(wrap, wrap),
	}, nil
}

// Build resolves every pass with lookup and adds it to post in order.
func (p *Preset) Build(post *Post, lookup EffectLookup) ([]*Pass, error) {
	out := make([]*Pass, 0, len(p.Passes))
	for i, pp := range p.Passes {
		cfg, err := lookup(pp.Effect, pp.Params)
		if err != nil {
			return out, fmt.Errorf("postfx: preset pass %d: %w", i, err)
		}
		cfg.Disabled = pp.Disabled
		if pp.Label != "" {
			cfg.Label = pp.Label
		}
		pass, err := post.AddPass(cfg)
		if err != nil {
			return out, err
		}
		out = append(out, pass)
	}
	return out, nil
}

func (s PipelineSettings) filter() (gputypes.FilterMode, error) {
	switch s.Filter {
	case "", "linear":
		return gputypes.FilterModeLinear, nil
	case "nearest":
		return gputypes.FilterModeNearest, nil
	default:
		return gputypes.FilterModeLinear, fmt.Errorf("postfx: unknown filter %q", s.Filter)
	}
}

func (s PipelineSettings) wrap() (gputypes.AddressMode, error) {
	switch s.Wrap {
	case "", "clamp":
		return gputypes.AddressModeClampToEdge, nil
	case "repeat":
		return gputypes.AddressModeRepeat, nil
	case "mirror":
		return gputypes.AddressModeMirrorRepeat, nil
	default:
		return gputypes.AddressModeClampToEdge, fmt.Errorf("postfx: unknown wrap mode %q", s.Wrap)
	}
}
