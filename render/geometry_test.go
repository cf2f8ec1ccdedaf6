// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"slices"
	"testing"
)

func TestFullscreenTriangle(t *testing.T) {
	g := FullscreenTriangle()

	pos := g.Attributes[AttributePosition]
	if pos.Size != 2 || !slices.Equal(pos.Data, []float32{-1, -1, 3, -1, -1, 3}) {
		t.Errorf("position = %+v", pos)
	}
	uv := g.Attributes[AttributeUV]
	if uv.Size != 2 || !slices.Equal(uv.Data, []float32{0, 0, 2, 0, 0, 2}) {
		t.Errorf("uv = %+v", uv)
	}
	if g.VertexCount() != 3 {
		t.Errorf("VertexCount() = %d, want 3", g.VertexCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name string
		geom *Geometry
	}{
		{"nil", nil},
		{"no attributes", &Geometry{}},
		{"no uv", &Geometry{Attributes: map[string]Attribute{
			AttributePosition: {Size: 2, Data: []float32{-1, -1, 3, -1, -1, 3}},
		}}},
		{"wrong size", &Geometry{Attributes: map[string]Attribute{
			AttributePosition: {Size: 3, Data: []float32{-1, -1, 0, 3, -1, 0, -1, 3, 0}},
			AttributeUV:       {Size: 2, Data: []float32{0, 0, 2, 0, 0, 2}},
		}}},
		{"length mismatch", &Geometry{Attributes: map[string]Attribute{
			AttributePosition: {Size: 2, Data: []float32{-1, -1, 3, -1, -1, 3}},
			AttributeUV:       {Size: 2, Data: []float32{0, 0, 2, 0}},
		}}},
		{"not a triangle list", &Geometry{Attributes: map[string]Attribute{
			AttributePosition: {Size: 2, Data: []float32{-1, -1, 3, -1}},
			AttributeUV:       {Size: 2, Data: []float32{0, 0, 2, 0}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.geom.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Validate() = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}
