// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Attribute is a flat float32 vertex attribute.
type Attribute struct {
	// Size is the number of components per vertex.
	Size int

	// Data holds Size components for each vertex.
	Data []float32
}

// Count returns the number of vertices described by the attribute.
func (a Attribute) Count() int {
	if a.Size <= 0 {
		return 0
	}
	return len(a.Data) / a.Size
}

// Geometry is a non-indexed triangle list.
//
// Backends require a "position" attribute of size 2 and a "uv" attribute
// of size 2.
type Geometry struct {
	Attributes map[string]Attribute
}

// Attribute names understood by every backend.
const (
	AttributePosition = "position"
	AttributeUV       = "uv"
)

// FullscreenTriangle returns the single triangle that covers clip space.
//
// Positions (-1,-1), (3,-1), (-1,3) overscan the viewport so no diagonal
// seam is rasterised. uv runs (0,0), (2,0), (0,2), which interpolates to
// exactly [0,1] across the visible area.
func FullscreenTriangle() *Geometry {
	return &Geometry{
		Attributes: map[string]Attribute{
			AttributePosition: {Size: 2, Data: []float32{-1, -1, 3, -1, -1, 3}},
			AttributeUV:       {Size: 2, Data: []float32{0, 0, 2, 0, 0, 2}},
		},
	}
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return g.Attributes[AttributePosition].Count()
}

// Validate checks that position and uv are present, two-component and of
// equal length, and that they describe whole triangles.
func (g *Geometry) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil geometry", ErrInvalidGeometry)
	}
	pos, ok := g.Attributes[AttributePosition]
	if !ok || pos.Size != 2 {
		return fmt.Errorf("%w: %q must have size 2", ErrInvalidGeometry, AttributePosition)
	}
	uv, ok := g.Attributes[AttributeUV]
	if !ok || uv.Size != 2 {
		return fmt.Errorf("%w: %q must have size 2", ErrInvalidGeometry, AttributeUV)
	}
	if len(pos.Data)%2 != 0 || len(uv.Data) != len(pos.Data) {
		return fmt.Errorf("%w: attribute lengths %d and %d disagree", ErrInvalidGeometry, len(pos.Data), len(uv.Data))
	}
	if n := pos.Count(); n == 0 || n%3 != 0 {
		return fmt.Errorf("%w: %d vertices is not a triangle list", ErrInvalidGeometry, n)
	}
	return nil
}
