// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"maps"
	"slices"
)

// UniformKind identifies the type of a uniform value.
type UniformKind int

const (
	// UniformFloat is a single float32.
	UniformFloat UniformKind = iota

	// UniformVec2 is a two-component float32 vector.
	UniformVec2

	// UniformVec3 is a three-component float32 vector.
	UniformVec3

	// UniformVec4 is a four-component float32 vector.
	UniformVec4

	// UniformTexture is a sampled texture.
	UniformTexture
)

// String returns the WGSL-style name of the kind.
func (k UniformKind) String() string {
	switch k {
	case UniformFloat:
		return "f32"
	case UniformVec2:
		return "vec2<f32>"
	case UniformVec3:
		return "vec3<f32>"
	case UniformVec4:
		return "vec4<f32>"
	case UniformTexture:
		return "texture_2d<f32>"
	default:
		return fmt.Sprintf("UniformKind(%d)", int(k))
	}
}

// UniformValue is a value that can be bound to a uniform.
//
// The set is closed: Float, Vec2, Vec3, Vec4 and TextureUniform are the only
// implementations, so backends can switch on the concrete type exhaustively.
type UniformValue interface {
	Kind() UniformKind
	uniformValue()
}

// Float is a scalar uniform value.
type Float float32

// Kind returns UniformFloat.
func (Float) Kind() UniformKind { return UniformFloat }
func (Float) uniformValue()     {}

// Kind returns UniformVec2.
func (Vec2) Kind() UniformKind { return UniformVec2 }
func (Vec2) uniformValue()     {}

// Kind returns UniformVec3.
func (Vec3) Kind() UniformKind { return UniformVec3 }
func (Vec3) uniformValue()     {}

// Kind returns UniformVec4.
func (Vec4) Kind() UniformKind { return UniformVec4 }
func (Vec4) uniformValue()     {}

// TextureUniform binds a texture through an accessor.
//
// The accessor is evaluated at draw time, so a uniform created from a
// swap chain keeps following the chain's current read target across
// swaps and reallocations.
type TextureUniform struct {
	Source func() Texture
}

// StaticTexture returns a TextureUniform that always resolves to tex.
func StaticTexture(tex Texture) TextureUniform {
	return TextureUniform{Source: func() Texture { return tex }}
}

// Texture resolves the accessor. Returns nil if no accessor is set.
func (t TextureUniform) Texture() Texture {
	if t.Source == nil {
		return nil
	}
	return t.Source()
}

// Kind returns UniformTexture.
func (TextureUniform) Kind() UniformKind { return UniformTexture }
func (TextureUniform) uniformValue()     {}

// Uniform is a single named uniform slot.
type Uniform struct {
	Value UniformValue
}

// Uniforms maps uniform names to slots.
type Uniforms map[string]*Uniform

// Clone returns a copy with freshly allocated slots, so writes to the clone
// never reach the original.
func (u Uniforms) Clone() Uniforms {
	out := make(Uniforms, len(u)+1)
	for name, slot := range u {
		if slot == nil {
			out[name] = &Uniform{}
			continue
		}
		c := *slot
		out[name] = &c
	}
	return out
}

// Set stores v under name, allocating the slot if needed.
func (u Uniforms) Set(name string, v UniformValue) {
	if slot, ok := u[name]; ok && slot != nil {
		slot.Value = v
		return
	}
	u[name] = &Uniform{Value: v}
}

// Get returns the value stored under name.
func (u Uniforms) Get(name string) (UniformValue, bool) {
	slot, ok := u[name]
	if !ok || slot == nil || slot.Value == nil {
		return nil, false
	}
	return slot.Value, true
}

// Texture resolves the texture bound under name.
func (u Uniforms) Texture(name string) (Texture, bool) {
	v, ok := u.Get(name)
	if !ok {
		return nil, false
	}
	tu, ok := v.(TextureUniform)
	if !ok {
		return nil, false
	}
	tex := tu.Texture()
	return tex, tex != nil
}

// Names returns the uniform names in lexical order.
func (u Uniforms) Names() []string {
	return slices.Sorted(maps.Keys(u))
}
