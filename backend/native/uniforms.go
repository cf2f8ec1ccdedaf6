// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/postfx/render"
)

// uniformField is one member of the packed uniform struct.
type uniformField struct {
	name   string
	kind   render.UniformKind
	offset int
}

// uniformBlock is the std140-like layout of the non-texture uniforms of a
// program, members in name order.
//
// Alignment and size follow the WGSL uniform address space:
//
//	f32        align 4   size 4
//	vec2<f32>  align 8   size 8
//	vec3<f32>  align 16  size 12
//	vec4<f32>  align 16  size 16
//
// The struct size is rounded up to 16 bytes.
type uniformBlock struct {
	fields []uniformField
	size   int
}

// newUniformBlock lays out the non-texture uniforms of u.
func newUniformBlock(u render.Uniforms) uniformBlock {
	var b uniformBlock
	offset := 0
	for _, name := range u.Names() {
		v, ok := u.Get(name)
		if !ok || v.Kind() == render.UniformTexture {
			continue
		}
		align, size := kindLayout(v.Kind())
		offset = alignUp(offset, align)
		b.fields = append(b.fields, uniformField{name: name, kind: v.Kind(), offset: offset})
		offset += size
	}
	if offset > 0 {
		b.size = alignUp(offset, 16)
	}
	return b
}

// pack writes the current values of u into a buffer of b.size bytes.
// Entries missing from u are written as zero.
func (b uniformBlock) pack(u render.Uniforms) ([]byte, error) {
	buf := make([]byte, b.size)
	for _, f := range b.fields {
		v, ok := u.Get(f.name)
		if !ok {
			continue
		}
		if v.Kind() != f.kind {
			return nil, fmt.Errorf("%w: %q is %s, was %s", ErrUniformKind, f.name, v.Kind(), f.kind)
		}
		putFloats(buf[f.offset:], components(v)...)
	}
	return buf, nil
}

// textureNames returns the names of the texture uniforms of u in order.
func textureNames(u render.Uniforms) []string {
	var names []string
	for _, name := range u.Names() {
		if v, ok := u.Get(name); ok && v.Kind() == render.UniformTexture {
			names = append(names, name)
		}
	}
	return names
}

func kindLayout(k render.UniformKind) (align, size int) {
	switch k {
	case render.UniformVec2:
		return 8, 8
	case render.UniformVec3:
		return 16, 12
	case render.UniformVec4:
		return 16, 16
	default:
		return 4, 4
	}
}

func components(v render.UniformValue) []float32 {
	switch x := v.(type) {
	case render.Float:
		return []float32{float32(x)}
	case render.Vec2:
		return []float32{x.X, x.Y}
	case render.Vec3:
		return []float32{x.X, x.Y, x.Z}
	case render.Vec4:
		return []float32{x.X, x.Y, x.Z, x.W}
	}
	return nil
}

func putFloats(buf []byte, fs ...float32) {
	for i, f := range fs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
