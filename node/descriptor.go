// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package node

import (
	"fmt"

	"github.com/gogpu/subdiv/internal/bits"
)

// Descriptor is a quadtree node packed into one 32-bit word.
//
// The zero value decodes as a Regular node at depth 0 with u = v = 0. It is
// not a "no node" marker: absence of a node is expressed by the container
// that holds the descriptors.
//
// Exactly one of the Set methods should be used to build a descriptor. Each
// one overwrites the whole word.
type Descriptor uint32

// field truncates value to width bits at offset. Negative values keep their
// two's-complement low bits.
func field(value int, width, offset uint) uint32 {
	return bits.Pack(uint32(value), width, offset) //nolint:gosec // truncation is the contract
}

// SetRegular encodes a Regular node.
//
// depth must be below 16, boundary below 32 and u, v below 1024. Larger
// values are truncated to their lowest bits.
func (d *Descriptor) SetRegular(singleCrease bool, depth, boundary, u, v int) {
	assertField("depth", depth, MaxDepth)
	assertField("boundary", boundary, MaxBoundary)
	assertField("u", u, MaxCoord)
	assertField("v", v, MaxCoord)

	*d = Descriptor(field(v, vWidth, vOffset) |
		field(u, uWidth, uOffset) |
		field(boundary, boundaryWidth, boundaryOffset) |
		field(depth, depthWidth, depthOffset) |
		bits.PackBool(singleCrease, flagOffset) |
		field(int(TypeRegular), typeWidth, typeOffset))
}

// SetEnd encodes an End node. The layout matches Regular without the
// single-crease bit.
func (d *Descriptor) SetEnd(depth, boundary, u, v int) {
	assertField("depth", depth, MaxDepth)
	assertField("boundary", boundary, MaxBoundary)
	assertField("u", u, MaxCoord)
	assertField("v", v, MaxCoord)

	*d = Descriptor(field(v, vWidth, vOffset) |
		field(u, uWidth, uOffset) |
		field(boundary, boundaryWidth, boundaryOffset) |
		field(depth, depthWidth, depthOffset) |
		field(int(TypeEnd), typeWidth, typeOffset))
}

// SetRecursive encodes a Recursive node. The boundary range stays zero.
func (d *Descriptor) SetRecursive(depth, u, v int, hasEndcap bool) {
	assertField("depth", depth, MaxDepth)
	assertField("u", u, MaxCoord)
	assertField("v", v, MaxCoord)

	*d = Descriptor(field(v, vWidth, vOffset) |
		field(u, uWidth, uOffset) |
		field(depth, depthWidth, depthOffset) |
		bits.PackBool(hasEndcap, flagOffset) |
		field(int(TypeRecursive), typeWidth, typeOffset))
}

// SetTerminal encodes a Terminal node. evIndex is the local index of the
// extraordinary vertex, 0-3 for a quad.
func (d *Descriptor) SetTerminal(depth, evIndex, u, v int, hasEndcap bool) {
	assertField("depth", depth, MaxDepth)
	assertField("evIndex", evIndex, MaxEvIndex)
	assertField("u", u, MaxCoord)
	assertField("v", v, MaxCoord)

	*d = Descriptor(field(v, vWidth, vOffset) |
		field(u, uWidth, uOffset) |
		field(evIndex, evIndexWidth, evIndexOffset) |
		field(depth, depthWidth, depthOffset) |
		bits.PackBool(hasEndcap, flagOffset) |
		field(int(TypeTerminal), typeWidth, typeOffset))
}

// Clear resets d to the zero word.
func (d *Descriptor) Clear() { *d = 0 }

func (d Descriptor) unpack(width, offset uint) int {
	return int(bits.Unpack(uint32(d), width, offset))
}

// Type returns the node type. Valid for every descriptor.
func (d Descriptor) Type() Type { return Type(d.unpack(typeWidth, typeOffset)) }

// Depth returns the isolation level of the node, 0 for the coarse face.
func (d Descriptor) Depth() int { return d.unpack(depthWidth, depthOffset) }

// U returns the integer u address of the node's first corner at its depth.
func (d Descriptor) U() int { return d.unpack(uWidth, uOffset) }

// V returns the integer v address of the node's first corner at its depth.
func (d Descriptor) V() int { return d.unpack(vWidth, vOffset) }

// The accessors below are only meaningful for some node types. On other
// types they return whatever the shared bits hold.

// BoundaryMask returns the boundary edge mask. Regular and End nodes only.
func (d Descriptor) BoundaryMask() int { return d.unpack(boundaryWidth, boundaryOffset) }

// BoundaryCount returns the number of boundary edges, between 0 and 5.
// Regular and End nodes only.
func (d Descriptor) BoundaryCount() int { return bits.Count(uint32(d.BoundaryMask())) } //nolint:gosec // mask is 5 bits

// EvIndex returns the local index of the extraordinary vertex.
// Terminal nodes only.
func (d Descriptor) EvIndex() int { return d.unpack(evIndexWidth, evIndexOffset) }

// HasEndcap reports whether the node has a fall-back end-cap patch usable
// for dynamic isolation. Recursive and Terminal nodes only.
func (d Descriptor) HasEndcap() bool { return d.unpack(1, flagOffset) != 0 }

// HasSharpness reports whether the patch is a single-crease patch.
// Regular nodes only. It reads the same bit as HasEndcap.
func (d Descriptor) HasSharpness() bool { return d.unpack(1, flagOffset) != 0 }

// String formats the fields that are defined for the descriptor's type.
func (d Descriptor) String() string {
	switch t := d.Type(); t {
	case TypeRegular:
		return fmt.Sprintf("%s{depth:%d u:%d v:%d boundary:%05b crease:%t}",
			t, d.Depth(), d.U(), d.V(), d.BoundaryMask(), d.HasSharpness())
	case TypeEnd:
		return fmt.Sprintf("%s{depth:%d u:%d v:%d boundary:%05b}",
			t, d.Depth(), d.U(), d.V(), d.BoundaryMask())
	case TypeRecursive:
		return fmt.Sprintf("%s{depth:%d u:%d v:%d endcap:%t}",
			t, d.Depth(), d.U(), d.V(), d.HasEndcap())
	default:
		return fmt.Sprintf("%s{depth:%d u:%d v:%d ev:%d endcap:%t}",
			t, d.Depth(), d.U(), d.V(), d.EvIndex(), d.HasEndcap())
	}
}
