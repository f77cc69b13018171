// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package node encodes the nodes of an adaptive quadtree decomposition of a
// coarse mesh face into single 32-bit words.
//
// # Overview
//
// Adaptive tessellation subdivides each coarse face around extraordinary
// vertices and creases. Instead of storing a pointer tree, every sub-patch is
// identified by a [Descriptor]: a tag describing the kind of node, its depth
// in the quadtree and its absolute integer (u, v) address at that depth.
// A node can therefore be located and evaluated without walking its
// ancestors, and a table of descriptors can be uploaded to the GPU as-is.
//
// # Layout
//
//	bits   width  field
//	0-1    2      type (Regular, Recursive, Terminal, End)
//	2      1      single crease (Regular) / has end-cap (Recursive, Terminal)
//	3-6    4      depth
//	7-11   5      boundary mask (Regular, End)
//	8-11   4      extraordinary vertex index (Terminal)
//	12-21  10     u
//	22-31  10     v
//
// Fields that do not belong to a descriptor's type still decode to some
// value, but that value carries no meaning. Check [Descriptor.Type] first,
// or use [Decode] to obtain a typed [Node].
//
// # Parametric mapping
//
// [Descriptor.MapCoarseToRefined] and [Descriptor.MapRefinedToCoarse] convert
// (u, v) between the unit square of the coarse face and the unit square of
// the node. Irregular (non-quad) faces are split into quad sub-faces first,
// which consumes one level of depth.
//
// # Range checking
//
// Setters truncate out-of-range inputs to their field width without any
// signal. Building with the subdivdebug tag turns out-of-range inputs into
// panics.
package node
