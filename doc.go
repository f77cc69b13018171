// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package subdiv maps parametric coordinates through adaptive quadtree
// nodes of a subdivided patch.
//
// # Overview
//
// Each node of the quadtree is a [node.Descriptor]: a 32-bit word packing
// the node type, its depth and its integer (u, v) address. The node package
// encodes and decodes those words and maps a single coordinate between the
// coarse face and the node's refined patch.
//
// This package adds batch mapping on top of the codec:
//
//	nodes := []node.Descriptor{node.Regular{Depth: 2, U: 1, V: 3}.Encode()}
//	samples := []subdiv.Sample{{Node: 0, Regular: true, U: 0.5, V: 0.5}}
//	points, err := subdiv.MapSamples(nodes, samples, subdiv.CoarseToRefined)
//
// # GPU Acceleration
//
// Large batches can be mapped on the GPU by registering an accelerator:
//
//	import _ "github.com/gogpu/subdiv/gpu"
//
// When no accelerator is registered, or the registered one declines the
// batch, mapping runs on the CPU across a worker pool. Both paths produce
// the same results up to float32 rounding.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package subdiv

// Version is the current version of the library.
const Version = "0.1.0"
