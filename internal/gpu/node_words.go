// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/subdiv"
	"github.com/gogpu/subdiv/node"
)

// GPU buffer strides in bytes. They mirror the WGSL structs in
// shaders/param_map.wgsl.
const (
	configSize   = 16 // Config
	sampleStride = 16 // Sample
	pointStride  = 8  // vec2<f32>
)

// packConfig encodes the uniform Config block.
func packConfig(count uint32, dir subdiv.Direction) []byte {
	out := make([]byte, configSize)
	binary.LittleEndian.PutUint32(out[0:], count)
	binary.LittleEndian.PutUint32(out[4:], uint32(dir)) //nolint:gosec // validated by subdiv.MapSamples
	return out
}

// packNodes encodes the descriptor table as little-endian words.
// An empty table yields one zero word so the storage binding is never empty.
func packNodes(nodes []node.Descriptor) []byte {
	words := node.Words(nodes)
	if len(words) == 0 {
		return make([]byte, 4)
	}
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// packSamples encodes samples in the WGSL Sample layout.
func packSamples(samples []subdiv.Sample) []byte {
	out := make([]byte, sampleStride*len(samples))
	for i, s := range samples {
		b := out[i*sampleStride:]
		var regular uint32
		if s.Regular {
			regular = 1
		}
		binary.LittleEndian.PutUint32(b[0:], s.Node)
		binary.LittleEndian.PutUint32(b[4:], regular)
		binary.LittleEndian.PutUint32(b[8:], math.Float32bits(s.U))
		binary.LittleEndian.PutUint32(b[12:], math.Float32bits(s.V))
	}
	return out
}

// unpackPoints decodes n vec2<f32> values read back from the GPU.
func unpackPoints(data []byte, n int) []subdiv.Point {
	n = min(n, len(data)/pointStride)
	out := make([]subdiv.Point, n)
	for i := range out {
		b := data[i*pointStride:]
		out[i] = subdiv.Point{
			U: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			V: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		}
	}
	return out
}
