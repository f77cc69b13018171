package node

import "unsafe"

// Field widths and offsets, in bits.
const (
	typeWidth  = 2
	typeOffset = 0

	flagOffset = 2

	depthWidth  = 4
	depthOffset = 3

	boundaryWidth  = 5
	boundaryOffset = 7

	// The extraordinary vertex index shares the boundary range of the word.
	// Bit 7 stays zero for Terminal nodes.
	evIndexWidth  = 4
	evIndexOffset = 8

	uWidth  = 10
	uOffset = 12

	vWidth  = 10
	vOffset = 22
)

// Largest values that survive a round trip through a Descriptor.
const (
	MaxDepth    = 1<<depthWidth - 1
	MaxBoundary = 1<<boundaryWidth - 1
	MaxEvIndex  = 1<<evIndexWidth - 1
	MaxCoord    = 1<<uWidth - 1
)

// Size is the size of a Descriptor in bytes.
const Size = 4

// A Descriptor must stay bit-identical to a uint32 so node tables can be
// handed to the GPU without conversion. Either array length below becomes a
// negative constant, and fails to compile, if that ever changes.
var (
	_ [unsafe.Sizeof(Descriptor(0)) - Size]struct{}
	_ [Size - unsafe.Sizeof(Descriptor(0))]struct{}
)
