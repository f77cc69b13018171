// Package bits provides the field primitives used to lay out packed words.
//
// All helpers are pure and never check for overflow: a value wider than its
// field keeps only its lowest width bits.
package bits

import mathbits "math/bits"

// Mask returns a mask with the low width bits set.
func Mask(width uint) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return uint32(1)<<width - 1
}

// Pack truncates value to width bits and shifts it to offset.
// The result is meant to be OR-ed with the other fields of the word.
func Pack(value uint32, width, offset uint) uint32 {
	return (value & Mask(width)) << offset
}

// PackBool packs a single flag bit at offset.
func PackBool(flag bool, offset uint) uint32 {
	if flag {
		return 1 << offset
	}
	return 0
}

// Unpack extracts the width-bit field stored at offset.
func Unpack(word uint32, width, offset uint) uint32 {
	return (word >> offset) & Mask(width)
}

// Count returns the number of set bits in value.
func Count(value uint32) int {
	return mathbits.OnesCount32(value)
}
