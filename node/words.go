package node

import "unsafe"

// Words returns nodes viewed as raw 32-bit words. The returned slice shares
// memory with nodes.
func Words(nodes []Descriptor) []uint32 {
	if len(nodes) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&nodes[0])), len(nodes)) //nolint:gosec // Descriptor is a uint32
}

// FromWords returns words viewed as descriptors. The returned slice shares
// memory with words.
func FromWords(words []uint32) []Descriptor {
	if len(words) == 0 {
		return nil
	}
	return unsafe.Slice((*Descriptor)(unsafe.Pointer(&words[0])), len(words)) //nolint:gosec // Descriptor is a uint32
}

// AppendWords appends the raw words of nodes to dst and returns the extended
// slice.
func AppendWords(dst []uint32, nodes []Descriptor) []uint32 {
	return append(dst, Words(nodes)...)
}
