// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command nodedesc encodes, decodes and maps quadtree node descriptors.
//
// Usage:
//
//	nodedesc encode regular --depth 2 --u 1 --v 3
//	nodedesc decode 0x00c01010
//	nodedesc map 0x00c01010 --u 0.5 --v 0.5
//	nodedesc sweep 0x00c01010 0x0080501b --steps 256
//	nodedesc render 0x00c01010 0x0080501b --out nodes.png
package main

import (
	"os"

	_ "github.com/gogpu/subdiv/gpu"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
