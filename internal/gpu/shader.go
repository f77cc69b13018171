// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/param_map.wgsl
var paramMapShaderWGSL string

// paramMapWorkgroupSize matches @workgroup_size in param_map.wgsl.
const paramMapWorkgroupSize = 64

// compileShaderToSPIRV compiles WGSL source to little-endian SPIR-V words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
