// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu registers the GPU batch mapper.
//
// Import this package to map large sample batches with a wgpu/hal compute
// shader:
//
//	import _ "github.com/gogpu/subdiv/gpu"
//
// The GPU device is opened on the first batch large enough to benefit. If
// no Vulkan device is available, batches are mapped on the CPU.
package gpu

import (
	"github.com/gogpu/subdiv"
	gpuimpl "github.com/gogpu/subdiv/internal/gpu"
)

func init() {
	if err := subdiv.RegisterAccelerator(&gpuimpl.MapAccelerator{}); err != nil {
		subdiv.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider makes the accelerator use a GPU device shared by the
// host application instead of opening its own.
//
// The provider should be a gpucontext.DeviceProvider that also implements
// HalDevice() any and HalQueue() any.
func SetDeviceProvider(provider any) error {
	return subdiv.SetAcceleratorDeviceProvider(provider)
}
