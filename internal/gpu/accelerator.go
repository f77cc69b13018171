// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/subdiv"
	"github.com/gogpu/subdiv/node"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// DefaultMinBatch is the smallest batch dispatched to the GPU. Smaller
// batches are cheaper to map on the CPU than to upload.
const DefaultMinBatch = 16384

// MapAccelerator maps sample batches on the GPU with ParamMapDispatcher.
// It implements subdiv.MapAccelerator and subdiv.DeviceProviderAware.
//
// The device is opened lazily on the first batch large enough to accelerate,
// unless SetDeviceProvider supplied one first. If no GPU is available every
// batch falls back to the CPU.
type MapAccelerator struct {
	mu sync.Mutex

	backend  hal.Backend // nil selects Vulkan
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	dispatcher *ParamMapDispatcher

	// MinBatch overrides DefaultMinBatch when positive.
	MinBatch int

	initTried      bool
	gpuReady       bool
	externalDevice bool // shared device, not destroyed on Close
}

var (
	_ subdiv.MapAccelerator      = (*MapAccelerator)(nil)
	_ subdiv.DeviceProviderAware = (*MapAccelerator)(nil)
)

// Name returns the accelerator identifier.
func (a *MapAccelerator) Name() string { return "param-map-gpu" }

// Init defers device creation to the first accelerated batch.
func (a *MapAccelerator) Init() error {
	return nil
}

// SetLogger sets the logger used by this package.
// Called by subdiv.SetLogger.
func (a *MapAccelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

func (a *MapAccelerator) minBatch() int {
	if a.MinBatch > 0 {
		return a.MinBatch
	}
	return DefaultMinBatch
}

// CanAccelerate reports whether a batch of n samples will be dispatched.
// The first call with a large enough batch opens the GPU device.
func (a *MapAccelerator) CanAccelerate(n int) bool {
	if n < a.minBatch() || n > MaxDispatchSamples {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initTried {
		a.initTried = true
		if err := a.initGPU(); err != nil {
			slogger().Warn("param-map-gpu: GPU init failed, mapping on CPU", "err", err)
		}
	}
	return a.gpuReady
}

// MapSamples dispatches the batch. It returns subdiv.ErrFallbackToCPU when
// no GPU is ready.
func (a *MapAccelerator) MapSamples(nodes []node.Descriptor, samples []subdiv.Sample, dir subdiv.Direction) ([]subdiv.Point, error) {
	a.mu.Lock()
	d := a.dispatcher
	ready := a.gpuReady
	a.mu.Unlock()

	if !ready || d == nil {
		return nil, subdiv.ErrFallbackToCPU
	}
	points, err := d.Map(nodes, samples, dir)
	if errors.Is(err, ErrBatchTooLarge) || errors.Is(err, ErrDispatcherNotReady) {
		return nil, errors.Join(subdiv.ErrFallbackToCPU, err)
	}
	return points, err
}

// Close releases all GPU resources held by the accelerator.
func (a *MapAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dispatcher != nil {
		a.dispatcher.Close()
		a.dispatcher = nil
	}
	if !a.externalDevice {
		a.releaseOwned()
	}
	a.device = nil
	a.instance = nil
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
	a.initTried = false
}

// halProvider is a gpucontext.DeviceProvider that also exposes the
// underlying wgpu/hal device and queue.
type halProvider interface {
	gpucontext.DeviceProvider
	HalDevice() any
	HalQueue() any
}

// SetDeviceProvider switches the accelerator to a GPU device shared by the
// host application. The provider must be a gpucontext.DeviceProvider that
// also implements HalDevice() any and HalQueue() any.
func (a *MapAccelerator) SetDeviceProvider(provider any) error {
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("param-map-gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("param-map-gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("param-map-gpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dispatcher != nil {
		a.dispatcher.Close()
		a.dispatcher = nil
	}
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	a.device = device
	a.queue = queue
	a.externalDevice = true
	a.initTried = true

	if err := a.createDispatcher(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("param-map-gpu: create dispatcher with shared device: %w", err)
	}
	a.gpuReady = true
	slogger().Info("param-map-gpu: switched to shared GPU device")
	return nil
}

func (a *MapAccelerator) createDispatcher() error {
	d := NewParamMapDispatcher(a.device, a.queue)
	if err := d.Init(); err != nil {
		return err
	}
	a.dispatcher = d
	return nil
}

func (a *MapAccelerator) initGPU() error {
	backend := a.backend
	if backend == nil {
		vk, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return fmt.Errorf("vulkan backend not available")
		}
		backend = vk
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("no GPU adapters found")
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("open device: %w", err)
	}
	a.instance = instance
	a.device = openDev.Device
	a.queue = openDev.Queue

	if err := a.createDispatcher(); err != nil {
		a.releaseOwned()
		return fmt.Errorf("create dispatcher: %w", err)
	}
	a.gpuReady = true
	slogger().Info("param-map-gpu: GPU accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

// releaseOwned destroys the device and instance opened by initGPU.
func (a *MapAccelerator) releaseOwned() {
	if a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
	}
	a.device = nil
	a.queue = nil
	a.instance = nil
}
