// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/subdiv"
	"github.com/gogpu/subdiv/node"
)

// maxWorkgroups is the per-dimension dispatch limit guaranteed by WebGPU.
const maxWorkgroups = 65535

// MaxDispatchSamples is the largest batch one Map call accepts.
const MaxDispatchSamples = maxWorkgroups * paramMapWorkgroupSize

// submitTimeout bounds the wait for one dispatch.
const submitTimeout = 5 * time.Second

// pollInterval is the sleep between completion polls.
const pollInterval = 50 * time.Microsecond

var (
	// ErrDispatcherNotReady is returned by Map before Init succeeds.
	ErrDispatcherNotReady = errors.New("gpu: param map dispatcher not initialized")

	// ErrBatchTooLarge is returned when a batch exceeds MaxDispatchSamples.
	ErrBatchTooLarge = errors.New("gpu: batch exceeds dispatch limit")
)

// ParamMapDispatcher maps sample batches through node descriptors with a
// compute shader. It does not own the device or queue.
//
// ParamMapDispatcher is safe for concurrent use.
type ParamMapDispatcher struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	spirv      []uint32
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	ready bool
}

// NewParamMapDispatcher creates a dispatcher for device and queue.
// Call Init before Map.
func NewParamMapDispatcher(device hal.Device, queue hal.Queue) *ParamMapDispatcher {
	return &ParamMapDispatcher{device: device, queue: queue}
}

// Init compiles the shader and creates the compute pipeline.
// Calling Init on a ready dispatcher is a no-op.
func (d *ParamMapDispatcher) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ready {
		return nil
	}
	if d.device == nil || d.queue == nil {
		return errors.New("param_map: nil device or queue")
	}

	spirv, err := compileShaderToSPIRV(paramMapShaderWGSL)
	if err != nil {
		return fmt.Errorf("param_map: %w", err)
	}
	d.spirv = spirv

	if err := d.createPipeline(); err != nil {
		d.destroyPipeline()
		return fmt.Errorf("param_map: %w", err)
	}
	d.ready = true
	slogger().Debug("param_map: pipeline ready", "spirv_words", len(d.spirv))
	return nil
}

func (d *ParamMapDispatcher) createPipeline() error {
	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "param_map_shader",
		Source: hal.ShaderSource{SPIRV: d.spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "param_map_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: configSize,
				},
			},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "param_map_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "param_map_pipeline",
		Layout:  d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	d.pipeline = pipeline
	return nil
}

// IsReady reports whether Init has succeeded.
func (d *ParamMapDispatcher) IsReady() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// SPIRV returns the compiled shader words, nil before Init.
func (d *ParamMapDispatcher) SPIRV() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.spirv
}

// Map uploads nodes and samples, runs one dispatch and reads the mapped
// points back. Sample node indices must be valid for nodes.
func (d *ParamMapDispatcher) Map(nodes []node.Descriptor, samples []subdiv.Sample, dir subdiv.Direction) ([]subdiv.Point, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.ready {
		return nil, ErrDispatcherNotReady
	}
	n := len(samples)
	if n == 0 {
		return []subdiv.Point{}, nil
	}
	if n > MaxDispatchSamples {
		return nil, fmt.Errorf("%w: %d samples, limit %d", ErrBatchTooLarge, n, MaxDispatchSamples)
	}

	configBytes := packConfig(uint32(n), dir) //nolint:gosec // n <= MaxDispatchSamples
	nodeBytes := packNodes(nodes)
	sampleBytes := packSamples(samples)
	outSize := uint64(n * pointStride) //nolint:gosec // n is positive

	b, err := d.createBuffers(uint64(len(nodeBytes)), uint64(len(sampleBytes)), outSize)
	if err != nil {
		b.destroy(d.device)
		return nil, err
	}
	defer b.destroy(d.device)

	if err := b.upload(d.queue, configBytes, nodeBytes, sampleBytes); err != nil {
		return nil, err
	}

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "param_map_bind",
		Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: b.config.NativeHandle(), Offset: 0, Size: configSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: b.nodes.NativeHandle(), Offset: 0, Size: uint64(len(nodeBytes))}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: b.samples.NativeHandle(), Offset: 0, Size: uint64(len(sampleBytes))}},
			{Binding: 3, Resource: gputypes.BufferBinding{Buffer: b.output.NativeHandle(), Offset: 0, Size: outSize}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("param_map: create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bindGroup)

	workgroups := uint32((n + paramMapWorkgroupSize - 1) / paramMapWorkgroupSize) //nolint:gosec // bounded by maxWorkgroups
	slogger().Debug("param_map: dispatch",
		"samples", n, "nodes", len(nodes), "workgroups", workgroups, "direction", dir.String())

	readback, err := d.submit(bindGroup, b, workgroups, outSize)
	if err != nil {
		return nil, err
	}
	return unpackPoints(readback, n), nil
}

func (d *ParamMapDispatcher) submit(bindGroup hal.BindGroup, b *paramMapBuffers, workgroups uint32, outSize uint64) ([]byte, error) {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "param_map_encoder"})
	if err != nil {
		return nil, fmt.Errorf("param_map: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("param_map"); err != nil {
		return nil, fmt.Errorf("param_map: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "param_map_pass"})
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch(workgroups, 1, 1)
	pass.End()

	encoder.CopyBufferToBuffer(b.output, b.staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: outSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("param_map: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	index, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return nil, fmt.Errorf("param_map: submit: %w", err)
	}
	if err := d.waitSubmission(index); err != nil {
		return nil, err
	}
	return d.readStaging(b.staging, outSize)
}

// waitSubmission polls the queue until submission index has completed.
func (d *ParamMapDispatcher) waitSubmission(index uint64) error {
	deadline := time.Now().Add(submitTimeout)
	for d.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("param_map: wait for GPU: submission %d not complete after %v", index, submitTimeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

func (d *ParamMapDispatcher) readStaging(staging hal.Buffer, size uint64) ([]byte, error) {
	mapping, err := d.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("param_map: map staging buffer: %w", err)
	}
	readback := make([]byte, size)
	copy(readback, unsafe.Slice((*byte)(mapping.Ptr), size)) //nolint:gosec // mapping covers size bytes
	if err := d.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("param_map: unmap staging buffer: %w", err)
	}
	return readback, nil
}

// paramMapBuffers holds the per-dispatch buffers.
type paramMapBuffers struct {
	config  hal.Buffer
	nodes   hal.Buffer
	samples hal.Buffer
	output  hal.Buffer
	staging hal.Buffer
}

func (d *ParamMapDispatcher) createBuffers(nodeSize, sampleSize, outSize uint64) (*paramMapBuffers, error) {
	b := &paramMapBuffers{}
	specs := []struct {
		dst   *hal.Buffer
		label string
		size  uint64
		usage gputypes.BufferUsage
	}{
		{&b.config, "param_map_config", configSize, gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst},
		{&b.nodes, "param_map_nodes", nodeSize, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst},
		{&b.samples, "param_map_samples", sampleSize, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst},
		{&b.output, "param_map_output", outSize, gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc},
		{&b.staging, "param_map_staging", outSize, gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst},
	}
	for _, s := range specs {
		buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{Label: s.label, Size: s.size, Usage: s.usage})
		if err != nil {
			return b, fmt.Errorf("param_map: create %s buffer: %w", s.label, err)
		}
		*s.dst = buf
	}
	return b, nil
}

func (b *paramMapBuffers) upload(queue hal.Queue, config, nodes, samples []byte) error {
	if err := queue.WriteBuffer(b.config, 0, config); err != nil {
		return fmt.Errorf("param_map: write config: %w", err)
	}
	if err := queue.WriteBuffer(b.nodes, 0, nodes); err != nil {
		return fmt.Errorf("param_map: write nodes: %w", err)
	}
	if err := queue.WriteBuffer(b.samples, 0, samples); err != nil {
		return fmt.Errorf("param_map: write samples: %w", err)
	}
	return nil
}

func (b *paramMapBuffers) destroy(device hal.Device) {
	for _, buf := range []hal.Buffer{b.config, b.nodes, b.samples, b.output, b.staging} {
		if buf != nil {
			device.DestroyBuffer(buf)
		}
	}
}

// Close releases the pipeline. The device and queue are left alone.
func (d *ParamMapDispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyPipeline()
	d.ready = false
}

func (d *ParamMapDispatcher) destroyPipeline() {
	if d.device == nil {
		return
	}
	if d.pipeline != nil {
		d.device.DestroyComputePipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
}
