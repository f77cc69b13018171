package subdiv

import (
	"errors"
	"sync"

	"github.com/gogpu/subdiv/node"
)

// ErrFallbackToCPU indicates the accelerator declined a batch.
// MapSamples then maps it on the CPU.
var ErrFallbackToCPU = errors.New("subdiv: falling back to CPU mapping")

// MapAccelerator is an optional hardware implementation of MapSamples.
//
// Implementations live in backend packages and are enabled by blank import:
//
//	import _ "github.com/gogpu/subdiv/gpu"
type MapAccelerator interface {
	// Name returns the accelerator name (e.g., "vulkan").
	Name() string

	// Init acquires device resources. Called once during registration.
	Init() error

	// Close releases device resources.
	Close()

	// CanAccelerate reports whether a batch of n samples is worth
	// dispatching. It must be cheap.
	CanAccelerate(n int) bool

	// MapSamples maps every sample through its node. Sample node indices
	// are already validated. Returns ErrFallbackToCPU to decline.
	MapSamples(nodes []node.Descriptor, samples []Sample, dir Direction) ([]Point, error)
}

// DeviceProviderAware is implemented by accelerators that can reuse a GPU
// device owned by the host application.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   MapAccelerator
)

// RegisterAccelerator installs a as the batch accelerator, replacing and
// closing any previous one. a.Init is called first; on failure nothing is
// registered and the error is returned.
func RegisterAccelerator(a MapAccelerator) error {
	if a == nil {
		return errors.New("subdiv: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())

	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	Logger().Debug("subdiv: accelerator registered", "name", a.Name())
	return nil
}

// Accelerator returns the registered accelerator, or nil if none.
func Accelerator() MapAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider hands a device provider to the registered
// accelerator. It is a no-op when no accelerator is registered or the
// accelerator cannot share devices.
//
// The provider should implement HalDevice() any and HalQueue() any
// returning wgpu/hal types.
func SetAcceleratorDeviceProvider(provider any) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
