//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/subdiv"
)

func TestAcceleratorRegistered(t *testing.T) {
	a := subdiv.Accelerator()
	if a == nil {
		t.Fatal("importing gpu should register an accelerator")
	}
	if a.Name() != "param-map-gpu" {
		t.Errorf("Accelerator().Name() = %q, want %q", a.Name(), "param-map-gpu")
	}
	if a.CanAccelerate(1) {
		t.Error("single samples should stay on the CPU")
	}
}

func TestSetDeviceProviderRejectsUnknown(t *testing.T) {
	if err := SetDeviceProvider(struct{}{}); err == nil {
		t.Error("SetDeviceProvider() should reject a provider without HAL access")
	}
}
