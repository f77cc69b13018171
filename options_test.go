package subdiv

import "testing"

func TestMapOptions(t *testing.T) {
	o := defaultMapOptions()
	for _, opt := range []MapOption{WithWorkers(-3), WithChunkSize(0), WithCPUOnly()} {
		opt(&o)
	}
	if o.workers != 0 {
		t.Errorf("workers = %d, want 0 for GOMAXPROCS", o.workers)
	}
	if o.chunkSize != DefaultChunkSize {
		t.Errorf("chunkSize = %d, want %d", o.chunkSize, DefaultChunkSize)
	}
	if !o.cpuOnly {
		t.Error("cpuOnly should be set")
	}

	WithChunkSize(128)(&o)
	WithWorkers(6)(&o)
	if o.chunkSize != 128 || o.workers != 6 {
		t.Errorf("options = %+v, want chunkSize 128 workers 6", o)
	}
}
