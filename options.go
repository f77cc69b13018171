package subdiv

// DefaultChunkSize is the number of samples one CPU worker maps per task.
// Batches no larger than one chunk are mapped on the calling goroutine.
const DefaultChunkSize = 4096

// MapOption configures a MapSamples call.
//
// Example:
//
//	points, err := subdiv.MapSamples(nodes, samples, subdiv.CoarseToRefined,
//	    subdiv.WithWorkers(4), subdiv.WithChunkSize(1024))
type MapOption func(*mapOptions)

type mapOptions struct {
	workers   int // 0 means GOMAXPROCS
	chunkSize int
	cpuOnly   bool
	stats     *MapStats
}

func defaultMapOptions() mapOptions {
	return mapOptions{chunkSize: DefaultChunkSize}
}

// WithWorkers sets the number of CPU workers. Zero or negative selects
// GOMAXPROCS; one maps serially.
func WithWorkers(n int) MapOption {
	return func(o *mapOptions) {
		o.workers = max(n, 0)
	}
}

// WithChunkSize sets the number of samples per CPU task.
// Zero or negative values are ignored.
func WithChunkSize(n int) MapOption {
	return func(o *mapOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithCPUOnly skips the registered accelerator.
func WithCPUOnly() MapOption {
	return func(o *mapOptions) {
		o.cpuOnly = true
	}
}

// MapStats records how a MapSamples call ran.
type MapStats struct {
	// Accelerator is the name of the accelerator that mapped the batch,
	// empty when it was mapped on the CPU.
	Accelerator string

	// Workers is the number of CPU goroutines used, 0 when accelerated.
	Workers int
}

// WithStats makes MapSamples fill s once the batch is mapped.
func WithStats(s *MapStats) MapOption {
	return func(o *mapOptions) {
		o.stats = s
	}
}
