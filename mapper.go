package subdiv

import (
	"errors"
	"fmt"

	"github.com/gogpu/subdiv/internal/parallel"
	"github.com/gogpu/subdiv/node"
)

// Direction selects which way MapSamples maps coordinates.
type Direction int

const (
	// CoarseToRefined maps coarse face coordinates into the node's patch.
	CoarseToRefined Direction = iota

	// RefinedToCoarse maps patch coordinates back onto the coarse face.
	RefinedToCoarse
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case CoarseToRefined:
		return "coarse-to-refined"
	case RefinedToCoarse:
		return "refined-to-coarse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Sample is one coordinate to map. Node indexes the descriptor table passed
// to MapSamples and Regular tells whether the coarse face is a quad.
type Sample struct {
	Node    uint32
	Regular bool
	U, V    float32
}

// Point is a mapped coordinate.
type Point struct {
	U, V float32
}

var (
	// ErrNodeIndex is returned when a sample references a node outside
	// the descriptor table.
	ErrNodeIndex = errors.New("subdiv: sample node index out of range")

	// ErrDirection is returned for an unknown Direction.
	ErrDirection = errors.New("subdiv: unknown mapping direction")
)

// MapSamples maps every sample through the node it references and returns
// the results in sample order. Coordinates are not clamped.
//
// The registered accelerator is tried first unless WithCPUOnly is given.
// If it declines or fails, the batch is mapped on the CPU.
func MapSamples(nodes []node.Descriptor, samples []Sample, dir Direction, opts ...MapOption) ([]Point, error) {
	if dir != CoarseToRefined && dir != RefinedToCoarse {
		return nil, fmt.Errorf("%w: %d", ErrDirection, int(dir))
	}
	for i, s := range samples {
		if int(s.Node) >= len(nodes) {
			return nil, fmt.Errorf("%w: sample %d references node %d, table has %d", ErrNodeIndex, i, s.Node, len(nodes))
		}
	}

	o := defaultMapOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.stats != nil {
		*o.stats = MapStats{}
	}
	if len(samples) == 0 {
		return []Point{}, nil
	}

	if !o.cpuOnly {
		if out, name, ok := mapAccelerated(nodes, samples, dir); ok {
			if o.stats != nil {
				o.stats.Accelerator = name
			}
			return out, nil
		}
	}

	out := make([]Point, len(samples))
	workers := mapCPU(nodes, samples, dir, out, o)
	if o.stats != nil {
		o.stats.Workers = workers
	}
	return out, nil
}

func mapAccelerated(nodes []node.Descriptor, samples []Sample, dir Direction) ([]Point, string, bool) {
	a := Accelerator()
	if a == nil || !a.CanAccelerate(len(samples)) {
		return nil, "", false
	}
	out, err := a.MapSamples(nodes, samples, dir)
	switch {
	case err == nil && len(out) == len(samples):
		return out, a.Name(), true
	case err == nil:
		Logger().Warn("subdiv: accelerator returned short batch, mapping on CPU",
			"accelerator", a.Name(), "got", len(out), "want", len(samples))
	case errors.Is(err, ErrFallbackToCPU):
		Logger().Debug("subdiv: accelerator declined batch", "accelerator", a.Name(), "samples", len(samples))
	default:
		Logger().Warn("subdiv: accelerator failed, mapping on CPU", "accelerator", a.Name(), "err", err)
	}
	return nil, "", false
}

// mapCPU fills out and returns the number of goroutines used.
func mapCPU(nodes []node.Descriptor, samples []Sample, dir Direction, out []Point, o mapOptions) int {
	if len(samples) <= o.chunkSize || o.workers == 1 {
		mapRange(nodes, samples, dir, out)
		return 1
	}

	pool := parallel.NewPool(o.workers)
	defer pool.Close()

	Logger().Debug("subdiv: mapping on CPU",
		"samples", len(samples), "chunk", o.chunkSize, "workers", pool.Workers())
	pool.Range(len(samples), o.chunkSize, func(lo, hi int) {
		mapRange(nodes, samples[lo:hi], dir, out[lo:hi])
	})
	return pool.Workers()
}

func mapRange(nodes []node.Descriptor, samples []Sample, dir Direction, out []Point) {
	for i, s := range samples {
		out[i] = MapPoint(nodes[s.Node], s.Regular, s.U, s.V, dir)
	}
}

// MapPoint maps one coordinate through d.
func MapPoint(d node.Descriptor, regularFace bool, u, v float32, dir Direction) Point {
	if dir == RefinedToCoarse {
		u, v = d.MapRefinedToCoarse(u, v, regularFace)
	} else {
		u, v = d.MapCoarseToRefined(u, v, regularFace)
	}
	return Point{U: u, V: v}
}
