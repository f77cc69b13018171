package main

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gogpu/subdiv"
)

func sweepCommand() *cobra.Command {
	var (
		steps              int
		workers            int
		irregular, inverse bool
		cpuOnly            bool
	)
	cmd := &cobra.Command{
		Use:   "sweep WORD...",
		Short: "Map a regular grid of coordinates through every node as one batch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			nodes, err := parseWords(args)
			if err != nil {
				return err
			}

			samples := gridSamples(len(nodes), steps, !irregular)
			dir := subdiv.CoarseToRefined
			if inverse {
				dir = subdiv.RefinedToCoarse
			}
			var stats subdiv.MapStats
			opts := []subdiv.MapOption{subdiv.WithWorkers(workers), subdiv.WithStats(&stats)}
			if cpuOnly {
				opts = append(opts, subdiv.WithCPUOnly())
			}

			start := time.Now()
			points, err := subdiv.MapSamples(nodes, samples, dir, opts...)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			path := "accelerator " + stats.Accelerator
			if stats.Accelerator == "" {
				path = fmt.Sprintf("accelerator none, %d CPU workers", stats.Workers)
			}
			minU, minV, maxU, maxV := bounds(points)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s samples through %s nodes (%s) in %s, %s\n",
				humanize.Comma(int64(len(samples))), humanize.Comma(int64(len(nodes))),
				dir, elapsed.Round(time.Microsecond), path)
			fmt.Fprintf(out, "u [%g, %g] v [%g, %g]\n", minU, maxU, minV, maxV)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 64, "grid resolution per axis")
	cmd.Flags().IntVar(&workers, "workers", 0, "CPU workers, 0 for GOMAXPROCS")
	cmd.Flags().BoolVar(&irregular, "irregular", false, "the coarse face is not a quad")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "map refined to coarse")
	cmd.Flags().BoolVar(&cpuOnly, "cpu-only", false, "skip the GPU accelerator")
	return cmd
}

// gridSamples returns steps x steps samples over the unit square for each
// of n nodes.
func gridSamples(n, steps int, regular bool) []subdiv.Sample {
	samples := make([]subdiv.Sample, 0, n*steps*steps)
	div := float32(max(steps-1, 1))
	for i := range n {
		for y := range steps {
			for x := range steps {
				samples = append(samples, subdiv.Sample{
					Node:    uint32(i), //nolint:gosec // bounded by argument count
					Regular: regular,
					U:       float32(x) / div,
					V:       float32(y) / div,
				})
			}
		}
	}
	return samples
}

func bounds(points []subdiv.Point) (minU, minV, maxU, maxV float32) {
	minU, minV = math.MaxFloat32, math.MaxFloat32
	maxU, maxV = -math.MaxFloat32, -math.MaxFloat32
	for _, p := range points {
		minU, maxU = min(minU, p.U), max(maxU, p.U)
		minV, maxV = min(minV, p.V), max(maxV, p.V)
	}
	return minU, minV, maxU, maxV
}
