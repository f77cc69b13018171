package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/subdiv/node"
)

func encodeCommand() *cobra.Command {
	var (
		depth, boundary, u, v, ev int
		crease, endcap            bool
	)
	cmd := &cobra.Command{
		Use:       "encode regular|end|recursive|terminal",
		Short:     "Pack node fields into a descriptor word",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"regular", "end", "recursive", "terminal"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := errors.Join(
				checkRange("depth", depth, node.MaxDepth),
				checkRange("boundary", boundary, node.MaxBoundary),
				checkRange("ev", ev, node.MaxEvIndex),
				checkRange("u", u, node.MaxCoord),
				checkRange("v", v, node.MaxCoord),
			)
			if err != nil {
				return err
			}

			var n node.Node
			switch args[0] {
			case "regular":
				n = node.Regular{SingleCrease: crease, Depth: depth, Boundary: boundary, U: u, V: v}
			case "end":
				n = node.End{Depth: depth, Boundary: boundary, U: u, V: v}
			case "recursive":
				n = node.Recursive{Depth: depth, U: u, V: v, HasEndcap: endcap}
			case "terminal":
				n = node.Terminal{Depth: depth, EvIndex: ev, U: u, V: v, HasEndcap: endcap}
			default:
				return fmt.Errorf("unknown node type %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%08x\n", uint32(n.Encode()))
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "isolation depth (0-15)")
	cmd.Flags().IntVar(&u, "u", 0, "u address at depth (0-1023)")
	cmd.Flags().IntVar(&v, "v", 0, "v address at depth (0-1023)")
	cmd.Flags().IntVar(&boundary, "boundary", 0, "boundary edge mask, regular and end nodes (0-31)")
	cmd.Flags().IntVar(&ev, "ev", 0, "extraordinary vertex index, terminal nodes (0-15)")
	cmd.Flags().BoolVar(&crease, "crease", false, "single-crease patch, regular nodes")
	cmd.Flags().BoolVar(&endcap, "endcap", false, "end-cap available, recursive and terminal nodes")
	return cmd
}
