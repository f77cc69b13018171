package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/subdiv"
)

func mapCommand() *cobra.Command {
	var (
		u, v               float32
		irregular, inverse bool
	)
	cmd := &cobra.Command{
		Use:   "map WORD",
		Short: "Map one coordinate between coarse and refined space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseWord(args[0])
			if err != nil {
				return err
			}
			dir := subdiv.CoarseToRefined
			if inverse {
				dir = subdiv.RefinedToCoarse
			}
			p := subdiv.MapPoint(d, !irregular, u, v, dir)
			fmt.Fprintf(cmd.OutOrStdout(), "%g %g\n", p.U, p.V)
			return nil
		},
	}
	cmd.Flags().Float32Var(&u, "u", 0, "u coordinate")
	cmd.Flags().Float32Var(&v, "v", 0, "v coordinate")
	cmd.Flags().BoolVar(&irregular, "irregular", false, "the coarse face is not a quad")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "map refined to coarse")
	return cmd
}
