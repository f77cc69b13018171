package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gogpu/subdiv/node"
)

func decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode WORD...",
		Short: "Print the fields of descriptor words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := parseWords(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range nodes {
				fmt.Fprintf(out, "0x%08x  %s\n", uint32(d), d)
			}
			fmt.Fprintf(out, "%s nodes, %s\n",
				humanize.Comma(int64(len(nodes))),
				humanize.Bytes(uint64(len(nodes)*node.Size))) //nolint:gosec // non-negative
			return nil
		},
	}
}
