package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gogpu/subdiv"
	"github.com/gogpu/subdiv/node"
)

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "nodedesc",
		Short:        "Encode, decode and map adaptive quadtree node descriptors",
		SilenceUsage: true,
		Version:      subdiv.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				subdiv.SetLogger(slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output to stderr")

	root.AddCommand(
		decodeCommand(),
		encodeCommand(),
		mapCommand(),
		sweepCommand(),
		renderCommand(),
	)
	return root
}

// parseWord parses a descriptor word in decimal, hex (0x) or binary (0b).
func parseWord(s string) (node.Descriptor, error) {
	w, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid descriptor %q: %w", s, err)
	}
	return node.Descriptor(w), nil
}

func parseWords(args []string) ([]node.Descriptor, error) {
	nodes := make([]node.Descriptor, 0, len(args))
	for _, a := range args {
		d, err := parseWord(a)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, d)
	}
	return nodes, nil
}

func checkRange(name string, value, maxValue int) error {
	if value < 0 || value > maxValue {
		return fmt.Errorf("--%s %d out of range [0, %d]", name, value, maxValue)
	}
	return nil
}
