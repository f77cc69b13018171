package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/image/vector"

	"github.com/gogpu/subdiv/node"
)

var typeColors = map[node.Type]color.NRGBA{
	node.TypeRegular:   {R: 0x2f, G: 0x6f, B: 0xd6, A: 0x60},
	node.TypeRecursive: {R: 0xe8, G: 0x8b, B: 0x1a, A: 0x60},
	node.TypeTerminal:  {R: 0xd6, G: 0x2f, B: 0x3c, A: 0x60},
	node.TypeEnd:       {R: 0x70, G: 0x70, B: 0x70, A: 0x60},
}

func renderCommand() *cobra.Command {
	var (
		outPath   string
		size      int
		irregular bool
	)
	cmd := &cobra.Command{
		Use:   "render WORD...",
		Short: "Draw node footprints over the coarse face as a PNG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 8 || size > 8192 {
				return fmt.Errorf("--size %d out of range [8, 8192]", size)
			}
			nodes, err := parseWords(args)
			if err != nil {
				return err
			}

			img := renderFootprints(nodes, size, !irregular)

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return fmt.Errorf("encode %s: %w", outPath, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			info, err := os.Stat(outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %s)\n",
				outPath, size, size, humanize.Bytes(uint64(info.Size()))) //nolint:gosec // file size is non-negative
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "nodes.png", "output PNG path")
	cmd.Flags().IntVar(&size, "size", 512, "image width and height in pixels")
	cmd.Flags().BoolVar(&irregular, "irregular", false, "the coarse face is not a quad")
	return cmd
}

// renderFootprints fills each node's footprint and outlines it. The coarse
// face maps onto the whole image with v growing downward.
func renderFootprints(nodes []node.Descriptor, size int, regular bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(size, size)
	scale := float32(size)
	for _, d := range nodes {
		u0, v0, s := d.Footprint(regular)
		x0, y0 := u0*scale, v0*scale
		x1, y1 := x0+s*scale, y0+s*scale

		fill := typeColors[d.Type()]
		z.Reset(size, size)
		z.DrawOp = draw.Over
		addRect(z, x0, y0, x1, y1)
		z.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})

		if x1-x0 > 2 && y1-y0 > 2 {
			edge := fill
			edge.A = 0xff
			z.Reset(size, size)
			z.DrawOp = draw.Over
			addRect(z, x0, y0, x1, y1)
			addRectReversed(z, x0+1, y0+1, x1-1, y1-1)
			z.Draw(img, img.Bounds(), image.NewUniform(edge), image.Point{})
		}
	}
	return img
}

func addRect(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

func addRectReversed(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x0, y1)
	z.LineTo(x1, y1)
	z.LineTo(x1, y0)
	z.ClosePath()
}
