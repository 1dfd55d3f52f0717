package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/philipparndt/gosurf/cmd"
	"github.com/philipparndt/gosurf/pkg/analysis"
	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/plot"
	"github.com/spf13/cobra"
)

var cellsFlags struct {
	count   int
	nearest bool
	x, y, z float64
}

var cellsCmd = &cobra.Command{
	Use:   "cells [file]",
	Short: "List the cells of a plot by distance from a point",
	Long: `List primitives of a plot document ordered by the distance of their center
from a reference point (the origin by default), farthest first. Useful to
spot stray cells far from the expected surface.`,
	Args: cobra.ExactArgs(1),
	RunE: runCells,
}

func init() {
	cmd.RootCmd.AddCommand(cellsCmd)

	cellsCmd.Flags().IntVarP(&cellsFlags.count, "count", "n", 10, "Number of cells to display")
	cellsCmd.Flags().BoolVar(&cellsFlags.nearest, "nearest", false, "Show nearest cells first")
	cellsCmd.Flags().Float64Var(&cellsFlags.x, "x", 0.0, "X coordinate of the reference point")
	cellsCmd.Flags().Float64Var(&cellsFlags.y, "y", 0.0, "Y coordinate of the reference point")
	cellsCmd.Flags().Float64Var(&cellsFlags.z, "z", 0.0, "Z coordinate of the reference point")
}

func runCells(c *cobra.Command, args []string) error {
	if cellsFlags.count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", cellsFlags.count)
	}
	from := geometry.NewVector3(cellsFlags.x, cellsFlags.y, cellsFlags.z)

	p, err := plot.ReadFile(args[0])
	if err != nil {
		return err
	}

	ordered := analysis.FarthestPrimitives(p, from, p.Len())
	title := "Farthest"
	if cellsFlags.nearest {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
		title = "Nearest"
	}
	count := min(cellsFlags.count, len(ordered))

	out := c.OutOrStdout()
	fmt.Fprintf(out, "%s %d of %s cells from %s\n", title, count, humanize.Comma(int64(p.Len())), analysis.FormatVector(from))
	fmt.Fprintln(out, "====================")
	if nearest, d, ok := analysis.FindNearestPrimitive(p, from); ok {
		fmt.Fprintf(out, "Closest cell: %s (distance: %s)\n\n", analysis.FormatVector(nearest.Center), analysis.FormatMeasurement(d, ""))
	}

	for i, prim := range ordered[:count] {
		fmt.Fprintf(out, "Cell #%d (%s):\n", i+1, prim.Kind)
		fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(prim.Center))
		fmt.Fprintf(out, "  Size: %s\n", analysis.FormatVector(prim.Size))
		fmt.Fprintf(out, "  Distance: %s\n\n", analysis.FormatMeasurement(prim.Center.Distance(from), ""))
	}
	return nil
}
