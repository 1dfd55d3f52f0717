package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/philipparndt/gosurf/cmd"
	"github.com/philipparndt/gosurf/pkg/analysis"
	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/plot"
	"github.com/philipparndt/gosurf/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a plot or STL file",
	Long:  "Show how a plot was produced and statistics of its primitives: counts, bounds, cell sizes and distance from the origin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	cmd.RootCmd.AddCommand(infoCmd)
}

func runInfo(c *cobra.Command, args []string) error {
	filename := args[0]
	out := c.OutOrStdout()

	if strings.EqualFold(filepath.Ext(filename), ".stl") {
		model, err := stl.Parse(filename)
		if err != nil {
			return fmt.Errorf("failed to parse STL file: %w", err)
		}
		printModelInfo(out, filename, model)
		return nil
	}

	p, err := plot.ReadFile(filename)
	if err != nil {
		return err
	}
	printPlotInfo(out, filename, p)
	return nil
}

func printBounds(out io.Writer, bbox geometry.BoundingBox) {
	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(bbox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(bbox.Max))
	fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(bbox.Center()))
	fmt.Fprintf(out, "  Diagonal: %s\n\n", analysis.FormatMeasurement(bbox.Diagonal(), ""))
}

func printPlotInfo(out io.Writer, filename string, p *plot.Plot) {
	result := analysis.AnalyzePlot(p)

	fmt.Fprintln(out, "Plot Information")
	fmt.Fprintln(out, "================")
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Expression: %s\n", p.Header.Expression)
	fmt.Fprintf(out, "Epsilon: %g\n", p.Header.Epsilon)
	fmt.Fprintf(out, "Region: %s\n\n", p.Header.Region)

	fmt.Fprintln(out, "Primitives:")
	fmt.Fprintf(out, "  Total: %s\n", humanize.Comma(int64(result.Primitives)))
	fmt.Fprintf(out, "  Points: %s\n", humanize.Comma(int64(result.Points)))
	fmt.Fprintf(out, "  Cubes: %s\n\n", humanize.Comma(int64(result.Cubes)))
	if result.Primitives == 0 {
		fmt.Fprintln(out, "No surface found in the region.")
		return
	}

	printBounds(out, result.BoundingBox)

	fmt.Fprintln(out, "Cells:")
	fmt.Fprintf(out, "  Smallest edge: %s\n", analysis.FormatMeasurement(result.MinCellEdge, ""))
	fmt.Fprintf(out, "  Largest edge: %s\n", analysis.FormatMeasurement(result.MaxCellEdge, ""))
	fmt.Fprintf(out, "  Total volume: %s\n\n", analysis.FormatMeasurement(result.CellVolume, "cubic units"))

	fmt.Fprintln(out, "Distance from origin:")
	fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinRadius, ""))
	fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxRadius, ""))
	fmt.Fprintf(out, "  Mean: %s\n", analysis.FormatMeasurement(result.MeanRadius, ""))
}

func printModelInfo(out io.Writer, filename string, model *stl.Model) {
	result := analysis.AnalyzeModel(model)

	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Triangles: %s\n", humanize.Comma(int64(result.TriangleCount)))
	fmt.Fprintf(out, "  Surface Area: %s\n\n", analysis.FormatMeasurement(result.SurfaceArea, "square units"))

	printBounds(out, result.BoundingBox)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, ""))
	fmt.Fprintf(out, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, ""))
	fmt.Fprintf(out, "  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, ""))
}
