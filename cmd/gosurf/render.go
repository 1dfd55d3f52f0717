package main

import (
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/philipparndt/gosurf/cmd"
	"github.com/philipparndt/gosurf/internal/viewer"
	"github.com/spf13/cobra"
)

var renderFlags struct {
	output    string
	width     int
	height    int
	rotateX   float64
	rotateY   float64
	zoom      float64
	hideBound bool
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a plot or STL file to a PNG image",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	cmd.RootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.output, "output", "o", "render.png", "PNG file to write")
	f.IntVar(&renderFlags.width, "width", 0, "image width (default from config)")
	f.IntVar(&renderFlags.height, "height", 0, "image height (default from config)")
	f.Float64Var(&renderFlags.rotateX, "rotate-x", 25, "camera elevation in degrees")
	f.Float64Var(&renderFlags.rotateY, "rotate-y", 35, "camera azimuth in degrees")
	f.Float64Var(&renderFlags.zoom, "zoom", 0, "relative zoom, e.g. -0.3 moves 30% closer")
	f.BoolVar(&renderFlags.hideBound, "no-bounds", false, "do not outline the bounding box")
}

func runRender(c *cobra.Command, args []string) error {
	scene, err := viewer.LoadScene(args[0])
	if err != nil {
		return err
	}

	cfg := cmd.Config()
	opts := viewer.RenderOptions{
		Width:      cfg.View.Width,
		Height:     cfg.View.Height,
		ShowBounds: !renderFlags.hideBound,
	}
	if renderFlags.width > 0 {
		opts.Width = renderFlags.width
	}
	if renderFlags.height > 0 {
		opts.Height = renderFlags.height
	}

	cam := viewer.NewCamera(scene.Bounds)
	cam.Rotate(renderFlags.rotateX*math.Pi/180, renderFlags.rotateY*math.Pi/180)
	if renderFlags.zoom != 0 {
		cam.Zoom(renderFlags.zoom)
	}

	cmd.Progressf(c, "Rendering %d elements at %dx%d...\n", scene.Len(), opts.Width, opts.Height)
	img := viewer.Render(scene, cam, opts)

	out, err := os.Create(renderFlags.output)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	cmd.Progressf(c, "Wrote %s\n", renderFlags.output)
	return nil
}
