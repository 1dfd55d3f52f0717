package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/philipparndt/gosurf/cmd"
	"github.com/philipparndt/gosurf/internal/config"
	"github.com/philipparndt/gosurf/internal/extract"
	"github.com/philipparndt/gosurf/pkg/launcher"
	"github.com/philipparndt/gosurf/pkg/watcher"
	"github.com/spf13/cobra"
)

var extractFlags struct {
	expression    string
	file          string
	epsilon       float64
	halfSize      float64
	output        string
	format        string
	style         string
	plot          bool
	viewer        string
	maxNodes      int64
	parallelDepth int
	timeout       time.Duration
	watch         bool
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the zero surface of an expression",
	Long: `Refine an octree over the cube [-b, b]^3 until every cell that may contain
the surface f(x, y, z) = 0 is no larger than epsilon, then write one
point or cube per cell.

Examples:
  gosurf extract -e "x*x + y*y + z*z - 4" -s 0.5 -b 4 -o sphere.gspl
  gosurf extract -e "(sqrt(x^2+y^2)-2)^2 + z^2 - 0.25" -s 0.1 -b 3 --style cubes -o torus.stl -p
  gosurf extract --file surface.expr -s 0.25 --watch`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	cmd.RootCmd.AddCommand(extractCmd)

	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.expression, "expression", "e", "", "expression in x, y and z")
	f.StringVar(&extractFlags.file, "file", "", "read the expression from a file")
	f.Float64VarP(&extractFlags.epsilon, "epsilon", "s", 0, "largest accepted cell edge")
	f.Float64VarP(&extractFlags.halfSize, "half-size", "b", 0, "half the edge of the cube around the origin")
	f.StringVarP(&extractFlags.output, "output", "o", "", "output file")
	f.StringVar(&extractFlags.format, "format", "", "output format: plot or stl (default from extension)")
	f.StringVar(&extractFlags.style, "style", "", "primitive per cell: points or cubes")
	f.BoolVarP(&extractFlags.plot, "plot", "p", false, "open the result in a viewer")
	f.StringVar(&extractFlags.viewer, "viewer", "", "viewer command line (default: gosurf view)")
	f.Int64Var(&extractFlags.maxNodes, "max-nodes", 0, "evaluation ceiling before giving up")
	f.IntVar(&extractFlags.parallelDepth, "parallel-depth", 0, "octree levels refined concurrently")
	f.DurationVar(&extractFlags.timeout, "timeout", 0, "time budget, e.g. 30s (0 disables)")
	f.BoolVar(&extractFlags.watch, "watch", false, "re-extract whenever --file changes")

	extractCmd.MarkFlagsMutuallyExclusive("expression", "file")
	extractCmd.MarkFlagsOneRequired("expression", "file")
}

// applyExtractFlags copies explicitly set flags over the loaded config
func applyExtractFlags(c *cobra.Command, cfg *config.Config) error {
	flags := c.Flags()
	if flags.Changed("epsilon") {
		cfg.Extract.Epsilon = extractFlags.epsilon
	}
	if flags.Changed("half-size") {
		cfg.Extract.HalfSize = extractFlags.halfSize
	}
	if flags.Changed("output") {
		cfg.Output.Path = extractFlags.output
	}
	if flags.Changed("format") {
		cfg.Output.Format = extractFlags.format
	}
	if flags.Changed("style") {
		cfg.Output.Style = extractFlags.style
	}
	if flags.Changed("viewer") {
		cfg.View.Viewer = extractFlags.viewer
	}
	if flags.Changed("max-nodes") {
		cfg.Extract.MaxNodes = extractFlags.maxNodes
	}
	if flags.Changed("parallel-depth") {
		cfg.Extract.ParallelDepth = extractFlags.parallelDepth
	}
	if flags.Changed("timeout") {
		cfg.Extract.Timeout = extractFlags.timeout
	}
	return config.Validate(cfg)
}

func runExtract(c *cobra.Command, args []string) error {
	cfg := cmd.Config()
	if err := applyExtractFlags(c, cfg); err != nil {
		return err
	}
	if extractFlags.watch && extractFlags.file == "" {
		return errors.New("--watch needs --file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := extractOnce(ctx, c, cfg); err != nil {
		if !extractFlags.watch {
			return err
		}
		fmt.Fprintf(c.ErrOrStderr(), "Error: %v\n", err)
	}
	if !extractFlags.watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	err = fw.Watch([]string{extractFlags.file}, func(string) {
		cmd.Progressf(c, "\n%s changed\n", extractFlags.file)
		if err := extractOnce(ctx, c, cfg); err != nil {
			fmt.Fprintf(c.ErrOrStderr(), "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	fw.Start()

	cmd.Progressf(c, "Watching %s (Ctrl+C to stop)\n", extractFlags.file)
	<-ctx.Done()
	return fw.RemoveAll()
}

func extractOnce(ctx context.Context, c *cobra.Command, cfg *config.Config) error {
	src, err := expressionSource()
	if err != nil {
		return err
	}

	var log io.Writer = io.Discard
	if !cmd.Quiet() {
		log = c.OutOrStdout()
	}
	res, err := extract.Run(ctx, src, cfg, log)
	if err != nil {
		return errors.New(extract.Describe(src, err))
	}
	cmd.Progressf(c, "%s", res.Summary())

	if extractFlags.plot {
		return openViewer(c, cfg, res.Output)
	}
	return nil
}

func expressionSource() (string, error) {
	if extractFlags.file == "" {
		return extractFlags.expression, nil
	}
	data, err := os.ReadFile(extractFlags.file)
	if err != nil {
		return "", fmt.Errorf("failed to read expression: %w", err)
	}
	// lines starting with # are comments
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "#") {
			lines = append(lines, line)
		}
	}
	return strings.TrimSpace(strings.Join(lines, " ")), nil
}

func openViewer(c *cobra.Command, cfg *config.Config, path string) error {
	v, err := launcher.Default()
	if cfg.View.Viewer != "" {
		v, err = launcher.ParseViewer(cfg.View.Viewer)
	}
	if err != nil {
		return err
	}
	cmd.Progressf(c, "Opening %s with %s...\n", path, v)
	return launcher.Open(v, path)
}
