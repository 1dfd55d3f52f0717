// Package extract runs the full pipeline behind the extract command:
// parse, refine, assemble and write.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/philipparndt/gosurf/internal/config"
	"github.com/philipparndt/gosurf/pkg/expr"
	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/octree"
	"github.com/philipparndt/gosurf/pkg/plot"
)

// Result describes a finished run.
type Result struct {
	Plot    *plot.Plot
	Stats   octree.Stats
	Elapsed time.Duration
	Output  string
	Format  plot.Format
	Bytes   int64
}

// Run extracts the surface of src with the settings in cfg and writes it
// to cfg.Output.Path. Progress lines go to log. Nothing is written when
// parsing or refinement fails.
func Run(ctx context.Context, src string, cfg *config.Config, log io.Writer) (*Result, error) {
	style, err := plot.ParseStyle(cfg.Output.Style)
	if err != nil {
		return nil, err
	}
	format := plot.FormatForPath(cfg.Output.Path)
	if cfg.Output.Format != "" {
		if format, err = plot.ParseFormat(cfg.Output.Format); err != nil {
			return nil, err
		}
	}

	fmt.Fprintln(log, "Parsing...")
	f, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(log, "Building octree...")
	if cfg.Extract.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Extract.Timeout)
		defer cancel()
	}
	start := time.Now()
	root, err := octree.Build(ctx, f, geometry.NewCube(cfg.Extract.HalfSize), octree.Options{
		Epsilon:       cfg.Extract.Epsilon,
		MaxNodes:      cfg.Extract.MaxNodes,
		ParallelDepth: cfg.Extract.ParallelDepth,
	})
	if err != nil {
		return nil, err
	}
	res := &Result{
		Stats:   octree.Collect(root),
		Elapsed: time.Since(start),
		Output:  cfg.Output.Path,
		Format:  format,
	}

	fmt.Fprintln(log, "Assembling plot...")
	res.Plot = plot.Assemble(root, style)
	res.Plot.Header.Expression = strings.TrimSpace(src)
	res.Plot.Header.Epsilon = cfg.Extract.Epsilon

	fmt.Fprintf(log, "Writing %s (%s)...\n", res.Output, format)
	if err := plot.WriteFile(res.Output, res.Plot, format); err != nil {
		return nil, err
	}
	if info, err := os.Stat(res.Output); err == nil {
		res.Bytes = info.Size()
	}
	return res, nil
}

// Summary renders the run statistics for the terminal.
func (r *Result) Summary() string {
	s := r.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "Cells: %s evaluated, %s pruned, %s accepted, %s subdivided\n",
		humanize.Comma(int64(s.Nodes)), humanize.Comma(int64(s.Pruned)),
		humanize.Comma(int64(s.Accepted)), humanize.Comma(int64(s.Subdivided)))
	if s.Undefined > 0 {
		fmt.Fprintf(&b, "Undefined bounds: %s cells\n", humanize.Comma(int64(s.Undefined)))
	}
	fmt.Fprintf(&b, "Depth: %d, smallest cell %g\n", s.MaxDepth, s.MinEdge)
	fmt.Fprintf(&b, "Primitives: %s in %s (%s)\n",
		humanize.Comma(int64(r.Plot.Len())), r.Output, humanize.Bytes(uint64(r.Bytes)))
	fmt.Fprintf(&b, "Elapsed: %s\n", r.Elapsed.Round(time.Millisecond))
	return b.String()
}

// Describe turns pipeline errors into messages for the terminal. Parse
// errors get the source line with a caret under the offending position.
func Describe(src string, err error) string {
	var pe *expr.ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%v\n  %s\n  %s^", pe, src, strings.Repeat(" ", pe.Pos))
	}
	var nt *octree.NonTerminationError
	if errors.As(err, &nt) {
		return fmt.Sprintf("%v\n  try a larger epsilon, a smaller region, or raise max_nodes/timeout", nt)
	}
	return err.Error()
}
