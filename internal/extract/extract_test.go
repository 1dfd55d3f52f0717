package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosurf/internal/config"
	"github.com/philipparndt/gosurf/pkg/expr"
	"github.com/philipparndt/gosurf/pkg/octree"
	"github.com/philipparndt/gosurf/pkg/plot"
	"github.com/philipparndt/gosurf/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, out string) *config.Config {
	cfg := config.Defaults()
	cfg.Extract.Epsilon = 0.5
	cfg.Extract.HalfSize = 4
	cfg.Output.Path = filepath.Join(t.TempDir(), out)
	return cfg
}

func TestRunSphere(t *testing.T) {
	cfg := testConfig(t, "sphere.gspl")
	var log bytes.Buffer

	res, err := Run(context.Background(), "x*x+y*y+z*z-4", cfg, &log)
	require.NoError(t, err)

	assert.Equal(t, "Parsing...\nBuilding octree...\nAssembling plot...\nWriting "+cfg.Output.Path+" (plot)...\n", log.String())
	assert.Equal(t, res.Stats.Accepted, res.Plot.Len())
	assert.Positive(t, res.Bytes)

	p, err := plot.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, "x*x+y*y+z*z-4", p.Header.Expression)
	assert.Equal(t, 0.5, p.Header.Epsilon)
	assert.Equal(t, res.Plot.Len(), p.Len())

	summary := res.Summary()
	assert.Contains(t, summary, "accepted")
	assert.Contains(t, summary, "Primitives:")
}

func TestRunSTLByExtension(t *testing.T) {
	cfg := testConfig(t, "sphere.stl")
	cfg.Output.Style = "cubes"

	res, err := Run(context.Background(), "x*x+y*y+z*z-4", cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, plot.FormatSTL, res.Format)

	m, err := stl.Parse(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, 12*res.Plot.Len(), m.TriangleCount())
}

func TestRunParseErrorWritesNothing(t *testing.T) {
	cfg := testConfig(t, "bad.gspl")

	_, err := Run(context.Background(), "x + (", cfg, io.Discard)
	var pe *expr.ParseError
	require.True(t, errors.As(err, &pe))
	assert.NoFileExists(t, cfg.Output.Path)

	assert.Equal(t,
		"parse error at position 5: unexpected end of input (unbalanced '(' at position 4)\n  x + (\n       ^",
		Describe("x + (", err))
}

func TestRunNonTermination(t *testing.T) {
	cfg := testConfig(t, "big.gspl")
	cfg.Extract.Epsilon = 0.001
	cfg.Extract.MaxNodes = 500

	_, err := Run(context.Background(), "x*x+y*y+z*z-4", cfg, io.Discard)
	var nt *octree.NonTerminationError
	require.True(t, errors.As(err, &nt))
	assert.NoFileExists(t, cfg.Output.Path)
	assert.Contains(t, Describe("", err), "try a larger epsilon")
}

func TestRunPrunedRegionWritesEmptyPlot(t *testing.T) {
	cfg := testConfig(t, "empty.gspl")

	res, err := Run(context.Background(), "x-100", cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Plot.Len())
	assert.Equal(t, 1, res.Stats.Pruned)
	assert.FileExists(t, cfg.Output.Path)
}

func TestRunRejectsBadStyle(t *testing.T) {
	cfg := testConfig(t, "x.gspl")
	cfg.Output.Style = "spheres"
	_, err := Run(context.Background(), "x", cfg, io.Discard)
	assert.ErrorContains(t, err, "unknown style")
}
