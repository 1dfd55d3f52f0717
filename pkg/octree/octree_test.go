package octree

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/philipparndt/gosurf/pkg/expr"
	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, src string, half, eps float64, parallel int) *Node {
	t.Helper()
	root, err := Build(context.Background(), expr.MustParse(src), geometry.NewCube(half), Options{
		Epsilon:       eps,
		ParallelDepth: parallel,
	})
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

func TestBuildPlaneOutsideRegionPrunesRoot(t *testing.T) {
	root := build(t, "x-100", 4, 0.5, 0)

	assert.Equal(t, Pruned, root.State)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, interval.New(-104, -96), root.Value)
	assert.Empty(t, Leaves(root))
}

func TestBuildSphere(t *testing.T) {
	root := build(t, "x*x+y*y+z*z-4", 4, 0.5, 0)
	leaves := Leaves(root)
	require.NotEmpty(t, leaves)

	for _, n := range leaves {
		assert.LessOrEqual(t, n.Box.LongestEdge(), 0.5)
		d := n.Box.Center().Length()
		assert.InDelta(t, 2, d, 0.5, "leaf %v is far from the sphere", n.Box)
	}

	stats := Collect(root)
	assert.Equal(t, len(leaves), stats.Accepted)
	assert.Equal(t, 4, stats.MaxDepth)
	assert.Equal(t, 0.5, stats.MinEdge)
	assert.Equal(t, stats.Nodes, stats.Pruned+stats.Accepted+stats.Subdivided)
}

func TestBuildFinalStates(t *testing.T) {
	root := build(t, "(sqrt(x^2+y^2)-2)^2 + z^2 - 0.25", 4, 0.25, 2)
	Walk(root, func(n *Node) bool {
		switch n.State {
		case Subdivided:
			assert.NotNil(t, n.Children)
		case Pruned, Accepted:
			assert.Nil(t, n.Children)
		default:
			t.Errorf("node %v left in state %v", n.Box, n.State)
		}
		if n.State == Accepted {
			assert.LessOrEqual(t, n.Box.LongestEdge(), 0.25)
		}
		return true
	})
}

func TestBuildChildrenTileParent(t *testing.T) {
	root := build(t, "x*y - z", 2, 0.25, 1)
	Walk(root, func(n *Node) bool {
		if n.Children == nil {
			return true
		}
		var vol float64
		for i, c := range n.Children {
			assert.Equal(t, n.Box.Octant(i), c.Box)
			assert.Equal(t, n.Depth+1, c.Depth)
			vol += c.Box.Volume()
		}
		assert.InDelta(t, n.Box.Volume(), vol, 1e-12)
		return true
	})
}

// TestPrunedCellsHaveNoRoot samples points in every pruned cell and
// checks the function keeps the sign of the cell's bound.
func TestPrunedCellsHaveNoRoot(t *testing.T) {
	sources := []string{
		"x*x+y*y+z*z-4",
		"sin(x)*cos(y) - z/2",
		"abs(x) + abs(y) + abs(z) - 1.5",
	}
	r := rand.New(rand.NewSource(7))
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			f := expr.MustParse(src)
			root := build(t, src, 3, 0.25, 0)
			Walk(root, func(n *Node) bool {
				if n.State != Pruned {
					return true
				}
				positive := n.Value.Lo > 0
				for s := 0; s < 20; s++ {
					x := n.Box.X.Lo + r.Float64()*n.Box.X.Width()
					y := n.Box.Y.Lo + r.Float64()*n.Box.Y.Width()
					z := n.Box.Z.Lo + r.Float64()*n.Box.Z.Width()
					v := expr.Eval(f, x, y, z)
					require.Equal(t, positive, v > 0, "f(%g, %g, %g) = %g in pruned cell %v", x, y, z, v, n.Box)
					require.NotZero(t, v)
				}
				return true
			})
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	const src = "x^2 + y^2 - z^2 - 1"
	boxes := func(root *Node) []geometry.Box {
		var out []geometry.Box
		for _, n := range Leaves(root) {
			out = append(out, n.Box)
		}
		return out
	}
	sequential := boxes(build(t, src, 3, 0.2, 0))
	require.NotEmpty(t, sequential)
	assert.Equal(t, sequential, boxes(build(t, src, 3, 0.2, 3)))
	assert.Equal(t, sequential, boxes(build(t, src, 3, 0.2, 3)))
}

func TestBuildUndefinedForcesSubdivision(t *testing.T) {
	root := build(t, "sqrt(x - 2)", 1, 0.5, 0)
	stats := Collect(root)

	assert.Equal(t, 64, stats.Accepted)
	assert.Equal(t, 0, stats.Pruned)
	assert.Equal(t, 1+8+64, stats.Undefined)
}

func TestBuildLargeEpsilonAcceptsRoot(t *testing.T) {
	root := build(t, "x", 1, 10, 0)
	assert.Equal(t, Accepted, root.State)
	assert.Len(t, Leaves(root), 1)
}

func TestBuildInvalidEpsilon(t *testing.T) {
	f := expr.MustParse("x")
	for _, eps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Build(context.Background(), f, geometry.NewCube(1), Options{Epsilon: eps})
		assert.ErrorIs(t, err, ErrInvalidEpsilon)
	}
}

func TestBuildNodeCeiling(t *testing.T) {
	root, err := Build(context.Background(), expr.MustParse("x*x+y*y+z*z-4"), geometry.NewCube(4), Options{
		Epsilon:  0.01,
		MaxNodes: 100,
	})
	assert.Nil(t, root)

	var nt *NonTerminationError
	require.True(t, errors.As(err, &nt))
	assert.Equal(t, 0.01, nt.Epsilon)
	assert.Contains(t, nt.Reason, "ceiling")
	assert.Greater(t, nt.Evaluated, int64(100))
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, expr.MustParse("x"), geometry.NewCube(1), Options{Epsilon: 0.1, ParallelDepth: 2})
	var nt *NonTerminationError
	require.True(t, errors.As(err, &nt))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "cancelled", nt.Reason)
}

func TestBuildDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := Build(ctx, expr.MustParse("x"), geometry.NewCube(1), Options{Epsilon: 0.1})
	var nt *NonTerminationError
	require.True(t, errors.As(err, &nt))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "time budget exhausted", nt.Reason)
}

// TestBuildKeepsSignChangeAtHighPower covers an odd power above the
// repeated-squaring limit: the function is negative near x = -1 and
// positive at the origin, so the root cell must not be pruned.
func TestBuildKeepsSignChangeAtHighPower(t *testing.T) {
	f := expr.MustParse("x^65537 + 1e-290")
	require.Less(t, expr.Eval(f, -0.995, 0, 0), 0.0)
	require.Greater(t, expr.Eval(f, 0, 0, 0), 0.0)

	root := build(t, "x^65537 + 1e-290", 1, 0.5, 0)
	assert.Equal(t, Subdivided, root.State)

	var found bool
	for _, n := range Leaves(root) {
		if n.Box.Contains(geometry.NewVector3(-0.995, 0, 0)) {
			found = true
		}
	}
	assert.True(t, found, "no accepted cell around the sign change")
}

func TestBuildUnsplittableCell(t *testing.T) {
	box := geometry.Box{
		X: interval.New(1, math.Nextafter(1, 2)),
		Y: interval.New(0, 1e-300),
		Z: interval.New(0, 1e-300),
	}
	_, err := Build(context.Background(), expr.MustParse("x - 1"), box, Options{Epsilon: 1e-310})

	var nt *NonTerminationError
	require.True(t, errors.As(err, &nt))
	assert.Contains(t, nt.Reason, "split")
	assert.Equal(t, box, nt.Box)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "State(9)", State(9).String())
}
