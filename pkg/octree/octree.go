// Package octree finds the cells of a bounded region that may contain the
// zero set of an implicit function. It evaluates the function over each
// cell with interval arithmetic, discards cells whose bound excludes
// zero, and splits the rest into eight octants until they are no larger
// than the requested resolution.
package octree

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/philipparndt/gosurf/pkg/expr"
	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/interval"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxNodes is the evaluation ceiling used when Options.MaxNodes is
// zero.
const DefaultMaxNodes = 20_000_000

// DefaultParallelDepth forks the first three levels: up to 512
// concurrent subtrees.
const DefaultParallelDepth = 3

// checkEvery is how often, in evaluated cells, the context is polled.
const checkEvery = 1024

// State is the classification of a node.
type State int

const (
	Unevaluated State = iota
	Evaluated
	Pruned
	Accepted
	Subdivided
)

var stateNames = [...]string{
	Unevaluated: "unevaluated",
	Evaluated:   "evaluated",
	Pruned:      "pruned",
	Accepted:    "accepted",
	Subdivided:  "subdivided",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Node is one cell of the tree. A node exclusively owns its children.
type Node struct {
	Box   geometry.Box
	Value interval.Interval
	State State
	Depth int
	// Children is set once the node is split and never changes after.
	Children *[8]*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Options controls a build.
type Options struct {
	// Epsilon is the edge length at or below which a cell that may contain
	// the surface is accepted. Must be positive.
	Epsilon float64
	// MaxNodes caps the number of evaluated cells; 0 means
	// DefaultMaxNodes. Exceeding it fails the build.
	MaxNodes int64
	// ParallelDepth is the number of tree levels whose children are
	// refined concurrently. 0 refines sequentially.
	ParallelDepth int
}

// NonTerminationError reports a build that could not converge: the
// evaluation ceiling or the context deadline was reached, the context
// was cancelled, or a cell stopped shrinking before reaching epsilon.
type NonTerminationError struct {
	Box       geometry.Box
	Epsilon   float64
	Evaluated int64
	Reason    string
	Err       error
}

func (e *NonTerminationError) Error() string {
	return fmt.Sprintf("octree did not converge (%s) at box %v with epsilon %g after %d evaluated cells",
		e.Reason, e.Box, e.Epsilon, e.Evaluated)
}

func (e *NonTerminationError) Unwrap() error {
	return e.Err
}

// ErrInvalidEpsilon is returned for a nonpositive or non-finite epsilon.
var ErrInvalidEpsilon = errors.New("epsilon must be a positive finite number")

type builder struct {
	f        expr.Node
	eps      float64
	maxNodes int64
	parallel int
	count    atomic.Int64
}

// Build refines the root cell covering box until every remaining cell is
// pruned or accepted. f is shared read-only by all concurrent branches.
// On failure no tree is returned.
func Build(ctx context.Context, f expr.Node, box geometry.Box, opts Options) (*Node, error) {
	if !(opts.Epsilon > 0) || math.IsInf(opts.Epsilon, 0) {
		return nil, ErrInvalidEpsilon
	}
	b := &builder{
		f:        f,
		eps:      opts.Epsilon,
		maxNodes: opts.MaxNodes,
		parallel: opts.ParallelDepth,
	}
	if b.maxNodes <= 0 {
		b.maxNodes = DefaultMaxNodes
	}

	root := &Node{Box: box}
	if err := b.refine(ctx, root); err != nil {
		return nil, err
	}
	return root, nil
}

// Evaluate returns the interval of f over box.
func Evaluate(f expr.Node, box geometry.Box) interval.Interval {
	return expr.EvalInterval(f, expr.Bind(box.X, box.Y, box.Z))
}

func (b *builder) fail(n *Node, reason string, err error) error {
	return &NonTerminationError{
		Box:       n.Box,
		Epsilon:   b.eps,
		Evaluated: b.count.Load(),
		Reason:    reason,
		Err:       err,
	}
}

func (b *builder) refine(ctx context.Context, n *Node) error {
	count := b.count.Add(1)
	if count > b.maxNodes {
		return b.fail(n, fmt.Sprintf("evaluation ceiling of %d cells reached", b.maxNodes), nil)
	}
	if count%checkEvery == 1 {
		if err := ctx.Err(); err != nil {
			reason := "cancelled"
			if errors.Is(err, context.DeadlineExceeded) {
				reason = "time budget exhausted"
			}
			return b.fail(n, reason, err)
		}
	}

	n.Value = Evaluate(b.f, n.Box)
	n.State = Evaluated

	if !n.Value.ContainsZero() {
		n.State = Pruned
		return nil
	}
	if n.Box.LongestEdge() <= b.eps {
		n.State = Accepted
		return nil
	}
	if !n.Box.CanSplit() {
		return b.fail(n, "cell too small to split before reaching epsilon", nil)
	}

	children := new([8]*Node)
	for i, cb := range n.Box.Octants() {
		children[i] = &Node{Box: cb, Depth: n.Depth + 1}
	}
	n.Children = children

	if n.Depth < b.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range children {
			c := c
			g.Go(func() error { return b.refine(gctx, c) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, c := range children {
			if err := b.refine(ctx, c); err != nil {
				return err
			}
		}
	}

	n.State = Subdivided
	return nil
}
