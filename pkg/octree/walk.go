package octree

// Walk visits n and its descendants depth first, parents before children
// and children in octant order. Returning false from fn skips the
// children of the node just visited.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) || n.Children == nil {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Leaves returns the accepted cells in traversal order.
func Leaves(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.State == Accepted {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Stats summarises a finished tree.
type Stats struct {
	Nodes      int
	Pruned     int
	Accepted   int
	Subdivided int
	// Undefined counts cells whose bound was undefined somewhere.
	Undefined int
	MaxDepth  int
	// MinEdge is the smallest longest-edge among accepted cells.
	MinEdge float64
}

// Collect gathers Stats for the tree rooted at root.
func Collect(root *Node) Stats {
	var s Stats
	Walk(root, func(n *Node) bool {
		s.Nodes++
		switch n.State {
		case Pruned:
			s.Pruned++
		case Accepted:
			s.Accepted++
			if e := n.Box.LongestEdge(); s.MinEdge == 0 || e < s.MinEdge {
				s.MinEdge = e
			}
		case Subdivided:
			s.Subdivided++
		}
		if n.Value.IsUndefined() {
			s.Undefined++
		}
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
		return true
	})
	return s
}
