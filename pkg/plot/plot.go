// Package plot holds the geometry produced from an octree: one primitive
// per accepted cell, plus enough metadata to reproduce the run.
package plot

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/octree"
)

// Kind is the shape of a primitive.
type Kind uint8

const (
	KindPoint Kind = iota + 1
	KindCube
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindCube:
		return "cube"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Style selects the primitive emitted for each accepted cell.
type Style int

const (
	StylePoints Style = iota
	StyleCubes
)

// ParseStyle maps "points" or "cubes" to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "points", "point":
		return StylePoints, nil
	case "cubes", "cube":
		return StyleCubes, nil
	}
	return 0, fmt.Errorf("unknown style %q (want points or cubes)", s)
}

func (s Style) String() string {
	if s == StyleCubes {
		return "cubes"
	}
	return "points"
}

func (s Style) kind() Kind {
	if s == StyleCubes {
		return KindCube
	}
	return KindPoint
}

// Primitive is one drawable element. Size is the edge lengths of the
// cell it came from, for points as well as cubes.
type Primitive struct {
	Kind   Kind
	Center geometry.Vector3
	Size   geometry.Vector3
}

// Box returns the cell the primitive covers.
func (p Primitive) Box() geometry.Box {
	h := p.Size.Mul(0.5)
	return geometry.NewBox(p.Center.Sub(h), p.Center.Add(h))
}

// Header describes how a plot was produced.
type Header struct {
	Expression string
	Epsilon    float64
	Region     geometry.Box
}

// Plot is an append-only list of primitives.
type Plot struct {
	Header     Header
	primitives []Primitive
}

// New returns an empty plot.
func New(h Header) *Plot {
	return &Plot{Header: h}
}

// Add appends a primitive.
func (p *Plot) Add(prim Primitive) {
	p.primitives = append(p.primitives, prim)
}

// Len returns the number of primitives.
func (p *Plot) Len() int {
	return len(p.primitives)
}

// Primitives returns the primitives in insertion order. The slice must
// not be modified.
func (p *Plot) Primitives() []Primitive {
	return p.primitives
}

// Bounds returns the extent of all primitives: cell boxes for cubes and
// centers for points.
func (p *Plot) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, prim := range p.primitives {
		if prim.Kind == KindCube {
			bbox.ExtendBox(prim.Box())
		} else {
			bbox.Extend(prim.Center)
		}
	}
	return bbox
}

// Assemble emits one primitive per accepted leaf of root, in traversal
// order. The tree is only read. Header.Region is set to the root cell;
// the caller fills in the rest of the header.
func Assemble(root *octree.Node, style Style) *Plot {
	p := New(Header{Region: root.Box})
	kind := style.kind()
	for _, n := range octree.Leaves(root) {
		p.Add(Primitive{
			Kind:   kind,
			Center: n.Box.Center(),
			Size:   n.Box.Size(),
		})
	}
	return p
}
