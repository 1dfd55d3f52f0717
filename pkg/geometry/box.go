package geometry

import (
	"fmt"

	"github.com/philipparndt/gosurf/pkg/interval"
)

// Box is an axis-aligned cuboid given by one interval per axis. Boxes are
// values: splitting returns new boxes and never modifies the receiver.
type Box struct {
	X, Y, Z interval.Interval
}

// NewCube returns the cube centered at the origin with the given
// half-size on every axis.
func NewCube(halfSize float64) Box {
	i := interval.New(-halfSize, halfSize)
	return Box{X: i, Y: i, Z: i}
}

// NewBox returns the box spanned by two opposite corners.
func NewBox(a, b Vector3) Box {
	return Box{
		X: interval.New(a.X, b.X),
		Y: interval.New(a.Y, b.Y),
		Z: interval.New(a.Z, b.Z),
	}
}

// Axis returns the interval along axis 0 (x), 1 (y) or 2 (z).
func (b Box) Axis(i int) interval.Interval {
	switch i {
	case 0:
		return b.X
	case 1:
		return b.Y
	default:
		return b.Z
	}
}

// Min returns the lowest corner.
func (b Box) Min() Vector3 {
	return Vector3{X: b.X.Lo, Y: b.Y.Lo, Z: b.Z.Lo}
}

// Max returns the highest corner.
func (b Box) Max() Vector3 {
	return Vector3{X: b.X.Hi, Y: b.Y.Hi, Z: b.Z.Hi}
}

// Center returns the centroid.
func (b Box) Center() Vector3 {
	return Vector3{X: b.X.Mid(), Y: b.Y.Mid(), Z: b.Z.Mid()}
}

// Size returns the edge length along each axis.
func (b Box) Size() Vector3 {
	return Vector3{X: b.X.Width(), Y: b.Y.Width(), Z: b.Z.Width()}
}

// LongestEdge returns the largest edge length.
func (b Box) LongestEdge() float64 {
	return b.Size().MaxComponent()
}

// Volume returns the product of the edge lengths.
func (b Box) Volume() float64 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

// Contains reports whether p lies inside the closed box.
func (b Box) Contains(p Vector3) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y) && b.Z.Contains(p.Z)
}

// Octant returns child i of the midpoint split. Bit 0 of i selects the
// upper half in x, bit 1 in y and bit 2 in z.
func (b Box) Octant(i int) Box {
	half := func(iv interval.Interval, upper bool) interval.Interval {
		lo, hi := iv.Split()
		if upper {
			return hi
		}
		return lo
	}
	return Box{
		X: half(b.X, i&1 != 0),
		Y: half(b.Y, i&2 != 0),
		Z: half(b.Z, i&4 != 0),
	}
}

// Octants splits the box at the midpoint of every axis. The eight
// children tile the parent exactly: adjacent children share the
// midpoint plane and their union is the parent.
func (b Box) Octants() [8]Box {
	var out [8]Box
	for i := range out {
		out[i] = b.Octant(i)
	}
	return out
}

// CanSplit reports whether bisecting every axis produces strictly
// smaller intervals. It fails once an edge is too narrow for its
// midpoint to differ from an endpoint in floating point.
func (b Box) CanSplit() bool {
	for axis := 0; axis < 3; axis++ {
		iv := b.Axis(axis)
		if iv.Lo == iv.Hi {
			continue
		}
		m := iv.Mid()
		if !(iv.Lo < m && m < iv.Hi) {
			return false
		}
	}
	return true
}

func (b Box) String() string {
	return fmt.Sprintf("x%v y%v z%v", b.X, b.Y, b.Z)
}
