package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the unit normal from the winding order
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 3.0)
}

// cubeFaces lists the corner indices of each face, counter-clockwise seen
// from outside. Corner i has bit 0 = max x, bit 1 = max y, bit 2 = max z,
// matching Box.Octant.
var cubeFaces = [6][4]int{
	{0, 4, 6, 2}, // -x
	{1, 3, 7, 5}, // +x
	{0, 1, 5, 4}, // -y
	{2, 6, 7, 3}, // +y
	{0, 2, 3, 1}, // -z
	{4, 5, 7, 6}, // +z
}

// BoxTriangles returns the 12 outward-facing triangles of a box surface
func BoxTriangles(b Box) []Triangle {
	lo, hi := b.Min(), b.Max()
	var corners [8]Vector3
	for i := range corners {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		corners[i] = c
	}

	tris := make([]Triangle, 0, 12)
	for _, f := range cubeFaces {
		p0, p1, p2, p3 := corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]
		t1 := Triangle{V1: p0, V2: p1, V3: p2}
		t1.Normal = t1.CalculateNormal()
		t2 := Triangle{V1: p0, V2: p2, V3: p3}
		t2.Normal = t2.CalculateNormal()
		tris = append(tris, t1, t2)
	}
	return tris
}
