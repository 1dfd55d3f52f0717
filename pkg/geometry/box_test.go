package geometry

import (
	"math"
	"testing"
)

func TestNewCube(t *testing.T) {
	box := NewCube(4)

	if box.Min() != NewVector3(-4, -4, -4) || box.Max() != NewVector3(4, 4, 4) {
		t.Errorf("unexpected corners %v %v", box.Min(), box.Max())
	}
	if box.LongestEdge() != 8 {
		t.Errorf("LongestEdge: expected 8, got %v", box.LongestEdge())
	}
	if box.Volume() != 512 {
		t.Errorf("Volume: expected 512, got %v", box.Volume())
	}
	if box.Center() != (Vector3{}) {
		t.Errorf("Center: expected origin, got %v", box.Center())
	}
}

func TestOctantsTileParent(t *testing.T) {
	parent := NewBox(NewVector3(-1, 2, -3), NewVector3(5, 3, 1))
	children := parent.Octants()

	volume := 0.0
	for i, child := range children {
		volume += child.Volume()

		// Every child edge is half its parent edge.
		for axis := 0; axis < 3; axis++ {
			pw, cw := parent.Axis(axis).Width(), child.Axis(axis).Width()
			if math.Abs(cw-pw/2) > 1e-12 {
				t.Errorf("child %d axis %d width %v, expected %v", i, axis, cw, pw/2)
			}
		}
		if !parent.Contains(child.Min()) || !parent.Contains(child.Max()) {
			t.Errorf("child %d %v escapes parent %v", i, child, parent)
		}
	}
	if math.Abs(volume-parent.Volume()) > 1e-9 {
		t.Errorf("children volume %v != parent volume %v", volume, parent.Volume())
	}

	// Children differ pairwise in at least one axis half, so none overlap
	// beyond shared faces.
	for i := range children {
		for j := i + 1; j < 8; j++ {
			overlap := 1.0
			for axis := 0; axis < 3; axis++ {
				a, b := children[i].Axis(axis), children[j].Axis(axis)
				overlap *= math.Max(0, math.Min(a.Hi, b.Hi)-math.Max(a.Lo, b.Lo))
			}
			if overlap != 0 {
				t.Errorf("children %d and %d overlap with volume %v", i, j, overlap)
			}
		}
	}
}

func TestOctantBitOrder(t *testing.T) {
	parent := NewCube(2)

	upperX := parent.Octant(1)
	if upperX.X.Lo != 0 || upperX.Y.Hi != 0 || upperX.Z.Hi != 0 {
		t.Errorf("octant 1 should be upper x only, got %v", upperX)
	}
	upperAll := parent.Octant(7)
	if upperAll.Min() != (Vector3{}) {
		t.Errorf("octant 7 should start at origin, got %v", upperAll)
	}
}

func TestCanSplit(t *testing.T) {
	if !NewCube(1).CanSplit() {
		t.Error("unit cube should split")
	}
	tiny := math.Nextafter(1, 2)
	box := NewBox(NewVector3(1, 0, 0), NewVector3(tiny, 1, 1))
	if box.CanSplit() {
		t.Error("edge one ulp wide cannot split")
	}
}

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.ExtendBox(NewBox(NewVector3(-1, 0, 2), NewVector3(0, 1, 3)))

	if bbox.Min != NewVector3(-1, 0, 2) {
		t.Errorf("Min failed: got %v", bbox.Min)
	}
	if bbox.Max != NewVector3(4, 5, 6) {
		t.Errorf("Max failed: got %v", bbox.Max)
	}
	if bbox.Center() != NewVector3(1.5, 2.5, 4) {
		t.Errorf("Center failed: got %v", bbox.Center())
	}
}
