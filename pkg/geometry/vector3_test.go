package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	if got := (Vector3{}).Normalize(); got != (Vector3{}) {
		t.Errorf("Normalize of zero vector: expected zero, got %v", got)
	}
}

func TestVector3Axis(t *testing.T) {
	v := NewVector3(1, 2, 3)
	for i, expected := range []float64{1, 2, 3} {
		if got := v.Axis(i); got != expected {
			t.Errorf("Axis(%d): expected %v, got %v", i, expected, got)
		}
	}
	if v.MaxComponent() != 3 {
		t.Errorf("MaxComponent: expected 3, got %v", v.MaxComponent())
	}
}
