package viewer

import (
	"math"

	"github.com/philipparndt/gosurf/pkg/geometry"
)

// Camera orbits a target point at a fixed distance
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)
}

// minDistance keeps the camera outside degenerate scenes
const minDistance = 0.1

// NewCamera creates a camera looking down -z at the center of bbox, far
// enough away to see all of it
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	distance := math.Max(bbox.Size().MaxComponent()*2.0, 1)

	c := &Camera{
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4, // 45 degrees
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to keep Up meaningful
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))

	c.UpdatePosition()
}

// Zoom changes the camera distance by a relative amount
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(minDistance, c.Distance*(1.0+delta))
	c.UpdatePosition()
}

// ViewDirection returns the unit vector from the target to the camera
func (c *Camera) ViewDirection() geometry.Vector3 {
	return c.Position.Sub(c.Target).Normalize()
}

// Project projects a 3D point to screen coordinates and its depth along
// the view axis
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	// Points behind the near plane are pinned to it
	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}
