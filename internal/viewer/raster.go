package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/philipparndt/gosurf/pkg/geometry"
)

var (
	Background  = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	boundsColor = color.RGBA{R: 70, G: 74, B: 84, A: 255}
	cubeColor   = [3]float64{110, 170, 235}
	pointColor  = [3]float64{245, 190, 90}
)

// RenderOptions controls an image render
type RenderOptions struct {
	Width, Height int
	// ShowBounds outlines the scene bounding box
	ShowBounds bool
}

// Render draws the scene as seen by cam into a new image
func Render(s *Scene, cam *Camera, opts RenderOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	zbuffer := make([]float64, opts.Width*opts.Height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}

	w, h := float64(opts.Width), float64(opts.Height)
	if opts.ShowBounds && !s.Bounds.IsEmpty() {
		drawBounds(img, cam, s.Bounds, w, h)
	}

	light := cam.ViewDirection()
	for _, t := range s.Triangles {
		normal := t.Normal
		if normal.Length() == 0 {
			normal = t.CalculateNormal()
		}
		col := shade(cubeColor, 0.25+0.75*math.Abs(normal.Dot(light)))

		x1, y1, z1 := cam.Project(t.V1, w, h)
		x2, y2, z2 := cam.Project(t.V2, w, h)
		x3, y3, z3 := cam.Project(t.V3, w, h)
		fillTriangleWithDepth(img, zbuffer, x1, y1, z1, x2, y2, z2, x3, y3, z3, col)
	}

	for _, m := range s.Markers {
		x, y, z := cam.Project(m.Center, w, h)
		// world size to pixels at this depth
		px := m.Size / (z * math.Tan(cam.FOV/2)) * (h / 2)
		half := math.Max(1, px/4)
		col := shade(pointColor, depthShade(z, cam.Distance))
		fillSquareWithDepth(img, zbuffer, x, y, z, half, col)
	}

	return img
}

func shade(base [3]float64, f float64) color.RGBA {
	f = math.Max(0, math.Min(1, f))
	return color.RGBA{R: uint8(base[0] * f), G: uint8(base[1] * f), B: uint8(base[2] * f), A: 255}
}

// depthShade darkens markers behind the orbit target
func depthShade(z, distance float64) float64 {
	return 1.0 - 0.5*math.Max(0, math.Min(1, (z-distance)/distance+0.5))
}

func drawBounds(img *image.RGBA, cam *Camera, b geometry.BoundingBox, w, h float64) {
	box := geometry.NewBox(b.Min, b.Max)
	for _, t := range geometry.BoxTriangles(box) {
		// two triangles per face; their first two edges are face edges
		for _, e := range [2][2]geometry.Vector3{{t.V1, t.V2}, {t.V2, t.V3}} {
			x1, y1, _ := cam.Project(e[0], w, h)
			x2, y2, _ := cam.Project(e[1], w, h)
			drawLine(img, int(x1), int(y1), int(x2), int(y2), boundsColor)
		}
	}
}

// fillSquareWithDepth fills an axis-aligned screen square with depth testing
func fillSquareWithDepth(img *image.RGBA, zbuffer []float64, cx, cy, z, half float64, col color.RGBA) {
	bounds := img.Bounds()
	x0 := int(math.Max(0, cx-half))
	x1 := int(math.Min(float64(bounds.Max.X-1), cx+half))
	y0 := int(math.Max(0, cy-half))
	y1 := int(math.Min(float64(bounds.Max.Y-1), cy+half))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			idx := y*bounds.Max.X + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// fillTriangleWithDepth fills a triangle with depth testing
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	vertices := [3][3]float64{
		{x1, y1, z1},
		{x2, y2, z2},
		{x3, y3, z3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1, z1 = vertices[0][0], vertices[0][1], vertices[0][2]
	x2, y2, z2 = vertices[1][0], vertices[1][1], vertices[1][2]
	x3, y3, z3 = vertices[2][0], vertices[2][1], vertices[2][2]

	bounds := img.Bounds()
	width := bounds.Max.X

	// edge crossing of scanline fy between (xa, ya, za) and (xb, yb, zb)
	type crossing struct{ x, z float64 }
	cross := func(fy, xa, ya, za, xb, yb, zb float64) (crossing, bool) {
		if ya == yb || fy < ya || fy > yb {
			return crossing{}, false
		}
		t := (fy - ya) / (yb - ya)
		return crossing{xa + t*(xb-xa), za + t*(zb-za)}, true
	}

	for y := int(math.Max(0, y1)); y <= int(math.Min(float64(bounds.Max.Y-1), y3)); y++ {
		fy := float64(y)

		var hits [3]crossing
		n := 0
		if c, ok := cross(fy, x1, y1, z1, x2, y2, z2); ok {
			hits[n] = c
			n++
		}
		if c, ok := cross(fy, x2, y2, z2, x3, y3, z3); ok {
			hits[n] = c
			n++
		}
		if c, ok := cross(fy, x1, y1, z1, x3, y3, z3); ok {
			hits[n] = c
			n++
		}
		if n < 2 {
			continue
		}

		start, end := hits[0], hits[1]
		if start.x > end.x {
			start, end = end, start
		}

		xStartInt := int(math.Max(0, math.Ceil(start.x)))
		xEndInt := int(math.Min(float64(bounds.Max.X-1), end.x))

		for x := xStartInt; x <= xEndInt; x++ {
			t := 0.0
			if end.x != start.x {
				t = (float64(x) - start.x) / (end.x - start.x)
			}
			z := start.z + t*(end.z-start.z)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
