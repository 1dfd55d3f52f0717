// Package viewer draws plot documents and STL models with a small
// software rasterizer, either into an image or a desktop window.
package viewer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/plot"
	"github.com/philipparndt/gosurf/pkg/stl"
)

// Marker is a point primitive drawn as a small square.
type Marker struct {
	Center geometry.Vector3
	// Size is the world-space edge of the cell the point stands for.
	Size float64
}

// Scene is the drawable content of a file.
type Scene struct {
	Title     string
	Triangles []geometry.Triangle
	Markers   []Marker
	Bounds    geometry.BoundingBox
}

// SceneFromPlot turns cube primitives into triangles and point
// primitives into markers.
func SceneFromPlot(p *plot.Plot) *Scene {
	s := &Scene{Title: p.Header.Expression, Bounds: p.Bounds()}
	for _, prim := range p.Primitives() {
		if prim.Kind == plot.KindCube {
			s.Triangles = append(s.Triangles, geometry.BoxTriangles(prim.Box())...)
			continue
		}
		s.Markers = append(s.Markers, Marker{Center: prim.Center, Size: prim.Size.MaxComponent()})
	}
	return s
}

// SceneFromModel wraps the triangles of an STL model.
func SceneFromModel(m *stl.Model) *Scene {
	return &Scene{Title: m.Name, Triangles: m.Triangles, Bounds: m.BoundingBox()}
}

// LoadScene reads a plot document or, for .stl files, an STL model.
func LoadScene(path string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(path), ".stl") {
		m, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load STL file: %w", err)
		}
		return SceneFromModel(m), nil
	}
	p, err := plot.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SceneFromPlot(p), nil
}

// Len returns the number of drawable elements.
func (s *Scene) Len() int {
	return len(s.Triangles) + len(s.Markers)
}
