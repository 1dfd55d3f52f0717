package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gosurf/pkg/geometry"
	"github.com/philipparndt/gosurf/pkg/plot"
	"github.com/philipparndt/gosurf/pkg/stl"
)

// PlotMeasurement contains statistics of a plot document
type PlotMeasurement struct {
	Primitives int
	Points     int
	Cubes      int
	// BoundingBox covers the primitive centers
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	// CellVolume is the total volume of the cells behind the primitives
	CellVolume  float64
	MinCellEdge float64
	MaxCellEdge float64
	// Radius is the distance of a primitive center from the origin
	MinRadius  float64
	MaxRadius  float64
	MeanRadius float64
}

// AnalyzePlot measures a plot document
func AnalyzePlot(p *plot.Plot) *PlotMeasurement {
	result := &PlotMeasurement{
		Primitives:  p.Len(),
		BoundingBox: geometry.NewBoundingBox(),
	}
	if p.Len() == 0 {
		return result
	}

	result.MinCellEdge = math.MaxFloat64
	result.MinRadius = math.MaxFloat64
	totalRadius := 0.0

	for _, prim := range p.Primitives() {
		switch prim.Kind {
		case plot.KindPoint:
			result.Points++
		case plot.KindCube:
			result.Cubes++
		}
		result.BoundingBox.Extend(prim.Center)

		result.CellVolume += prim.Size.X * prim.Size.Y * prim.Size.Z
		edge := prim.Size.MaxComponent()
		result.MinCellEdge = math.Min(result.MinCellEdge, edge)
		result.MaxCellEdge = math.Max(result.MaxCellEdge, edge)

		r := prim.Center.Length()
		totalRadius += r
		result.MinRadius = math.Min(result.MinRadius, r)
		result.MaxRadius = math.Max(result.MaxRadius, r)
	}

	result.Dimensions = result.BoundingBox.Size()
	result.MeanRadius = totalRadius / float64(p.Len())
	return result
}

// FarthestPrimitives returns the count primitives farthest from point,
// farthest first
func FarthestPrimitives(p *plot.Plot, point geometry.Vector3, count int) []plot.Primitive {
	prims := make([]plot.Primitive, p.Len())
	copy(prims, p.Primitives())

	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Center.Distance(point) > prims[j].Center.Distance(point)
	})

	if count > len(prims) {
		count = len(prims)
	}
	return prims[:count]
}

// FindNearestPrimitive finds the primitive whose center is nearest to a
// given point. ok is false for an empty plot.
func FindNearestPrimitive(p *plot.Plot, point geometry.Vector3) (prim plot.Primitive, distance float64, ok bool) {
	distance = math.MaxFloat64
	for _, candidate := range p.Primitives() {
		if d := point.Distance(candidate.Center); d < distance {
			prim, distance, ok = candidate, d, true
		}
	}
	return prim, distance, ok
}

// ModelMeasurement contains statistics of an STL model
type ModelMeasurement struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeModel measures an STL model
func AnalyzeModel(model *stl.Model) *ModelMeasurement {
	result := &ModelMeasurement{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()
	if result.TriangleCount == 0 {
		return result
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, t := range model.Triangles {
		for _, length := range [3]float64{t.V1.Distance(t.V2), t.V2.Distance(t.V3), t.V3.Distance(t.V1)} {
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.MinEdgeLength = minLength
	result.MaxEdgeLength = maxLength
	result.AvgEdgeLength = totalLength / float64(3*result.TriangleCount)
	return result
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
