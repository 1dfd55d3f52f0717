package viewer

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/philipparndt/gosurf/pkg/analysis"
)

// statusText summarises the scene for the window footer
func statusText(s *Scene) string {
	size := s.Bounds.Size()
	return fmt.Sprintf("%s triangles, %s points, size %s",
		humanize.Comma(int64(len(s.Triangles))),
		humanize.Comma(int64(len(s.Markers))),
		analysis.FormatVector(size))
}
