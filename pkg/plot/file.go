package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gosurf/pkg/stl"
)

// Format is an output file format.
type Format int

const (
	FormatPlot Format = iota
	FormatSTL
)

func (f Format) String() string {
	if f == FormatSTL {
		return "stl"
	}
	return "plot"
}

// ParseFormat maps "plot" or "stl" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "plot", "gspl":
		return FormatPlot, nil
	case "stl":
		return FormatSTL, nil
	}
	return 0, fmt.Errorf("unknown format %q (want plot or stl)", s)
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".stl") {
		return FormatSTL
	}
	return FormatPlot
}

// pointScale is the edge of the marker cube written for point
// primitives, relative to the cell.
const pointScale = 0.25

// ToModel converts the plot to triangles: each cube primitive becomes its
// cell surface and each point a small cube around the center.
func ToModel(p *Plot) *stl.Model {
	m := stl.NewModel(p.Header.Expression)
	for _, prim := range p.primitives {
		if prim.Kind == KindPoint {
			prim.Size = prim.Size.Mul(pointScale)
		}
		m.AddBox(prim.Box())
	}
	return m
}

// Write encodes p to w in the given format.
func Write(w io.Writer, p *Plot, f Format) error {
	if f == FormatSTL {
		return stl.Write(w, ToModel(p))
	}
	return Encode(w, p)
}

// WriteFile writes p to path atomically: the data goes to a temporary
// file in the same directory which is renamed into place once complete.
func WriteFile(path string, p *Plot, f Format) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, p, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// ReadFile loads a document written with FormatPlot.
func ReadFile(path string) (*Plot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
