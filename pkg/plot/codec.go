package plot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/philipparndt/gosurf/pkg/geometry"
)

// Native format, little endian throughout:
//
//	"GSPL" | header | expression bytes | count primitives
const (
	magic   = "GSPL"
	version = 1

	maxExpressionLen = 1 << 20
)

// ErrNotPlot is returned when decoding data without the plot magic.
var ErrNotPlot = errors.New("not a plot document")

type wireHeader struct {
	Version uint16
	Epsilon float64
	Region  [6]float64
	Count   uint64
	ExprLen uint32
}

type wirePrimitive struct {
	Kind   uint8
	Center [3]float64
	Size   [3]float64
}

func vec(v geometry.Vector3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func unvec(a [3]float64) geometry.Vector3 {
	return geometry.NewVector3(a[0], a[1], a[2])
}

// Encode writes p in the native binary format.
func Encode(w io.Writer, p *Plot) error {
	if len(p.Header.Expression) > maxExpressionLen {
		return fmt.Errorf("expression length %d exceeds limit of %d bytes", len(p.Header.Expression), maxExpressionLen)
	}
	bw := bufio.NewWriter(w)
	lo, hi := p.Header.Region.Min(), p.Header.Region.Max()
	h := wireHeader{
		Version: version,
		Epsilon: p.Header.Epsilon,
		Region:  [6]float64{lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z},
		Count:   uint64(p.Len()),
		ExprLen: uint32(len(p.Header.Expression)),
	}
	if _, err := bw.WriteString(magic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := bw.WriteString(p.Header.Expression); err != nil {
		return err
	}
	for i, prim := range p.primitives {
		wp := wirePrimitive{Kind: uint8(prim.Kind), Center: vec(prim.Center), Size: vec(prim.Size)}
		if err := binary.Write(bw, binary.LittleEndian, &wp); err != nil {
			return fmt.Errorf("failed to write primitive %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// Decode reads a plot written by Encode.
func Decode(r io.Reader) (*Plot, error) {
	br := bufio.NewReader(r)

	var m [len(magic)]byte
	if _, err := io.ReadFull(br, m[:]); err != nil || string(m[:]) != magic {
		return nil, ErrNotPlot
	}

	var h wireHeader
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if h.Version != version {
		return nil, fmt.Errorf("unsupported plot version %d", h.Version)
	}
	if h.ExprLen > maxExpressionLen {
		return nil, fmt.Errorf("expression length %d exceeds limit", h.ExprLen)
	}
	expr := make([]byte, h.ExprLen)
	if _, err := io.ReadFull(br, expr); err != nil {
		return nil, fmt.Errorf("failed to read expression: %w", err)
	}

	p := New(Header{
		Expression: string(expr),
		Epsilon:    h.Epsilon,
		Region: geometry.NewBox(
			geometry.NewVector3(h.Region[0], h.Region[1], h.Region[2]),
			geometry.NewVector3(h.Region[3], h.Region[4], h.Region[5]),
		),
	})
	// the count is untrusted until the data is actually there
	p.primitives = make([]Primitive, 0, min(h.Count, 1<<16))
	for i := uint64(0); i < h.Count; i++ {
		var wp wirePrimitive
		if err := binary.Read(br, binary.LittleEndian, &wp); err != nil {
			return nil, fmt.Errorf("failed to read primitive %d: %w", i, err)
		}
		k := Kind(wp.Kind)
		if k != KindPoint && k != KindCube {
			return nil, fmt.Errorf("primitive %d has unknown kind %d", i, wp.Kind)
		}
		p.Add(Primitive{Kind: k, Center: unvec(wp.Center), Size: unvec(wp.Size)})
	}
	return p, nil
}
