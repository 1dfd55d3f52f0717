// Package interval implements conservative interval arithmetic over
// float64. Every operation returns an Interval that contains the true
// result for any choice of operands inside the argument intervals.
//
// Domain violations (sqrt of a negative-only interval, log of a
// nonpositive one, division by exactly zero) do not panic or return
// errors; they produce the Undefined interval, which propagates through
// all further arithmetic.
package interval

import (
	"fmt"
	"math"
)

// Interval is a closed range [Lo, Hi] with Lo <= Hi, or the undefined
// variant. The zero value is the defined point interval [0, 0].
type Interval struct {
	Lo, Hi float64
	undef  bool
}

// New returns the interval spanning a and b in either order.
func New(a, b float64) Interval {
	if math.IsNaN(a) || math.IsNaN(b) {
		return Undefined()
	}
	if a > b {
		a, b = b, a
	}
	return Interval{Lo: a, Hi: b}
}

// Point returns the degenerate interval [v, v].
func Point(v float64) Interval {
	return New(v, v)
}

// Entire returns [-inf, +inf], the bound used when nothing tighter can
// be proven.
func Entire() Interval {
	return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)}
}

// Undefined returns the interval of an expression that has no real value
// anywhere in its argument domain.
func Undefined() Interval {
	return Interval{Lo: math.NaN(), Hi: math.NaN(), undef: true}
}

// IsUndefined reports whether i is the undefined variant.
func (i Interval) IsUndefined() bool {
	return i.undef
}

// IsEntire reports whether i is unbounded on both sides.
func (i Interval) IsEntire() bool {
	return !i.undef && math.IsInf(i.Lo, -1) && math.IsInf(i.Hi, 1)
}

// Width returns Hi - Lo. Undefined intervals have NaN width.
func (i Interval) Width() float64 {
	if i.undef {
		return math.NaN()
	}
	return i.Hi - i.Lo
}

// Mid returns the midpoint of a defined interval.
func (i Interval) Mid() float64 {
	if i.undef {
		return math.NaN()
	}
	if math.IsInf(i.Lo, 0) || math.IsInf(i.Hi, 0) {
		return i.Lo/2 + i.Hi/2
	}
	return i.Lo + (i.Hi-i.Lo)/2
}

// Contains reports whether v lies in i.
func (i Interval) Contains(v float64) bool {
	if i.undef {
		return false
	}
	return i.Lo <= v && v <= i.Hi
}

// ContainsZero reports whether the interval may contain zero. Endpoints
// equal to zero count, and so does the undefined variant: absence of a
// root can only be proven from a defined interval that excludes zero.
func (i Interval) ContainsZero() bool {
	if i.undef {
		return true
	}
	return i.Lo <= 0 && i.Hi >= 0
}

// Split bisects i at its midpoint.
func (i Interval) Split() (Interval, Interval) {
	m := i.Mid()
	return Interval{Lo: i.Lo, Hi: m}, Interval{Lo: m, Hi: i.Hi}
}

// Equal reports whether two intervals are identical. All undefined
// intervals are equal to each other.
func (i Interval) Equal(o Interval) bool {
	if i.undef || o.undef {
		return i.undef == o.undef
	}
	return i.Lo == o.Lo && i.Hi == o.Hi
}

func (i Interval) String() string {
	if i.undef {
		return "undefined"
	}
	return fmt.Sprintf("[%g, %g]", i.Lo, i.Hi)
}

// widen moves both endpoints one ulp outward. Used for results of
// library functions that are accurate but not guaranteed monotonic.
func widen(i Interval) Interval {
	if i.undef {
		return i
	}
	return Interval{
		Lo: math.Nextafter(i.Lo, math.Inf(-1)),
		Hi: math.Nextafter(i.Hi, math.Inf(1)),
	}
}

// clamp restricts a widened result to a known range such as [-1, 1].
func clamp(i Interval, lo, hi float64) Interval {
	if i.undef {
		return i
	}
	return Interval{Lo: math.Max(i.Lo, lo), Hi: math.Min(i.Hi, hi)}
}
