package interval

import "math"

// bound builds an interval from endpoints that may have become NaN
// through inf-inf style arithmetic. A NaN endpoint is replaced by the
// corresponding infinity.
func bound(lo, hi float64) Interval {
	if math.IsNaN(lo) {
		lo = math.Inf(-1)
	}
	if math.IsNaN(hi) {
		hi = math.Inf(1)
	}
	return Interval{Lo: lo, Hi: hi}
}

// Neg returns -a.
func Neg(a Interval) Interval {
	if a.undef {
		return a
	}
	return Interval{Lo: -a.Hi, Hi: -a.Lo}
}

// Add returns a + b.
func Add(a, b Interval) Interval {
	if a.undef || b.undef {
		return Undefined()
	}
	return bound(a.Lo+b.Lo, a.Hi+b.Hi)
}

// Sub returns a - b. The second operand's endpoints swap roles.
func Sub(a, b Interval) Interval {
	if a.undef || b.undef {
		return Undefined()
	}
	return bound(a.Lo-b.Hi, a.Hi-b.Lo)
}

// mulEndpoint multiplies two endpoints with the interval convention
// 0 * inf = 0.
func mulEndpoint(x, y float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	return x * y
}

// Mul returns a * b from the four corner products. Signs may vary across
// either operand, so endpoint-wise multiplication is not enough.
func Mul(a, b Interval) Interval {
	if a.undef || b.undef {
		return Undefined()
	}
	c1 := mulEndpoint(a.Lo, b.Lo)
	c2 := mulEndpoint(a.Lo, b.Hi)
	c3 := mulEndpoint(a.Hi, b.Lo)
	c4 := mulEndpoint(a.Hi, b.Hi)
	return Interval{
		Lo: math.Min(math.Min(c1, c2), math.Min(c3, c4)),
		Hi: math.Max(math.Max(c1, c2), math.Max(c3, c4)),
	}
}

// Div returns a / b. A divisor that is exactly [0, 0] has no quotient
// and yields Undefined. A divisor that merely contains zero yields
// Entire instead of a spurious finite bound.
func Div(a, b Interval) Interval {
	if a.undef || b.undef {
		return Undefined()
	}
	if b.Lo == 0 && b.Hi == 0 {
		return Undefined()
	}
	if b.ContainsZero() {
		return Entire()
	}
	corners := [4]float64{a.Lo / b.Lo, a.Lo / b.Hi, a.Hi / b.Lo, a.Hi / b.Hi}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		if math.IsNaN(c) {
			return Entire()
		}
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return Interval{Lo: lo, Hi: hi}
}

// Abs returns |a|.
func Abs(a Interval) Interval {
	switch {
	case a.undef:
		return a
	case a.Lo >= 0:
		return a
	case a.Hi <= 0:
		return Neg(a)
	default:
		return Interval{Lo: 0, Hi: math.Max(-a.Lo, a.Hi)}
	}
}

// Min returns the bound of min(x, y) for x in a, y in b.
func Min(a, b Interval) Interval {
	if a.undef || b.undef {
		return Undefined()
	}
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Min(a.Hi, b.Hi)}
}

// Max returns the bound of max(x, y) for x in a, y in b.
func Max(a, b Interval) Interval {
	if a.undef || b.undef {
		return Undefined()
	}
	return Interval{Lo: math.Max(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}
