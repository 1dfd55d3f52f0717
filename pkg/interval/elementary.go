package interval

import "math"

const twoPi = 2 * math.Pi

// IntPower returns x**n by repeated squaring. Point and interval
// evaluation share it so both see identical rounding: for x >= 0 each
// squaring step is monotonic, which keeps PowInt's endpoints exact
// bounds of the point values.
func IntPower(x float64, n int) float64 {
	if n < 0 {
		return 1 / IntPower(x, -n)
	}
	neg := x < 0 && n%2 == 1
	base := math.Abs(x)
	result := 1.0
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	if neg {
		return -result
	}
	return result
}

// PowInt returns a**n for an integer exponent. Even powers of an
// interval straddling zero have a lower bound of exactly 0.
func PowInt(a Interval, n int) Interval {
	if a.undef {
		return a
	}
	switch {
	case n == 0:
		return Point(1)
	case n < 0:
		return Div(Point(1), PowInt(a, -n))
	case n%2 == 1:
		return Interval{Lo: IntPower(a.Lo, n), Hi: IntPower(a.Hi, n)}
	case a.Lo >= 0:
		return Interval{Lo: IntPower(a.Lo, n), Hi: IntPower(a.Hi, n)}
	case a.Hi <= 0:
		return Interval{Lo: IntPower(a.Hi, n), Hi: IntPower(a.Lo, n)}
	default:
		return Interval{Lo: 0, Hi: math.Max(IntPower(a.Lo, n), IntPower(a.Hi, n))}
	}
}

// Pow returns a**b for a real exponent. Small integer exponents are
// better served by PowInt, which shares rounding with IntPower.
//
// A point integer exponent accepts any base. Any other point exponent
// needs a nonnegative base: a negative-only base is Undefined and a
// straddling base is clamped at zero. With a varying exponent a negative
// base may still produce values at integer exponents, so any negative
// part of the base yields Entire.
func Pow(a, b Interval) Interval {
	if a.undef || b.undef {
		return Undefined()
	}
	if b.Lo == b.Hi {
		p := b.Lo
		if p == math.Trunc(p) && !math.IsInf(p, 0) {
			return powIntegral(a, p)
		}
		if a.Hi < 0 {
			return Undefined()
		}
		lo := math.Max(a.Lo, 0)
		if p > 0 {
			return clamp(widen(Interval{Lo: math.Pow(lo, p), Hi: math.Pow(a.Hi, p)}), 0, math.Inf(1))
		}
		return clamp(widen(Interval{Lo: math.Pow(a.Hi, p), Hi: math.Pow(lo, p)}), 0, math.Inf(1))
	}
	if a.Lo < 0 {
		return Entire()
	}
	// x**y is monotonic in each argument with the other fixed, so the
	// extremes over the box sit on its corners.
	corners := [4]float64{
		math.Pow(a.Lo, b.Lo), math.Pow(a.Lo, b.Hi),
		math.Pow(a.Hi, b.Lo), math.Pow(a.Hi, b.Hi),
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		if math.IsNaN(c) {
			return Entire()
		}
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return clamp(widen(Interval{Lo: lo, Hi: hi}), 0, math.Inf(1))
}

// powIntegral bounds a**p for an integer p through math.Pow. Odd powers
// are increasing over the whole line and even powers are even functions,
// so the bound comes from |a|.
func powIntegral(a Interval, p float64) Interval {
	if p == 0 {
		return Point(1)
	}
	if p < 0 {
		return widen(Div(Point(1), powIntegral(a, -p)))
	}
	if math.Mod(p, 2) != 0 {
		return widen(Interval{Lo: math.Pow(a.Lo, p), Hi: math.Pow(a.Hi, p)})
	}
	m := Abs(a)
	return clamp(widen(Interval{Lo: math.Pow(m.Lo, p), Hi: math.Pow(m.Hi, p)}), 0, math.Inf(1))
}

// Sqrt returns the square root bound. A negative-only argument is
// Undefined; the negative part of a straddling argument is clamped to 0.
func Sqrt(a Interval) Interval {
	if a.undef || a.Hi < 0 {
		return Undefined()
	}
	return Interval{Lo: math.Sqrt(math.Max(a.Lo, 0)), Hi: math.Sqrt(a.Hi)}
}

// Exp returns e**a.
func Exp(a Interval) Interval {
	if a.undef {
		return a
	}
	return clamp(widen(Interval{Lo: math.Exp(a.Lo), Hi: math.Exp(a.Hi)}), 0, math.Inf(1))
}

// Log returns the natural logarithm bound. Arguments with no positive
// part are Undefined; a straddling argument has lower bound -inf.
func Log(a Interval) Interval {
	if a.undef || a.Hi <= 0 {
		return Undefined()
	}
	if a.Lo <= 0 {
		return widen(Interval{Lo: math.Inf(-1), Hi: math.Log(a.Hi)})
	}
	return widen(Interval{Lo: math.Log(a.Lo), Hi: math.Log(a.Hi)})
}

// Atan returns the arctangent bound.
func Atan(a Interval) Interval {
	if a.undef {
		return a
	}
	return widen(Interval{Lo: math.Atan(a.Lo), Hi: math.Atan(a.Hi)})
}

// hits reports whether phase + k*period lies in [lo, hi] for some
// integer k. The test errs towards true, which only loosens the bound.
func hits(lo, hi, phase, period float64) bool {
	slack := 1e-9 * math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
	k := math.Ceil((lo - slack - phase) / period)
	return phase+k*period <= hi+slack
}

// periodic bounds a 2pi-periodic function with range [-1, 1] whose
// maxima lie at maxAt + 2k*pi and minima at minAt + 2k*pi. Between
// extrema the function is monotonic, so the endpoint values bound it.
func periodic(a Interval, fn func(float64) float64, maxAt, minAt float64) Interval {
	if a.undef {
		return a
	}
	if math.IsInf(a.Lo, 0) || math.IsInf(a.Hi, 0) || a.Hi-a.Lo >= twoPi {
		return Interval{Lo: -1, Hi: 1}
	}
	fl, fh := fn(a.Lo), fn(a.Hi)
	out := Interval{Lo: math.Min(fl, fh), Hi: math.Max(fl, fh)}
	out = widen(out)
	if hits(a.Lo, a.Hi, maxAt, twoPi) {
		out.Hi = 1
	}
	if hits(a.Lo, a.Hi, minAt, twoPi) {
		out.Lo = -1
	}
	return clamp(out, -1, 1)
}

// Sin returns the sine bound. Intervals wider than a full period map to
// [-1, 1].
func Sin(a Interval) Interval {
	return periodic(a, math.Sin, math.Pi/2, -math.Pi/2)
}

// Cos returns the cosine bound. Intervals wider than a full period map
// to [-1, 1].
func Cos(a Interval) Interval {
	return periodic(a, math.Cos, 0, math.Pi)
}

// Tan returns the tangent bound, or Entire when a pole lies inside.
func Tan(a Interval) Interval {
	if a.undef {
		return a
	}
	if math.IsInf(a.Lo, 0) || math.IsInf(a.Hi, 0) || a.Hi-a.Lo >= math.Pi {
		return Entire()
	}
	if hits(a.Lo, a.Hi, math.Pi/2, math.Pi) {
		return Entire()
	}
	return widen(Interval{Lo: math.Tan(a.Lo), Hi: math.Tan(a.Hi)})
}
