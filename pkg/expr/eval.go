package expr

import (
	"fmt"
	"math"

	"github.com/philipparndt/gosurf/pkg/interval"
)

// maxIntExponent bounds the exponents evaluated by repeated squaring.
const maxIntExponent = 1 << 16

// Bindings holds the interval bound of each coordinate variable,
// indexed by Var.
type Bindings [3]interval.Interval

// Bind returns bindings for x, y and z.
func Bind(x, y, z interval.Interval) Bindings {
	return Bindings{X: x, Y: y, Z: z}
}

// EvalInterval returns an interval containing every value n takes for
// points inside env. Domain violations produce interval.Undefined rather
// than an error.
func EvalInterval(n Node, env Bindings) interval.Interval {
	switch n := n.(type) {
	case Constant:
		return interval.Point(n.Value)
	case Variable:
		return env[n.Name]
	case UnaryOp:
		return interval.Neg(EvalInterval(n.Operand, env))
	case BinaryOp:
		l := EvalInterval(n.Left, env)
		r := EvalInterval(n.Right, env)
		switch n.Op {
		case OpAdd:
			return interval.Add(l, r)
		case OpSub:
			return interval.Sub(l, r)
		case OpMul:
			return interval.Mul(l, r)
		case OpDiv:
			return interval.Div(l, r)
		case OpPow:
			return powInterval(l, r)
		}
		panic(fmt.Sprintf("expr: unknown binary operator %v", n.Op))
	case Call:
		return callInterval(n, env)
	}
	panic(fmt.Sprintf("expr: unknown node %T", n))
}

func powInterval(base, exp interval.Interval) interval.Interval {
	if k, ok := integerExponent(exp.Lo); ok && !exp.IsUndefined() && exp.Lo == exp.Hi {
		return interval.PowInt(base, k)
	}
	return interval.Pow(base, exp)
}

func callInterval(c Call, env Bindings) interval.Interval {
	a := EvalInterval(c.Args[0], env)
	switch c.Func {
	case FuncSqrt:
		return interval.Sqrt(a)
	case FuncAbs:
		return interval.Abs(a)
	case FuncSin:
		return interval.Sin(a)
	case FuncCos:
		return interval.Cos(a)
	case FuncTan:
		return interval.Tan(a)
	case FuncExp:
		return interval.Exp(a)
	case FuncLog:
		return interval.Log(a)
	case FuncAtan:
		return interval.Atan(a)
	case FuncPow:
		return powInterval(a, EvalInterval(c.Args[1], env))
	case FuncMin:
		for _, arg := range c.Args[1:] {
			a = interval.Min(a, EvalInterval(arg, env))
		}
		return a
	case FuncMax:
		for _, arg := range c.Args[1:] {
			a = interval.Max(a, EvalInterval(arg, env))
		}
		return a
	}
	panic(fmt.Sprintf("expr: unknown function %v", c.Func))
}

// Eval returns the value of n at the point (x, y, z). Domain violations
// give NaN or an infinity, as the math package does.
func Eval(n Node, x, y, z float64) float64 {
	p := [3]float64{X: x, Y: y, Z: z}
	return eval(n, &p)
}

func eval(n Node, p *[3]float64) float64 {
	switch n := n.(type) {
	case Constant:
		return n.Value
	case Variable:
		return p[n.Name]
	case UnaryOp:
		return -eval(n.Operand, p)
	case BinaryOp:
		l, r := eval(n.Left, p), eval(n.Right, p)
		switch n.Op {
		case OpAdd:
			return l + r
		case OpSub:
			return l - r
		case OpMul:
			return l * r
		case OpDiv:
			return l / r
		case OpPow:
			return pow(l, r)
		}
		panic(fmt.Sprintf("expr: unknown binary operator %v", n.Op))
	case Call:
		return call(n, p)
	}
	panic(fmt.Sprintf("expr: unknown node %T", n))
}

func pow(x, y float64) float64 {
	if k, ok := integerExponent(y); ok {
		return interval.IntPower(x, k)
	}
	return math.Pow(x, y)
}

func call(c Call, p *[3]float64) float64 {
	a := eval(c.Args[0], p)
	switch c.Func {
	case FuncSqrt:
		return math.Sqrt(a)
	case FuncAbs:
		return math.Abs(a)
	case FuncSin:
		return math.Sin(a)
	case FuncCos:
		return math.Cos(a)
	case FuncTan:
		return math.Tan(a)
	case FuncExp:
		return math.Exp(a)
	case FuncLog:
		return math.Log(a)
	case FuncAtan:
		return math.Atan(a)
	case FuncPow:
		return pow(a, eval(c.Args[1], p))
	case FuncMin:
		for _, arg := range c.Args[1:] {
			a = math.Min(a, eval(arg, p))
		}
		return a
	case FuncMax:
		for _, arg := range c.Args[1:] {
			a = math.Max(a, eval(arg, p))
		}
		return a
	}
	panic(fmt.Sprintf("expr: unknown function %v", c.Func))
}

func integerExponent(y float64) (int, bool) {
	if y != math.Trunc(y) || math.Abs(y) > maxIntExponent {
		return 0, false
	}
	return int(y), true
}
