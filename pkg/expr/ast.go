// Package expr parses implicit-function formulas over x, y and z and
// evaluates them either at a point or conservatively over a box of
// intervals.
package expr

import (
	"strconv"
	"strings"
)

// Node is an immutable expression tree node. The set of implementations
// is closed: Constant, Variable, UnaryOp, BinaryOp and Call.
type Node interface {
	String() string
	node()
}

// Var identifies one of the three coordinate variables.
type Var int

const (
	X Var = iota
	Y
	Z
)

var varNames = [...]string{X: "x", Y: "y", Z: "z"}

func (v Var) String() string {
	if v < X || v > Z {
		return "Var(" + strconv.Itoa(int(v)) + ")"
	}
	return varNames[v]
}

// Op is a unary or binary operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
	OpNeg Op = '~'
)

func (o Op) String() string {
	if o == OpNeg {
		return "-"
	}
	return string(rune(o))
}

// Constant is a numeric literal or a named constant such as pi.
type Constant struct {
	Value float64
}

// Variable is a reference to x, y or z.
type Variable struct {
	Name Var
}

// UnaryOp applies a prefix operator. Only OpNeg is produced by the parser.
type UnaryOp struct {
	Op      Op
	Operand Node
}

// BinaryOp applies an infix operator.
type BinaryOp struct {
	Op          Op
	Left, Right Node
}

// Call applies a named function.
type Call struct {
	Func Func
	Args []Node
}

func (Constant) node() {}
func (Variable) node() {}
func (UnaryOp) node()  {}
func (BinaryOp) node() {}
func (Call) node()     {}

func (c Constant) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

func (v Variable) String() string {
	return v.Name.String()
}

func (u UnaryOp) String() string {
	return "(" + u.Op.String() + u.Operand.String() + ")"
}

func (b BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Func.String() + "(" + strings.Join(args, ", ") + ")"
}

// Vars reports which coordinate variables occur in n.
func Vars(n Node) [3]bool {
	var used [3]bool
	var visit func(Node)
	visit = func(n Node) {
		switch n := n.(type) {
		case Variable:
			used[n.Name] = true
		case UnaryOp:
			visit(n.Operand)
		case BinaryOp:
			visit(n.Left)
			visit(n.Right)
		case Call:
			for _, a := range n.Args {
				visit(a)
			}
		}
	}
	visit(n)
	return used
}
