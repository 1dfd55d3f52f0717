package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"2 ** 3", "(2 ^ 3)"},
		{"-x^2", "(-(x ^ 2))"},
		{"2^-1", "(2 ^ (-1))"},
		{"--x", "(-(-x))"},
		{"+x", "x"},
		{"(x + y) * z", "((x + y) * z)"},
		{"x*x+y*y+z*z-4", "((((x * x) + (y * y)) + (z * z)) - 4)"},
		{"sqrt(x*x + y*y) - 1", "(sqrt(((x * x) + (y * y))) - 1)"},
		{"min(x, y, z)", "min(x, y, z)"},
		{"pow(x, 2)", "pow(x, 2)"},
		{"ln(x)", "log(x)"},
		{"2.5e-1 * .5", "(0.25 * 0.5)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParseTree(t *testing.T) {
	n, err := Parse("x - 100")
	require.NoError(t, err)
	assert.Equal(t, BinaryOp{
		Op:    OpSub,
		Left:  Variable{Name: X},
		Right: Constant{Value: 100},
	}, n)
}

func TestParseConstants(t *testing.T) {
	n, err := Parse("pi + e")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi+math.E, Eval(n, 0, 0, 0), 1e-15)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src     string
		pos     int
		contain string
	}{
		{"x + (", 5, "unbalanced '('"},
		{"(x + 1", 6, "unbalanced '('"},
		{"x + 1)", 5, "unbalanced ')'"},
		{"x +", 3, "end of input"},
		{"* x", 0, "missing operand"},
		{"x + * y", 4, "missing operand"},
		{"x $ y", 2, "unexpected character"},
		{"foo(x)", 0, "unknown identifier"},
		{"w + 1", 0, "unknown identifier"},
		{"sqrt x", 0, "must be called"},
		{"sqrt(x, y)", 0, "takes 1 argument"},
		{"min(x)", 0, "at least 2 arguments"},
		{"x(1)", 0, "not a function"},
		{"x y", 2, "unexpected identifier"},
		{"", 0, "end of input"},
		{"sin(x", 5, "unbalanced '('"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			n, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, n)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.pos, pe.Pos)
			assert.Contains(t, pe.Msg, tt.contain)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("x + (")
	require.Error(t, err)
	assert.Equal(t, "parse error at position 5: unexpected end of input (unbalanced '(' at position 4)", err.Error())
}

func TestParsePositionsCountRunes(t *testing.T) {
	_, err := Parse("x·y")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Pos)
	assert.Equal(t, 2, pe.Column())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("(") })
	assert.NotPanics(t, func() { MustParse("x") })
}

func TestVars(t *testing.T) {
	assert.Equal(t, [3]bool{true, false, true}, Vars(MustParse("x + sin(z)")))
	assert.Equal(t, [3]bool{}, Vars(MustParse("1 + pi")))
}

func TestFuncNamesSorted(t *testing.T) {
	names := FuncNames()
	assert.Contains(t, names, "sqrt")
	assert.Contains(t, names, "ln")
	assert.IsIncreasing(t, names)
}
