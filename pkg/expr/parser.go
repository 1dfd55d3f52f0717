package expr

import (
	"fmt"
)

// ParseError reports malformed expression text. Pos is the 0-based rune
// offset of the offending token; errors at the end of the input point
// one past the last character.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// Column returns the 1-based column of the error, for display.
func (e *ParseError) Column() int {
	return e.Pos + 1
}

// Parse turns src into an expression tree. Operator precedence, lowest
// first: + and -, then * and /, then unary minus, then ^ (or **), which
// is right associative. A failed parse returns a *ParseError and no tree.
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return nil, p.errorf(t, "unbalanced ')'")
		}
		return nil, p.errorf(t, "unexpected %s", t.describe())
	}
	return n, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed expressions.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

type parser struct {
	toks []token
	i    int
	// open holds the positions of '(' tokens not yet closed.
	open []int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) *ParseError {
	return &ParseError{Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op := OpAdd
		if t.kind == tokMinus {
			op = OpSub
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokStar && t.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := OpMul
		if t.kind == tokSlash {
			op = OpDiv
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: OpNeg, Operand: operand}, nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower binds tighter than unary minus on its left (-x^2 is
// -(x^2)) but accepts a signed exponent on its right (2^-1).
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return BinaryOp{Op: OpPow, Left: base, Right: exp}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Constant{Value: t.num}, nil
	case tokIdent:
		return p.parseIdent(t)
	case tokLParen:
		p.open = append(p.open, t.pos)
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.closeParen(); err != nil {
			return nil, err
		}
		return n, nil
	case tokEOF:
		return nil, p.errorf(t, "%s", p.missingOperand("unexpected end of input"))
	case tokRParen:
		if len(p.open) == 0 {
			return nil, p.errorf(t, "unbalanced ')'")
		}
		return nil, p.errorf(t, "missing operand before ')'")
	default:
		return nil, p.errorf(t, "missing operand before %s", t.describe())
	}
}

// missingOperand decorates an end-of-input message with the innermost
// unclosed parenthesis, if any.
func (p *parser) missingOperand(msg string) string {
	if n := len(p.open); n > 0 {
		return fmt.Sprintf("%s (unbalanced '(' at position %d)", msg, p.open[n-1])
	}
	return msg
}

func (p *parser) closeParen() error {
	t := p.next()
	if t.kind != tokRParen {
		if t.kind == tokEOF {
			return p.errorf(t, "unbalanced '(' at position %d: expected ')'", p.open[len(p.open)-1])
		}
		return p.errorf(t, "expected ')' but found %s", t.describe())
	}
	p.open = p.open[:len(p.open)-1]
	return nil
}

func (p *parser) parseIdent(t token) (Node, error) {
	if v, ok := variables[t.text]; ok {
		if p.peek().kind == tokLParen {
			return nil, p.errorf(t, "%q is a variable, not a function", t.text)
		}
		return Variable{Name: v}, nil
	}
	if c, ok := constants[t.text]; ok {
		if p.peek().kind == tokLParen {
			return nil, p.errorf(t, "%q is a constant, not a function", t.text)
		}
		return Constant{Value: c}, nil
	}
	f, ok := funcsByName[t.text]
	if !ok {
		return nil, p.errorf(t, "unknown identifier %q", t.text)
	}
	if p.peek().kind != tokLParen {
		return nil, p.errorf(t, "function %q must be called with arguments", t.text)
	}
	p.open = append(p.open, p.next().pos)
	var args []Node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if err := p.closeParen(); err != nil {
		return nil, err
	}
	info := funcTable[f]
	if len(args) < info.minArgs || (info.maxArgs >= 0 && len(args) > info.maxArgs) {
		return nil, p.errorf(t, "function %q takes %s, got %d", t.text, arity(info), len(args))
	}
	return Call{Func: f, Args: args}, nil
}

func arity(info funcInfo) string {
	switch {
	case info.maxArgs < 0:
		return fmt.Sprintf("at least %d arguments", info.minArgs)
	case info.minArgs == 1 && info.maxArgs == 1:
		return "1 argument"
	default:
		return fmt.Sprintf("%d arguments", info.minArgs)
	}
}
