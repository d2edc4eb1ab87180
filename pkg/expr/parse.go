package expr

import (
	"strconv"

	"github.com/algexeno/cistercian/pkg/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokPrime
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			toks = append(toks, token{tokInt, src[start:i], start})
		case c == '\'':
			toks = append(toks, token{tokPrime, "'", i})
			i++
		case c == '+' || c == '*' || c == '^':
			toks = append(toks, token{tokOp, string(c), i})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		default:
			return nil, syntaxError(i, "unexpected character %q", c)
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

func syntaxError(pos int, format string, args ...any) error {
	e := errors.New(errors.ErrCodeInvalidExpression, format, args...)
	e.Message = "offset " + strconv.Itoa(pos) + ": " + e.Message
	return e
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// Parse reads an expression in text notation. Syntax errors carry the
// INVALID_EXPRESSION code and the byte offset of the problem.
func Parse(src string) (Expr, error) {
	if err := errors.ValidateExpressionText(src); err != nil {
		return nil, err
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxError(t.pos, "unexpected %q", t.text)
	}
	return e, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level fixtures.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// bindingPower returns the left binding power of an operator token and
// whether it is right-associative.
func bindingPower(op string) (Op, int, bool) {
	switch op {
	case "+":
		return OpAdd, precAdd, false
	case "*":
		return OpMul, precMul, false
	default:
		return OpPow, precPow, true
	}
}

func (p *parser) expr(minBP int) (Expr, error) {
	lhs, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp {
			return lhs, nil
		}
		op, bp, rightAssoc := bindingPower(t.text)
		if bp <= minBP {
			return lhs, nil
		}
		p.next()
		next := bp
		if rightAssoc {
			next = bp - 1
		}
		rhs, err := p.expr(next)
		if err != nil {
			return nil, err
		}
		lhs = Bin{Op: op, Left: lhs, Right: rhs}
	}
}

func (p *parser) atom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokInt:
		n, err := strconv.Atoi(t.text)
		if err != nil {
			return nil, syntaxError(t.pos, "number %s out of range", t.text)
		}
		if p.peek().kind == tokPrime {
			p.next()
			return Orig{N: n}, nil
		}
		return Const{K: n}, nil
	case tokLParen:
		e, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, syntaxError(c.pos, "expected ')'")
		}
		return e, nil
	case tokEOF:
		return nil, syntaxError(t.pos, "unexpected end of expression")
	default:
		return nil, syntaxError(t.pos, "unexpected %q", t.text)
	}
}
