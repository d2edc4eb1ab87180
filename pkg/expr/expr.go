package expr

import (
	"strconv"
	"strings"
)

// Op is a binary operator.
type Op int

const (
	OpAdd Op = iota
	OpMul
	OpPow
)

// String returns the operator symbol.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpPow:
		return "^"
	default:
		return "Op(" + strconv.Itoa(int(o)) + ")"
	}
}

// Binding strength of each node kind in the text notation. Atoms never need
// parentheses.
const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

func (o Op) precedence() int {
	switch o {
	case OpAdd:
		return precAdd
	case OpMul:
		return precMul
	default:
		return precPow
	}
}

// Expr is a node of an expression tree. The set of implementations is closed:
// [Orig], [Const] and [Bin].
type Expr interface {
	// String returns the node in text notation with minimal parentheses.
	String() string

	isExpr()
}

// Orig is an unevaluated numeral index.
type Orig struct {
	N int
}

// Const is a primitive digit glyph index.
type Const struct {
	K int
}

// Bin applies Op to Left and Right.
type Bin struct {
	Op          Op
	Left, Right Expr
}

func (Orig) isExpr()  {}
func (Const) isExpr() {}
func (Bin) isExpr()   {}

// O returns Orig(n).
func O(n int) Orig { return Orig{N: n} }

// C returns Const(k).
func C(k int) Const { return Const{K: k} }

// Add returns a + b.
func Add(a, b Expr) Bin { return Bin{Op: OpAdd, Left: a, Right: b} }

// Mul returns a * b.
func Mul(a, b Expr) Bin { return Bin{Op: OpMul, Left: a, Right: b} }

// Pow returns a ^ b.
func Pow(a, b Expr) Bin { return Bin{Op: OpPow, Left: a, Right: b} }

func (o Orig) String() string  { return strconv.Itoa(o.N) + "'" }
func (c Const) String() string { return strconv.Itoa(c.K) }

func (b Bin) String() string {
	var sb strings.Builder
	write(&sb, b, 0)
	return sb.String()
}

// write appends e to sb, parenthesizing it when it binds looser than min.
func write(sb *strings.Builder, e Expr, min int) {
	b, ok := e.(Bin)
	if !ok {
		if e == nil {
			sb.WriteString("<nil>")
			return
		}
		sb.WriteString(e.String())
		return
	}

	p := b.Op.precedence()
	if p < min {
		sb.WriteByte('(')
		defer sb.WriteByte(')')
	}

	left, right := p, p+1
	if b.Op == OpPow {
		left, right = p+1, p
	}
	write(sb, b.Left, left)
	if b.Op == OpPow {
		sb.WriteString("^")
	} else {
		sb.WriteString(" " + b.Op.String() + " ")
	}
	write(sb, b.Right, right)
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func Depth(e Expr) int {
	b, ok := e.(Bin)
	if !ok {
		return 1
	}
	return 1 + max(Depth(b.Left), Depth(b.Right))
}

// Interesting reports whether e is free of additions. Products and powers
// are interesting when both operands are.
func Interesting(e Expr) bool {
	switch e := e.(type) {
	case Orig, Const:
		return true
	case Bin:
		if e.Op == OpAdd {
			return false
		}
		return Interesting(e.Left) && Interesting(e.Right)
	default:
		return false
	}
}
