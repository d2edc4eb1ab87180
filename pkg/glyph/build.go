package glyph

import (
	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/expr"
)

// unitCircle is the glyph for Orig(0): a circle inscribed in the unit square.
var unitCircle = Circle{Center: Pt(0.5, 0.5), Radius: 0.5}

// FromExpression maps an expression to its shape tree.
//
// The supported expressions are Orig(0), Orig(1), Const(0..18) and Bin
// nodes whose operands are themselves supported. Anything else fails with
// an UNSUPPORTED_EXPRESSION error and no shape; there are no partial
// results.
//
// Exponentiation draws the exponent on top of the base. A divider is forced
// between them when either operand is the bare stem Const(0), since two
// stems would otherwise merge into one line.
func FromExpression(e expr.Expr) (Draw, error) {
	switch e := e.(type) {
	case expr.Orig:
		switch e.N {
		case 0:
			return unitCircle, nil
		case 1:
			return Seq(unitCircle, Line{From: Pt(0.5, 0), To: Pt(0.5, 0.5)}), nil
		}
	case expr.Const:
		if e.K >= 0 && e.K <= MaxDigit {
			return digit(e.K), nil
		}
	case expr.Bin:
		left, err := FromExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromExpression(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case expr.OpPow:
			return MirrorVertical{
				SeparatorForced: isBareStem(e.Left) || isBareStem(e.Right),
				Top:             right,
				Bottom:          left,
			}, nil
		case expr.OpMul:
			return Chain{Left: left, Right: right}, nil
		case expr.OpAdd:
			return Quote{Left: left, Right: right}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupportedExpression, "no glyph for expression %v", e)
}

func isBareStem(e expr.Expr) bool {
	c, ok := e.(expr.Const)
	return ok && c.K == 0
}
