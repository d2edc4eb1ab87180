// Package expr defines the numeral-encoding expression trees that cistercian
// turns into glyph drawings.
//
// # Overview
//
// An expression is one of three node kinds:
//
//   - [Orig]: an unevaluated numeral index, written n'
//   - [Const]: one of the primitive digit glyphs, written as a bare integer
//   - [Bin]: an addition, multiplication or exponentiation of two expressions
//
// Only Orig(0), Orig(1), Const(0..18) and Bin nodes over those can be drawn;
// the glyph builder rejects everything else. This package does not enforce
// that domain so that malformed input can be reported by the builder with
// the offending node.
//
// # Text Notation
//
// [Parse] reads and [Expr.String] writes a small infix notation:
//
//	0'            Orig(0)
//	7             Const(7)
//	3 * 4         Mul(Const(3), Const(4))
//	2^0 + 1'      Add(Pow(Const(2), Const(0)), Orig(1))
//
// Exponentiation binds tightest and is right-associative; multiplication and
// addition are left-associative. Parentheses group as usual.
//
// Normalizing an arbitrary integer into its canonical expression is outside
// the scope of this package: callers supply already-built trees.
package expr
