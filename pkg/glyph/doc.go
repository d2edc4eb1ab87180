// Package glyph turns numeral expressions into Cistercian-style glyph
// drawings and flattens those drawings into ordered, time-weighted strokes.
//
// # Pipeline
//
// Rendering happens in two stages:
//
//  1. [FromExpression] maps an [expr.Expr] to a [Draw] shape tree. Digits
//     become a vertical stem with branch lines taken from a fixed table;
//     exponentiation mirrors the exponent above the base, multiplication
//     chains glyphs through a small circle and addition quotes them between
//     two ticks.
//  2. [AppendStrokes] walks the shape tree depth-first, appending one
//     [Stroke] per line segment and returning a layout extent that parent
//     nodes use to position their children without overlap.
//
// All coordinates live in a unit square with y growing downwards. In
// [Absolute] mode chains and quotes grow to the right of that square and
// report their true width as extent; in [Scaled] mode they are squeezed back
// into the unit square so the result can be nested as a single sub-glyph.
//
// # Stroke Order
//
// Strokes are emitted left to right in drawing order. The order and the
// per-stroke weights are what the playback layer uses to simulate
// handwriting, so they are part of the contract, not an implementation
// detail.
//
// # Example
//
//	shape, err := glyph.FromExpression(expr.Mul(expr.C(0), expr.C(0)))
//	if err != nil {
//	    return err
//	}
//	strokes, extent := glyph.Strokes(shape, glyph.Absolute, glyph.DefaultSettings())
//
// [expr.Expr]: github.com/algexeno/cistercian/pkg/expr.Expr
package glyph
