// Package treeview draws shape trees as Graphviz diagrams.
//
// Every node of a [glyph.Draw] tree becomes a box labeled with its variant
// and parameters; edges point from a composition to its operands and are
// labeled with the operand's role (top/bottom, left/right). Leaf lines and
// circles are drawn as plain text so the composition structure stands out.
//
//	shape, _ := glyph.FromExpression(expr.MustParse("2 * 3"))
//	dot := treeview.ToDOT(shape, treeview.Options{})
//	svg, err := treeview.RenderSVG(ctx, dot)
//
// [glyph.Draw]: github.com/algexeno/cistercian/pkg/glyph.Draw
package treeview
