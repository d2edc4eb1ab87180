// Package pkg provides the core libraries for drawing Algexeno numerals as
// Cistercian-style glyphs.
//
// # Overview
//
// An expression over the Algexeno numerals is turned into a shape tree,
// then into an ordered list of weighted strokes that can be rendered or
// played back like handwriting.
//
// # Architecture
//
// The typical data flow:
//
//	expression text
//	         ↓
//	    [expr] package (parse into an expression tree)
//	         ↓
//	    [glyph] package (build the shape tree, flatten to strokes)
//	         ↓
//	    [render/sink] package (SVG, PNG, GIF, PDF, JSON)
//
// [pipeline] runs these stages with caching through [cache]; [playback]
// schedules strokes over time; [render/treeview] draws the shape tree
// itself with Graphviz.
//
// # Quick Start
//
//	e, err := expr.Parse("(2 * 3)^1' + 0'")
//	if err != nil {
//	    return err
//	}
//	d, err := glyph.FromExpression(e)
//	if err != nil {
//	    return err
//	}
//	strokes, extent := glyph.Strokes(d, glyph.Absolute, glyph.DefaultSettings())
//	svg := sink.RenderSVG(strokes)
package pkg
