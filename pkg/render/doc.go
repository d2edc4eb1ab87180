// Package render turns flattened glyphs into files.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG document using the external
// rsvg-convert tool (from librsvg). The stroke sinks use ToPDF for PDF output
// and the shape-tree diagrams use both.
//
//	svg := sink.RenderSVG(strokes)
//	pdf, err := render.ToPDF(svg)
//
// # Stroke Sinks
//
// The [sink] subpackage renders stroke lists as SVG, PNG, animated GIF, PDF
// and JSON. PNG and GIF are rasterized in-process and need no external tools.
//
// # Shape-Tree Diagrams
//
// The [treeview] subpackage draws the shape tree behind a glyph as a
// Graphviz diagram, which helps when debugging how an expression was
// composed.
//
//	dot := treeview.ToDOT(shape)
//	svg, err := treeview.RenderSVG(ctx, dot)
//
// [sink]: github.com/algexeno/cistercian/pkg/render/sink
// [treeview]: github.com/algexeno/cistercian/pkg/render/treeview
package render
