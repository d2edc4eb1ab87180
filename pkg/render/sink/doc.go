// Package sink provides output format renderers for flattened glyphs.
//
// # Overview
//
// A "sink" turns a stroke list produced by [glyph.Strokes] into a final
// output format:
//
//   - SVG: one line element per stroke, optionally animated with CSS
//   - PNG: anti-aliased raster image, rasterized in-process
//   - GIF: animated handwriting following [playback] timing
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: strokes, timing and layout data for external tools
//
// All image sinks share a [Frame]: glyph units are scaled by Frame.Scale
// pixels and surrounded by Frame.Margin pixels. The canvas always covers at
// least one unit glyph so a lone stem still produces a square image.
//
//	strokes, extent := glyph.Strokes(shape, glyph.Absolute, glyph.DefaultSettings())
//	svg := sink.RenderSVG(strokes, sink.WithAnimation(playback.DefaultSpeed))
//	png, err := sink.RenderPNG(strokes, sink.WithPNGFrame(sink.Frame{Scale: 160, Margin: 20, LineWidth: 3}))
//	doc, err := sink.RenderJSON(strokes, extent, sink.WithJSONExpression("2 * 3"))
//
// [glyph.Strokes]: github.com/algexeno/cistercian/pkg/glyph.Strokes
// [playback]: github.com/algexeno/cistercian/pkg/playback
package sink
