package sink

import (
	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/render"
)

// RenderPDF renders strokes as PDF via SVG conversion. Animation options
// are ignored.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(strokes []glyph.Stroke, opts ...SVGOption) ([]byte, error) {
	opts = append(opts[:len(opts):len(opts)], WithAnimation(0))
	return render.ToPDF(RenderSVG(strokes, opts...))
}
