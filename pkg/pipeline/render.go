package pipeline

import (
	"fmt"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/render/sink"
)

// Render writes strokes in every format listed in opts.Formats. title is
// the expression text embedded in SVG, PDF and JSON output.
func Render(strokes []glyph.Stroke, extent float64, title string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	frame := opts.Frame()

	for _, format := range opts.Formats {
		if opts.Progress != nil {
			opts.Progress(format)
		}
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			svgOpts := []sink.SVGOption{sink.WithSVGFrame(frame), sink.WithTitle(title)}
			if opts.Animate {
				svgOpts = append(svgOpts, sink.WithAnimation(opts.Speed))
			}
			data = sink.RenderSVG(strokes, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(strokes, sink.WithPNGFrame(frame))
		case FormatGIF:
			data, err = sink.RenderGIF(strokes,
				sink.WithGIFFrame(frame),
				sink.WithFPS(opts.FPS),
				sink.WithSpeed(opts.Speed))
		case FormatPDF:
			data, err = sink.RenderPDF(strokes, sink.WithSVGFrame(frame), sink.WithTitle(title))
		case FormatJSON:
			data, err = sink.RenderJSON(strokes, extent,
				sink.WithJSONExpression(title),
				sink.WithJSONLayout(opts.Mode(), opts.Settings()))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
