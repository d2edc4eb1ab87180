package sink

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/playback"
)

// subpixel is the number of viewBox units per pixel. svgo only writes
// integer coordinates, so the viewBox is scaled up to keep circle vertices
// precise.
const subpixel = 100

const drawKeyframes = `
    @keyframes draw { to { stroke-dashoffset: 0; } }
    line.pen { animation-name: draw; animation-timing-function: linear; animation-fill-mode: forwards; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	frame Frame
	title string
	ink   string
	paper string
	speed float64 // 0 disables animation
}

// WithSVGFrame sets scale, margin and line width.
func WithSVGFrame(f Frame) SVGOption { return func(r *svgRenderer) { r.frame = f } }

// WithTitle adds a title element, usually the expression text.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithColors sets the stroke and background colors as CSS color values.
// An empty paper color leaves the background transparent.
func WithColors(ink, paper string) SVGOption {
	return func(r *svgRenderer) { r.ink, r.paper = ink, paper }
}

// WithAnimation draws the strokes one after another with CSS animations,
// following the timing of [playback.Schedule] at speed time units per
// second.
func WithAnimation(speed float64) SVGOption {
	return func(r *svgRenderer) { r.speed = speed }
}

// RenderSVG renders strokes as a standalone SVG document.
func RenderSVG(strokes []glyph.Stroke, opts ...SVGOption) []byte {
	r := svgRenderer{frame: DefaultFrame(), ink: "black", paper: "white"}
	for _, opt := range opts {
		opt(&r)
	}
	c := newCanvas(strokes, r.frame)

	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Startview(c.width, c.height, 0, 0, c.width*subpixel, c.height*subpixel)
	if r.title != "" {
		doc.Title(r.title)
	}
	if r.speed > 0 {
		doc.Style("text/css", drawKeyframes)
	}
	if r.paper != "" {
		doc.Rect(0, 0, c.width*subpixel, c.height*subpixel, "fill:"+r.paper)
	}

	doc.Gstyle(fmt.Sprintf("stroke:%s;stroke-width:%d;stroke-linecap:round;fill:none",
		r.ink, units(c.frame.LineWidth)))
	var timing []playback.Timing
	if r.speed > 0 {
		timing = playback.Schedule(strokes)
	}
	for i, s := range strokes {
		x1, y1 := c.project(s.From)
		x2, y2 := c.project(s.To)
		if timing == nil || timing[i].Duration == 0 {
			doc.Line(units(x1), units(y1), units(x2), units(y2))
			continue
		}
		length := units(s.Length() * c.frame.Scale)
		doc.Line(units(x1), units(y1), units(x2), units(y2),
			`class="pen"`,
			fmt.Sprintf(`style="stroke-dasharray:%d;stroke-dashoffset:%d;animation-duration:%.3fs;animation-delay:%.3fs"`,
				length, length, timing[i].Duration/r.speed, timing[i].Start/r.speed))
	}
	doc.Gend()
	doc.End()
	return buf.Bytes()
}

// units converts pixels to viewBox units.
func units(px float64) int {
	return int(math.Round(px * subpixel))
}
