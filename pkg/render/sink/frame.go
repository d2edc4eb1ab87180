package sink

import (
	"math"

	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/glyph"
)

// Defaults match the interactive viewer: 80 px per glyph unit and a 20 px
// border.
const (
	DefaultScale     = 80.0
	DefaultMargin    = 20.0
	DefaultLineWidth = 2.0
)

// Raster size limits. Images and animations beyond them are refused.
const (
	MaxCanvasPixels    = 1 << 24
	MaxAnimationPixels = 1 << 28
)

// Frame maps glyph space onto a pixel canvas.
type Frame struct {
	Scale     float64 `json:"scale" toml:"scale"`
	Margin    float64 `json:"margin" toml:"margin"`
	LineWidth float64 `json:"line_width" toml:"line_width"`
}

// DefaultFrame returns the frame used when nothing is configured.
func DefaultFrame() Frame {
	return Frame{Scale: DefaultScale, Margin: DefaultMargin, LineWidth: DefaultLineWidth}
}

// withDefaults fills unset fields from [DefaultFrame]. A zero margin is
// kept unless the whole frame is zero.
func (f Frame) withDefaults() Frame {
	d := DefaultFrame()
	if f == (Frame{}) {
		return d
	}
	if f.Scale <= 0 {
		f.Scale = d.Scale
	}
	if f.Margin < 0 {
		f.Margin = d.Margin
	}
	if f.LineWidth <= 0 {
		f.LineWidth = d.LineWidth
	}
	return f
}

// Rect is an axis-aligned box in glyph space.
type Rect struct {
	Min glyph.Point `json:"min"`
	Max glyph.Point `json:"max"`
}

// unit is the square holding a single glyph.
var unit = Rect{Min: glyph.Pt(0, 0), Max: glyph.Pt(1, 1)}

// Width returns the horizontal size of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical size of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Union returns the smallest box containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: glyph.Pt(math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)),
		Max: glyph.Pt(math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)),
	}
}

// Bounds returns the bounding box of all stroke endpoints. An empty list
// has the zero Rect.
func Bounds(strokes []glyph.Stroke) Rect {
	if len(strokes) == 0 {
		return Rect{}
	}
	r := Rect{Min: strokes[0].From, Max: strokes[0].From}
	for _, s := range strokes {
		for _, p := range [2]glyph.Point{s.From, s.To} {
			r.Min.X = math.Min(r.Min.X, p.X)
			r.Min.Y = math.Min(r.Min.Y, p.Y)
			r.Max.X = math.Max(r.Max.X, p.X)
			r.Max.Y = math.Max(r.Max.Y, p.Y)
		}
	}
	return r
}

// canvas is a frame fitted to a particular drawing.
type canvas struct {
	frame  Frame
	origin glyph.Point
	width  int
	height int
}

func newCanvas(strokes []glyph.Stroke, f Frame) canvas {
	f = f.withDefaults()
	b := unit
	if len(strokes) > 0 {
		b = b.Union(Bounds(strokes))
	}
	return canvas{
		frame:  f,
		origin: b.Min,
		width:  int(math.Ceil(b.Width()*f.Scale + 2*f.Margin)),
		height: int(math.Ceil(b.Height()*f.Scale + 2*f.Margin)),
	}
}

func (c canvas) pixels() int { return c.width * c.height }

// checkRaster refuses canvases whose pixel count over the given number of
// frames would exceed the raster limits.
func (c canvas) checkRaster(frames int) error {
	if c.width <= 0 || c.height <= 0 || c.width > MaxCanvasPixels || c.height > MaxCanvasPixels ||
		c.pixels() > MaxCanvasPixels {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas %dx%d exceeds %d pixels; lower the scale", c.width, c.height, MaxCanvasPixels)
	}
	if c.pixels()*frames > MaxAnimationPixels {
		return errors.New(errors.ErrCodeInvalidConfig, "animation of %d frames at %dx%d exceeds %d pixels; lower the scale or raise the speed", frames, c.width, c.height, MaxAnimationPixels)
	}
	return nil
}

// project returns the pixel position of p.
func (c canvas) project(p glyph.Point) (x, y float64) {
	return (p.X-c.origin.X)*c.frame.Scale + c.frame.Margin,
		(p.Y-c.origin.Y)*c.frame.Scale + c.frame.Margin
}
