package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/playback"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	frame  Frame
	ink    color.Color
	paper  color.Color
	budget float64 // negative draws everything
}

// WithPNGFrame sets scale, margin and line width.
func WithPNGFrame(f Frame) PNGOption { return func(r *pngRenderer) { r.frame = f } }

// WithPNGColors sets the stroke and background colors.
func WithPNGColors(ink, paper color.Color) PNGOption {
	return func(r *pngRenderer) { r.ink, r.paper = ink, paper }
}

// WithBudget draws only what is visible after budget time units of
// playback, as a still of the animation.
func WithBudget(budget float64) PNGOption { return func(r *pngRenderer) { r.budget = budget } }

// RenderPNG rasterizes strokes into a PNG image.
func RenderPNG(strokes []glyph.Stroke, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{frame: DefaultFrame(), ink: color.Black, paper: color.White, budget: -1}
	for _, opt := range opts {
		opt(&r)
	}

	c := newCanvas(strokes, r.frame)
	if err := c.checkRaster(1); err != nil {
		return nil, err
	}
	ras := newRasterizer(c, r.ink, r.paper)
	if r.budget < 0 {
		ras.drawStrokes(strokes)
	} else {
		ras.drawSegments(playback.Scrub(strokes, r.budget))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, ras.img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rasterizer strokes lines onto an RGBA image with rasterx.
type rasterizer struct {
	canvas canvas
	img    *image.RGBA
	paper  image.Image
	dasher *rasterx.Dasher
}

func newRasterizer(c canvas, ink, paper color.Color) *rasterizer {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	scanner := rasterx.NewScannerGV(c.width, c.height, img, img.Bounds())
	scanner.SetColor(ink)

	dasher := rasterx.NewDasher(c.width, c.height, scanner)
	width := fixed.Int26_6(math.Round(c.frame.LineWidth * 64))
	dasher.SetStroke(width, 4*64, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)

	r := &rasterizer{canvas: c, img: img, paper: image.NewUniform(paper), dasher: dasher}
	r.clear()
	return r
}

// clear paints the whole image with the background color.
func (r *rasterizer) clear() {
	draw.Draw(r.img, r.img.Bounds(), r.paper, image.Point{}, draw.Src)
}

func (r *rasterizer) drawStrokes(strokes []glyph.Stroke) {
	for _, s := range strokes {
		r.line(s.From, s.To)
	}
	r.flush()
}

func (r *rasterizer) drawSegments(segs []playback.Segment) {
	for _, s := range segs {
		r.line(s.From, s.To)
	}
	r.flush()
}

func (r *rasterizer) line(from, to glyph.Point) {
	r.dasher.Start(r.fixed(from))
	r.dasher.Line(r.fixed(to))
	r.dasher.Stop(false)
}

func (r *rasterizer) fixed(p glyph.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(r.canvas.project(p))
}

// flush rasterizes the pending path and starts a new one.
func (r *rasterizer) flush() {
	r.dasher.Draw()
	r.dasher.Clear()
}
