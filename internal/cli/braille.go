package cli

import (
	"math"
	"strings"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/playback"
	"github.com/algexeno/cistercian/pkg/render/sink"
)

// brailleBits maps a dot position inside a cell, indexed [y][x], to its bit
// in the Unicode braille block.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleCanvas is a monochrome bitmap drawn with braille characters. Each
// terminal cell holds 2×4 dots.
type brailleCanvas struct {
	cols, rows int
	cells      []uint8
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return &brailleCanvas{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// size returns the canvas size in dots.
func (c *brailleCanvas) size() (w, h int) {
	return c.cols * 2, c.rows * 4
}

func (c *brailleCanvas) set(x, y int) {
	w, h := c.size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= brailleBits[y%4][x%2]
}

// line sets every dot along the segment between two dot positions.
func (c *brailleCanvas) line(x0, y0, x1, y1 float64) {
	n := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if n == 0 {
		c.set(int(math.Round(x0)), int(math.Round(y0)))
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.set(int(math.Round(x0+(x1-x0)*t)), int(math.Round(y0+(y1-y0)*t)))
	}
}

func (c *brailleCanvas) String() string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range c.cells[r*c.cols : (r+1)*c.cols] {
			b.WriteRune(rune(0x2800 + int(cell)))
		}
	}
	return b.String()
}

// viewport fits glyph coordinates onto a braille canvas, keeping the
// aspect ratio and a one-dot border.
type viewport struct {
	origin glyph.Point
	scale  float64
	offX   float64
	offY   float64
}

func fitViewport(strokes []glyph.Stroke, c *brailleCanvas) viewport {
	b := sink.Rect{Max: glyph.Pt(1, 1)}
	if len(strokes) > 0 {
		b = b.Union(sink.Bounds(strokes))
	}
	w, h := c.size()
	avail := func(dots int) float64 { return math.Max(float64(dots-3), 1) }
	scale := math.Min(avail(w)/b.Width(), avail(h)/b.Height())
	return viewport{
		origin: b.Min,
		scale:  scale,
		offX:   1 + (avail(w)-b.Width()*scale)/2,
		offY:   1 + (avail(h)-b.Height()*scale)/2,
	}
}

func (v viewport) project(p glyph.Point) (x, y float64) {
	return (p.X-v.origin.X)*v.scale + v.offX, (p.Y-v.origin.Y)*v.scale + v.offY
}

// drawSegments draws the visible segments of a drawing.
func (c *brailleCanvas) drawSegments(v viewport, segs []playback.Segment) {
	for _, s := range segs {
		x0, y0 := v.project(s.From)
		x1, y1 := v.project(s.To)
		c.line(x0, y0, x1, y1)
	}
}
