package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/playback"
)

// holdDelay is how long the finished drawing stays on screen before the
// animation loops, in 100ths of a second.
const holdDelay = 200

// grays is the GIF palette: white to black in 16 steps, enough for
// anti-aliased black ink on white paper.
var grays = func() color.Palette {
	p := make(color.Palette, 16)
	for i := range p {
		v := uint8(255 - i*17)
		p[i] = color.Gray{Y: v}
	}
	return p
}()

// GIFOption configures animated GIF rendering.
type GIFOption func(*gifRenderer)

type gifRenderer struct {
	frame Frame
	fps   int
	speed float64
}

// WithGIFFrame sets scale, margin and line width.
func WithGIFFrame(f Frame) GIFOption { return func(r *gifRenderer) { r.frame = f } }

// WithFPS sets the number of frames per second.
func WithFPS(fps int) GIFOption { return func(r *gifRenderer) { r.fps = fps } }

// WithSpeed sets the drawing speed in time units per second.
func WithSpeed(speed float64) GIFOption { return func(r *gifRenderer) { r.speed = speed } }

// RenderGIF renders the handwriting animation of strokes as a looping GIF.
func RenderGIF(strokes []glyph.Stroke, opts ...GIFOption) ([]byte, error) {
	r := gifRenderer{frame: DefaultFrame(), fps: playback.DefaultFPS, speed: playback.DefaultSpeed}
	for _, opt := range opts {
		opt(&r)
	}
	if r.fps <= 0 {
		r.fps = playback.DefaultFPS
	}
	if r.speed <= 0 {
		r.speed = playback.DefaultSpeed
	}

	c := newCanvas(strokes, r.frame)
	budgets := playback.Frames(strokes, r.fps, r.speed)
	if err := c.checkRaster(len(budgets)); err != nil {
		return nil, err
	}
	ras := newRasterizer(c, color.Black, color.White)
	delay := max(1, 100/r.fps)

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(budgets)),
		Delay: make([]int, 0, len(budgets)),
	}
	var segs []playback.Segment
	for i, budget := range budgets {
		ras.clear()
		segs = playback.AppendScrub(segs[:0], strokes, budget)
		ras.drawSegments(segs)

		frame := image.NewPaletted(ras.img.Bounds(), grays)
		draw.Draw(frame, frame.Bounds(), ras.img, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, frame)
		if i == len(budgets)-1 {
			anim.Delay = append(anim.Delay, holdDelay)
		} else {
			anim.Delay = append(anim.Delay, delay)
		}
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
