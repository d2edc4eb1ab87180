// Package playback animates a stroke list the way a pen would draw it.
//
// Strokes are drawn in order. Each one takes Weight*Length time units, and
// lifting the pen between two strokes that do not touch costs a fixed
// [PenLiftCost]. Given a time budget, [Scrub] returns what is visible so far,
// with the stroke in progress cut short:
//
//	strokes, _ := glyph.Strokes(shape, glyph.Absolute, glyph.DefaultSettings())
//	clock := playback.NewClock(playback.DefaultSpeed)
//	clock.Tick(time.Second)
//	for _, seg := range playback.Scrub(strokes, clock.Budget()) {
//	    canvas.Line(seg.From, seg.To)
//	}
//
// The renderers in pkg/render/sink use [Schedule] and [Frames] for animated
// SVG and GIF output.
package playback
