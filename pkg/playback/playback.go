package playback

import (
	"math"

	"github.com/algexeno/cistercian/pkg/glyph"
)

const (
	// PenLiftCost is the time charged for moving the pen between two strokes
	// that are not connected.
	PenLiftCost = 0.5

	// DefaultSpeed is the number of time units drawn per wall-clock second.
	DefaultSpeed = 2.0

	// DefaultFPS is the frame rate used for animated output.
	DefaultFPS = 25

	// MaxFrames bounds the number of budgets returned by [Frames]. Slower
	// animations are sampled more coarsely instead of growing.
	MaxFrames = 1000
)

// Segment is the visible part of one stroke.
type Segment struct {
	From glyph.Point
	To   glyph.Point

	// Partial is set on the stroke that is still being drawn.
	Partial bool
}

// Timing is when a stroke starts and how long it takes to draw.
type Timing struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the time the stroke is complete.
func (t Timing) End() float64 { return t.Start + t.Duration }

// Cost returns the time needed to draw s.
func Cost(s glyph.Stroke) float64 {
	return s.Weight * s.Length()
}

// lifted reports whether the pen has to be lifted before drawing strokes[i].
func lifted(strokes []glyph.Stroke, i int) bool {
	return i > 0 && strokes[i-1].To != strokes[i].From
}

// Lifts returns the number of pen lifts needed to draw strokes in order.
func Lifts(strokes []glyph.Stroke) int {
	n := 0
	for i := range strokes {
		if lifted(strokes, i) {
			n++
		}
	}
	return n
}

// Schedule returns the timing of every stroke, pen lifts included.
func Schedule(strokes []glyph.Stroke) []Timing {
	out := make([]Timing, len(strokes))
	var t float64
	for i, s := range strokes {
		if lifted(strokes, i) {
			t += PenLiftCost
		}
		out[i] = Timing{Start: t, Duration: Cost(s)}
		t += out[i].Duration
	}
	return out
}

// Duration returns the time needed to draw all strokes.
func Duration(strokes []glyph.Stroke) float64 {
	var t float64
	for i, s := range strokes {
		if lifted(strokes, i) {
			t += PenLiftCost
		}
		t += Cost(s)
	}
	return t
}

// Scrub returns the segments visible after budget time units.
func Scrub(strokes []glyph.Stroke, budget float64) []Segment {
	return AppendScrub(nil, strokes, budget)
}

// AppendScrub is like [Scrub] but appends to dst.
//
// The pen lift before a stroke is paid before checking whether any budget is
// left, so a stroke that follows a lift only starts once the lift is over.
func AppendScrub(dst []Segment, strokes []glyph.Stroke, budget float64) []Segment {
	rt := budget
	for i, s := range strokes {
		if lifted(strokes, i) {
			rt -= PenLiftCost
		}
		if rt <= 0 {
			break
		}
		dt := Cost(s)
		if rt < dt {
			return append(dst, Segment{From: s.From, To: s.From.Lerp(s.To, rt/dt), Partial: true})
		}
		dst = append(dst, Segment{From: s.From, To: s.To})
		rt -= dt
	}
	return dst
}

// Frames returns the time budgets of evenly spaced animation frames at fps
// frames per second, drawing speed units per second. The last frame always
// shows the complete drawing. At most [MaxFrames]+1 budgets are returned;
// a non-positive or non-finite speed or fps yields only the final frame.
func Frames(strokes []glyph.Stroke, fps int, speed float64) []float64 {
	total := Duration(strokes)
	step := speed / float64(fps)
	if fps <= 0 || !(step > 0) || math.IsInf(step, 0) {
		return []float64{total}
	}
	step = max(step, total/MaxFrames)
	n := min(int(math.Ceil(total/step)), MaxFrames)
	out := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, float64(i)*step)
	}
	return append(out, total)
}
