package glyph

import "math"

const tau = 2 * math.Pi

// Layout constants shared by the composition rules.
const (
	// mirrorShrink is the horizontal scale applied to both halves of a
	// mirror and to their extents.
	mirrorShrink = 0.75

	// chainGap is the horizontal distance from the left edge of the left
	// operand to the left edge of the right operand in Absolute mode, on
	// top of the left operand's extent.
	chainGap = 1.0

	jointRadius = 0.1
)

// Strokes flattens d into a new stroke list and returns it with the root
// extent.
func Strokes(d Draw, mode Mode, s Settings) ([]Stroke, float64) {
	return AppendStrokes(nil, d, mode, s)
}

// AppendStrokes appends the strokes of d to dst in drawing order and returns
// the extended slice together with the extent of d.
//
// The extent is the width d occupies beyond a single unit glyph, as needed
// by the parent composition to place its next child. Lines, circles and
// sequences report 0; mirrors report the wider of their scaled halves;
// chains and quotes report their total width in Absolute mode and 0 in
// Scaled mode.
//
// s.CircleResolution must be at least 1. AppendStrokes does not check this;
// see [Settings.Validate].
func AppendStrokes(dst []Stroke, d Draw, mode Mode, s Settings) ([]Stroke, float64) {
	return d.appendStrokes(dst, mode, s)
}

func (l Line) appendStrokes(dst []Stroke, _ Mode, _ Settings) ([]Stroke, float64) {
	return append(dst, Stroke{From: l.From, To: l.To, Weight: 1}), 0
}

// appendStrokes emits one stroke per angular slice, starting at 12 o'clock
// and running clockwise in y-down space.
func (c Circle) appendStrokes(dst []Stroke, _ Mode, s Settings) ([]Stroke, float64) {
	n := float64(s.CircleResolution)
	for i := 0; i < s.CircleResolution; i++ {
		from := float64(i)/n*tau - tau/4
		to := float64(i+1)/n*tau - tau/4
		dst = append(dst, Stroke{From: c.at(from), To: c.at(to), Weight: 1 / n})
	}
	return dst, 0
}

func (c Circle) at(angle float64) Point {
	return Pt(math.Cos(angle)*c.Radius+c.Center.X, math.Sin(angle)*c.Radius+c.Center.Y)
}

func (seq Sequence) appendStrokes(dst []Stroke, mode Mode, s Settings) ([]Stroke, float64) {
	for _, c := range seq.Children {
		dst, _ = c.appendStrokes(dst, mode, s)
	}
	return dst, 0
}

func (m MirrorVertical) appendStrokes(dst []Stroke, mode Mode, s Settings) ([]Stroke, float64) {
	top, topExtent := m.Top.appendStrokes(nil, mode, s)
	bottom, bottomExtent := m.Bottom.appendStrokes(nil, mode, s)
	topExtent *= mirrorShrink
	bottomExtent *= mirrorShrink
	mv := max(topExtent, bottomExtent)

	separator := m.SeparatorForced || mv != 0
	h, bottomY := 0.5, 0.5
	if separator {
		h, bottomY = 0.45, 0.55
		dst = append(dst, Stroke{From: Pt(0.1, 0.5), To: Pt(mv+0.9, 0.5), Weight: 1})
	}

	// Narrower halves are centered under the wider one.
	topX := (mv-topExtent)*0.5 + 0.5
	for _, st := range top {
		dst = append(dst, st.mapPoints(func(p Point) Point {
			return Pt(topX+(p.X-0.5)*mirrorShrink, p.Y*h)
		}))
	}
	bottomX := (mv-bottomExtent)*0.5 + 0.5
	for _, st := range bottom {
		dst = append(dst, st.mapPoints(func(p Point) Point {
			return Pt(bottomX+(p.X-0.5)*mirrorShrink, bottomY+(1-p.Y)*h)
		}))
	}
	return dst, mv
}

func (c Chain) appendStrokes(dst []Stroke, mode Mode, s Settings) ([]Stroke, float64) {
	left, av := c.Left.appendStrokes(nil, mode, s)
	right, bv := c.Right.appendStrokes(nil, mode, s)

	dst = appendLeft(dst, left, mode)
	joint := Circle{Center: Pt(av+chainGap, 0.5), Radius: jointRadius}
	if mode == Scaled {
		joint.Center = Pt(0.5, 0.5)
	}
	dst, _ = joint.appendStrokes(dst, mode, s)
	dst = appendRight(dst, right, av, mode)

	if mode == Scaled {
		return dst, 0
	}
	return dst, av + bv + chainGap
}

func (q Quote) appendStrokes(dst []Stroke, mode Mode, s Settings) ([]Stroke, float64) {
	left, av := q.Left.appendStrokes(nil, mode, s)
	right, bv := q.Right.appendStrokes(nil, mode, s)

	dst = append(dst, Stroke{From: Pt(0, 0.95), To: Pt(0, 1), Weight: 1})
	dst = appendLeft(dst, left, mode)
	dst = appendRight(dst, right, av, mode)

	closeX := av + bv + 2
	if mode == Scaled {
		closeX = 1
	}
	dst = append(dst, Stroke{From: Pt(closeX, 0), To: Pt(closeX, 0.05), Weight: 1})

	if mode == Scaled {
		return dst, 0
	}
	return dst, av + bv + 1.1
}

// appendLeft places the left operand of a chain or quote: unchanged in
// Absolute mode, squeezed into the left half in Scaled mode.
func appendLeft(dst, strokes []Stroke, mode Mode) []Stroke {
	if mode != Scaled {
		return append(dst, strokes...)
	}
	for _, st := range strokes {
		dst = append(dst, st.mapX(func(x float64) float64 { return x * 0.5 }))
	}
	return dst
}

// appendRight places the right operand of a chain or quote: shifted past the
// left operand's extent in Absolute mode, squeezed into the right half in
// Scaled mode.
func appendRight(dst, strokes []Stroke, leftExtent float64, mode Mode) []Stroke {
	shift := func(x float64) float64 { return leftExtent + chainGap + x }
	if mode == Scaled {
		shift = func(x float64) float64 { return 0.5 + x*0.5 }
	}
	for _, st := range strokes {
		dst = append(dst, st.mapX(shift))
	}
	return dst
}
