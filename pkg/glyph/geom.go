package glyph

import (
	"fmt"
	"math"
)

// Point is a position in glyph space. The unit square [0,1]x[0,1] holds one
// glyph; y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point{
		X: pt.X + (o.X-pt.X)*t,
		Y: pt.Y + (o.Y-pt.Y)*t,
	}
}

// Stroke is one straight pen movement. Weight is a relative drawing duration,
// not a length: every line weighs 1 and each of the n slices of a circle
// weighs 1/n, so a whole circle takes as long as one line.
type Stroke struct {
	From   Point   `json:"from"`
	To     Point   `json:"to"`
	Weight float64 `json:"weight"`
}

// Length returns the euclidean length of the stroke.
func (s Stroke) Length() float64 {
	return s.From.Distance(s.To)
}

// mapX returns s with f applied to both x coordinates.
func (s Stroke) mapX(f func(float64) float64) Stroke {
	s.From.X = f(s.From.X)
	s.To.X = f(s.To.X)
	return s
}

// mapPoints returns s with f applied to both endpoints.
func (s Stroke) mapPoints(f func(Point) Point) Stroke {
	s.From = f(s.From)
	s.To = f(s.To)
	return s
}
