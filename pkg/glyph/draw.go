package glyph

import (
	"strings"

	"github.com/algexeno/cistercian/pkg/errors"
)

// Kind names a shape variant.
type Kind string

const (
	KindCircle         Kind = "circle"
	KindLine           Kind = "line"
	KindSequence       Kind = "sequence"
	KindMirrorVertical Kind = "mirror_vertical"
	KindChain          Kind = "chain"
	KindQuote          Kind = "quote"
)

// Draw is a node of the shape tree. The set of implementations is closed:
// [Circle], [Line], [Sequence], [MirrorVertical], [Chain] and [Quote].
// Shape trees are built once and never modified; every node has exactly one
// parent.
type Draw interface {
	// Kind returns the variant name.
	Kind() Kind

	appendStrokes(dst []Stroke, mode Mode, s Settings) ([]Stroke, float64)
}

// Circle is a circle outline.
type Circle struct {
	Center Point
	Radius float64
}

// Line is a single straight line.
type Line struct {
	From Point
	To   Point
}

// Sequence draws its children one after another in the same frame.
type Sequence struct {
	Children []Draw
}

// MirrorVertical draws Top above a vertically flipped Bottom, separated by a
// horizontal divider when SeparatorForced is set or when either half is
// wider than a single glyph.
type MirrorVertical struct {
	SeparatorForced bool
	Top             Draw
	Bottom          Draw
}

// Chain draws Left and Right side by side, joined by a small circle.
type Chain struct {
	Left  Draw
	Right Draw
}

// Quote draws Left and Right side by side between an opening and a closing
// tick.
type Quote struct {
	Left  Draw
	Right Draw
}

// Seq returns a Sequence of the given shapes.
func Seq(children ...Draw) Sequence {
	return Sequence{Children: children}
}

func (Circle) Kind() Kind         { return KindCircle }
func (Line) Kind() Kind           { return KindLine }
func (Sequence) Kind() Kind       { return KindSequence }
func (MirrorVertical) Kind() Kind { return KindMirrorVertical }
func (Chain) Kind() Kind          { return KindChain }
func (Quote) Kind() Kind          { return KindQuote }

// Children returns the direct sub-shapes of d in drawing order. Mirrors
// list the top half first.
func Children(d Draw) []Draw {
	switch d := d.(type) {
	case Sequence:
		return d.Children
	case MirrorVertical:
		return []Draw{d.Top, d.Bottom}
	case Chain:
		return []Draw{d.Left, d.Right}
	case Quote:
		return []Draw{d.Left, d.Right}
	default:
		return nil
	}
}

// Size returns the number of nodes in the shape tree rooted at d.
func Size(d Draw) int {
	n := 1
	for _, c := range Children(d) {
		n += Size(c)
	}
	return n
}

// Mode selects how chains and quotes are laid out.
type Mode int

const (
	// Absolute places composed glyphs at growing horizontal offsets and
	// reports their occupied width as extent. This is the top-level mode.
	Absolute Mode = iota

	// Scaled squeezes chains and quotes back into the unit square so the
	// composition can be nested as a single glyph. No built-in caller
	// selects it unless asked to explicitly.
	Scaled
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Scaled {
		return "scaled"
	}
	return "absolute"
}

// ParseMode parses a mode name as produced by [Mode.String]. The empty
// string selects Absolute.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "absolute":
		return Absolute, nil
	case "scaled":
		return Scaled, nil
	default:
		return Absolute, errors.New(errors.ErrCodeInvalidLayout, "invalid layout: %q (must be 'absolute' or 'scaled')", s)
	}
}
