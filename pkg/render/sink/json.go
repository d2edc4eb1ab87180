package sink

import (
	"encoding/json"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/playback"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	expression string
	mode       glyph.Mode
	settings   glyph.Settings
}

// WithJSONExpression records the expression text the strokes were built from.
func WithJSONExpression(s string) JSONOption { return func(r *jsonRenderer) { r.expression = s } }

// WithJSONLayout records the layout mode and flattener settings.
func WithJSONLayout(mode glyph.Mode, s glyph.Settings) JSONOption {
	return func(r *jsonRenderer) { r.mode, r.settings = mode, s }
}

type jsonOutput struct {
	Expression       string       `json:"expression,omitempty"`
	Layout           string       `json:"layout"`
	CircleResolution int          `json:"circle_resolution"`
	Extent           float64      `json:"extent"`
	Bounds           Rect         `json:"bounds"`
	Duration         float64      `json:"duration"`
	Strokes          []jsonStroke `json:"strokes"`
}

type jsonStroke struct {
	glyph.Stroke
	Start float64 `json:"start"`
	Time  float64 `json:"time"`
}

// RenderJSON exports strokes with their playback timing, the root extent
// and the layout parameters as a pretty-printed JSON document.
func RenderJSON(strokes []glyph.Stroke, extent float64, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{settings: glyph.DefaultSettings()}
	for _, opt := range opts {
		opt(&r)
	}

	timing := playback.Schedule(strokes)
	out := jsonOutput{
		Expression:       r.expression,
		Layout:           r.mode.String(),
		CircleResolution: r.settings.CircleResolution,
		Extent:           extent,
		Bounds:           Bounds(strokes),
		Duration:         playback.Duration(strokes),
		Strokes:          make([]jsonStroke, len(strokes)),
	}
	for i, s := range strokes {
		out.Strokes[i] = jsonStroke{Stroke: s, Start: timing[i].Start, Time: timing[i].Duration}
	}
	return json.MarshalIndent(out, "", "  ")
}
