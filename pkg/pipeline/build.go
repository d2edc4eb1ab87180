package pipeline

import (
	"encoding/json"

	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
)

// Build parses expression text and builds its shape tree.
func Build(text string) (expr.Expr, glyph.Draw, error) {
	e, err := expr.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	d, err := glyph.FromExpression(e)
	if err != nil {
		return e, nil, err
	}
	return e, d, nil
}

// Flatten turns a shape tree into its stroke list and extent.
func Flatten(d glyph.Draw, opts Options) ([]glyph.Stroke, float64) {
	return glyph.Strokes(d, opts.Mode(), opts.Settings())
}

// StrokesHash returns the content hash of a stroke list and its extent.
// Equal drawings hash equally whatever expression produced them.
func StrokesHash(strokes []glyph.Stroke, extent float64) string {
	data, _ := json.Marshal(struct {
		Strokes []glyph.Stroke `json:"strokes"`
		Extent  float64        `json:"extent"`
	}{strokes, extent})
	return cache.Hash(data)
}
