// Package pipeline runs the parse → build → flatten → render pipeline.
//
// The CLI and the HTTP server both go through this package so an
// expression renders the same way from every entry point, and rendered
// files are cached under the same keys.
//
// # Stages
//
//  1. Build: parse the expression text and build its shape tree
//  2. Flatten: turn the shape tree into an ordered stroke list
//  3. Render: write the strokes in each requested format
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Expression: "(2 * 3)^1' + 0'",
//	    Formats:    []string{"svg", "gif"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatGIF:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatGIF:  "image/gif",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Expression is the parsed expression; Text is its canonical notation.
	Expression expr.Expr
	Text       string

	// Shape is the shape tree built from Expression.
	Shape glyph.Draw

	// Strokes and Extent are the flattened shape.
	Strokes []glyph.Stroke
	Extent  float64

	// StrokesHash is the content hash of Strokes and Extent.
	StrokesHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Depth       int
	NodeCount   int
	StrokeCount int

	// Duration is the playback time of the whole drawing, in time units.
	Duration float64

	BuildTime   time.Duration
	FlattenTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}
