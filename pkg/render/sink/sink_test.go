package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/gif"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/playback"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var stem = []glyph.Stroke{{From: glyph.Pt(0.5, 1), To: glyph.Pt(0.5, 0), Weight: 1}}

func strokesOf(t *testing.T, text string) ([]glyph.Stroke, float64) {
	t.Helper()
	d, err := glyph.FromExpression(expr.MustParse(text))
	if err != nil {
		t.Fatalf("FromExpression(%s): %v", text, err)
	}
	strokes, extent := glyph.Strokes(d, glyph.Absolute, glyph.DefaultSettings())
	return strokes, extent
}

func TestBounds(t *testing.T) {
	if got := Bounds(nil); got != (Rect{}) {
		t.Errorf("Bounds(nil) = %v, want zero", got)
	}

	strokes, _ := strokesOf(t, "0 + 0")
	want := Rect{Min: glyph.Pt(0, 0), Max: glyph.Pt(2, 1)}
	if diff := cmp.Diff(want, Bounds(strokes), approx); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}

	got := Bounds(stem)
	if got.Width() != 0 || got.Height() != 1 {
		t.Errorf("Bounds(stem) = %v, want width 0 height 1", got)
	}
	if u := got.Union(unit); u != unit {
		t.Errorf("Union(unit) = %v, want %v", u, unit)
	}
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		name    string
		strokes []glyph.Stroke
		frame   Frame
		wantW   int
		wantH   int
	}{
		{"stem", stem, DefaultFrame(), 120, 120},
		{"empty", nil, DefaultFrame(), 120, 120},
		{"zero frame uses defaults", stem, Frame{}, 120, 120},
		{"scaled", stem, Frame{Scale: 10, Margin: 5, LineWidth: 1}, 20, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(tt.strokes, tt.frame)
			if c.width != tt.wantW || c.height != tt.wantH {
				t.Errorf("canvas = %dx%d, want %dx%d", c.width, c.height, tt.wantW, tt.wantH)
			}
		})
	}

	// A quote spans two glyph widths plus its closing tick.
	strokes, _ := strokesOf(t, "0 + 0")
	if c := newCanvas(strokes, DefaultFrame()); c.width != 200 || c.height != 120 {
		t.Errorf("quote canvas = %dx%d, want 200x120", c.width, c.height)
	}
}

func TestCanvasProject(t *testing.T) {
	c := newCanvas(stem, DefaultFrame())
	x, y := c.project(glyph.Pt(0.5, 1))
	if x != 60 || y != 100 {
		t.Errorf("project = (%v, %v), want (60, 100)", x, y)
	}
}

func TestRenderSVG(t *testing.T) {
	strokes, _ := strokesOf(t, "0 * 0")
	out := string(RenderSVG(strokes, WithTitle("0 * 0")))

	if n := strings.Count(out, "<line "); n != len(strokes) {
		t.Errorf("%d line elements, want %d", n, len(strokes))
	}
	for _, want := range []string{
		`viewBox="0 0 16000 12000"`,
		"<title>0 * 0</title>",
		"stroke-width:200",
		// Left stem at x=0.5, scaled by 80 px plus a 20 px margin.
		`x1="6000" y1="10000" x2="6000" y2="2000"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(out, "@keyframes") {
		t.Error("static SVG should not contain animation CSS")
	}
}

func TestRenderSVGAnimation(t *testing.T) {
	strokes, _ := strokesOf(t, "0 * 0")
	out := string(RenderSVG(strokes, WithAnimation(2)))

	if !strings.Contains(out, "@keyframes draw") {
		t.Error("animated SVG missing keyframes")
	}
	if n := strings.Count(out, `class="pen"`); n != len(strokes) {
		t.Errorf("%d animated lines, want %d", n, len(strokes))
	}
	// The last stem starts after 2+4*arc time units, drawn at 2 units/s.
	start := (2 + math.Sqrt(0.02)) / 2
	if want := fmt.Sprintf("animation-delay:%.3fs", start); !strings.Contains(out, want) {
		t.Errorf("SVG missing %q", want)
	}
}

func TestRenderSVGColors(t *testing.T) {
	out := string(RenderSVG(stem, WithColors("#123456", "")))
	if !strings.Contains(out, "stroke:#123456") {
		t.Error("SVG missing ink color")
	}
	if strings.Contains(out, "<rect") {
		t.Error("empty paper color should not draw a background")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(stem, WithPNGFrame(Frame{Scale: 80, Margin: 20, LineWidth: 4}))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Fatalf("size = %dx%d, want 120x120", b.Dx(), b.Dy())
	}

	if r, _, _, _ := img.At(60, 60).RGBA(); r > 0x4000 {
		t.Errorf("pixel on the stem is too light: %#x", r)
	}
	if r, _, _, _ := img.At(5, 5).RGBA(); r != 0xffff {
		t.Errorf("background pixel = %#x, want white", r)
	}
}

func TestRenderPNGBudget(t *testing.T) {
	frame := WithPNGFrame(Frame{Scale: 80, Margin: 20, LineWidth: 4})
	data, err := RenderPNG(stem, frame, WithBudget(0.25))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The pen starts at the bottom: only y in [80, 100] is drawn so far.
	if r, _, _, _ := img.At(60, 90).RGBA(); r > 0x4000 {
		t.Errorf("drawn part is too light: %#x", r)
	}
	if r, _, _, _ := img.At(60, 40).RGBA(); r != 0xffff {
		t.Errorf("undrawn part = %#x, want white", r)
	}
}

func TestRasterLimits(t *testing.T) {
	wide := []glyph.Stroke{{From: glyph.Pt(0, 0), To: glyph.Pt(5000, 1), Weight: 1}}
	huge := WithPNGFrame(Frame{Scale: 1000, Margin: 20, LineWidth: 2})
	if _, err := RenderPNG(wide, huge); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("RenderPNG(5000 units at scale 1000) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
	if _, err := RenderGIF(wide, WithGIFFrame(Frame{Scale: 1000, Margin: 20, LineWidth: 2})); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("RenderGIF(5000 units at scale 1000) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
	// 1040x1040 fits as a still but not over a thousand frames.
	big := Frame{Scale: 1000, Margin: 20, LineWidth: 2}
	if _, err := RenderPNG(stem, WithPNGFrame(big)); err != nil {
		t.Errorf("RenderPNG(stem at scale 1000) error: %v", err)
	}
	if _, err := RenderGIF(stem, WithGIFFrame(big), WithFPS(100), WithSpeed(0.001)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("RenderGIF(1001 frames at 1040x1040) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestRenderGIF(t *testing.T) {
	data, err := RenderGIF(stem, WithFPS(4), WithSpeed(2), WithGIFFrame(Frame{Scale: 40, Margin: 10, LineWidth: 2}))
	if err != nil {
		t.Fatalf("RenderGIF: %v", err)
	}
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := len(playback.Frames(stem, 4, 2))
	if len(anim.Image) != want {
		t.Fatalf("%d frames, want %d", len(anim.Image), want)
	}
	if anim.Delay[0] != 25 || anim.Delay[want-1] != holdDelay {
		t.Errorf("delays = %v, want 25 then %d", anim.Delay, holdDelay)
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Errorf("frame size = %dx%d, want 60x60", b.Dx(), b.Dy())
	}
}

func TestRenderJSON(t *testing.T) {
	strokes, extent := strokesOf(t, "0 * 0")
	data, err := RenderJSON(strokes, extent,
		WithJSONExpression("0 * 0"),
		WithJSONLayout(glyph.Absolute, glyph.Settings{CircleResolution: 4}))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var got struct {
		Expression       string  `json:"expression"`
		Layout           string  `json:"layout"`
		CircleResolution int     `json:"circle_resolution"`
		Extent           float64 `json:"extent"`
		Duration         float64 `json:"duration"`
		Strokes          []struct {
			From   glyph.Point `json:"from"`
			To     glyph.Point `json:"to"`
			Weight float64     `json:"weight"`
			Start  float64     `json:"start"`
		} `json:"strokes"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Expression != "0 * 0" || got.Layout != "absolute" || got.CircleResolution != 4 {
		t.Errorf("header = %q %q %d", got.Expression, got.Layout, got.CircleResolution)
	}
	if got.Extent != 1 {
		t.Errorf("extent = %v, want 1", got.Extent)
	}
	if len(got.Strokes) != len(strokes) {
		t.Fatalf("%d strokes, want %d", len(got.Strokes), len(strokes))
	}
	if got.Strokes[5].From != glyph.Pt(1.5, 1) || got.Strokes[1].Start != 1.5 {
		t.Errorf("strokes = %+v", got.Strokes)
	}
	if math.Abs(got.Duration-playback.Duration(strokes)) > 1e-9 {
		t.Errorf("duration = %v, want %v", got.Duration, playback.Duration(strokes))
	}
}
