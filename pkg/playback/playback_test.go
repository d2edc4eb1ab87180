package playback

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

var stem = []glyph.Stroke{{From: glyph.Pt(0.5, 1), To: glyph.Pt(0.5, 0), Weight: 1}}

// chainStrokes is 0 * 0 at resolution 4: stem, lift, joint circle, lift, stem.
func chainStrokes(t *testing.T) []glyph.Stroke {
	t.Helper()
	d, err := glyph.FromExpression(expr.Mul(expr.C(0), expr.C(0)))
	if err != nil {
		t.Fatalf("FromExpression: %v", err)
	}
	strokes, _ := glyph.Strokes(d, glyph.Absolute, glyph.Settings{CircleResolution: 4})
	return strokes
}

// arc is the cost of one quarter of the chain joint.
var arc = 0.25 * math.Sqrt(0.02)

func TestCost(t *testing.T) {
	tests := []struct {
		s    glyph.Stroke
		want float64
	}{
		{stem[0], 1},
		{glyph.Stroke{From: glyph.Pt(0, 0), To: glyph.Pt(3, 4), Weight: 0.5}, 2.5},
		{glyph.Stroke{From: glyph.Pt(1, 1), To: glyph.Pt(1, 1), Weight: 1}, 0},
	}
	for _, tt := range tests {
		if got := Cost(tt.s); got != tt.want {
			t.Errorf("Cost(%v) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestDuration(t *testing.T) {
	if got := Duration(nil); got != 0 {
		t.Errorf("Duration(nil) = %v, want 0", got)
	}
	if got := Duration(stem); got != 1 {
		t.Errorf("Duration(stem) = %v, want 1", got)
	}
	want := 1 + PenLiftCost + 4*arc + PenLiftCost + 1
	if got := Duration(chainStrokes(t)); math.Abs(got-want) > 1e-9 {
		t.Errorf("Duration(chain) = %v, want %v", got, want)
	}
}

func TestLifts(t *testing.T) {
	tests := []struct {
		name    string
		strokes []glyph.Stroke
		want    int
	}{
		{"none", nil, 0},
		{"stem", stem, 0},
		{"chain", chainStrokes(t), 2},
		{"joined", []glyph.Stroke{
			{From: glyph.Pt(0, 0), To: glyph.Pt(1, 0), Weight: 1},
			{From: glyph.Pt(1, 0), To: glyph.Pt(1, 1), Weight: 1},
		}, 0},
	}
	for _, tt := range tests {
		if got := Lifts(tt.strokes); got != tt.want {
			t.Errorf("Lifts(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSchedule(t *testing.T) {
	got := Schedule(chainStrokes(t))
	want := []Timing{
		{0, 1},
		{1.5, arc},
		{1.5 + arc, arc},
		{1.5 + 2*arc, arc},
		{1.5 + 3*arc, arc},
		{2 + 4*arc, 1},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Schedule mismatch (-want +got):\n%s", diff)
	}
	if end := got[len(got)-1].End(); math.Abs(end-Duration(chainStrokes(t))) > 1e-9 {
		t.Errorf("last stroke ends at %v, want Duration", end)
	}
}

func TestScrubSingleStroke(t *testing.T) {
	tests := []struct {
		name   string
		budget float64
		want   []Segment
	}{
		{"nothing", 0, nil},
		{"negative", -1, nil},
		{"quarter", 0.25, []Segment{{glyph.Pt(0.5, 1), glyph.Pt(0.5, 0.75), true}}},
		{"exact", 1, []Segment{{glyph.Pt(0.5, 1), glyph.Pt(0.5, 0), false}}},
		{"more", 5, []Segment{{glyph.Pt(0.5, 1), glyph.Pt(0.5, 0), false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scrub(stem, tt.budget)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Scrub(%v) mismatch (-want +got):\n%s", tt.budget, diff)
			}
		})
	}
}

func TestScrubChargesPenLift(t *testing.T) {
	strokes := chainStrokes(t)

	// The lift after the first stem eats the rest of the budget.
	if got := Scrub(strokes, 1.5); len(got) != 1 {
		t.Errorf("Scrub(1.5) returned %d segments, want 1", len(got))
	}

	got := Scrub(strokes, 1.5+arc/2)
	if len(got) != 2 {
		t.Fatalf("Scrub(1.5+arc/2) returned %d segments, want 2", len(got))
	}
	want := Segment{From: glyph.Pt(1, 0.4), To: glyph.Pt(1.05, 0.45), Partial: true}
	if diff := cmp.Diff(want, got[1], approx); diff != "" {
		t.Errorf("partial segment mismatch (-want +got):\n%s", diff)
	}

	// The joint is drawn without lifts, the last stem needs one.
	if got := Scrub(strokes, 1.9+4*arc); len(got) != 5 {
		t.Errorf("Scrub before last lift returned %d segments, want 5", len(got))
	}
}

func TestScrubEverything(t *testing.T) {
	strokes := chainStrokes(t)
	got := Scrub(strokes, Duration(strokes)+1e-9)
	if len(got) != len(strokes) {
		t.Fatalf("Scrub(Duration) returned %d segments, want %d", len(got), len(strokes))
	}
	for i, seg := range got {
		if seg.Partial {
			t.Errorf("segment %d is partial", i)
		}
	}
}

func TestAppendScrubKeepsPrefix(t *testing.T) {
	prefix := Segment{From: glyph.Pt(7, 7), To: glyph.Pt(8, 8)}
	got := AppendScrub([]Segment{prefix}, stem, 1)
	if len(got) != 2 || got[0] != prefix {
		t.Errorf("AppendScrub = %v, want prefix kept and one segment added", got)
	}
}

func TestFrames(t *testing.T) {
	if diff := cmp.Diff([]float64{0, 0.5, 1}, Frames(stem, 4, 2)); diff != "" {
		t.Errorf("Frames(stem) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0}, Frames(nil, 10, 2)); diff != "" {
		t.Errorf("Frames(nil) mismatch (-want +got):\n%s", diff)
	}

	strokes := chainStrokes(t)
	frames := Frames(strokes, DefaultFPS, DefaultSpeed)
	for i := 1; i < len(frames); i++ {
		if frames[i] <= frames[i-1] {
			t.Errorf("frame %d budget %v not after %v", i, frames[i], frames[i-1])
		}
	}
	if last := frames[len(frames)-1]; last != Duration(strokes) {
		t.Errorf("last frame = %v, want %v", last, Duration(strokes))
	}
}

func TestFramesBounded(t *testing.T) {
	tests := []struct {
		name  string
		fps   int
		speed float64
		want  int
	}{
		{"very slow", 25, 1e-9, MaxFrames + 1},
		{"slow", 1000, 1e-3, MaxFrames + 1},
		{"nan speed", 25, math.NaN(), 1},
		{"infinite speed", 25, math.Inf(1), 1},
		{"zero fps", 0, 2, 1},
		{"negative speed", 25, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := Frames(stem, tt.fps, tt.speed)
			if len(frames) != tt.want {
				t.Fatalf("len(Frames) = %d, want %d", len(frames), tt.want)
			}
			if last := frames[len(frames)-1]; last != Duration(stem) {
				t.Errorf("last frame = %v, want %v", last, Duration(stem))
			}
		})
	}
}

func TestClock(t *testing.T) {
	c := NewClock(DefaultSpeed)
	c.Tick(1500 * time.Millisecond)
	if got := c.Budget(); got != 3 {
		t.Errorf("Budget() = %v, want 3", got)
	}

	if !c.TogglePause() {
		t.Fatal("TogglePause() = false, want paused")
	}
	c.Tick(time.Second)
	if got := c.Budget(); got != 3 {
		t.Errorf("paused Budget() = %v, want 3", got)
	}
	if !c.Done(3) || c.Done(3.5) {
		t.Errorf("Done disagrees with Budget() = %v", c.Budget())
	}

	c.TogglePause()
	c.Reset()
	if c.Paused() || c.Budget() != 0 {
		t.Errorf("after Reset: paused=%v budget=%v, want running at 0", c.Paused(), c.Budget())
	}
}
