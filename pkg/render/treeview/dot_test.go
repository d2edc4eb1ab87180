package treeview

import (
	"context"
	"strings"
	"testing"

	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
)

func shapeOf(t *testing.T, text string) glyph.Draw {
	t.Helper()
	d, err := glyph.FromExpression(expr.MustParse(text))
	if err != nil {
		t.Fatalf("FromExpression(%s): %v", text, err)
	}
	return d
}

func countNodes(dot string) int {
	n := 0
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "[label=") && !strings.Contains(line, "->") {
			n++
		}
	}
	return n
}

func TestToDOT(t *testing.T) {
	d := shapeOf(t, "0 * 1^0'")
	dot := ToDOT(d, Options{Title: "0 * 1^0'"})

	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("not a digraph:\n%s", dot)
	}
	if n := countNodes(dot); n != glyph.Size(d) {
		t.Errorf("%d nodes, want %d", n, glyph.Size(d))
	}
	if n := strings.Count(dot, " -> "); n != glyph.Size(d)-1 {
		t.Errorf("%d edges, want %d", n, glyph.Size(d)-1)
	}
	for _, want := range []string{
		`label="0 * 1^0'"`,
		`n0 [label="chain"`,
		`n0 -> n1 [label="left"]`,
		`[label="right"]`,
		`[label="top"]`,
		`[label="bottom"]`,
		`label="circle\n(0.5, 0.5) r=0.5"`,
		`label="(0.5, 1) → (0.5, 0)"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTSeparator(t *testing.T) {
	dot := ToDOT(shapeOf(t, "0^5"), Options{})
	if !strings.Contains(dot, `label="mirror\nseparator"`) {
		t.Errorf("forced separator not labeled:\n%s", dot)
	}
	if strings.Contains(dot, "labelloc") {
		t.Error("untitled diagram should not set a graph label")
	}
}

func TestToDOTCollapse(t *testing.T) {
	d := shapeOf(t, "9 + 4")
	full := ToDOT(d, Options{})
	collapsed := ToDOT(d, Options{Collapse: true})

	if !strings.Contains(collapsed, `label="digit\n4 lines"`) {
		t.Errorf("digit 9 not collapsed:\n%s", collapsed)
	}
	if countNodes(collapsed) != 3 {
		t.Errorf("collapsed diagram should have 3 nodes:\n%s", collapsed)
	}
	if countNodes(full) <= countNodes(collapsed) {
		t.Error("collapse did not hide any node")
	}
}

func TestToDOTNil(t *testing.T) {
	if dot := ToDOT(nil, Options{}); countNodes(dot) != 0 {
		t.Errorf("nil shape produced nodes:\n%s", dot)
	}
}

func TestIsDigit(t *testing.T) {
	tests := []struct {
		d    glyph.Draw
		want bool
	}{
		{shapeOf(t, "7"), true},
		{shapeOf(t, "1'"), false},
		{glyph.Seq(), false},
		{glyph.Line{}, false},
	}
	for _, tt := range tests {
		if got := isDigit(tt.d); got != tt.want {
			t.Errorf("isDigit(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox without viewBox changed input: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(shapeOf(t, "2 * 3"), Options{Collapse: true})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "chain") {
		t.Errorf("unexpected SVG output:\n%s", svg)
	}
}
