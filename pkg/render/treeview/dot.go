package treeview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/render"
)

// Options configures diagram rendering.
type Options struct {
	// Title is shown above the diagram, usually the expression text.
	Title string

	// Collapse hides the lines of digit glyphs and labels each digit
	// sequence with its line count instead.
	Collapse bool
}

// ToDOT converts a shape tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(d glyph.Draw, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11, fontcolor=gray40];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	w := dotWriter{buf: &buf, collapse: opts.Collapse}
	if d != nil {
		w.node(d)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf      *bytes.Buffer
	collapse bool
	next     int
}

// node writes d and its subtree and returns the id of d.
func (w *dotWriter) node(d glyph.Draw) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++
	fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(d, w.collapse), ", "))

	if w.collapse && isDigit(d) {
		return id
	}
	roles := edgeRoles(d)
	for i, c := range glyph.Children(d) {
		cid := w.node(c)
		if roles != nil {
			fmt.Fprintf(w.buf, "  %s -> %s [label=%q];\n", id, cid, roles[i])
		} else {
			fmt.Fprintf(w.buf, "  %s -> %s;\n", id, cid)
		}
	}
	return id
}

func fmtLabel(d glyph.Draw, collapse bool) string {
	switch d := d.(type) {
	case glyph.Circle:
		return fmt.Sprintf("circle\n%v r=%g", d.Center, d.Radius)
	case glyph.Line:
		return fmt.Sprintf("%v → %v", d.From, d.To)
	case glyph.Sequence:
		if collapse && isDigit(d) {
			return fmt.Sprintf("digit\n%d lines", len(d.Children))
		}
		return "sequence"
	case glyph.MirrorVertical:
		if d.SeparatorForced {
			return "mirror\nseparator"
		}
		return "mirror"
	default:
		return string(d.Kind())
	}
}

func fmtAttrs(d glyph.Draw, collapse bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(d, collapse))}
	switch d.(type) {
	case glyph.Line, glyph.Circle:
		attrs = append(attrs, "shape=plaintext", "fontsize=11", "fontcolor=gray30")
	case glyph.MirrorVertical:
		attrs = append(attrs, "fillcolor=\"#e8f1fb\"")
	case glyph.Chain:
		attrs = append(attrs, "fillcolor=\"#eaf7ea\"")
	case glyph.Quote:
		attrs = append(attrs, "fillcolor=\"#fdf3e3\"")
	}
	return attrs
}

func edgeRoles(d glyph.Draw) []string {
	switch d.(type) {
	case glyph.MirrorVertical:
		return []string{"top", "bottom"}
	case glyph.Chain, glyph.Quote:
		return []string{"left", "right"}
	default:
		return nil
	}
}

// isDigit reports whether d is a sequence made only of lines, which is how
// digit glyphs are built.
func isDigit(d glyph.Draw) bool {
	seq, ok := d.(glyph.Sequence)
	if !ok || len(seq.Children) == 0 {
		return false
	}
	for _, c := range seq.Children {
		if _, ok := c.(glyph.Line); !ok {
			return false
		}
	}
	return true
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the pt-sized root element Graphviz emits with
// one sized in pixels.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
