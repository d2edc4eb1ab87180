package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/algexeno/cistercian/pkg/pipeline"
	"github.com/algexeno/cistercian/pkg/playback"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // expressions, counts
	colorGreen  = lipgloss.Color("35")  // done, cached
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255") // ink
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle renders the expression heading of play and strokes.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders expressions and addresses inline.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// Draw summary
// =============================================================================

// printDrawSummary reports what draw produced: one line per written file
// with its size, then the glyph's stroke statistics.
//
//	✓ Drew 1' * 0'
//	  → chain.svg  1.2 KiB
//	  → chain.png  3.4 KiB
//	  17 strokes · 2 pen lifts · 6.71 time units · extent 1 · fresh
func printDrawSummary(w io.Writer, result *pipeline.Result, formats []string, paths map[string]string) {
	printSuccess(w, "Drew %s", StyleHighlight.Render(result.Text))
	for _, f := range formats {
		fmt.Fprintf(w, "  %s %s  %s\n",
			StyleDim.Render(iconArrow),
			StyleValue.Render(paths[f]),
			StyleDim.Render(formatSize(len(result.Artifacts[f]))))
	}
	fmt.Fprintln(w, "  "+glyphStats(result))
}

// glyphStats renders the stroke statistics of a result on one line.
func glyphStats(result *pipeline.Result) string {
	parts := []string{
		fmt.Sprintf("%d strokes", result.Stats.StrokeCount),
		fmt.Sprintf("%d pen lifts", playback.Lifts(result.Strokes)),
		fmt.Sprintf("%.2f time units", result.Stats.Duration),
		fmt.Sprintf("extent %g", result.Extent),
	}
	sep := StyleDim.Render(" · ")
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	status := styleComputed.Render("fresh")
	if result.CacheInfo.RenderHit {
		status = styleCached.Render("cached")
	}
	return strings.Join(parts, sep) + sep + status
}

// formatSize renders a byte count in B or KiB.
func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/1024)
}
