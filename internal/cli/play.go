package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/pipeline"
	"github.com/algexeno/cistercian/pkg/playback"
)

// frameInterval is the redraw period of the play view.
const frameInterval = time.Second / 30

var (
	playInkStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	playHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	playErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// playCommand creates the play command that animates expressions in the
// terminal.
func (c *CLI) playCommand() *cobra.Command {
	var flags renderFlags
	var speed float64
	var interesting bool

	cmd := &cobra.Command{
		Use:   "play EXPR [EXPR...]",
		Short: "Watch expressions being drawn in the terminal",
		Long: `Draw expressions stroke by stroke in the terminal.

Keys:
  j / k   next / previous expression
  p       pause: stops the drawing where it is and locks j / k until resumed
  r       restart the drawing
  q       quit

With --interesting, expressions containing an addition are skipped.`,
		Example: `  cistercian play "(2 * 3)^1' + 0'"
  cistercian play 1 2 3 "1' * 0'" --speed 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.speed = speed
			return c.runPlay(cmd.Context(), args, flags, interesting)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().Float64Var(&speed, "speed", 0, "drawing speed in time units per second (default 2)")
	cmd.Flags().BoolVar(&interesting, "interesting", false, "skip expressions that contain an addition")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, expressions []string, flags renderFlags, onlyInteresting bool) error {
	opts := c.options(expressions[0], flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	entries := make([]playEntry, 0, len(expressions))
	failed := 0
	for _, text := range expressions {
		entry := loadEntry(ctx, runner, text, opts)
		if onlyInteresting && entry.err == nil && !entry.interesting {
			continue
		}
		if entry.err != nil {
			failed++
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no interesting expressions to play")
	}
	if failed == len(entries) {
		return entries[0].err
	}

	m := newPlayModel(entries, opts.Speed)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// PlayModel - Terminal playback
// =============================================================================

// playEntry is one expression of the play list.
type playEntry struct {
	text        string
	strokes     []glyph.Stroke
	total       float64
	interesting bool
	err         error
}

func loadEntry(ctx context.Context, runner *pipeline.Runner, text string, opts pipeline.Options) playEntry {
	e, d, _, err := runner.Build(ctx, text)
	if err != nil {
		return playEntry{text: text, err: err}
	}
	strokes, _, _ := runner.Flatten(ctx, d, opts)
	return playEntry{
		text:        e.String(),
		strokes:     strokes,
		total:       playback.Duration(strokes),
		interesting: expr.Interesting(e),
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// playModel is the bubbletea model of the play command. Pausing freezes
// both the clock and the expression list.
type playModel struct {
	entries []playEntry
	index   int
	clock   *playback.Clock
	last    time.Time
	width   int
	height  int
}

func newPlayModel(entries []playEntry, speed float64) playModel {
	return playModel{
		entries: entries,
		clock:   playback.NewClock(speed),
		width:   80,
		height:  24,
	}
}

func (m playModel) Init() tea.Cmd {
	return tick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p", " ":
			m.clock.TogglePause()
		case "r":
			m.clock.Reset()
		case "j", "down", "right":
			if !m.clock.Paused() && m.index < len(m.entries)-1 {
				m.index++
				m.clock.Reset()
			}
		case "k", "up", "left":
			if !m.clock.Paused() && m.index > 0 {
				m.index--
				m.clock.Reset()
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.clock.Tick(now.Sub(m.last))
		}
		m.last = now
		return m, tick()
	}
	return m, nil
}

// helpLine lists the keys that currently do something.
func helpLine(paused bool) string {
	if paused {
		return "p resume  r restart  q quit"
	}
	return "j/k switch  p pause  r restart  q quit"
}

func (m playModel) View() string {
	e := m.entries[m.index]
	var b strings.Builder

	b.WriteString(StyleTitle.Render(e.text))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.index+1, len(m.entries))))
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(playErrStyle.Render(errors.UserMessage(e.err)))
	} else {
		canvas := newBrailleCanvas(m.width, max(m.height-5, 4))
		canvas.drawSegments(fitViewport(e.strokes, canvas), playback.Scrub(e.strokes, m.clock.Budget()))
		b.WriteString(playInkStyle.Render(canvas.String()))
	}
	b.WriteString("\n\n")

	status := fmt.Sprintf("%.2f / %.2f", min(m.clock.Budget(), e.total), e.total)
	if m.clock.Paused() {
		status += "  paused"
	}
	b.WriteString(StyleNumber.Render(status))
	b.WriteString("  ")
	b.WriteString(playHelpStyle.Render(helpLine(m.clock.Paused())))
	return b.String()
}
