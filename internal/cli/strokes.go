package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/pipeline"
	"github.com/algexeno/cistercian/pkg/playback"
	"github.com/algexeno/cistercian/pkg/render/sink"
)

// strokesCommand creates the strokes command that prints the flattened
// stroke list.
func (c *CLI) strokesCommand() *cobra.Command {
	var flags renderFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "strokes EXPR",
		Short: "Print the stroke list of an expression",
		Long: `Print the strokes of an expression in drawing order, with their weight,
length and playback timing. Pen lifts between disconnected strokes cost 0.5
time units.`,
		Example: `  cistercian strokes "1' * 0'"
  cistercian strokes "3^2" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStrokes(cmd.Context(), cmd.OutOrStdout(), args[0], flags, asJSON)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func (c *CLI) runStrokes(ctx context.Context, w io.Writer, expression string, flags renderFlags, asJSON bool) error {
	opts := c.options(expression, flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	e, d, _, err := runner.Build(ctx, opts.Expression)
	if err != nil {
		return err
	}
	strokes, extent, _ := runner.Flatten(ctx, d, opts)

	if asJSON {
		data, err := sink.RenderJSON(strokes, extent,
			sink.WithJSONExpression(e.String()),
			sink.WithJSONLayout(opts.Mode(), opts.Settings()))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintln(w, StyleTitle.Render(e.String()))
	fmt.Fprintln(w, strokeTable(strokes))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d strokes · extent %g · duration %.3f",
		len(strokes), extent, playback.Duration(strokes))))
	return nil
}

// strokeTable renders strokes as a bordered table.
func strokeTable(strokes []glyph.Stroke) string {
	timing := playback.Schedule(strokes)
	rows := make([][]string, len(strokes))
	for i, s := range strokes {
		rows[i] = []string{
			strconv.Itoa(i),
			s.From.String(),
			s.To.String(),
			fmtFloat(s.Weight),
			fmtFloat(s.Length()),
			fmtFloat(timing[i].Start),
			fmtFloat(timing[i].Duration),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "From", "To", "Weight", "Length", "Start", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

