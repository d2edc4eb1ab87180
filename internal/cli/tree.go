package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/pipeline"
	"github.com/algexeno/cistercian/pkg/render/treeview"
)

// treeCommand creates the tree command that shows the shape tree of an
// expression.
func (c *CLI) treeCommand() *cobra.Command {
	var format, output string
	var collapse bool

	cmd := &cobra.Command{
		Use:   "tree EXPR",
		Short: "Show the shape tree of an expression",
		Long: `Print the shape tree built from an expression as a Graphviz digraph, or
render it to SVG, PNG or PDF. PNG and PDF need rsvg-convert on the PATH.`,
		Example: `  cistercian tree "(2 * 3)^1' + 0'"
  cistercian tree "3^2" --collapse -f svg -o tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), args[0], format, output, collapse)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout for dot)")
	cmd.Flags().BoolVar(&collapse, "collapse", false, "show digits as single nodes")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"dot", pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runTree(ctx context.Context, w io.Writer, expression, format, output string, collapse bool) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	e, d, _, err := runner.Build(ctx, expression)
	if err != nil {
		return err
	}
	dot := treeview.ToDOT(d, treeview.Options{Title: e.String(), Collapse: collapse})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case pipeline.FormatSVG:
		data, err = treeview.RenderSVG(ctx, dot)
	case pipeline.FormatPNG:
		data, err = treeview.RenderPNG(ctx, dot, 2)
	case pipeline.FormatPDF:
		data, err = treeview.RenderPDF(ctx, dot)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid tree format: %q (must be dot, svg, png or pdf)", format)
	}
	if err != nil {
		return fmt.Errorf("render tree: %w", err)
	}

	if output == "" {
		if format != "dot" {
			output = defaultOutputBase + "-tree." + format
		} else {
			_, err := w.Write(data)
			return err
		}
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	printSuccess(w, "Wrote %s", output)
	return nil
}
