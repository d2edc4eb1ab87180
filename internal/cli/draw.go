package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/pipeline"
)

// defaultOutputBase names output files when -o is not given.
const defaultOutputBase = "glyph"

// drawCommand creates the draw command for writing rendered files.
func (c *CLI) drawCommand() *cobra.Command {
	var flags renderFlags
	var output string

	cmd := &cobra.Command{
		Use:   "draw EXPR",
		Short: "Render an expression to image files",
		Long: `Render an expression to SVG, PNG, animated GIF, PDF or JSON.

With a single format, -o names the output file. With several formats, -o is
a base path and each file gets the format as extension.

PDF output needs rsvg-convert (librsvg) on the PATH.`,
		Example: `  cistercian draw "(2 * 3)^1' + 0'"
  cistercian draw "1' * 0'" -f svg,gif -o chain
  cistercian draw "3^2" --layout scaled --resolution 32 -o three.png -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraw(cmd.Context(), cmd.OutOrStdout(), args[0], output, flags)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")

	return cmd
}

func (c *CLI) runDraw(ctx context.Context, w io.Writer, expression, output string, flags renderFlags) error {
	opts := c.options(expression, flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newRenderSpinner(ctx, os.Stderr, opts.Formats)
	if !c.verbose {
		opts.Progress = spinner.Advance
		spinner.Start()
	}
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	printDrawSummary(w, result, opts.Formats, paths)
	logStages(c.Logger, result, opts.Formats)
	return nil
}

// outputPaths maps each format to its output file.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output == "" {
		output = defaultOutputBase
	}

	if len(formats) == 1 {
		f := formats[0]
		if filepath.Ext(output) == "" {
			output += "." + f
		}
		paths[f] = output
		return paths
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	if !pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(output), ".")] {
		base = output
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeOutput(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
