package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/pipeline"
)

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Print a shell completion script",
		Long: `Print a completion script for cistercian. Besides commands and flags,
it completes --format, --layout and the tree --format values.

  source <(cistercian completion bash)
  cistercian completion zsh > "${fpath[1]}/_cistercian"
  cistercian completion fish > ~/.config/fish/completions/cistercian.fish
  cistercian completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeFormats completes a comma-separated format list, offering only
// formats not already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	given := strings.Split(toComplete, ",")
	prefix := strings.Join(given[:len(given)-1], ",")
	if prefix != "" {
		prefix += ","
	}
	used := make(map[string]bool, len(given))
	for _, f := range given[:len(given)-1] {
		used[pipeline.NormalizeFormat(f)] = true
	}

	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatGIF, pipeline.FormatPDF, pipeline.FormatJSON} {
		if !used[f] {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeLayouts completes the --layout flag.
func completeLayouts(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		glyph.Absolute.String() + "\tgrow to the right (default)",
		glyph.Scaled.String() + "\tfit every composition into one cell",
	}, cobra.ShellCompDirectiveNoFileComp
}
