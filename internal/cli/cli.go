package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/pkg/buildinfo"
	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/config"
	"github.com/algexeno/cistercian/pkg/observability"
	"github.com/algexeno/cistercian/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config config.Config

	configPath string
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Cistercian draws Algexeno numerals",
		Long: `Cistercian turns arithmetic expressions over the Algexeno numerals into
stroke drawings in the style of the medieval Cistercian number glyphs, and
renders them as SVG, PNG, animated GIF, PDF or JSON.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Register()
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cistercian/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.strokesCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner on the configured cache backend.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cch, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, c.Config.Cache.Keyer(), c.Logger), nil
}

// openCache opens the configured cache. A file cache that cannot be
// created falls back to no caching; remote backends must be reachable.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cch, err := cache.Open(ctx, c.Config.Cache)
	if err != nil {
		if c.Config.Cache.Backend == "" || c.Config.Cache.Backend == cache.BackendFile {
			c.Logger.Warn("file cache unavailable, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return nil, fmt.Errorf("open %s cache: %w", c.Config.Cache.Backend, err)
	}
	return cch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderFlags holds the rendering flags shared by draw, strokes and play.
// Zero values mean "use the configuration file".
type renderFlags struct {
	layout     string
	resolution int
	formats    string
	scale      float64
	margin     float64
	lineWidth  float64
	animate    bool
	speed      float64
	fps        int
	refresh    bool
}

func (f *renderFlags) register(cmd *cobra.Command, withFormats bool) {
	cmd.Flags().StringVar(&f.layout, "layout", "", "layout mode: absolute (default), scaled")
	cmd.Flags().IntVarP(&f.resolution, "resolution", "r", 0, "strokes per circle (default 4)")
	_ = cmd.RegisterFlagCompletionFunc("layout", completeLayouts)
	if !withFormats {
		return
	}
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, gif, pdf, json (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per glyph unit (default 80)")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "margin in pixels (default 20)")
	cmd.Flags().Float64Var(&f.lineWidth, "line-width", 0, "stroke width in pixels (default 2)")
	cmd.Flags().BoolVar(&f.animate, "animate", false, "animate SVG output in drawing order")
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "playback speed in time units per second (default 2)")
	cmd.Flags().IntVar(&f.fps, "fps", 0, "GIF frames per second (default 25)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached renders")
}

// options merges flags over the configuration file.
func (c *CLI) options(expression string, f renderFlags) pipeline.Options {
	opts := c.Config.Options(expression)
	opts.Logger = c.Logger
	if f.layout != "" {
		opts.Layout = f.layout
	}
	if f.resolution != 0 {
		opts.CircleResolution = f.resolution
	}
	if f.formats != "" {
		opts.Formats = parseFormats(f.formats)
	}
	if f.scale != 0 {
		opts.Scale = f.scale
	}
	if f.margin != 0 {
		opts.Margin = f.margin
	}
	if f.lineWidth != 0 {
		opts.LineWidth = f.lineWidth
	}
	if f.animate {
		opts.Animate = true
	}
	if f.speed != 0 {
		opts.Speed = f.speed
	}
	if f.fps != 0 {
		opts.FPS = f.fps
	}
	opts.Refresh = f.refresh
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
