// Package config loads the cistercian TOML configuration file.
//
// A configuration file has one table per concern:
//
//	[glyph]
//	circle_resolution = 4
//	layout = "absolute"
//
//	[render]
//	formats = ["svg"]
//	scale = 80
//	margin = 20
//	line_width = 2
//
//	[playback]
//	speed = 2.0
//	fps = 25
//
//	[cache]
//	backend = "file"   # file, redis, mongo or none
//
//	[server]
//	addr = ":8080"
//
// Every key is optional; missing keys keep their [Default] value. Keys the
// decoder does not know are reported as an INVALID_CONFIG error so typos do
// not go unnoticed.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/pipeline"
	"github.com/algexeno/cistercian/pkg/playback"
	"github.com/algexeno/cistercian/pkg/render/sink"
)

// AppName names the configuration and cache directories.
const AppName = "cistercian"

// =============================================================================
// Config
// =============================================================================

// Config is the decoded configuration file.
type Config struct {
	Glyph    Glyph        `toml:"glyph"`
	Render   Render       `toml:"render"`
	Playback Playback     `toml:"playback"`
	Cache    cache.Config `toml:"cache"`
	Server   Server       `toml:"server"`
}

// Glyph configures building and flattening.
type Glyph struct {
	CircleResolution int    `toml:"circle_resolution"`
	Layout           string `toml:"layout"`
}

// Render configures the output sinks.
type Render struct {
	Formats   []string `toml:"formats"`
	Scale     float64  `toml:"scale"`
	Margin    float64  `toml:"margin"`
	LineWidth float64  `toml:"line_width"`
	Animate   bool     `toml:"animate"`
}

// Playback configures animated output and the play command.
type Playback struct {
	Speed float64 `toml:"speed"`
	FPS   int     `toml:"fps"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string such as "10s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a working configuration. The file cache lives in the
// user cache directory when one is available, otherwise caching is off.
func Default() Config {
	c := Config{
		Glyph: Glyph{
			CircleResolution: glyph.DefaultCircleResolution,
			Layout:           glyph.Absolute.String(),
		},
		Render: Render{
			Formats:   []string{pipeline.FormatSVG},
			Scale:     sink.DefaultScale,
			Margin:    sink.DefaultMargin,
			LineWidth: sink.DefaultLineWidth,
		},
		Playback: Playback{
			Speed: playback.DefaultSpeed,
			FPS:   playback.DefaultFPS,
		},
		Cache: cache.Config{Backend: cache.BackendFile},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
		},
	}
	if dir, err := CacheDir(); err == nil {
		c.Cache.Dir = dir
	} else {
		c.Cache.Backend = cache.BackendNone
	}
	return c
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the file at path over the defaults. An empty path loads
// [DefaultPath] if that file exists and the defaults otherwise.
func Load(path string) (Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return c, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return c, nil
		}
		return c, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := c.decode(string(data)); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	return c, nil
}

// Parse decodes configuration text over the defaults.
func Parse(text string) (Config, error) {
	c := Default()
	if err := c.decode(text); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	return c, nil
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

// Validate checks the values that cannot be checked by type alone.
func (c Config) Validate() error {
	opts := c.Options("")
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// Options converts the configuration into pipeline options for one
// expression.
func (c Config) Options(expression string) pipeline.Options {
	return pipeline.Options{
		Expression:       expression,
		CircleResolution: c.Glyph.CircleResolution,
		Layout:           c.Glyph.Layout,
		Formats:          append([]string(nil), c.Render.Formats...),
		Scale:            c.Render.Scale,
		Margin:           c.Render.Margin,
		LineWidth:        c.Render.LineWidth,
		Animate:          c.Render.Animate,
		Speed:            c.Playback.Speed,
		FPS:              c.Playback.FPS,
	}
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/cistercian/config.toml, falling back
// to ~/.config/cistercian/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the file cache directory using XDG standard
// (~/.cache/cistercian/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
