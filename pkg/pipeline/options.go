package pipeline

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/playback"
	"github.com/algexeno/cistercian/pkg/render/sink"
)

// Upper bounds on render options accepted from users.
const (
	MaxScale     = 1000.0
	MaxMargin    = 1000.0
	MaxLineWidth = 100.0
	MaxSpeed     = 1000.0
	MaxFPS       = 100
)

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests and TOML for
// configuration files.
type Options struct {
	Expression string `json:"expression" toml:"-"`

	// Build and flatten options
	CircleResolution int    `json:"circle_resolution,omitempty" toml:"circle_resolution"`
	Layout           string `json:"layout,omitempty" toml:"layout"`

	// Render options
	Formats   []string `json:"formats,omitempty" toml:"formats"`
	Scale     float64  `json:"scale,omitempty" toml:"scale"`
	Margin    float64  `json:"margin,omitempty" toml:"margin"`
	LineWidth float64  `json:"line_width,omitempty" toml:"line_width"`
	Animate   bool     `json:"animate,omitempty" toml:"animate"`
	Speed     float64  `json:"speed,omitempty" toml:"speed"`
	FPS       int      `json:"fps,omitempty" toml:"fps"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// Progress, if set, is called before each format is rendered. Formats
	// served from the cache are not reported.
	Progress func(format string) `json:"-" toml:"-"`

	validated bool
	mode      glyph.Mode
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent. All failures are client errors from pkg/errors.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateExpressionText(o.Expression); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRender checks everything except the expression text.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	if err := o.Settings().Validate(); err != nil {
		return err
	}
	mode, err := glyph.ParseMode(o.Layout)
	if err != nil {
		return err
	}
	o.mode = mode
	o.Layout = mode.String()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, r := range []struct {
		name     string
		v        float64
		lo, hi float64
		open   bool
	}{
		{"scale", o.Scale, 0, MaxScale, true},
		{"margin", o.Margin, 0, MaxMargin, false},
		{"line width", o.LineWidth, 0, MaxLineWidth, true},
		{"speed", o.Speed, 0, MaxSpeed, true},
	} {
		if err := checkRange(r.name, r.v, r.lo, r.hi, r.open); err != nil {
			return err
		}
	}
	if o.FPS <= 0 || o.FPS > MaxFPS {
		return errors.New(errors.ErrCodeInvalidConfig, "fps must be in 1..%d, got %d", MaxFPS, o.FPS)
	}
	return nil
}

// checkRange reports v outside [lo, hi], or (lo, hi] when open is set.
// NaN and infinities are always out of range.
func checkRange(name string, v, lo, hi float64, open bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || (open && v == lo) || v > hi {
		if open {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be in (%g, %g], got %g", name, lo, hi, v)
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s must be in [%g, %g], got %g", name, lo, hi, v)
	}
	return nil
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.CircleResolution == 0 {
		o.CircleResolution = glyph.DefaultCircleResolution
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		formats = append(formats, NormalizeFormat(f))
	}
	o.Formats = formats
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Margin == 0 {
		o.Margin = sink.DefaultMargin
	}
	if o.LineWidth == 0 {
		o.LineWidth = sink.DefaultLineWidth
	}
	if o.Speed == 0 {
		o.Speed = playback.DefaultSpeed
	}
	if o.FPS == 0 {
		o.FPS = playback.DefaultFPS
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Settings returns the flattener settings.
func (o *Options) Settings() glyph.Settings {
	return glyph.Settings{CircleResolution: o.CircleResolution}
}

// Mode returns the layout mode. Valid after ValidateForRender.
func (o *Options) Mode() glyph.Mode {
	return o.mode
}

// Frame returns the canvas settings of the image sinks.
func (o *Options) Frame() sink.Frame {
	return sink.Frame{Scale: o.Scale, Margin: o.Margin, LineWidth: o.LineWidth}
}

// ArtifactKeyOpts returns cache key options for one format. Only the
// options that change that format's output are included.
func (o *Options) ArtifactKeyOpts(format, title string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Title = title
		k.Scale, k.Margin, k.LineWidth = o.Scale, o.Margin, o.LineWidth
		if o.Animate {
			k.Animated, k.Speed = true, o.Speed
		}
	case FormatPDF:
		k.Title = title
		k.Scale, k.Margin, k.LineWidth = o.Scale, o.Margin, o.LineWidth
	case FormatPNG:
		k.Scale, k.Margin, k.LineWidth = o.Scale, o.Margin, o.LineWidth
	case FormatGIF:
		k.Scale, k.Margin, k.LineWidth = o.Scale, o.Margin, o.LineWidth
		k.Speed, k.FPS = o.Speed, o.FPS
	case FormatJSON:
		k.Title = title
		k.Layout, k.CircleResolution = o.Layout, o.CircleResolution
	}
	return k
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, gif, pdf, json)", format)
	}
	return nil
}

// NormalizeFormat returns the canonical spelling of a format name.
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
