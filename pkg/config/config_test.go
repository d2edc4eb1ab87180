package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/errors"
)

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Glyph.CircleResolution != 4 {
		t.Errorf("CircleResolution = %d, want 4", c.Glyph.CircleResolution)
	}
	if c.Cache.Backend != cache.BackendFile || c.Cache.Dir != "/tmp/xdg-cache/cistercian" {
		t.Errorf("Cache = %+v, want file cache in /tmp/xdg-cache/cistercian", c.Cache)
	}
	if c.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", c.Server.ReadTimeout)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse(`
[glyph]
circle_resolution = 32
layout = "scaled"

[render]
formats = ["svg", "gif"]
line_width = 3

[playback]
speed = 4.5

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[server]
addr = "127.0.0.1:9000"
write_timeout = "2m"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.Glyph = Glyph{CircleResolution: 32, Layout: "scaled"}
	want.Render.Formats = []string{"svg", "gif"}
	want.Render.LineWidth = 3
	want.Playback.Speed = 4.5
	want.Cache.Backend = cache.BackendRedis
	want.Cache.RedisAddr = "localhost:6379"
	want.Server.Addr = "127.0.0.1:9000"
	want.Server.WriteTimeout = Duration{2 * time.Minute}

	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown key", "[glyph]\ncircle_res = 3\n"},
		{"unknown table", "[colors]\nink = \"red\"\n"},
		{"syntax", "[glyph\n"},
		{"bad resolution", "[glyph]\ncircle_resolution = -2\n"},
		{"bad layout", "[glyph]\nlayout = \"sideways\"\n"},
		{"bad format", "[render]\nformats = [\"bmp\"]\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[playback]\nfps = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Playback.FPS != 12 {
		t.Errorf("FPS = %d, want 12", c.Playback.FPS)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing explicit path) = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// No file: defaults.
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Load without file mismatch (-want +got):\n%s", diff)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cistercian", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[glyph]\ncircle_resolution = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Glyph.CircleResolution != 16 {
		t.Errorf("CircleResolution = %d, want 16", c.Glyph.CircleResolution)
	}
}

func TestOptions(t *testing.T) {
	c := Default()
	c.Render.Formats = []string{"png"}
	c.Playback.FPS = 10

	opts := c.Options("1' * 0'")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Expression != "1' * 0'" || opts.FPS != 10 || opts.Formats[0] != "png" {
		t.Errorf("Options = %+v", opts)
	}

	opts.Formats[0] = "gif"
	if c.Render.Formats[0] != "png" {
		t.Error("Options should not share the formats slice with the config")
	}
}
