package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestGetFallsBackToModuleInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Main:      debug.Module{Path: "github.com/algexeno/cistercian", Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}, true)

	want := Info{Version: "v0.3.1", Commit: "abc123", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.24.0"}
	if got := Get(); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetPrefersLdflags(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Main:      debug.Module{Version: "v0.0.1"},
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	}, true)
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)
	Version, Commit = "v1.0.0", "fff000"

	got := Get()
	if got.Version != "v1.0.0" || got.Commit != "fff000" {
		t.Errorf("Get() = %+v, want ldflags values", got)
	}
}

func TestGetWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil, false)
	want := Info{Version: Version, Commit: Commit, Date: Date, GoVersion: "unknown"}
	if got := Get(); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if tmpl := Template(); !strings.HasPrefix(tmpl, "{{.Name}} "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
}

func TestGetIgnoresDevelVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)
	if got := Get().Version; got != Version {
		t.Errorf("Version = %q, want %q", got, Version)
	}
}
