package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/algexeno/cistercian/pkg/pipeline"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("drew") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("flattened") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("flattened") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLogStages(t *testing.T) {
	result := &pipeline.Result{Text: "3^2"}
	result.Stats.StrokeCount = 7
	result.Stats.RenderTime = 12 * time.Millisecond
	result.CacheInfo.RenderHit = true

	var buf bytes.Buffer
	logStages(newLogger(&buf, log.DebugLevel), result, []string{"svg", "png"})

	out := buf.String()
	for _, want := range []string{"stage timings", "3^2", "strokes=7", "render=12ms", "cached=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	logStages(newLogger(&buf, log.InfoLevel), result, nil)
	if buf.Len() != 0 {
		t.Errorf("stage timings logged at info level:\n%s", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}
