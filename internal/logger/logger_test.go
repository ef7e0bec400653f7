package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
}

func TestForDebug(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ForDebug(true).LogLevel())
	assert.Equal(t, slog.LevelInfo, ForDebug(false).LogLevel())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON}, &buf)
	l.Debug("hidden")
	l.Warn("package failed", "package", "Broken.esp")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"package":"Broken.esp"`)
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	l := Discard()
	assert.Same(t, l, FromContext(WithLogger(context.Background(), l)))
}
