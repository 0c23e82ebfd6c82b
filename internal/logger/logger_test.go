package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lingua.log")

	l, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)

	l.Debug("generation started", "token", 3)
	l.With("session", "abc").Warn("stale result dropped")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"generation started"`)
	assert.Contains(t, out, `"token":3`)
	assert.Contains(t, out, `"session":"abc"`)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lingua.log")

	l, err := New(Config{Level: "warn", File: path})
	require.NoError(t, err)

	l.Info("hidden")
	l.Error("shown")
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.True(t, strings.Contains(string(data), "shown"))
}

func TestNewOff(t *testing.T) {
	l, err := New(Config{File: "OFF"})
	require.NoError(t, err)
	l.Error("goes nowhere")
}

func TestDefaultPathUsesStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lingua", "lingua.log"), p)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
