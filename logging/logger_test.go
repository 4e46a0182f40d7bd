package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cityroutes/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	l.Debug("hidden")
	l.Info("route added", "from", "A", "to", "B")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "route added", rec["msg"])
	assert.Equal(t, "A", rec["from"])
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)
	l.Debug("visible", "op", "shortest_path")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "op=shortest_path")
}

// TestNewWithWriter_AutoNonTerminal falls back to JSON for plain writers.
func TestNewWithWriter_AutoNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(config.LoggingConfig{Format: "auto"}, &buf).Info("x")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
