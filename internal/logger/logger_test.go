package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, closeFn, err := New(Options{Service: "gomarketplace", Level: "warn", Path: path})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "key", "cart")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.Equal(t, "gomarketplace", rec["service"])
	require.Equal(t, "cart", rec["key"])
}

func TestNewWithoutPathDiscards(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	log, closeFn, err := New(Options{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Debug("nowhere")
	require.NoError(t, closeFn())
}

func TestNewAddSource(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "app.log")
	log, closeFn, err := New(Options{Path: path, AddSource: true})
	require.NoError(t, err)
	log.Info("where")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	src, ok := rec[slog.SourceKey].(map[string]any)
	require.True(t, ok, "source attr missing: %s", data)
	require.Contains(t, src["file"], "logger_test.go")
}
