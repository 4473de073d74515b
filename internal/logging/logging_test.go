package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)
	l.Debug("hidden")
	l.Component("window").Info("shown", "rows", 20)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "component=window")
	assert.Contains(t, buf.String(), "rows=20")

	l.SetLevel(slog.LevelDebug)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "level=DEBUG msg=\"now visible\"")
	assert.NoError(t, l.Close())
}

func TestOpen(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "logs", "longview.log")
	l, err := Open(path, slog.LevelWarn)
	require.NoError(t, err)

	slog.Warn("through default")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "through default")
	assert.NotContains(t, string(data), "logger initialized")
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "longview.log", filepath.Base(DefaultPath()))
}
