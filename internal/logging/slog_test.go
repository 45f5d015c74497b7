package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dosdefrag/defrag"
)

func TestSlogLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewText(buf, slog.LevelDebug)

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "phase", "analyzing")
	logger.Warn("warn message")
	logger.Error("error message", "err", "boom")

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "phase=analyzing")
	assert.Contains(t, output, "level=WARN")
	assert.Contains(t, output, "err=boom")
}

func TestSlogLogger_FiltersBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewText(buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewText(buf, slog.LevelInfo).With("run_id", "abc")
	logger.Info("restart")
	assert.Contains(t, buf.String(), "run_id=abc")
}

func TestOpenFile(t *testing.T) {
	logger, closer, err := OpenFile("", slog.LevelInfo)
	require.NoError(t, err)
	require.Equal(t, defrag.NopLogger, logger)
	require.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "defrag.log")
	logger, closer, err = OpenFile(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("phase changed", "to", "finished")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to=finished")

	_, _, err = OpenFile(filepath.Join(t.TempDir(), "missing", "x.log"), slog.LevelInfo)
	require.Error(t, err)
}
