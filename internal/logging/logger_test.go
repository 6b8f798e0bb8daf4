package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseLevel(tt.input), "level=%q", tt.input)
	}
}

func TestJSONLoggerAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info", Format: "json"})

	ctx := WithRunID(context.Background())
	logger.With(slog.String("component", "test")).InfoContext(ctx, "обработка файла", slog.String("file", "a.xlsx"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "обработка файла", entry["msg"])
	assert.Equal(t, "a.xlsx", entry["file"])
	assert.Equal(t, "test", entry["component"])

	id, ok := entry["run_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, RunID(ctx), id)
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", Format: "text"})

	logger.Info("скрыто")
	assert.Zero(t, buf.Len())

	logger.Warn("видно")
	assert.Contains(t, buf.String(), "видно")
	assert.NotContains(t, buf.String(), "run_id")
}

func TestRunIDMissing(t *testing.T) {
	assert.Empty(t, RunID(context.Background()))
	assert.NotEqual(t, RunID(WithRunID(context.Background())), RunID(WithRunID(context.Background())))
}
