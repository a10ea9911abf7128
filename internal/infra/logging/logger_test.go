package logging

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/clientive/clientive/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("import", "test message")

	// Assert
	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[import]")
	assert.Contains(t, string(content), "test message")
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("feed", "debug message")
	logger.Info("feed", "info message")
	logger.Warn("feed", "warn message")
	logger.Error("feed", "error message")

	// Assert
	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_MirrorWithoutFile(t *testing.T) {
	// Setup
	var buf bytes.Buffer
	logger := New("", slog.LevelDebug).WithMirror(&buf)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC) }

	// Execute
	logger.Debug("http", "GET /api/calendar 200")

	// Assert
	assert.Equal(t, "[2025-12-30 09:32:51] [DEBUG] [http] GET /api/calendar 200\n", buf.String())
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Should not panic
	logger.Info("import", "test message")
	logger.Error("import", "error message")
}
