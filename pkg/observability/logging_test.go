package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase DEBUG", input: "DEBUG", expected: slog.LevelDebug},
		{name: "padded warn", input: "  warn ", expected: slog.LevelWarn},
		{name: "empty string defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown level defaults to info", input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestInitLogger_JSONCarriesServiceAttribute(t *testing.T) {
	var buf bytes.Buffer

	logger := InitLogger(LogConfig{
		Level:   "info",
		Format:  "json",
		Output:  &buf,
		Service: "booking-predictor",
	})
	logger.Info("model loaded", "version", "rf-2024-01")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "booking-predictor", line["service"])
	assert.Equal(t, "model loaded", line["msg"])
	assert.Equal(t, "rf-2024-01", line["version"])
}

func TestInitLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer

	logger := InitLogger(LogConfig{Level: "warn", Format: "text", Output: &buf})
	logger.Debug("dropped")
	logger.Info("dropped too")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestInitLogger_SetsDefault(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info", Format: "json", Output: &bytes.Buffer{}})

	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}
