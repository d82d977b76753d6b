package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults: ok",
			want: Config{
				ScenarioPath: "testdata/scenario.json",
				RunTimeout:   time.Minute,
				LogLevel:     slog.LevelInfo,
				LogFormat:    "text",
			},
		},
		{
			name: "overrides: ok",
			env: map[string]string{
				"MARKET_SCENARIO":        "/tmp/case.json",
				"MARKET_RUN_TIMEOUT_SEC": "5",
				"MARKET_QUEUE_SIZE":      "8",
				"LOG_LEVEL":              "debug",
				"LOG_FORMAT":             "JSON",
			},
			want: Config{
				ScenarioPath: "/tmp/case.json",
				RunTimeout:   5 * time.Second,
				QueueSize:    8,
				LogLevel:     slog.LevelDebug,
				LogFormat:    "json",
			},
		},
		{
			name: "malformed values fall back to defaults: ok",
			env: map[string]string{
				"MARKET_RUN_TIMEOUT_SEC": "soon",
				"LOG_LEVEL":              "loud",
			},
			want: Config{
				ScenarioPath: "testdata/scenario.json",
				RunTimeout:   time.Minute,
				LogLevel:     slog.LevelInfo,
				LogFormat:    "text",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"MARKET_SCENARIO", "MARKET_RUN_TIMEOUT_SEC", "MARKET_QUEUE_SIZE", "LOG_LEVEL", "LOG_FORMAT"} {
				t.Setenv(key, tt.env[key])
			}

			assert.Equal(t, tt.want, Load())
		})
	}
}

func TestConfig_NewLogger(t *testing.T) {
	logger := Config{LogLevel: slog.LevelWarn, LogFormat: "json"}.NewLogger()

	assert.IsType(t, &slog.JSONHandler{}, logger.Handler())
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
}
