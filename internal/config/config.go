package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ScenarioPath string
	RunTimeout   time.Duration
	// QueueSize overrides the scenario's queue_size_per_producer when positive.
	QueueSize int
	LogLevel  slog.Level
	LogFormat string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiEnv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int env, using default", slog.String("key", key), slog.String("value", v), slog.Int("default", def))
		return def
	}
	return n
}

func levelEnv(key string, def slog.Level) slog.Level {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level env, using default", slog.String("key", key), slog.String("value", v))
		return def
	}
	return level
}

func Load() Config {
	return Config{
		ScenarioPath: getenv("MARKET_SCENARIO", "testdata/scenario.json"),
		RunTimeout:   time.Duration(atoiEnv("MARKET_RUN_TIMEOUT_SEC", 60)) * time.Second,
		QueueSize:    atoiEnv("MARKET_QUEUE_SIZE", 0),
		LogLevel:     levelEnv("LOG_LEVEL", slog.LevelInfo),
		LogFormat:    strings.ToLower(getenv("LOG_FORMAT", "text")),
	}
}

// NewLogger builds the process logger; LogFormat "json" selects the JSON handler.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
