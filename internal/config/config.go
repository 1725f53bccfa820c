package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// DataDir holds the static game content (scenes, talks, spells,
	// enemies, achievements).
	DataDir string

	StorageBackend string
	RedisURL       string
	SQLitePath     string
	GameStateTTL   time.Duration

	// DebugMode unlocks free navigation and the learn-all shortcut.
	DebugMode bool
}

func Load() (*Config, error) {
	// A local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DataDir:        getEnv("DATA_DIR", "./data"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
		SQLitePath:     getEnv("SQLITE_PATH", "./spellbound.db"),
		GameStateTTL:   parseDuration(getEnv("GAMESTATE_TTL", "1h")),
		DebugMode:      parseBool(getEnv("DEBUG_MODE", "false")),
	}

	switch cfg.StorageBackend {
	case BackendRedis, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (supported: redis, sqlite, memory)", cfg.StorageBackend)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
