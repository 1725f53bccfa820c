package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.StorageBackend != BackendMemory {
		t.Errorf("expected memory backend by default, got %q", cfg.StorageBackend)
	}
	if cfg.GameStateTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", cfg.GameStateTTL)
	}
	if cfg.DebugMode {
		t.Error("expected debug mode off by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("GAMESTATE_TTL", "30m")
	t.Setenv("DEBUG_MODE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.StorageBackend != BackendRedis {
		t.Errorf("expected redis backend, got %q", cfg.StorageBackend)
	}
	if cfg.GameStateTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.GameStateTTL)
	}
	if !cfg.DebugMode {
		t.Error("expected debug mode on")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	if _, err := Load(); err == nil {
		t.Error("expected error for unsupported backend")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
