package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/spellbound/internal/config"
	"github.com/jwebster45206/spellbound/internal/handlers"
	"github.com/jwebster45206/spellbound/internal/logger"
	"github.com/jwebster45206/spellbound/internal/middleware"
	"github.com/jwebster45206/spellbound/internal/storage"
	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/engine"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logr := logger.Setup(cfg)

	logr.Info("Starting Spellbound API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"data_dir", cfg.DataDir,
		"debug_mode", cfg.DebugMode)

	store, err := content.NewStore(cfg.DataDir, logr)
	if err != nil {
		logr.Error("Failed to load game content", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	var st storage.Storage
	switch cfg.StorageBackend {
	case config.BackendRedis:
		redisStorage := storage.NewRedisStorage(cfg.RedisURL, cfg.GameStateTTL, logr)
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := redisStorage.WaitForConnection(waitCtx); err != nil {
			waitCancel()
			logr.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		waitCancel()
		st = redisStorage
	case config.BackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(cfg.SQLitePath, logr)
		if err != nil {
			logr.Error("Failed to open SQLite storage", "error", err, "path", cfg.SQLitePath)
			os.Exit(1)
		}
		st = sqliteStorage
	default:
		logr.Warn("Using in-memory storage; sessions are lost on restart")
		st = storage.NewMockStorage()
	}
	logr.Info("Storage ready", "backend", cfg.StorageBackend)

	eng := engine.New(store, engine.NewRand(), logr)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(st, logr))

	gameStateHandler := handlers.NewGameStateHandler(eng, store, st, logr, cfg.DebugMode)
	mux.Handle("/v1/gamestate", gameStateHandler)
	mux.Handle("/v1/gamestate/", gameStateHandler)

	mux.Handle("/v1/spells", handlers.NewSpellsHandler(store, logr))
	mux.Handle("/v1/scenes", handlers.NewScenesHandler(store, logr))
	mux.Handle("/v1/achievements", handlers.NewAchievementsHandler(store, logr))
	mux.Handle("/v1/reload", handlers.NewReloadHandler(store, logr))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(logr, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("Server is shutting down...")

	if err := st.Close(); err != nil {
		logr.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logr.Info("Server exited")
}
