package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jwebster45206/spellbound/pkg/state"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_states (
	id TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// SQLiteStorage keeps sessions in a local SQLite file, for single-node
// deployments that should survive restarts without a Redis dependency.
type SQLiteStorage struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteStorage implements Storage interface
var _ Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (creating if needed) the database at path and
// applies the schema.
func NewSQLiteStorage(path string, logger *slog.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close sqlite database", "error", err)
		return err
	}
	s.logger.Info("SQLite database closed")
	return nil
}

func (s *SQLiteStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	gs.UpdatedAt = time.Now()

	data, err := json.Marshal(gs)
	if err != nil {
		s.logger.Error("Failed to marshal gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO game_states (id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		id.String(), data, gs.UpdatedAt)
	if err != nil {
		s.logger.Error("Failed to save gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM game_states WHERE id = ?`, id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("Gamestate not found", "uuid", id)
		return nil, nil // Return nil for not found
	}
	if err != nil {
		s.logger.Error("Failed to load gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		s.logger.Error("Failed to unmarshal gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}

	return &gs, nil
}

func (s *SQLiteStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM game_states WHERE id = ?`, id.String()); err != nil {
		s.logger.Error("Failed to delete gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
