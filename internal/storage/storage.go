package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellbound/pkg/state"
)

// Storage persists game sessions. Static game content is loaded
// separately by the content store; only mutable session state lives here.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveGameState writes a session, stamping UpdatedAt.
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error

	// LoadGameState returns (nil, nil) when the session does not exist.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)

	DeleteGameState(ctx context.Context, id uuid.UUID) error
}
