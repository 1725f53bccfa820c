package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellbound/internal/storage"
	"github.com/jwebster45206/spellbound/pkg/content"
	"github.com/jwebster45206/spellbound/pkg/engine"
	"github.com/jwebster45206/spellbound/pkg/state"
)

type GameStateHandler struct {
	engine    *engine.Engine
	store     *content.Store
	storage   storage.Storage
	logger    *slog.Logger
	debugMode bool
}

func NewGameStateHandler(eng *engine.Engine, store *content.Store, st storage.Storage, logger *slog.Logger, debugMode bool) *GameStateHandler {
	return &GameStateHandler{
		engine:    eng,
		store:     store,
		storage:   st,
		logger:    logger,
		debugMode: debugMode,
	}
}

// CreateGameStateRequest defines the request body for creating a new game state
type CreateGameStateRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender,omitempty"`
}

// GameStateResponse wraps a session with its render-ready view and the
// narration produced by the last operation.
type GameStateResponse struct {
	GameState     *state.GameState      `json:"game_state"`
	View          *GameView             `json:"view"`
	Message       string                `json:"message,omitempty"`
	Unlocked      []content.Achievement `json:"unlocked,omitempty"`
	BattleStarted bool                  `json:"battle_started,omitempty"`
}

// ServeHTTP handles HTTP requests for game state operations
// Routes:
// POST /v1/gamestate               - Create new game state
// GET /v1/gamestate/{id}           - Read game state by ID
// DELETE /v1/gamestate/{id}        - Delete game state by ID
// POST /v1/gamestate/{id}/{action} - Apply a game action
func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/gamestate"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	segments := strings.SplitN(path, "/", 2)
	id, err := uuid.Parse(segments[0])
	if err != nil {
		h.logger.Warn("Invalid game state ID", "id", segments[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid game state ID format")
		return
	}

	if len(segments) == 2 {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Actions require POST")
			return
		}
		h.handleAction(w, r, id, segments[1])
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		h.logger.Warn("Method not allowed for game state endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	}
}

func (h *GameStateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Creating new game state")

	var req CreateGameStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.logger.Warn("Missing required field: name")
		writeError(w, h.logger, http.StatusBadRequest, "name field is required")
		return
	}

	gs := h.engine.NewGameState(strings.TrimSpace(req.Name), req.Gender)
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		h.logger.Error("Failed to save new game state", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
		return
	}

	h.logger.Info("Game state created", "uuid", gs.ID, "name", req.Name)
	writeJSON(w, h.logger, http.StatusCreated, GameStateResponse{
		GameState: gs,
		View:      NewGameView(h.store, gs),
	})
}

func (h *GameStateHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load game state", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load game state")
		return
	}
	if gs == nil {
		writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, GameStateResponse{
		GameState: gs,
		View:      NewGameView(h.store, gs),
	})
}

func (h *GameStateHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete game state", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete game state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
