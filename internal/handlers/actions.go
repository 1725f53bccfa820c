package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellbound/pkg/engine"
	"github.com/jwebster45206/spellbound/pkg/state"
)

// ActionRequest covers the bodies of every action route; each route reads
// only the fields it needs.
type ActionRequest struct {
	Choice    int      `json:"choice"`
	Scene     string   `json:"scene,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Spell     string   `json:"spell,omitempty"`
	All       bool     `json:"all,omitempty"`
	ItemAct   string   `json:"item_action,omitempty"`
	Item      string   `json:"item,omitempty"`
	Container string   `json:"container,omitempty"`
}

// handleAction loads the session, applies one engine operation and saves
// the result. Engine-level no-ops still return 200 with the fresh view.
func (h *GameStateHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID, action string) {
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

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid JSON in action body", "action", action, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	res, err := h.applyAction(gs, action, &req)
	if err != nil {
		h.logger.Warn("Action rejected", "action", action, "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if res == nil {
		writeError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Unknown action %q", action))
		return
	}

	if err := h.storage.SaveGameState(r.Context(), id, gs); err != nil {
		h.logger.Error("Failed to save game state", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save game state")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, GameStateResponse{
		GameState:     gs,
		View:          NewGameView(h.store, gs),
		Message:       res.Event(),
		Unlocked:      res.Unlocked,
		BattleStarted: res.BattleStarted,
	})
}

// applyAction returns (nil, nil) for an unknown action name.
func (h *GameStateHandler) applyAction(gs *state.GameState, action string, req *ActionRequest) (*engine.Result, error) {
	switch action {
	case "choice":
		return h.engine.ApplyChoice(gs, req.Choice)
	case "talk":
		return h.engine.ApplyTalkChoice(gs, req.Choice)
	case "navigate":
		return h.engine.Navigate(gs, req.Scene, h.debugMode)
	case "undo":
		return h.engine.Undo(gs), nil
	case "dodge":
		return h.engine.SubmitDodge(gs)
	case "skills":
		return h.engine.SubmitSkills(gs, req.Skills)
	case "item":
		return h.engine.ItemAction(gs, req.ItemAct, req.Item, req.Container)
	case "item-undo":
		return h.engine.UndoItemAction(gs), nil
	case "learn":
		if req.All {
			if !h.debugMode {
				return nil, fmt.Errorf("learning all spells requires debug mode")
			}
			return h.engine.LearnAllSpells(gs), nil
		}
		return h.engine.LearnSpell(gs, req.Spell)
	case "restore":
		return h.engine.RestoreStats(gs), nil
	default:
		return nil, nil
	}
}
