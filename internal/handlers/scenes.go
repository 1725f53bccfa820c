package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/spellbound/pkg/content"
)

// ScenesHandler lists scene IDs, primarily for debug navigation.
type ScenesHandler struct {
	store  *content.Store
	logger *slog.Logger
}

func NewScenesHandler(store *content.Store, logger *slog.Logger) *ScenesHandler {
	return &ScenesHandler{store: store, logger: logger}
}

// ServeHTTP handles GET /v1/scenes
func (h *ScenesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, h.store.SceneIDs())
}
