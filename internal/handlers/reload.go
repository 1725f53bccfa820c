package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/spellbound/pkg/content"
)

// ReloadHandler re-reads game content from disk. On failure the store keeps
// serving the previous catalog, so a bad deploy never takes content down.
type ReloadHandler struct {
	store  *content.Store
	logger *slog.Logger
}

func NewReloadHandler(store *content.Store, logger *slog.Logger) *ReloadHandler {
	return &ReloadHandler{store: store, logger: logger}
}

// ServeHTTP handles POST /v1/reload
func (h *ReloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	if err := h.store.Reload(); err != nil {
		h.logger.Error("Content reload failed", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Reload failed: "+err.Error())
		return
	}

	h.logger.Info("Content reloaded")
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "reloaded"})
}
