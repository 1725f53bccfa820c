package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/spellbound/pkg/content"
)

// SpellsHandler serves the spell catalog.
type SpellsHandler struct {
	store  *content.Store
	logger *slog.Logger
}

func NewSpellsHandler(store *content.Store, logger *slog.Logger) *SpellsHandler {
	return &SpellsHandler{store: store, logger: logger}
}

// ServeHTTP handles GET /v1/spells
func (h *SpellsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, h.store.Spells())
}
