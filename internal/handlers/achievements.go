package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/spellbound/pkg/content"
)

// AchievementsHandler serves the achievement definitions.
type AchievementsHandler struct {
	store  *content.Store
	logger *slog.Logger
}

func NewAchievementsHandler(store *content.Store, logger *slog.Logger) *AchievementsHandler {
	return &AchievementsHandler{store: store, logger: logger}
}

// ServeHTTP handles GET /v1/achievements
func (h *AchievementsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, h.store.Achievements())
}
