package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qj0r9j0vc2/silence-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/silence-bridge/internal/infrastructure/config"
)

// ReloadHandler handles configuration reload requests.
type ReloadHandler struct {
	configManager *config.ConfigManager
	logger        logger.Logger
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(cm *config.ConfigManager, log logger.Logger) *ReloadHandler {
	return &ReloadHandler{
		configManager: cm,
		logger:        log,
	}
}

// ServeHTTP handles POST /-/reload requests, following the Prometheus
// reload endpoint convention.
func (h *ReloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.configManager.TryReload(); err != nil {
		if errors.Is(err, config.ErrRequiresRestart) {
			// Static section changed; keep serving with the old values.
			h.writeJSON(w, http.StatusOK, map[string]string{
				"status": "unchanged",
				"note":   "configuration change requires restart",
			})
			return
		}

		h.logger.Error("manual reload failed", "error", err.Error())
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func (h *ReloadHandler) writeJSON(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode reload response", "error", err.Error())
	}
}
