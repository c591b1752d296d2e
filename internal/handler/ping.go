package handler

import (
	"errors"
	"net/http"

	"github.com/InQaaaaGit/shorten_form.git/internal/client"
	"go.uber.org/zap"
)

// HandlePing проверяет доступность сервиса сокращения
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	err := h.health.Health(r.Context())
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, client.ErrNotConfigured):
		h.logger.Error("Shortening service is not configured", zap.Error(err))
		http.Error(w, "Shortening service is not configured", http.StatusInternalServerError)
	default:
		h.logger.Warn("Shortening service health check failed", zap.Error(err))
		http.Error(w, "Shortening service unavailable", http.StatusServiceUnavailable)
	}
}
