package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/storekeeper/pkg/api"
)

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	db      Pinger
	version string
}

// NewHealthHandler создает новый handler для health check. db может быть nil.
func NewHealthHandler(logger *slog.Logger, db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		db:      db,
		version: version,
	}
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error("Health check failed", "error", err)
			writeJSON(w, h.logger, http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable", Version: h.version})
			return
		}
	}

	writeJSON(w, h.logger, http.StatusOK, api.HealthResponse{Status: "ok", Version: h.version})
}
