package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type HealthHandler struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewHealthHandler(db *sql.DB, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthCheck reports service and database status.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{"status": "ok", "database": "ok"}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check database ping failed")
		response["status"] = "degraded"
		response["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}
