package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger // nil без архива
	version string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health godoc
// @Summary Проверка состояния сервиса
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "status"
// @Failure 503 {object} map[string]interface{} "Архив недоступен"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := jsonResponse{"status": "ok", "version": h.version, "archive": "disabled"}
	status := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logRequestError(r, "archive ping failed", err)
			resp["status"] = "degraded"
			resp["archive"] = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			resp["archive"] = "ok"
		}
	}

	if err := writeJSON(w, status, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
