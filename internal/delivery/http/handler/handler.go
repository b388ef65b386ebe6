package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/docfeed-crawler/internal/delivery/http/response"
)

type Handler struct {
	startedAt time.Time
}

func NewHandler(startedAt time.Time) *Handler {
	return &Handler{startedAt: startedAt}
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.HealthResponse{
		Status:    "ok",
		StartedAt: h.startedAt,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
