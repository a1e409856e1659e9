package system

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

const (
	apiTitle   = "Sentinel-2 Crop Stress Detection API"
	apiVersion = "1.0.0"
)

type Handler struct {
	logger      *slog.Logger
	engineReady bool
}

// NewHandler reports process health. engineReady reflects whether the Earth
// Engine session was initialized at startup; it does not change afterwards.
func NewHandler(logger *slog.Logger, engineReady bool) *Handler {
	return &Handler{logger: logger, engineReady: engineReady}
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": apiTitle,
		"version": apiVersion,
	})
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	if !h.engineReady {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":       "unhealthy",
			"earth_engine": "uninitialized",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":       "healthy",
		"earth_engine": "initialized",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
