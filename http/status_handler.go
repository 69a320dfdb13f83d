package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"loan-predictor/service"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

type StatusHandler struct {
	service *service.PredictionService
}

func NewStatusHandler(service *service.PredictionService) *StatusHandler {
	return &StatusHandler{service: service}
}

// Health reports degraded while the model is not loaded.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ready := h.service.Ready()
	status, code := "ok", http.StatusOK
	if !ready {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":       status,
		"model_loaded": ready,
	})
}

// Recent lists the latest stored predictions, newest first.
func (h *StatusHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRecentLimit)
	}

	writeJSON(w, http.StatusOK, h.service.RecentPredictions(limit))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("error encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(payload); err != nil {
		slog.Error("error writing response", "error", err)
	}
}
