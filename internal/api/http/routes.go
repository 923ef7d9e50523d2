package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sensorlog-service/internal/infrastructure/metrics"
)

type handler struct {
	sensors SensorLister
}

func registerRoutes(router chi.Router, h *handler) {
	router.Get("/healthz", h.handleHealth)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	router.NotFound(h.handleNotFound)
}

type healthResponse struct {
	Status  string `json:"status"`
	Sensors int    `json:"sensors"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	count := 0
	if h.sensors != nil {
		count = len(h.sensors.SensorNames())
	}
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Sensors: count})
}

func (h *handler) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	h.writeError(w, http.StatusNotFound, "not found")
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message, Code: status})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
