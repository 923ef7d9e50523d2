package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sensorlog-service/internal/infrastructure/metrics"
)

// SensorLister reports the configured sensors for health output.
type SensorLister interface {
	SensorNames() []string
}

// Server exposes the operational HTTP surface: health and metrics.
type Server struct {
	router chi.Router
}

// NewServer constructs a chi based HTTP server.
func NewServer(sensors SensorLister) *Server {
	router := chi.NewRouter()
	router.Use(metrics.HTTPMiddleware)

	handler := &handler{sensors: sensors}
	registerRoutes(router, handler)

	return &Server{router: router}
}

// Router returns the configured chi router for reuse in tests or external HTTP servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// ServeHTTP allows Server to satisfy the http.Handler interface directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
