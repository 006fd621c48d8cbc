// Package backend serves the inventory API from the local SQLite catalog.
package backend

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stocktrack/stocktrack/internal/services/stock"
)

// Router wraps the mux router and the stock service.
type Router struct {
	*mux.Router
	svc *stock.Service
}

// NewRouter creates the HTTP router with all routes.
func NewRouter(svc *stock.Service) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		svc:    svc,
	}
	r.Use(logRequests)

	r.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/filter-options", r.filterOptions).Methods(http.MethodGet)
	api.HandleFunc("/inventory", r.inventory).Methods(http.MethodGet)
	api.HandleFunc("/outbound", r.outbound).Methods(http.MethodPost)
	api.HandleFunc("/inbound", r.inbound).Methods(http.MethodPost)
	api.HandleFunc("/order", r.order).Methods(http.MethodPost)
	api.HandleFunc("/consumables/{code}", r.updateConsumable).Methods(http.MethodPut)
	api.HandleFunc("/consumables/{code}/movements", r.movements).Methods(http.MethodGet)

	r.HandleFunc("/download/consumables-template", r.downloadTemplate).Methods(http.MethodGet)

	return r
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.Ping(req.Context()); err != nil {
		slog.Warn("health check failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encoding response", "error", err)
	}
}

// respondError sends a failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		slog.Info("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", req.Header.Get("X-Request-ID"),
		)
	})
}
