package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the monitor's report over HTTP next to the Prometheus
// metrics endpoint.
type Server struct {
	monitor *Monitor
	http    *http.Server
}

// NewServer creates a health server listening on port.
func NewServer(monitor *Monitor, port int) *Server {
	s := &Server{monitor: monitor}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleSummary)
	mux.HandleFunc("/health/detailed", s.handleReport)
	mux.Handle("/metrics", promhttp.Handler())

	s.http = &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleSummary reports only the aggregated status, 503 when critical.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	report := s.monitor.Report(r.Context())
	code := http.StatusOK
	if report.Status == StatusCritical {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": string(report.Status)})
}

// handleReport returns the full per-component snapshot.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.monitor.Report(r.Context()))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
