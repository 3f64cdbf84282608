package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/irchook/irchook/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server exposes operational endpoints for one relay process:
//
//	GET /health   liveness probe
//	GET /metrics  Prometheus text exposition
//
// It runs beside the relay loop and shares nothing with it except the
// metrics registry.
type Server struct {
	addr    string
	stats   *metrics.Relay
	logger  *slog.Logger
	httpSrv *http.Server
	started time.Time
}

// New creates a status server listening on addr.
func New(addr string, stats *metrics.Relay, logger *slog.Logger) *Server {
	s := &Server{
		addr:    addr,
		stats:   stats,
		logger:  logger,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metricsHandler())
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start serves until Shutdown is called. It blocks; run it on its own
// goroutine. A closed server returns nil.
func (s *Server) Start() error {
	s.logger.Info("status server listening", "addr", s.addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting briefly for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	response := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	_ = json.NewEncoder(w).Encode(response)
}

// metricsHandler refreshes the uptime gauge before every scrape.
func (s *Server) metricsHandler() http.Handler {
	inner := s.stats.Registry.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.stats.UptimeSeconds.Set(time.Since(s.started).Seconds())
		inner.ServeHTTP(w, r)
	})
}
