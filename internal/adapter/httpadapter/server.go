package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxRequestBytes = 1 << 20
	requestIDHeader = "X-Request-ID"
)

// RouteEvaluator evaluates one already-validated snapshot.
type RouteEvaluator interface {
	Evaluate(ctx context.Context, snapshot domain.RouteSnapshot) domain.RouteEvaluation
}

// Server exposes health, readiness, metrics, and synchronous evaluation
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	evaluator  RouteEvaluator
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// POST /v1/evaluate routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, evaluator RouteEvaluator, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		evaluator: evaluator,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/evaluate", s.handleEvaluate)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleEvaluate decodes a RouteSnapshot body and responds with its
// RouteEvaluation. A missing fetched_at is taken as the request time.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, requestID)
	logger := s.logger.With("request_id", requestID)

	var snapshot domain.RouteSnapshot
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&snapshot); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		logger.Warn("decode evaluate request failed", "error", err)
		writeError(w, status, "invalid route snapshot: "+err.Error())
		return
	}
	if err := domain.ValidateSnapshot(snapshot); err != nil {
		logger.Warn("evaluate request rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = domain.Now()
	}

	evaluation := s.evaluator.Evaluate(r.Context(), snapshot)
	logger.Info("route evaluated",
		"route_id", evaluation.RouteID,
		"reroute_recommended", evaluation.Summary.RerouteRecommended,
		"hazard_alerts", len(evaluation.HazardAlerts),
	)
	sharedobs.WriteJSON(w, http.StatusOK, evaluation)
}

func writeError(w http.ResponseWriter, status int, message string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": message})
}
