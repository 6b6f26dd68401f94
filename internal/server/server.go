// Package server exposes the planner over HTTP: one plan endpoint plus
// health, readiness, metrics, and optional debug surfaces.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	kperrors "github.com/kubeplan/kubeplan/internal/errors"
	"github.com/kubeplan/kubeplan/internal/observability"
	"github.com/kubeplan/kubeplan/internal/sizing"
	"github.com/kubeplan/kubeplan/pkg/model"
)

// maxPlanBodyBytes bounds the accepted request size; a SizingInput is tiny.
const maxPlanBodyBytes = 1 << 16

// errorResponse is the JSON body returned on a rejected plan request.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Server exposes plan, health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	sizer      *sizing.Sizer
	metrics    *observability.Metrics
	listener   net.Listener
}

// New creates a Server on the given port. Pass port=0 to let the OS pick
// a free port (useful for tests). When enableDebug is true, pprof
// endpoints are registered.
func New(port int, sizer *sizing.Sizer, metrics *observability.Metrics, enableDebug bool) *Server {
	s := &Server{
		sizer:   sizer,
		metrics: metrics,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/plan", s.handlePlan)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleHealthz) // stateless: ready as soon as we serve
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	if enableDebug {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	handler := withRequestID(withLogging(withInFlight(metrics, mux)))

	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf(":%d", port),
		Handler:        gzhttp.GzipHandler(handler),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return s
}

// Addr returns the listen address once Start has succeeded.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins listening and serving HTTP in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server listen: %w", err)
	}
	s.listener = ln
	// Update Addr to the actual address (important when port=0).
	s.httpServer.Addr = ln.Addr().String()

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			_ = err // server exited with unexpected error; ignore during shutdown
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var in model.SizingInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		s.metrics.PlanRequestsTotal.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed sizing input: " + err.Error()})
		return
	}

	report, err := s.sizer.Plan(in)
	if err != nil {
		if field, ok := kperrors.InvalidField(err); ok {
			s.metrics.PlanRequestsTotal.WithLabelValues("invalid_input").Inc()
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: field})
			return
		}
		s.metrics.PlanRequestsTotal.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.metrics.PlanRequestsTotal.WithLabelValues("ok").Inc()
	s.metrics.PlanDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
