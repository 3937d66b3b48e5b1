package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"contentbrief/pkg/metrics"

	"go.uber.org/zap"
)

// Server represents the API server
type Server struct {
	runner     BriefRunner
	logger     *zap.Logger
	metrics    *metrics.Metrics
	httpServer *http.Server
}

// NewServer creates a new API server listening on addr
func NewServer(addr string, runner BriefRunner, logger *zap.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		runner:  runner,
		logger:  logger,
		metrics: m,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/generate_content_brief/{$}", s.ContentBriefHandler)
	mux.HandleFunc("/health", s.HealthHandler)
	mux.Handle("/metrics", s.metrics.Handler())

	var h http.Handler = mux
	h = Recover(s.logger)(h)
	h = Metrics(s.metrics)(h)
	h = Logging(s.logger)(h)
	return h
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
