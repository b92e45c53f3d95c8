package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aaronwald/mqtt2prom/internal/infrastructure/config"
	"github.com/aaronwald/mqtt2prom/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the metrics server.
type Deps struct {
	Config   config.MetricsConfig
	Logger   *logging.Logger
	Gatherer prometheus.Gatherer
	Version  string
}

// Server is the HTTP server for the Prometheus exposition endpoint.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg      config.MetricsConfig
	logger   *logging.Logger
	gatherer prometheus.Gatherer
	version  string
	server   *http.Server
}

// New creates a new metrics server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Gatherer == nil {
		return nil, fmt.Errorf("gatherer is required")
	}

	return &Server{
		cfg:      deps.Config,
		logger:   deps.Logger,
		gatherer: deps.Gatherer,
		version:  deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server is stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("starting metrics server: %w", ctx.Err())
	default:
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       s.cfg.GetReadTimeout(),
		ReadHeaderTimeout: s.cfg.GetReadTimeout(),
		WriteTimeout:      s.cfg.GetWriteTimeout(),
		IdleTimeout:       s.cfg.GetIdleTimeout(),
	}

	go func() {
		s.logger.Info("metrics server listening", "address", s.server.Addr)
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the metrics server.
//
// It waits up to 10 seconds for in-flight scrapes to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("metrics server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}
	return nil
}

// HealthCheck verifies the metrics server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("metrics server health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("metrics server not started")
	}

	return nil
}
