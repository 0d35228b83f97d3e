// Package server exposes the analysis pipeline over a small local
// HTTP API so a dashboard can drive it.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Server wraps http.Server with timeouts suited to analyses that can
// take minutes on the backend side.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a server listening on addr and serving handler.
func New(addr string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
			// Write timeout must exceed the backend analysis timeout
			// or long analyses get cut off mid-response.
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   3 * time.Minute,
			IdleTimeout:    2 * time.Minute,
			MaxHeaderBytes: 10 * 1024,
		},
		logger: logger,
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}
