// Package server wraps HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Config holds HTTP server configuration.
type Config struct {
	Host        string
	Port        int
	ReadTimeout time.Duration
	IdleTimeout time.Duration
}

// DefaultConfig returns default HTTP server configuration.
// Port 9000 is the fixed external surface of the bridge.
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        9000,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

// Server wraps the HTTP server.
type Server struct {
	config Config
	http   *http.Server
}

// NewServer creates a new HTTP server for the given handler.
// No WriteTimeout: the MCP streamable transport keeps long-lived response
// streams open, which a write deadline would cut mid-session.
func NewServer(handler http.Handler, config Config) *Server {
	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:     handler,
		ReadTimeout: config.ReadTimeout,
		IdleTimeout: config.IdleTimeout,
	}

	return &Server{
		config: config,
		http:   httpServer,
	}
}

// Start starts the HTTP server and blocks until an error occurs.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("starting HTTP server", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down server")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("server shutdown complete")
	return nil
}
